package tabload

// Record is one row of the employees table. Identity is Id; records are
// immutable once loaded, and updates happen only via a full replace load.
type Record struct {
	Id         int64
	Name       string
	Age        int
	City       string
	Department string
	Level      string
	Occupation string
	Salary     float64
}

// RowSet is an ordered sequence of records sharing the employees schema.
// It is produced once per ingestion run by the source reader, consumed once
// by the sink, and discarded afterwards.
type RowSet []Record

// Criteria maps a column name to either a single scalar (equality predicate)
// or a non-empty slice of scalars (membership predicate). Keys are unique;
// map iteration order may affect generated clause order but never the
// result set.
//
// Example:
//
//	tabload.Criteria{
//	    "department": "Engineering",
//	    "city":       []any{"Boston", "Denver"},
//	}
type Criteria map[string]any

// SortDirection selects ascending or descending result order.
type SortDirection string

const (
	SortAscending  SortDirection = "ASC"
	SortDescending SortDirection = "DESC"
)

// SortSpec is an optional (column, direction) ordering request.
// A nil *SortSpec leaves result order backend-defined.
type SortSpec struct {
	Column    string
	Direction SortDirection
}

// CompiledQuery is the output of the criteria compiler: a parameterized SQL
// template plus the values bound to its placeholders, in placeholder order.
//
// Invariant: every placeholder referenced in SQL has exactly one entry in
// Args, and no caller-supplied value is ever interpolated into SQL itself.
type CompiledQuery struct {
	SQL  string
	Args []any
}

// LoadMode controls write semantics of a sink load.
type LoadMode string

const (
	// ModeAppend inserts rows without affecting existing table content.
	ModeAppend LoadMode = "append"

	// ModeReplace drops and recreates the target table before inserting,
	// so post-load content equals exactly the loaded RowSet.
	ModeReplace LoadMode = "replace"
)

// BackendKind identifies the relational backend family.
type BackendKind string

const (
	// BackendDuckDB is the embedded, file-resident backend. It requires no
	// network connection and is the only backend the sink index-manages.
	BackendDuckDB BackendKind = "duckdb"

	// BackendPostgres is the networked backend, reached via host/port with
	// credentials resolved from the process environment.
	BackendPostgres BackendKind = "postgres"
)

// AuthMethod selects how networked-backend credentials are obtained.
type AuthMethod string

const (
	// AuthPassword reads DB_USER and DB_PASSWORD from the environment.
	AuthPassword AuthMethod = "password"

	// AuthAWSIAM exchanges the default AWS credential chain for a short-lived
	// RDS IAM token used in place of a password. DB_USER still names the
	// database user configured for IAM authentication.
	AuthAWSIAM AuthMethod = "aws_iam"
)

// TargetDescriptor is the fully resolved description of a load/query target.
// It is built from a validated TargetConfig and owns no live resources.
type TargetDescriptor struct {
	Kind      BackendKind
	Table     string
	Mode      LoadMode
	BatchSize int

	// Path is the database file location (embedded backend only).
	Path string

	// Host, Port and Database locate a networked backend.
	Host     string
	Port     int
	Database string

	// Auth selects the credential source for networked backends.
	// The zero value is treated as AuthPassword.
	Auth AuthMethod

	// AWSRegion is required when Auth is AuthAWSIAM.
	AWSRegion string
}

// Embedded reports whether the target is the file-resident backend.
func (t *TargetDescriptor) Embedded() bool {
	return t.Kind == BackendDuckDB
}
