package tabload

// Exit codes for semantic error classification, following Unix/GNU
// conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Operation completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration
	ExitConnectionError = 11 // Failed to connect to database
	ExitSourceError     = 12 // Source file unreadable or malformed
	ExitBadRequest      = 13 // Bad criteria, sort column, or load mode
	ExitSinkError       = 14 // Backend rejected the write
)

const (
	// DefaultBatchSize is the number of rows submitted to the backend per
	// write call when the target does not override it. Batch size is a
	// throughput knob only and never changes the persisted result.
	DefaultBatchSize = 10000

	// DefaultTable is the target table name when the config omits one.
	DefaultTable = "employees"

	// DefaultPostgresPort is used when a networked target omits the port.
	DefaultPostgresPort = 5432
)

// IndexColumns are the columns the sink indexes on the embedded backend
// after a successful load. Provisioning uses CREATE INDEX IF NOT EXISTS, so
// repeated loads never fail on index collision.
var IndexColumns = []string{ColDepartment, ColLevel, ColSalary}
