// Package db builds backend connection strings and opens database handles.
//
// Credentials are never read from the project config. Networked targets
// resolve DB_USER and DB_PASSWORD from the process environment, or exchange
// the default AWS credential chain for a short-lived RDS IAM token when the
// target requests aws_iam auth.
package db

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/rkowalik/tabload/pkg/tabload"
)

// Environment variable names for networked-backend credentials.
const (
	EnvDBUser     = "DB_USER"
	EnvDBPassword = "DB_PASSWORD"
)

// Credentials holds a resolved username/password pair. For aws_iam targets
// the password is the RDS IAM token.
type Credentials struct {
	User     string
	Password string
}

// ResolveCredentials obtains credentials for a networked target.
//
// AuthPassword reads DB_USER and DB_PASSWORD from the environment.
// AuthAWSIAM reads DB_USER and builds an RDS IAM token for the target
// endpoint; the token is valid for 15 minutes, which comfortably covers a
// single logical operation.
func ResolveCredentials(ctx context.Context, target *tabload.TargetDescriptor) (*Credentials, error) {
	user := os.Getenv(EnvDBUser)
	if user == "" {
		return nil, fmt.Errorf("resolve credentials: %w: %s is not set", tabload.ErrConfigInvalid, EnvDBUser)
	}

	switch target.Auth {
	case "", tabload.AuthPassword:
		password := os.Getenv(EnvDBPassword)
		if password == "" {
			return nil, fmt.Errorf("resolve credentials: %w: %s is not set", tabload.ErrConfigInvalid, EnvDBPassword)
		}
		return &Credentials{User: user, Password: password}, nil

	case tabload.AuthAWSIAM:
		endpoint := fmt.Sprintf("%s:%d", target.Host, target.Port)
		token, err := buildRDSAuthToken(ctx, endpoint, target.AWSRegion, user)
		if err != nil {
			return nil, err
		}
		return &Credentials{User: user, Password: token}, nil

	default:
		return nil, fmt.Errorf("resolve credentials: %w: unknown auth method %q", tabload.ErrConfigInvalid, target.Auth)
	}
}

// BuildURL renders the canonical connection URL for a target.
//
// Shapes:
//   - embedded:  duckdb:///<database-path>
//   - networked: postgres://<user>:<password>@<host>:<port>/<database>
//
// Credentials are URL-escaped, so passwords containing reserved characters
// round-trip through the driver's URL parser.
func BuildURL(target *tabload.TargetDescriptor, creds *Credentials) string {
	if target.Embedded() {
		return "duckdb:///" + target.Path
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   target.Host + ":" + strconv.Itoa(target.Port),
		Path:   "/" + target.Database,
	}
	if creds != nil {
		u.User = url.UserPassword(creds.User, creds.Password)
	}
	return u.String()
}

// Redacted returns the connection URL with the password masked, suitable
// for log output.
func Redacted(target *tabload.TargetDescriptor, creds *Credentials) string {
	if target.Embedded() || creds == nil {
		return BuildURL(target, creds)
	}
	masked := *creds
	masked.Password = "*****"
	u := BuildURL(target, &masked)
	return u
}
