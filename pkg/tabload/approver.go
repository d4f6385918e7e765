package tabload

import (
	"context"
	"time"
)

// DefaultForceApprovalCountdown is how long the forced approver counts
// down before proceeding with a replace load.
const DefaultForceApprovalCountdown = 3 * time.Second

// Approver decides whether a destructive operation may proceed. A replace
// load drops the target table, so it asks first.
type Approver interface {
	// RequestApproval asks for permission to drop and reload the named
	// table. It returns false when the user declines; an error means the
	// question itself could not be asked or answered.
	RequestApproval(ctx context.Context, table string) (bool, error)
}
