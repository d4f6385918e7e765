package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rkowalik/tabload/pkg/tabload"
)

// ForcedApprover implements the Approver interface for forced
// (non-interactive) approval. It displays a countdown and automatically
// approves afterwards, used when the --force flag is provided.
type ForcedApprover struct {
	output  io.Writer
	sleepFn func(time.Duration)
}

// NewForcedApprover creates a new ForcedApprover.
func NewForcedApprover() tabload.Approver {
	return &ForcedApprover{output: os.Stderr, sleepFn: time.Sleep}
}

// RequestApproval displays a countdown and automatically approves after it.
func (a *ForcedApprover) RequestApproval(ctx context.Context, table string) (bool, error) {
	fmt.Fprintf(a.output, "\nWARNING: replacing table '%s'; everything it holds will be deleted.\n", table)

	seconds := int(tabload.DefaultForceApprovalCountdown.Seconds())
	for i := seconds; i > 0; i-- {
		select {
		case <-ctx.Done():
			fmt.Fprintln(a.output)
			return false, ctx.Err()
		default:
		}
		fmt.Fprintf(a.output, "Proceeding in %d...\n", i)
		a.sleepFn(time.Second)
	}

	fmt.Fprintln(a.output, "Proceeding with replace load...")
	return true, nil
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ tabload.Approver = (*ForcedApprover)(nil)
