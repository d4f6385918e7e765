package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rkowalik/tabload/pkg/tabload"
)

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation. It prompts the user to type the table name to
// confirm a replace load.
type InteractiveApprover struct {
	input  io.Reader
	output io.Writer
}

// NewInteractiveApprover creates a new InteractiveApprover reading from
// stdin and writing to stderr.
func NewInteractiveApprover() tabload.Approver {
	return &InteractiveApprover{input: os.Stdin, output: os.Stderr}
}

// RequestApproval prompts the user to type the table name to confirm.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, table string) (bool, error) {
	fmt.Fprintf(a.output, "\nWARNING: a replace load DROPS the table '%s' before loading.\n", table)
	fmt.Fprintln(a.output, "Everything the table currently holds will be permanently deleted!")
	fmt.Fprintf(a.output, "\nTo confirm, type the table name '%s' and press Enter: ", table)

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		line, err := reader.ReadString('\n')
		if err != nil {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(line)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case line := <-inputChan:
		if line == table {
			fmt.Fprintln(a.output, "Confirmed. Proceeding with replace load...")
			return true, nil
		}
		fmt.Fprintf(a.output, "Input '%s' does not match table name '%s'. Operation cancelled.\n", line, table)
		return false, nil
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ tabload.Approver = (*InteractiveApprover)(nil)
