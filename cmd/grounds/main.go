package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess      = 0 // Every report is ready
	ExitReportFailed = 1 // One or more reports need repair (--strict)
	ExitError        = 2 // Configuration or runtime error
)

// ReportFailureError indicates that scoring ran, but one or more reports
// need repair or could not be read and --strict was set.
type ReportFailureError struct {
	Message string
}

func (e *ReportFailureError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var reportErr *ReportFailureError
		if errors.As(err, &reportErr) {
			os.Exit(ExitReportFailed)
		}

		os.Exit(ExitError)
	}
}
