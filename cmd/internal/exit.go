package internal

import (
	"fmt"
	"os"
	"strings"
)

// Fatal emits the message like Echo, then exits the process with code 1.
func Fatal(msg string, args ...any) {
	Echo(msg, args...)
	os.Exit(1)
}

// Echo prints a printf-style message to stderr, ensuring a trailing newline.
func Echo(msg string, args ...any) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	_, _ = fmt.Fprintf(os.Stderr, msg, args...)
}
