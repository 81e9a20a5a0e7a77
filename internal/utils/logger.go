package utils

import (
	"io"
	"log"
	"os"
	"strings"
)

// LogEvent prints a standardized log line with module/action.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(module, action, message string) {
	log.Printf("[%s] action=%s msg=%s", strings.ToUpper(module), action, message)
}

// RedirectLog points the standard logger at path while an interactive
// session owns the terminal. An empty path discards log output.
// The returned closer restores nothing; it only releases the file.
func RedirectLog(path string) (io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	return f, nil
}
