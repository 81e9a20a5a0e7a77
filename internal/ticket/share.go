package ticket

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
)

// copyToClipboard writes text to the system clipboard through OSC 52 on
// the controlling terminal. Works over SSH and inside tmux (with
// allow-passthrough on); duplicate clipboard sets are harmless. Errors
// mean no terminal route exists and the caller should fall back to a
// text file.
func copyToClipboard(text string) error {
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer tty.Close()

	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	osc52 := fmt.Sprintf("\x1b]52;c;%s\x07", encoded)

	// Detect tmux: TMUX env var (local tmux), or TERM prefix
	// (forwarded through SSH from a local tmux session).
	inTmux := os.Getenv("TMUX") != "" ||
		strings.HasPrefix(os.Getenv("TERM"), "tmux") ||
		strings.HasPrefix(os.Getenv("TERM"), "screen")

	if inTmux {
		// tmux DCS passthrough: escapes are doubled inside the DCS
		// wrapper. BEL terminates the OSC to avoid double-escaping ST.
		if _, err := fmt.Fprintf(tty, "\x1bPtmux;\x1b%s\x1b\\", osc52); err != nil {
			return err
		}
	}

	_, err = tty.WriteString(osc52)
	return err
}
