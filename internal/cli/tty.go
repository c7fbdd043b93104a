package cli

import (
	"os"

	"golang.org/x/term"
)

// stdinIsTTY gates the interactive prompt; piped input gets no prompt noise.
func stdinIsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
