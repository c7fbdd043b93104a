package cli

import (
	"fmt"
	"os"
	"path/filepath"
)

const ackFilename = ".ack"

// ensureAck shows the usage-ethics notice until the user acknowledges it
// once. The marker file lives at the data root so the gate survives restarts.
func (r *Runner) ensureAck() error {
	path := filepath.Join(r.store.Dir(), ackFilename)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	r.printf("Use only on authorized HTB labs/targets. No auto-execution, suggestions only.\n")
	ok, err := r.confirm("Confirm you will only use this ethically and legally?")
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("ethics notice declined")
	}
	if err := os.WriteFile(path, []byte("ack\n"), 0o644); err != nil {
		return fmt.Errorf("write ack marker: %w", err)
	}
	return nil
}
