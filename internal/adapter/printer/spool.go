package printer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// SpoolPrinter hands documents to the system spooler through a command such as lp.
type SpoolPrinter struct {
	command []string
	tempDir string
}

// NewSpoolPrinter parses command, e.g. "lp -d frontdesk". The document path is
// appended as the last argument.
func NewSpoolPrinter(command string) *SpoolPrinter {
	return &SpoolPrinter{command: strings.Fields(command)}
}

func (p *SpoolPrinter) Print(ctx context.Context, job Job) error {
	if len(p.command) == 0 {
		return ErrNoPrinter
	}

	dir, err := os.MkdirTemp(p.tempDir, "posdocs-print-")
	if err != nil {
		return fmt.Errorf("printer: create spool dir: %w", err)
	}
	defer os.RemoveAll(dir)

	name := job.Filename
	if name == "" {
		name = "document"
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, job.Payload.Data, 0o600); err != nil {
		return fmt.Errorf("printer: write spool file: %w", err)
	}

	args := append(append([]string{}, p.command[1:]...), path)
	cmd := exec.CommandContext(ctx, p.command[0], args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("printer: %s: %w: %s", p.command[0], err, msg)
		}
		return fmt.Errorf("printer: %s: %w", p.command[0], err)
	}
	return nil
}

func (p *SpoolPrinter) Name() string { return "spool" }
