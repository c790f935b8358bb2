package export

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/Veraticus/the-quote-must-flow/internal/common"
)

// Launcher hands an exported file to the desktop.
type Launcher interface {
	Open(ctx context.Context, path string) error
	Print(ctx context.Context, path string) error
}

// SystemLauncher uses the platform's default viewer and print spooler.
type SystemLauncher struct {
	lookPath func(string) (string, error)
	goos     string
}

// NewSystemLauncher creates a launcher for the running platform.
func NewSystemLauncher() *SystemLauncher {
	return &SystemLauncher{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
	}
}

// Open starts the default viewer and detaches from it. The viewer outlives
// the command, so it is not bound to ctx.
func (l *SystemLauncher) Open(_ context.Context, path string) error {
	name, args, err := openCommand(l.goos, path)
	if err != nil {
		return err
	}
	cmd := exec.Command(name, args...) //nolint:gosec // path comes from the exporter
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	if err := cmd.Process.Release(); err != nil {
		common.LogDebug("Failed to release viewer process", common.Fields{"error": err.Error()})
	}
	return nil
}

// Print submits the file to the default printer and waits for the spooler.
func (l *SystemLauncher) Print(ctx context.Context, path string) error {
	name, args, err := printCommand(l.goos, path, l.lookPath)
	if err != nil {
		return err
	}
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput() //nolint:gosec // path comes from the exporter
	if err != nil {
		return fmt.Errorf("%s failed: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func openCommand(goos, path string) (string, []string, error) {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{path}, nil
	case "darwin":
		return "open", []string{path}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}, nil
	default:
		return "", nil, fmt.Errorf("opening files is not supported on %s", goos)
	}
}

func printCommand(goos, path string, lookPath func(string) (string, error)) (string, []string, error) {
	switch goos {
	case "windows":
		script := fmt.Sprintf("Start-Process -FilePath '%s' -Verb Print", strings.ReplaceAll(path, "'", "''"))
		return "powershell", []string{"-NoProfile", "-Command", script}, nil
	case "darwin", "linux", "freebsd", "openbsd", "netbsd":
		for _, spooler := range []string{"lp", "lpr"} {
			if _, err := lookPath(spooler); err == nil {
				return spooler, []string{path}, nil
			}
		}
		return "", nil, fmt.Errorf("no print spooler found (tried lp, lpr)")
	default:
		return "", nil, fmt.Errorf("printing is not supported on %s", goos)
	}
}
