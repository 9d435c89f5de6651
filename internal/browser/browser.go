package browser

import (
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
)

// Launcher opens links in a browser without waiting for it to exit.
type Launcher struct {
	// Executable is the browser to run. Empty uses the OS opener.
	Executable string
}

func New(executable string) *Launcher {
	return &Launcher{Executable: executable}
}

func (l *Launcher) Open(rawURL string) error {
	if err := validate(rawURL); err != nil {
		return err
	}
	cmd := l.command(rawURL)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", cmd.Path, err)
	}
	// Reap in the background so the review never waits on the browser.
	go func() {
		if err := cmd.Wait(); err != nil {
			slog.Debug("browser exited", "url", rawURL, "error", err)
		}
	}()
	return nil
}

func (l *Launcher) command(rawURL string) *exec.Cmd {
	if l.Executable != "" {
		return exec.Command(l.Executable, rawURL)
	}
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", rawURL)
	case "windows":
		// Use rundll32 instead of cmd /c start to avoid shell interpretation
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return exec.Command("xdg-open", rawURL)
	}
}

func validate(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open URL with scheme %q (only http/https allowed)", u.Scheme)
	}
	return nil
}
