package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// command returns the opener for the current platform
func command(goos, url string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", url), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", url), nil
	default:
		return nil, fmt.Errorf("don't know how to open a browser on %s", goos)
	}
}

// Open launches the system browser on url without waiting for it
func Open(url string) error {
	cmd, err := command(runtime.GOOS, url)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	// reap the opener in the background
	go func() { _ = cmd.Wait() }()
	return nil
}
