package browser

import (
	"path/filepath"
	"testing"
)

func TestCommand(t *testing.T) {
	tests := map[string]string{
		"darwin":  "open",
		"linux":   "xdg-open",
		"windows": "rundll32",
	}
	for goos, want := range tests {
		cmd, err := command(goos, "https://tasks.example.com/task/abc")
		if err != nil {
			t.Errorf("command(%s) unexpected error: %v", goos, err)
			continue
		}
		if got := filepath.Base(cmd.Args[0]); got != want {
			t.Errorf("command(%s) = %s, want %s", goos, got, want)
		}
		if last := cmd.Args[len(cmd.Args)-1]; last != "https://tasks.example.com/task/abc" {
			t.Errorf("command(%s) should pass the url last, got %s", goos, last)
		}
	}

	if _, err := command("plan9", "x"); err == nil {
		t.Error("Expected error for unsupported platform")
	}
}
