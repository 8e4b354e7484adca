package util

import (
	"fmt"
	"os/exec"
	"runtime"
)

// OpenFile hands path to the platform's default viewer without waiting for it
func OpenFile(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	LogDebugf("Opened %s with %s (pid %d)", path, cmd.Path, cmd.Process.Pid)
	return cmd.Process.Release()
}
