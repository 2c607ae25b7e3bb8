// Package clipboard provides clipboard operations via platform-specific commands.
package clipboard

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/storyseq/storyseq"
)

// Ensure System implements the Clipboard interface.
var _ storyseq.Clipboard = (*System)(nil)

// System implements Clipboard by shelling out to the platform clipboard
// command: pbcopy/pbpaste on macOS, wl-copy/wl-paste or xclip on Linux.
type System struct {
	copyCmd  []string
	pasteCmd []string
}

// NewSystem returns a clipboard for the current platform.
func NewSystem() *System {
	switch runtime.GOOS {
	case "darwin":
		return &System{
			copyCmd:  []string{"pbcopy"},
			pasteCmd: []string{"pbpaste"},
		}
	default:
		if _, err := exec.LookPath("wl-copy"); err == nil {
			return &System{
				copyCmd:  []string{"wl-copy"},
				pasteCmd: []string{"wl-paste", "--no-newline"},
			}
		}
		return &System{
			copyCmd:  []string{"xclip", "-selection", "clipboard"},
			pasteCmd: []string{"xclip", "-selection", "clipboard", "-o"},
		}
	}
}

// Copy writes content to the system clipboard.
func (s *System) Copy(content string) error {
	cmd := exec.Command(s.copyCmd[0], s.copyCmd[1:]...)
	cmd.Stdin = strings.NewReader(content)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("clipboard: %s: %w", s.copyCmd[0], err)
	}
	return nil
}

// Paste reads the current contents of the system clipboard.
func (s *System) Paste() (string, error) {
	out, err := exec.Command(s.pasteCmd[0], s.pasteCmd[1:]...).Output()
	if err != nil {
		return "", fmt.Errorf("clipboard: %s: %w", s.pasteCmd[0], err)
	}
	return string(out), nil
}
