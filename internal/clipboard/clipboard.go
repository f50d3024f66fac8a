package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/muesli/termenv"
)

// ClipboardError is returned when no clipboard utility could be found
type ClipboardError struct {
	OS      string
	Message string
}

func (e *ClipboardError) Error() string {
	return e.Message
}

// NewClipboardError creates a ClipboardError with install instructions for goos
func NewClipboardError(goos string) *ClipboardError {
	return &ClipboardError{
		OS:      goos,
		Message: "no clipboard utility found. " + installInstructions(goos),
	}
}

// backend is an external command that reads clipboard text from stdin
type backend struct {
	name string
	args []string
}

var backends = map[string][]backend{
	"darwin": {{name: "pbcopy"}},
	"linux": {
		{name: "wl-copy"},
		{name: "xclip", args: []string{"-selection", "clipboard"}},
		{name: "xsel", args: []string{"--clipboard", "--input"}},
	},
	"windows": {{name: "cmd", args: []string{"/c", "clip"}}},
}

// Clipboard copies text through the first available platform utility. When
// none is installed and OSC52 is enabled, the text is sent to the terminal
// instead.
type Clipboard struct {
	GOOS  string
	OSC52 bool

	lookPath func(string) (string, error)
	run      func(name string, args []string, stdin io.Reader) error
	terminal io.Writer
}

// New returns a clipboard for the running platform
func New() *Clipboard {
	return &Clipboard{
		GOOS:     runtime.GOOS,
		OSC52:    true,
		lookPath: exec.LookPath,
		run:      runCommand,
		terminal: os.Stdout,
	}
}

func runCommand(name string, args []string, stdin io.Reader) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	return cmd.Run()
}

// Available reports whether a clipboard utility is installed
func (c *Clipboard) Available() bool {
	for _, b := range backends[c.GOOS] {
		if _, err := c.lookPath(b.name); err == nil {
			return true
		}
	}
	return false
}

// Copy copies text to the system clipboard
func (c *Clipboard) Copy(text string) error {
	var lastErr error
	for _, b := range backends[c.GOOS] {
		if _, err := c.lookPath(b.name); err != nil {
			continue
		}
		if err := c.run(b.name, b.args, strings.NewReader(text)); err != nil {
			lastErr = fmt.Errorf("%s failed: %w", b.name, err)
			continue
		}
		return nil
	}

	if lastErr != nil {
		return fmt.Errorf("clipboard utilities available but failed: %w", lastErr)
	}
	if c.OSC52 && c.terminal != nil {
		termenv.NewOutput(c.terminal).Copy(text)
		return nil
	}
	return NewClipboardError(c.GOOS)
}

// CopyWithFallback copies text and returns a status message for display
func (c *Clipboard) CopyWithFallback(text string) (string, error) {
	if err := c.Copy(text); err != nil {
		var clipErr *ClipboardError
		if errors.As(err, &clipErr) {
			return "", err
		}
		return "", fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return "Copied to clipboard!", nil
}

// Copy copies text using the platform clipboard
func Copy(text string) error {
	return New().Copy(text)
}

// GetInstallInstructions returns install instructions for the running platform
func GetInstallInstructions() string {
	return installInstructions(runtime.GOOS)
}

func installInstructions(goos string) string {
	switch goos {
	case "linux":
		return "Install a clipboard utility:\n" +
			"  • Ubuntu/Debian: sudo apt install xclip\n" +
			"  • Fedora/RHEL: sudo dnf install xclip\n" +
			"  • Arch: sudo pacman -S xclip\n" +
			"  • For Wayland: install wl-clipboard"
	case "darwin":
		return "pbcopy should be available by default on macOS"
	case "windows":
		return "clip should be available by default on Windows"
	default:
		return fmt.Sprintf("Clipboard not supported on %s", goos)
	}
}
