package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// IsTerminal reports whether f is an interactive terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// IsInteractive reports whether both stdin and stdout are terminals
func IsInteractive() bool {
	return IsTerminal(os.Stdin) && IsTerminal(os.Stdout)
}

// ConfigureColor disables styling when noColor is set or w is not a terminal
func ConfigureColor(w io.Writer, noColor bool) {
	f, ok := w.(*os.File)
	if noColor || !ok || !IsTerminal(f) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// ColorGreen colors text green
func ColorGreen(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("2")).
		Render(text)
}

// ColorRed colors text red
func ColorRed(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("1")).
		Render(text)
}

// ColorCommit styles a commit id
func ColorCommit(sha string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("3")).
		Render(sha)
}

// ColorBranchName styles a branch name
func ColorBranchName(name string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("6")).
		Bold(true).
		Render(name)
}
