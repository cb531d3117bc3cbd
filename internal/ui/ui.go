package ui

// Basic ANSI color codes used by the logging package. Everything that renders
// to the terminal should use the lipgloss styles from styles.go instead.
const (
	Reset     = "\033[0m"
	FgCyan    = "\033[36m"
	FgGreen   = "\033[32m"
	FgMagenta = "\033[35m"
)

// Color wraps a string with the given ANSI code.
func Color(s string, code string) string {
	return code + s + Reset
}
