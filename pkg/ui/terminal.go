package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ASCII logo for the application
const asciiLogo = `
   ██████╗ ██╗███╗   ██╗ ██████╗ ██████╗  █████╗ ██████╗
   ██╔══██╗██║████╗  ██║██╔════╝ ██╔══██╗██╔══██╗██╔══██╗
   ██████╔╝██║██╔██╗ ██║██║  ███╗██████╔╝███████║██████╔╝
   ██╔══██╗██║██║╚██╗██║██║   ██║██╔══██╗██╔══██║██╔══██╗
   ██████╔╝██║██║ ╚████║╚██████╔╝██║  ██║██║  ██║██████╔╝
   ╚═════╝ ╚═╝╚═╝  ╚═══╝ ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝
               BULK IMAGE SEARCH DOWNLOADER
`

var (
	logoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	infoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true)
	dimStyle       = lipgloss.NewStyle().Faint(true)
)

var quietMode bool

// SetQuietMode suppresses all non-error terminal output.
func SetQuietMode(quiet bool) {
	quietMode = quiet
}

// IsQuietMode reports whether quiet mode is active.
func IsQuietMode() bool {
	return quietMode
}

// PrintLogo prints the ASCII logo.
func PrintLogo() {
	if quietMode {
		return
	}
	fmt.Print(logoStyle.Render(asciiLogo) + "\n")
}

// PrintError prints an error message in red.
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		fmt.Println(errorStyle.Render(msg + ": " + fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Println(errorStyle.Render(msg))
	}
}

// PrintSuccess prints a success message in green.
func PrintSuccess(msg string) {
	if quietMode {
		return
	}
	fmt.Println(successStyle.Render(msg))
}

// PrintInfo prints a labeled value.
func PrintInfo(label string, value string) {
	if quietMode {
		return
	}
	fmt.Printf("%s: %s\n", infoStyle.Render(label), valueStyle.Render(value))
}

// PrintWarning prints a warning message in yellow.
func PrintWarning(msg string, args ...interface{}) {
	if quietMode {
		return
	}
	if len(args) > 0 {
		fmt.Println(warningStyle.Render(msg + ": " + fmt.Sprintf("%v", args[0])))
	} else {
		fmt.Println(warningStyle.Render(msg))
	}
}

// PrintHighlight prints a highlighted message.
func PrintHighlight(msg string) {
	if quietMode {
		return
	}
	fmt.Println(highlightStyle.Render(msg))
}

// Dim renders text faintly, for secondary detail.
func Dim(text string) string {
	return dimStyle.Render(text)
}
