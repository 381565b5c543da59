package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Terminal colors borrow from the panel palette so the CLI looks like the
// panels it renders.
var (
	colorGreen  = lipgloss.Color("#73BF69")
	colorRed    = lipgloss.Color("#F2495C")
	colorBlue   = lipgloss.Color("#5794F2")
	colorOrange = lipgloss.Color("#FF9830")
	colorText   = lipgloss.Color("#EEEEEE")
	colorMuted  = lipgloss.Color("#8E8E8E")
	colorDim    = lipgloss.Color("#5A5A5A")
)

var (
	// StyleTitle renders headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)

	// StyleHighlight renders property names and URLs.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorBlue)

	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue renders values and paths.
	StyleValue = lipgloss.NewStyle().Foreground(colorText)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorMuted)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorBlue)

	styleHeader  = lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	styleCommand = lipgloss.NewStyle().Foreground(colorOrange)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
)

// printStatus writes one status line: a colored glyph, then the message.
func printStatus(icon lipgloss.Style, glyph, format string, args ...any) {
	fmt.Println(icon.Render(glyph) + " " + fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { printStatus(styleIconSuccess, iconSuccess, format, args...) }
func printError(format string, args ...any)   { printStatus(styleIconError, iconError, format, args...) }
func printInfo(format string, args ...any)    { printStatus(styleIconInfo, iconInfo, format, args...) }

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints one written output path under a result line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// statsLine summarises one rendered panel, e.g. "stacked · 2 formats · cached".
func statsLine(layout string, formats int, cached bool) string {
	parts := []string{StyleDim.Render(layout)}
	switch formats {
	case 0:
	case 1:
		parts = append(parts, StyleDim.Render("1 format"))
	default:
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d formats", formats)))
	}
	if cached {
		parts = append(parts, styleIconSuccess.Render("cached"))
	} else {
		parts = append(parts, styleIconInfo.Render("rendered"))
	}
	return "  " + strings.Join(parts, StyleDim.Render(" · "))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
