package cmd

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/npillmayer/scoretree/ast"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#8B5CF6") // Violet
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorAccent    = lipgloss.Color("#F59E0B") // Amber
	ColorSuccess   = lipgloss.Color("#10B981") // Emerald
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
)

var (
	HeadingStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	structureStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	eventStyle     = lipgloss.NewStyle().Foreground(ColorSuccess)
	markingStyle   = lipgloss.NewStyle().Foreground(ColorAccent).Italic(true)
	commandStyle   = lipgloss.NewStyle().Foreground(ColorSecondary)
)

var kindStyles = map[ast.Kind]lipgloss.Style{
	ast.SCORE:   structureStyle,
	ast.BAR:     structureStyle,
	ast.REPEAT:  structureStyle,
	ast.NOTE:    eventStyle,
	ast.REST:    eventStyle.Foreground(ColorMuted),
	ast.DYNAMIC: markingStyle,
	ast.TEMPO:   markingStyle,
	ast.COMMAND: commandStyle,
}

// styleKind colors the KIND label of a tree line.
func styleKind(kind ast.Kind, label string) string {
	if style, ok := kindStyles[kind]; ok {
		return style.Render(label)
	}
	return label
}

// heading renders a title, colored if colors are enabled.
func (s *settings) heading(title string) string {
	if s.cfg != nil && s.cfg.Color {
		return HeadingStyle.Render(title)
	}
	return title
}
