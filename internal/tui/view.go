package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/csheth/scicalc/internal/calc"
	"github.com/csheth/scicalc/internal/keypad"
)

func (m *model) View() string {
	parts := []string{m.heroView(), m.displayPanel(), m.keypadView(), m.statusView()}
	if m.focus == focusFunctionEntry {
		parts = append(parts, m.functionEntryView())
	}
	if m.state.ShowHelp {
		m.refreshViewportIfDirty()
		parts = append(parts, m.keyLegendView(), m.helpView())
	}
	return joinNonEmpty(parts)
}

func (m *model) heroView() string {
	title := heroTitleStyle.Render(heroTitle)
	badge := angleBadgeStyle.Render(m.state.Angle.Label())
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, title, " ", badge),
		taglineStyle.Render(heroTagline),
	)
}

func (m *model) displayPanel() string {
	width := m.layout.panelWidth
	expression := m.state.Expression
	if expression == "" {
		expression = calc.Placeholder
	}
	display := displayStyle
	if m.state.Failed() {
		display = displayErrorStyle
	}
	content := lipgloss.JoinVertical(
		lipgloss.Right,
		expressionStyle.Width(width).Render(tail(expression, width)),
		display.Width(width).Render(tail(m.state.Display, width)),
	)
	return displayBoxStyle.Render(content)
}

func (m *model) keypadView() string {
	rows := keypad.Rows()
	lines := make([]string, 0, len(rows))
	for r, row := range rows {
		cells := make([]string, 0, len(row)*2)
		for c, k := range row {
			if c > 0 {
				cells = append(cells, strings.Repeat(" ", buttonGap))
			}
			width := m.layout.buttonWidth
			if k.Wide() {
				width = m.layout.panelWidth
			}
			style := buttonStyle(k)
			if r == m.cursorRow && c == m.cursorCol && m.focus == focusKeypad {
				style = focusedButtonStyle
			}
			label := truncate.StringWithTail(k.Label, uint(width), "…")
			cells = append(cells, style.Width(width).Align(lipgloss.Center).Render(label))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(lines, "\n")
}

func (m *model) statusView() string {
	width := m.layout.panelWidth
	lines := []string{}
	if m.errorMessage != "" {
		lines = append(lines, errorStyle.Render(truncate.StringWithTail(m.errorMessage, uint(width), "…")))
	}
	if m.infoMessage != "" {
		lines = append(lines, helperStyle.Render(truncate.StringWithTail(m.infoMessage, uint(width), "…")))
	}
	return strings.Join(lines, "\n")
}

func (m *model) functionEntryView() string {
	return joinNonEmpty([]string{
		sectionHeaderStyle.Render("Insert Function"),
		m.fnInput.View(),
	})
}

func (m *model) keyLegendView() string {
	hints := m.keys.hints()
	rows := []string{sectionHeaderStyle.Render("Keys")}
	const columns = 3
	for i := 0; i < len(hints); i += columns {
		end := i + columns
		if end > len(hints) {
			end = len(hints)
		}
		var cells []string
		for _, hint := range hints[i:end] {
			key := keyStyle.Render(hint.Key)
			desc := keyDescStyle.Render(" " + hint.Description + "  ")
			cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top, key, desc))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return legendBoxStyle.Render(strings.Join(rows, "\n"))
}

func (m *model) helpView() string {
	header := sectionHeaderStyle.Render(fmt.Sprintf("Reference (%s)", m.state.Angle))
	return helpBoxStyle.Render(joinNonEmpty([]string{header, m.viewport.View()}))
}

func buttonStyle(k keypad.Key) lipgloss.Style {
	switch kindOf(k.Action) {
	case buttonOperator:
		return operatorButtonStyle
	case buttonFunction:
		return functionButtonStyle
	case buttonConstant:
		return constantButtonStyle
	case buttonControl:
		return controlButtonStyle
	case buttonClear:
		return clearButtonStyle
	case buttonEvaluate:
		return evaluateButtonStyle
	default:
		return digitButtonStyle
	}
}

func kindOf(action calc.Action) buttonKind {
	switch action.(type) {
	case calc.AppendOperator:
		return buttonOperator
	case calc.AppendFunction:
		return buttonFunction
	case calc.AppendConstant:
		return buttonConstant
	case calc.Clear, calc.Backspace:
		return buttonClear
	case calc.ToggleAngleMode, calc.ToggleHelp:
		return buttonControl
	case calc.Evaluate:
		return buttonEvaluate
	default:
		return buttonDigit
	}
}

// tail keeps the last width runes of s so the newest input stays visible.
func tail(s string, width int) string {
	runes := []rune(s)
	if width <= 1 || len(runes) <= width {
		return s
	}
	return "…" + string(runes[len(runes)-width+1:])
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	heroAccentColor        = lipgloss.Color("#ff8c00")
	heroEmberColor         = lipgloss.Color("#2b1400")
	heroTextColor          = lipgloss.Color("#fff4d0")
	heroSecondaryTextColor = lipgloss.Color("#ffb347")

	heroTitleStyle      = lipgloss.NewStyle().Bold(true).Foreground(heroAccentColor)
	taglineStyle        = lipgloss.NewStyle().Foreground(heroSecondaryTextColor).Italic(true)
	angleBadgeStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	displayBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(heroAccentColor).Background(heroEmberColor)
	expressionStyle     = lipgloss.NewStyle().Foreground(heroSecondaryTextColor).Background(heroEmberColor).Align(lipgloss.Right)
	displayStyle        = lipgloss.NewStyle().Bold(true).Foreground(heroTextColor).Background(heroEmberColor).Align(lipgloss.Right)
	displayErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).Background(heroEmberColor).Align(lipgloss.Right)
	digitButtonStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4")).Background(lipgloss.Color("#393552"))
	operatorButtonStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffb347"))
	functionButtonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#bde0fe"))
	constantButtonStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#a3be8c"))
	controlButtonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4")).Background(lipgloss.Color("#56526e"))
	clearButtonStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fff4d0")).Background(lipgloss.Color("#c0392b"))
	evaluateButtonStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6"))
	focusedButtonStyle  = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166"))
	keyStyle            = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	legendBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(1, 2)
	helpBoxStyle        = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#7f5af0")).Padding(1, 2)
)
