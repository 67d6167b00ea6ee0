// Package tui is the interactive playground: type a message, get the
// scored breakdown back, and watch the weighted history evolve across
// messages.
package tui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kavya/lexis/internal/accuracy"
	"github.com/kavya/lexis/internal/engine"
)

const barWidth = 10

// resultMsg delivers one finished analysis back to the model.
type resultMsg struct {
	res *engine.Result
	err error
}

// Model is the playground's Bubble Tea model.
type Model struct {
	svc   *engine.Service
	input textinput.Model

	tier  accuracy.Tier
	level accuracy.Level

	// prior rolls forward across messages so the playground exercises
	// history smoothing the way a real session would.
	prior *accuracy.AccuracySnapshot

	last      *engine.Result
	lastText  string
	err       error
	analyzing bool

	width  int
	height int
}

// NewPlay builds the playground model over an engine service.
func NewPlay(svc *engine.Service, tier accuracy.Tier, level accuracy.Level) Model {
	ti := textinput.New()
	ti.Placeholder = "Type an English message and press Enter"
	ti.CharLimit = 500
	ti.Focus()

	return Model{
		svc:   svc,
		input: ti,
		tier:  tier,
		level: level,
	}
}

func (m Model) Init() tea.Cmd {
	return m.input.Focus()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case resultMsg:
		m.analyzing = false
		m.err = msg.err
		if msg.res != nil {
			m.last = msg.res
			m.prior = msg.res.Pair.Weighted
		}
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.analyzing {
				return m, nil
			}
			m.analyzing = true
			m.lastText = text
			m.input.SetValue("")
			return m, m.analyzeCmd(text)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// analyzeCmd runs the analysis off the update loop.
func (m Model) analyzeCmd(text string) tea.Cmd {
	svc, req := m.svc, accuracy.AnalysisRequest{
		Message: text,
		Tier:    m.tier,
		Level:   m.level,
		Prior:   m.prior,
	}
	return func() tea.Msg {
		res, err := svc.Analyze(context.Background(), req)
		return resultMsg{res: res, err: err}
	}
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

// render produces the full playground frame.
func (m Model) render() string {
	var sections []string

	sections = append(sections,
		titleStyle.Render("Lexis Playground"),
		labelStyle.Render(fmt.Sprintf("tier: %s   level: %s", m.tier, m.level)),
		"",
		m.input.View(),
		"")

	switch {
	case m.analyzing:
		sections = append(sections, hintStyle.Render("scoring..."))
	case m.err != nil:
		sections = append(sections,
			lipgloss.NewStyle().Foreground(Error).Render("error: "+m.err.Error()))
	case m.last != nil:
		sections = append(sections, m.renderResult())
	default:
		sections = append(sections,
			hintStyle.Render("your scored breakdown will appear here"))
	}

	sections = append(sections, "",
		hintStyle.Render("enter: score  esc: quit"))

	content := strings.Join(sections, "\n")
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (m Model) renderResult() string {
	cur := m.last.Pair.Current
	weighted := m.last.Pair.Weighted

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", hintStyle.Render(truncate(m.lastText, 56)))

	fmt.Fprintf(&b, "Overall   %s", scoreLine(cur.Overall))
	if weighted.Overall != cur.Overall {
		fmt.Fprintf(&b, "   %s", labelStyle.Render(
			fmt.Sprintf("(weighted %s)", formatScore(weighted.Overall))))
	}
	b.WriteString("\n\n")

	rows := []struct {
		name  string
		score float64
	}{
		{"Grammar", cur.Grammar},
		{"Spelling", cur.Spelling},
		{"Vocabulary", cur.Vocabulary},
		{"Fluency", cur.Fluency},
		{"Punctuation", cur.Punctuation},
		{"Capitals", cur.Capitalization},
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "%-12s %s\n", row.name, scoreLine(row.score))
	}

	if cur.TotalErrors > 0 {
		fmt.Fprintf(&b, "\n%s\n", labelStyle.Render(
			fmt.Sprintf("%d issue(s), %d critical", cur.TotalErrors, cur.CriticalErrors)))
	}

	for _, f := range m.last.Feedback {
		fmt.Fprintf(&b, "%s\n", hintStyle.Render("• "+f))
	}

	return cardStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// scoreLine renders a colored bar plus the numeric score.
func scoreLine(score float64) string {
	return fmt.Sprintf("%s %s", scoreStyle(score).Render(scoreBar(score)), formatScore(score))
}

// scoreBar maps a 0-100 score onto a fixed-width block bar.
func scoreBar(score float64) string {
	filled := int(score/100*barWidth + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

func formatScore(v float64) string {
	return fmt.Sprintf("%3.0f", v)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

// Run starts the playground program.
func Run(svc *engine.Service, tier accuracy.Tier, level accuracy.Level) error {
	p := tea.NewProgram(NewPlay(svc, tier, level))
	_, err := p.Run()
	return err
}
