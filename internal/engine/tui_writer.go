package engine

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/remeadows/ProjectPlaguev1-sub001/internal/config"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/telemetry"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// tickMsg carries a tick row for the status table and log viewport.
type tickMsg struct{ telemetry.TickRow }

// attackMsg carries an attack event log line.
type attackMsg struct{ line string }

// reportMsg carries an intel report log line.
type reportMsg struct{ line string }

// adminMsg reports admin UI status.
type adminMsg struct{ active bool }

// TUIWriter renders the simulation using a bubbletea TUI.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter(cfg *config.SimulationConfig) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	m := newTUIModel(cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// WriteTick implements TickWriter.
func (w *TUIWriter) WriteTick(row telemetry.TickRow) error {
	w.program.Send(tickMsg{row})
	return nil
}

// WriteTicks implements batch tick writing.
func (w *TUIWriter) WriteTicks(rows []telemetry.TickRow) error {
	for _, r := range rows {
		_ = w.WriteTick(r)
	}
	return nil
}

// WriteAttack implements AttackWriter.
func (w *TUIWriter) WriteAttack(row telemetry.AttackRow) error {
	eventColor := colorRed
	if row.Event == telemetry.AttackSurvived {
		eventColor = colorGreen
	}
	line := fmt.Sprintf("%s[%s]%s %s%s%s type=%s sev=%.2f raw=%.1f final=%.1f drain=%.1f",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		eventColor, strings.ToUpper(row.Event), colorReset,
		row.Type, row.Severity, row.Raw, row.Final, row.CreditDrain)
	w.program.Send(attackMsg{line: line})
	return nil
}

// WriteAttacks implements batch attack writing.
func (w *TUIWriter) WriteAttacks(rows []telemetry.AttackRow) error {
	for _, r := range rows {
		_ = w.WriteAttack(r)
	}
	return nil
}

// WriteReport implements ReportWriter.
func (w *TUIWriter) WriteReport(row telemetry.ReportRow) error {
	line := fmt.Sprintf("%s[%s]%s %sREPORT%s n=%d cost=%.1f earned=%.1f",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		colorCyan, colorReset, row.ReportsSent, row.CostPaid, row.CreditsEarned)
	if row.Milestone != "" {
		line += fmt.Sprintf(" %smilestone=%q%s", colorMagenta, row.Milestone, colorReset)
	}
	w.program.Send(reportMsg{line: line})
	return nil
}

// SetAdminStatus flags whether the admin server is reachable.
func (w *TUIWriter) SetAdminStatus(active bool) {
	w.program.Send(adminMsg{active: active})
}

// Close stops the TUI program and waits for it to exit.
func (w *TUIWriter) Close() error {
	w.sendSignal.Store(false)
	if w.program != nil {
		w.program.Send(tea.Quit())
	}
	<-w.done
	return nil
}

const tuiLogLimit = 500

type tuiModel struct {
	cfg         *config.SimulationConfig
	table       table.Model
	vp          viewport.Model
	attackVP    viewport.Model
	lines       []string
	attackLines []string
	last        telemetry.TickRow
	width       int
	height      int
	wrap        bool
	follow      bool
	adminActive bool
	ready       bool
}

func newTUIModel(cfg *config.SimulationConfig) tuiModel {
	cols := []table.Column{
		{Title: "Grid", Width: 16},
		{Title: "Source", Width: 18},
		{Title: "Link", Width: 18},
		{Title: "Sink", Width: 18},
	}
	var rows []table.Row
	if cfg != nil {
		for _, g := range cfg.Grids {
			rows = append(rows, table.Row{g.Name, g.Source.Name, g.Link.Name, g.Sink.Name})
		}
	}
	t := table.New(table.WithColumns(cols), table.WithRows(rows), table.WithHeight(len(rows)+1))
	return tuiModel{
		cfg:      cfg,
		table:    t,
		vp:       viewport.New(0, 0),
		attackVP: viewport.New(0, 0),
		follow:   true,
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width)
		m.layout()
		m.ready = true

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "w":
			m.wrap = !m.wrap
			m.refreshViewports()
		case "f":
			m.follow = !m.follow
		case "up", "k":
			m.vp.LineUp(1)
		case "down", "j":
			m.vp.LineDown(1)
		case "pgup":
			m.vp.LineUp(m.vp.Height)
		case "pgdown":
			m.vp.LineDown(m.vp.Height)
		}

	case tickMsg:
		m.last = msg.TickRow
		m.lines = appendCapped(m.lines, renderTickLine(msg.TickRow), tuiLogLimit)
		m.refreshViewports()

	case attackMsg:
		m.attackLines = appendCapped(m.attackLines, msg.line, tuiLogLimit)
		m.refreshViewports()

	case reportMsg:
		m.lines = appendCapped(m.lines, msg.line, tuiLogLimit)
		m.refreshViewports()

	case adminMsg:
		m.adminActive = msg.active
	}
	return m, nil
}

func appendCapped(lines []string, line string, limit int) []string {
	lines = append(lines, line)
	if len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	return lines
}

func renderTickLine(row telemetry.TickRow) string {
	return fmt.Sprintf("%s[%s]%s tick=%d credits=%.1f income=%.1f fw=%.1f threat=%d/%d attacks=%d reports=%d",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		row.Tick, row.Credits, row.IncomePerTick, row.FirewallHealth,
		row.ThreatLevel, row.EffectiveRisk, row.ActiveAttacks, row.ReportsSent)
}

func (m *tuiModel) layout() {
	headerHeight := lipgloss.Height(m.renderHeader())
	bottomHeight := lipgloss.Height(m.renderBottom())
	attackHeight := m.height / 5
	if attackHeight < 3 {
		attackHeight = 3
	}
	logHeight := m.height - headerHeight - bottomHeight - attackHeight
	if logHeight < 3 {
		logHeight = 3
	}
	m.vp.Width = m.width
	m.vp.Height = logHeight
	m.attackVP.Width = m.width
	m.attackVP.Height = attackHeight
	m.refreshViewports()
}

func (m *tuiModel) refreshViewports() {
	m.vp.SetContent(m.renderLines(m.lines))
	m.attackVP.SetContent(m.renderLines(m.attackLines))
	if m.follow {
		m.vp.GotoBottom()
		m.attackVP.GotoBottom()
	}
}

func (m *tuiModel) renderLines(lines []string) string {
	content := strings.Join(lines, "\n")
	if m.wrap && m.width > 0 {
		content = wordwrap.String(content, m.width)
	}
	return content
}

var (
	tuiTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	tuiLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	tuiInsaneStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
)

func (m tuiModel) renderHeader() string {
	title := tuiTitleStyle.Render("plaguesim")
	if m.cfg != nil {
		title += tuiLabelStyle.Render(" campaign=" + m.cfg.CampaignLevel)
	}
	summary := fmt.Sprintf("credits=%.1f income=%.1f/t footprint=%.1f threat=%d fw=%.1f",
		m.last.Credits, m.last.IncomePerTick, m.last.Footprint,
		m.last.ThreatLevel, m.last.FirewallHealth)
	if m.last.Insane {
		summary += " " + tuiInsaneStyle.Render("INSANE")
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, m.table.View(), summary)
}

func (m tuiModel) renderBottom() string {
	adminColor := lipgloss.Color("9")
	if m.adminActive {
		adminColor = lipgloss.Color("10")
	}
	wrapColor := lipgloss.Color("9")
	if m.wrap {
		wrapColor = lipgloss.Color("10")
	}
	followColor := lipgloss.Color("9")
	if m.follow {
		followColor = lipgloss.Color("10")
	}
	adminIndicator := lipgloss.NewStyle().Foreground(adminColor).Render("●")
	wrapIndicator := lipgloss.NewStyle().Foreground(wrapColor).Render("●")
	followIndicator := lipgloss.NewStyle().Foreground(followColor).Render("●")
	return fmt.Sprintf("%s admin  %s wrap [w]  %s follow [f]  quit [q]",
		adminIndicator, wrapIndicator, followIndicator)
}

func (m tuiModel) View() string {
	if !m.ready {
		return "starting..."
	}
	sep := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).
		Render(strings.Repeat("─", max(m.width, 1)))
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		sep,
		m.vp.View(),
		sep,
		m.attackVP.View(),
		m.renderBottom(),
	)
}
