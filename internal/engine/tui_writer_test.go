package engine

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/remeadows/ProjectPlaguev1-sub001/internal/config"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/telemetry"
)

type fakeProgram struct{ msgs []tea.Msg }

func (f *fakeProgram) Send(msg tea.Msg) { f.msgs = append(f.msgs, msg) }

func TestTUIWriterMessages(t *testing.T) {
	p := &fakeProgram{}
	w := &TUIWriter{program: p}

	row := telemetry.TickRow{SessionID: "s1", Tick: 1, Timestamp: time.Unix(0, 0).UTC()}
	if err := w.WriteTick(row); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok := p.msgs[0].(tickMsg); !ok {
		t.Fatalf("expected tickMsg, got %T", p.msgs[0])
	}

	if err := w.WriteAttack(telemetry.AttackRow{AttackID: "a1", Event: telemetry.AttackHit, Timestamp: time.Unix(0, 0)}); err != nil {
		t.Fatalf("attack: %v", err)
	}
	if _, ok := p.msgs[1].(attackMsg); !ok {
		t.Fatalf("expected attackMsg, got %T", p.msgs[1])
	}

	if err := w.WriteReport(telemetry.ReportRow{ReportsSent: 1, Timestamp: time.Unix(0, 0)}); err != nil {
		t.Fatalf("report: %v", err)
	}
	if _, ok := p.msgs[2].(reportMsg); !ok {
		t.Fatalf("expected reportMsg, got %T", p.msgs[2])
	}

	w.SetAdminStatus(true)
	if _, ok := p.msgs[3].(adminMsg); !ok {
		t.Fatalf("expected adminMsg, got %T", p.msgs[3])
	}
}

func TestTUIModelWrapToggle(t *testing.T) {
	cfg := &config.SimulationConfig{CampaignLevel: "first-blood"}
	m := newTUIModel(cfg)
	mi, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 30})
	m = mi.(tuiModel)
	if m.wrap {
		t.Fatalf("wrap should start off")
	}
	mi, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}})
	m = mi.(tuiModel)
	if !m.wrap {
		t.Fatalf("wrap not toggled")
	}
}

func TestTUIModelFollowsNewLines(t *testing.T) {
	m := newTUIModel(nil)
	mi, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = mi.(tuiModel)
	m.vp.Height = 1

	mi, _ = m.Update(tickMsg{telemetry.TickRow{Tick: 1, Timestamp: time.Unix(0, 0)}})
	m = mi.(tuiModel)
	mi, _ = m.Update(tickMsg{telemetry.TickRow{Tick: 2, Timestamp: time.Unix(1, 0)}})
	m = mi.(tuiModel)
	if m.vp.YOffset != 1 {
		t.Fatalf("expected YOffset 1 while following, got %d", m.vp.YOffset)
	}

	mi, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	m = mi.(tuiModel)
	if m.follow {
		t.Fatalf("follow should be off")
	}
	mi, _ = m.Update(tickMsg{telemetry.TickRow{Tick: 3, Timestamp: time.Unix(2, 0)}})
	m = mi.(tuiModel)
	if m.vp.YOffset != 1 {
		t.Fatalf("expected YOffset unchanged, got %d", m.vp.YOffset)
	}
}

func TestTUIModelViewContainsSummary(t *testing.T) {
	m := newTUIModel(&config.SimulationConfig{CampaignLevel: "first-blood"})
	mi, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = mi.(tuiModel)
	mi, _ = m.Update(tickMsg{telemetry.TickRow{Tick: 5, Credits: 99, Timestamp: time.Unix(0, 0)}})
	m = mi.(tuiModel)
	view := m.View()
	if !strings.Contains(view, "plaguesim") {
		t.Fatalf("view missing title: %q", view)
	}
	if !strings.Contains(view, "credits=99.0") {
		t.Fatalf("view missing summary: %q", view)
	}
}
