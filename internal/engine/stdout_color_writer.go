// ColorStdoutWriter prints human-friendly, colorized rows to STDOUT.
package engine

import (
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/remeadows/ProjectPlaguev1-sub001/internal/config"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/telemetry"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorGray    = "\x1b[90m"
)

// ColorStdoutWriter prints rows using ANSI colors.
type ColorStdoutWriter struct {
	cfg  *config.SimulationConfig
	out  io.Writer
	once sync.Once
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter(cfg *config.SimulationConfig) *ColorStdoutWriter {
	return &ColorStdoutWriter{cfg: cfg, out: os.Stdout}
}

func (w *ColorStdoutWriter) printOverview() {
	if w.cfg == nil {
		return
	}

	fmt.Fprintln(w.out, "Simulation Configuration:")
	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Campaign Level:\t%s\n", w.cfg.CampaignLevel)
	fmt.Fprintf(tw, "Firewall Health:\t%.0f\n", w.cfg.Firewall.BaseHealth)
	fmt.Fprintf(tw, "Firewall Reduction:\t%.2f\n", w.cfg.Firewall.BaseReduction)
	fmt.Fprintf(tw, "Insane Mode:\t%t\n", w.cfg.InsaneMode)
	fmt.Fprintf(tw, "Automation Threshold:\t%d\n", w.cfg.AutomationThreshold)
	tw.Flush()

	fmt.Fprintln(w.out, "\nGrids:")
	tw = tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name\tSource\tLink\tSink\n")
	for _, g := range w.cfg.Grids {
		fmt.Fprintf(tw, "%s%s%s\t%s (%.1f/t)\t%s (%.1f bw)\t%s (%.1f/t)\n",
			colorBlue, g.Name, colorReset,
			g.Source.Name, g.Source.BaseRate,
			g.Link.Name, g.Link.BaseBandwidth,
			g.Sink.Name, g.Sink.BaseRate)
	}
	tw.Flush()
	fmt.Fprintln(w.out)
}

func threatColor(level int) string {
	switch {
	case level >= 15:
		return colorRed
	case level >= 8:
		return colorYellow
	default:
		return colorGreen
	}
}

// WriteTick outputs a tick row in colorized format.
func (w *ColorStdoutWriter) WriteTick(row telemetry.TickRow) error {
	w.once.Do(w.printOverview)

	healthColor := colorGreen
	if row.FirewallHealth <= 0 {
		healthColor = colorRed
	}

	fmt.Fprintf(w.out, "%s[%s]%s ", colorGray, row.Timestamp.Format(time.RFC3339), colorReset)
	fmt.Fprintf(w.out, "%stick=%d%s ", colorBlue, row.Tick, colorReset)
	fmt.Fprintf(w.out, "%scredits=%.1f%s ", colorGreen, row.Credits, colorReset)
	fmt.Fprintf(w.out, "%sincome=%.1f%s ", colorCyan, row.IncomePerTick, colorReset)
	fmt.Fprintf(w.out, "%sproduced=%.1f%s ", colorYellow, row.Produced, colorReset)
	fmt.Fprintf(w.out, "%sdropped=%.1f%s ", colorMagenta, row.Dropped, colorReset)
	fmt.Fprintf(w.out, "%sbuffer=%.1f%s ", colorGray, row.Buffer, colorReset)
	fmt.Fprintf(w.out, "%sfw=%.1f%s ", healthColor, row.FirewallHealth, colorReset)
	fmt.Fprintf(w.out, "%sthreat=%d/%d%s ", threatColor(row.ThreatLevel), row.ThreatLevel, row.EffectiveRisk, colorReset)
	fmt.Fprintf(w.out, "%sattacks=%d%s ", colorRed, row.ActiveAttacks, colorReset)
	fmt.Fprintf(w.out, "%sreports=%d%s", colorCyan, row.ReportsSent, colorReset)
	if row.Insane {
		fmt.Fprintf(w.out, " %sinsane%s", colorMagenta, colorReset)
	}
	fmt.Fprintln(w.out)
	return nil
}

// WriteTicks outputs multiple tick rows.
func (w *ColorStdoutWriter) WriteTicks(rows []telemetry.TickRow) error {
	for _, r := range rows {
		_ = w.WriteTick(r)
	}
	return nil
}

// WriteAttack prints an attack event to STDOUT.
func (w *ColorStdoutWriter) WriteAttack(row telemetry.AttackRow) error {
	w.once.Do(w.printOverview)
	eventColor := colorRed
	if row.Event == telemetry.AttackSurvived {
		eventColor = colorGreen
	}
	fmt.Fprintf(w.out, "%s[%s]%s %sATTACK %s%s type=%s sev=%.2f raw=%.1f final=%.1f drain=%.1f\n",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		eventColor, row.Event, colorReset,
		row.Type, row.Severity, row.Raw, row.Final, row.CreditDrain)
	return nil
}

// WriteAttacks prints multiple attack events.
func (w *ColorStdoutWriter) WriteAttacks(rows []telemetry.AttackRow) error {
	for _, r := range rows {
		_ = w.WriteAttack(r)
	}
	return nil
}

// WriteReport prints an intel report submission to STDOUT.
func (w *ColorStdoutWriter) WriteReport(row telemetry.ReportRow) error {
	w.once.Do(w.printOverview)
	fmt.Fprintf(w.out, "%s[%s]%s %sREPORT%s n=%d cost=%.1f earned=%.1f",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		colorCyan, colorReset, row.ReportsSent, row.CostPaid, row.CreditsEarned)
	if row.Milestone != "" {
		fmt.Fprintf(w.out, " %smilestone=%q%s", colorMagenta, row.Milestone, colorReset)
	}
	fmt.Fprintln(w.out)
	return nil
}
