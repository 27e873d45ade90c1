// Writer implementation printing rows to STDOUT.
package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/remeadows/ProjectPlaguev1-sub001/internal/telemetry"
)

// JSONStdoutWriter prints tick, attack, and report rows as JSON lines.
type JSONStdoutWriter struct {
	out io.Writer
}

// NewJSONStdoutWriter creates a JSONStdoutWriter writing to os.Stdout.
func NewJSONStdoutWriter() *JSONStdoutWriter {
	return &JSONStdoutWriter{out: os.Stdout}
}

// WriteTick outputs a tick row in JSON format.
func (w *JSONStdoutWriter) WriteTick(row telemetry.TickRow) error {
	data, _ := json.Marshal(row)
	fmt.Fprintln(w.out, string(data))
	return nil
}

// WriteTicks outputs multiple tick rows in JSON format.
func (w *JSONStdoutWriter) WriteTicks(rows []telemetry.TickRow) error {
	for _, r := range rows {
		_ = w.WriteTick(r)
	}
	return nil
}

// WriteAttack outputs an attack event in JSON format.
func (w *JSONStdoutWriter) WriteAttack(row telemetry.AttackRow) error {
	data, _ := json.Marshal(row)
	fmt.Fprintln(w.out, string(data))
	return nil
}

// WriteAttacks outputs multiple attack events in JSON format.
func (w *JSONStdoutWriter) WriteAttacks(rows []telemetry.AttackRow) error {
	for _, r := range rows {
		_ = w.WriteAttack(r)
	}
	return nil
}

// WriteReport outputs an intel report row in JSON format.
func (w *JSONStdoutWriter) WriteReport(row telemetry.ReportRow) error {
	data, _ := json.Marshal(row)
	fmt.Fprintln(w.out, string(data))
	return nil
}
