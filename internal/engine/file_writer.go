package engine

import (
	"encoding/json"
	"os"

	"github.com/remeadows/ProjectPlaguev1-sub001/internal/telemetry"
)

// FileWriter writes tick, attack, and report rows to JSONL files.
type FileWriter struct {
	tickFile   *os.File
	attackFile *os.File
	reportFile *os.File
	tickEnc    *json.Encoder
	attackEnc  *json.Encoder
	reportEnc  *json.Encoder
}

// NewFileWriter creates a FileWriter. attackPath or reportPath may be
// empty to skip those logs.
func NewFileWriter(tickPath, attackPath, reportPath string) (*FileWriter, error) {
	tf, err := os.Create(tickPath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{tickFile: tf, tickEnc: json.NewEncoder(tf)}
	if attackPath != "" {
		af, err := os.Create(attackPath)
		if err != nil {
			tf.Close()
			return nil, err
		}
		fw.attackFile = af
		fw.attackEnc = json.NewEncoder(af)
	}
	if reportPath != "" {
		rf, err := os.Create(reportPath)
		if err != nil {
			if fw.attackFile != nil {
				fw.attackFile.Close()
			}
			tf.Close()
			return nil, err
		}
		fw.reportFile = rf
		fw.reportEnc = json.NewEncoder(rf)
	}
	return fw, nil
}

// WriteTick logs a single tick row.
func (f *FileWriter) WriteTick(row telemetry.TickRow) error {
	return f.tickEnc.Encode(row)
}

// WriteTicks logs multiple tick rows.
func (f *FileWriter) WriteTicks(rows []telemetry.TickRow) error {
	for _, r := range rows {
		if err := f.WriteTick(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteAttack logs a single attack event row, if enabled.
func (f *FileWriter) WriteAttack(row telemetry.AttackRow) error {
	if f.attackEnc == nil {
		return nil
	}
	return f.attackEnc.Encode(row)
}

// WriteAttacks logs multiple attack event rows.
func (f *FileWriter) WriteAttacks(rows []telemetry.AttackRow) error {
	for _, r := range rows {
		if err := f.WriteAttack(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteReport logs a single intel report row, if enabled.
func (f *FileWriter) WriteReport(row telemetry.ReportRow) error {
	if f.reportEnc == nil {
		return nil
	}
	return f.reportEnc.Encode(row)
}

// Close closes any underlying files.
func (f *FileWriter) Close() error {
	var err error
	if f.tickFile != nil {
		if e := f.tickFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.attackFile != nil {
		if e := f.attackFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.reportFile != nil {
		if e := f.reportFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
