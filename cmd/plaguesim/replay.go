package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/remeadows/ProjectPlaguev1-sub001/internal/config"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/engine"
)

var (
	replayInput      string
	replaySpeed      float64
	replayOutput     string
	replayConfigPath string
	replaySchemaPath string
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a tick log file",
	Long:  "replay feeds tick rows from a JSONL log back into GreptimeDB or STDOUT at a configurable speed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}
		var cfg *config.SimulationConfig
		if replayOutput == "color" || replayOutput == "tui" {
			var err error
			cfg, err = config.Load(replayConfigPath, replaySchemaPath)
			if err != nil {
				return err
			}
		}
		writer, cleanup, err := newTickWriter(cfg, replayOutput)
		if err != nil {
			return err
		}
		defer cleanup()
		return engine.ReplayLogFile(replayInput, writer, replaySpeed)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to tick log file")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier")
	replayCmd.Flags().StringVar(&replayOutput, "output", "json", "Output mode: json, color, tui, greptime")
	replayCmd.Flags().StringVar(&replayConfigPath, "config", "config/grid.yaml", "Path to grid configuration YAML")
	replayCmd.Flags().StringVar(&replaySchemaPath, "schema", "schemas/grid.cue", "Path to CUE schema file")
	replayCmd.MarkFlagRequired("input")
}
