package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/remeadows/ProjectPlaguev1-sub001/internal/admin"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/campaign"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/config"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/defense"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/engine"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/logging"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/metrics"
)

var (
	runOutput     string
	runConfigPath string
	runSchemaPath string
	runTick       time.Duration
	runLogFile    string
	runAdminAddr  string
	runLevel      string
	runRestore    string
	runSave       string
	runInsane     bool
	runVerbose    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the real-time grid session",
	Long:  "run starts a grid session emitting tick, attack, and report rows until interrupted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(runConfigPath, runSchemaPath)
		if err != nil {
			return err
		}
		if runLevel != "" {
			cfg.CampaignLevel = runLevel
		}
		if runInsane {
			cfg.InsaneMode = true
		}

		logger := logging.New(runVerbose)
		ctx, cancel := context.WithCancel(logging.NewContext(context.Background(), logger))
		defer cancel()

		camp := campaign.BuiltIn()
		if cfg.CampaignFile != "" {
			camp, err = campaign.Load(cfg.CampaignFile)
			if err != nil {
				return err
			}
		}
		level, ok := camp.Level(cfg.CampaignLevel)
		if !ok {
			return fmt.Errorf("campaign level %q not found", cfg.CampaignLevel)
		}
		session := campaign.NewSession(level)
		if err := session.Start(); err != nil {
			return err
		}

		writer, attackWriter, reportWriter, cleanup, err := newWriters(cfg, runOutput, runLogFile)
		if err != nil {
			return err
		}
		defer cleanup()

		tickInterval := runTick
		if envTick := os.Getenv("TICK_INTERVAL"); envTick != "" {
			d, err := time.ParseDuration(envTick)
			if err != nil {
				return fmt.Errorf("invalid TICK_INTERVAL: %w", err)
			}
			tickInterval = d
		}

		var eng *engine.Engine
		if runRestore != "" {
			snap, err := engine.LoadSnapshot(runRestore)
			if err != nil {
				return err
			}
			eng, err = engine.NewFromSnapshot(snap, cfg, level, writer, attackWriter, reportWriter, tickInterval)
			if err != nil {
				return err
			}
			logger.Info("session restored", "path", runRestore, "tick", snap.Tick)
		} else {
			eng = engine.New(os.Getenv("SESSION_ID"), cfg, level, writer, attackWriter, reportWriter, tickInterval, nil, nil)
		}

		if cfg.CatalogFile != "" {
			catalog, err := defense.LoadCatalog(cfg.CatalogFile)
			if err != nil {
				return err
			}
			eng.SetCatalog(catalog)
		}

		reg := metrics.New()
		eng.AttachMetrics(reg)

		srv := admin.NewServer(eng, reg)
		go func() {
			logger.Info("admin ui listening", "addr", runAdminAddr)
			if err := srv.Start(runAdminAddr); err != nil {
				logger.Error("admin server failed", "error", err)
			}
		}()
		if tuiWriter != nil {
			tuiWriter.SetAdminStatus(true)
		}

		go eng.Run(ctx)

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs

		cancel()
		if runSave != "" {
			if err := engine.SaveSnapshot(runSave, eng.Snapshot()); err != nil {
				return fmt.Errorf("save snapshot: %w", err)
			}
			logger.Info("session saved", "path", runSave, "tick", eng.Tick())
		}
		outcome := campaign.SessionAbandoned
		if eng.Victory() {
			outcome = campaign.SessionVictory
		}
		if err := session.Finish(outcome); err != nil {
			return err
		}
		logger.Info("grid session stopped", "ticks", eng.Tick(), "state", session.State)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runOutput, "output", "auto", "Output mode: auto, json, color, tui, greptime")
	runCmd.Flags().StringVar(&runConfigPath, "config", "config/grid.yaml", "Path to grid configuration YAML")
	runCmd.Flags().StringVar(&runSchemaPath, "schema", "schemas/grid.cue", "Path to CUE schema file")
	runCmd.Flags().DurationVar(&runTick, "tick", time.Second, "Tick interval (e.g. 500ms, 2s)")
	runCmd.Flags().StringVar(&runLogFile, "log-file", "", "Path to export tick/attack/report logs (JSONL)")
	runCmd.Flags().StringVar(&runAdminAddr, "admin", ":8080", "Admin UI listen address")
	runCmd.Flags().StringVar(&runLevel, "level", "", "Campaign level override")
	runCmd.Flags().StringVar(&runRestore, "restore", "", "Path to a session snapshot to resume from")
	runCmd.Flags().StringVar(&runSave, "save", "", "Path to write a session snapshot on shutdown")
	runCmd.Flags().BoolVar(&runInsane, "insane", false, "Start in insane mode")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Enable debug logging")
}
