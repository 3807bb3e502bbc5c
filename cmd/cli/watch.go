package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cxd309/laptime-engine/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run compare whenever the track or vehicle files change",
	RunE:  runWatch,
}

func init() {
	addInputFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, &cfg)
	extra, _ := cmd.Flags().GetStringSlice("line")

	if cfg.Track == "" {
		return fmt.Errorf("no track file: pass --track or set track in config")
	}
	files := append([]string{cfg.Track}, extra...)
	if cfg.Vehicles != "" {
		files = append(files, cfg.Vehicles)
	}

	w, err := watch.New(files, watch.DefaultDebounce)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	out := cmd.OutOrStdout()
	if err := compareOnce(out, cfg, extra, logger); err != nil {
		logger.Error("comparison failed", "error", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	for {
		select {
		case change, ok := <-w.Changes:
			if !ok {
				return nil
			}
			logger.Info("input changed, re-running", "file", change.File)
			if err := compareOnce(out, cfg, extra, logger); err != nil {
				// Keep watching; the file may be mid-edit.
				logger.Error("comparison failed", "error", err)
			}
		case <-sig:
			return nil
		}
	}
}
