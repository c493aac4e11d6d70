package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/wbrown/iconwall"
)

// settleDelay lets editors finish writing before the config is reread.
const settleDelay = 200 * time.Millisecond

// runWatch renders once, then regenerates and rewrites the png each time
// the config file changes. It watches the directory so editors that
// replace the file by rename are seen too.
func runWatch(cmd *cobra.Command, args []string) error {
	if configFile == "" {
		return errors.New("watch needs --config")
	}
	gen, _, err := newGenerator()
	if err != nil {
		return err
	}
	if _, err := writePrimary(gen); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(configFile)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", target, err)
	}
	log.Info().Str("config", target).Msg("watching for changes")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				pending = time.After(settleDelay)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watcher error")
		case <-pending:
			pending = nil
			regenerate(gen)
		}
	}
}

// regenerate reloads the config into gen. Failures are logged and the
// previous image is kept.
func regenerate(gen *iconwall.Generator) {
	cfg, err := loadConfig()
	if err != nil {
		log.Error().Err(err).Msg("reloading config")
		return
	}
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("invalid config, keeping previous image")
		return
	}
	if err := gen.Regenerate(*cfg); err != nil {
		log.Error().Err(err).Msg("regenerating")
		return
	}
	if _, err := writePrimary(gen); err != nil {
		log.Error().Err(err).Msg("writing image")
	}
}

// parseSize parses "WxH" into positive dimensions.
func parseSize(spec string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(spec)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q, expected WxH", spec)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width in %q: %w", spec, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height in %q: %w", spec, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q, dimensions must be positive", spec)
	}
	return w, h, nil
}
