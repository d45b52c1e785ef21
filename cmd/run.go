package cmd

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/levelcheck/internal/app"
	"github.com/abhisek/levelcheck/internal/config"
	"github.com/abhisek/levelcheck/internal/llm"
	"github.com/abhisek/levelcheck/internal/logging"
	"github.com/abhisek/levelcheck/internal/narrative"
	"github.com/abhisek/levelcheck/internal/screens/deps"
	"github.com/abhisek/levelcheck/internal/session"
	"github.com/abhisek/levelcheck/internal/store"
)

// runtime is everything a quiz front end needs.
type runtime struct {
	cfg      config.Config
	logger   *zap.Logger
	store    *store.Store
	engine   *session.Engine
	recorder *store.Recorder
}

// Close waits for rotation writes, flushes the logger and closes the
// database.
func (rt *runtime) Close() {
	rt.engine.Close()
	_ = rt.logger.Sync()
	rt.store.Close()
}

// newRuntime loads config, opens the store and builds the engine with the
// store's rotation repo behind it.
func newRuntime(cmd *cobra.Command) (*runtime, error) {
	s, cfg, err := openStore(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		s.Close()
		return nil, err
	}
	rt, err := buildRuntime(cfg, s, logger)
	if err != nil {
		s.Close()
		return nil, err
	}
	return rt, nil
}

func buildRuntime(cfg config.Config, s *store.Store, logger *zap.Logger) (*runtime, error) {
	bank, err := cfg.LoadBank()
	if err != nil {
		return nil, fmt.Errorf("load bank: %w", err)
	}

	opts := []session.Option{session.WithLogger(logger)}
	if seed := cfg.Quiz.Seed; seed != 0 {
		opts = append(opts, session.WithRand(rand.New(rand.NewPCG(seed, seed))))
	}
	engine, err := session.NewEngine(bank, s.RotationRepo(), cfg.Engine(), opts...)
	if err != nil {
		return nil, err
	}

	return &runtime{
		cfg:      cfg,
		logger:   logger,
		store:    s,
		engine:   engine,
		recorder: store.NewRecorder(s.EventRepo(), logger),
	}, nil
}

// narrator builds the narrative service from the llm config section, or
// from whichever vendor key is set. It returns nil when no provider is
// available.
func (rt *runtime) narrator(ctx context.Context) (*narrative.Service, error) {
	var lc llm.Config
	if p := rt.cfg.LLM.Provider; p != "" {
		lc = llm.ConfigFor(p, rt.cfg.LLM.Model)
	} else {
		found, ok := llm.Discover()
		if !ok {
			return nil, nil
		}
		lc = found
	}
	if rt.cfg.LLM.Timeout > 0 {
		lc.Timeout = rt.cfg.LLM.Timeout
	}

	provider, err := llm.New(ctx, lc, rt.store.EventRepo(), rt.logger)
	if err != nil {
		return nil, err
	}
	return narrative.NewService(provider, narrative.DefaultConfig(), rt.logger), nil
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	d := &deps.Deps{
		Engine:           rt.engine,
		Recorder:         rt.recorder,
		Events:           rt.store.EventRepo(),
		NarrativeTimeout: rt.cfg.LLM.Timeout,
		DefaultGrade:     rt.cfg.Quiz.Grade,
		Logger:           rt.logger,
	}

	narr, err := rt.narrator(cmd.Context())
	switch {
	case err != nil:
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Parent summaries will be unavailable.")
	case narr != nil:
		d.Narrator = narr
	}

	return app.Run(app.Options{Deps: d})
}
