package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubeengine"
	"github.com/SeamusWaldron/cubeengine/internal/bootstrap"
	"github.com/SeamusWaldron/cubeengine/internal/config"
	"github.com/SeamusWaldron/cubeengine/internal/logging"
	"github.com/SeamusWaldron/cubeengine/internal/metrics"
	"github.com/SeamusWaldron/cubeengine/internal/movetable"
	"github.com/SeamusWaldron/cubeengine/internal/scene"
	"github.com/SeamusWaldron/cubeengine/internal/storage"
)

// runtime is everything a command needs to run an engine.
type runtime struct {
	cfg     config.Config
	log     *logrus.Logger
	metrics *metrics.Collector
	engine  *cubeengine.Engine
	db      *storage.DB
	journal *storage.Journal

	cancel  context.CancelFunc
	closers []func() error
}

type runtimeOptions struct {
	// source names the journal session source.
	source     string
	deviceName string
	// logOut receives logs when no log file is configured.
	logOut io.Writer
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, fmt.Errorf("%w: %v", cubeengine.ErrInvalidConfig, err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if metricsAddr != "" {
		cfg.Metrics.Addr = metricsAddr
	}
	if dbPath != "" {
		cfg.Storage.Path = dbPath
		cfg.Storage.Enabled = true
	}
	return cfg, nil
}

func newRuntime(ctx context.Context, opts runtimeOptions) (*runtime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, closeLog, err := logging.New(cfg.Log, opts.logOut)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	rt := &runtime{cfg: cfg, log: log, cancel: cancel, closers: []func() error{closeLog}}

	easing, err := cfg.Easing()
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("%w: %v", cubeengine.ErrInvalidConfig, err)
	}

	engineOpts := []cubeengine.Option{
		cubeengine.WithDuration(cfg.Move.Duration),
		cubeengine.WithEasing(easing),
		cubeengine.WithLogger(log),
	}
	if len(cfg.Bindings) > 0 {
		engineOpts = append(engineOpts, cubeengine.WithBindings(cfg.Bindings))
	}

	if cfg.Metrics.Addr != "" {
		rt.metrics = metrics.New()
		engineOpts = append(engineOpts, cubeengine.WithMetrics(rt.metrics))
		go func() {
			if err := rt.metrics.Serve(ctx, cfg.Metrics.Addr); err != nil {
				log.WithError(err).Error("metrics server stopped")
			}
		}()
		log.WithField("addr", cfg.Metrics.Addr).Info("serving metrics")
	}

	rt.engine, err = cubeengine.New(sceneSource(ctx, cfg), engineOpts...)
	if err != nil {
		rt.Close()
		return nil, err
	}

	if cfg.Storage.Enabled {
		if err := rt.openJournal(opts); err != nil {
			rt.Close()
			return nil, err
		}
	}

	return rt, nil
}

func sceneSource(ctx context.Context, cfg config.Config) bootstrap.Source {
	if cfg.Scene.Path == "" {
		return scene.NewStaticSource(scene.Rubik())
	}
	return scene.NewFileSource(ctx, cfg.Scene.Path)
}

func openDB(path string) (*storage.DB, error) {
	if path == "" {
		return storage.OpenDefault()
	}
	return storage.Open(path)
}

func (rt *runtime) openJournal(opts runtimeOptions) error {
	db, err := openDB(rt.cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	rt.db = db

	j, err := storage.StartJournal(db, opts.source, opts.deviceName)
	if err != nil {
		return err
	}
	rt.journal = j
	rt.log.WithFields(logrus.Fields{"session": j.SessionID(), "db": db.Path()}).Info("journaling moves")

	rt.engine.OnMoveComplete(func(ev cubeengine.MoveEvent) {
		j.Move(storage.MoveRecord{
			Seq:      ev.Seq,
			Symbol:   string(ev.Symbol),
			Axis:     movetable.FormatAxis(ev.Move.Axis),
			Layer:    ev.Move.Layer,
			Members:  ev.Members,
			Start:    ev.Start,
			Duration: ev.Elapsed,
		})
	})
	rt.engine.OnDrop(func(sym cubeengine.Symbol, reason cubeengine.DropReason) {
		j.Drop(storage.DropRecord{Symbol: string(sym), Reason: string(reason), At: rt.engine.Clock()})
	})
	return nil
}

// Close releases everything in reverse order of acquisition.
func (rt *runtime) Close() error {
	var first error
	if rt.journal != nil {
		if err := rt.journal.Close(); err != nil {
			first = err
		}
	}
	if rt.db != nil {
		if err := rt.db.Close(); err != nil && first == nil {
			first = err
		}
	}
	rt.cancel()
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}
