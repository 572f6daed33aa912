package commands

import (
	"context"
	"fmt"
	"time"

	"ClipKeeper/internal/cli/bootstrap"
	"ClipKeeper/internal/cli/service"
	"ClipKeeper/internal/cli/watcher"
	"ClipKeeper/internal/config"

	"go.uber.org/zap"
)

type watchCmd struct{}

func (watchCmd) Name() string { return "watch" }
func (watchCmd) Description() string {
	return "Наблюдать за буфером обмена и писать историю (до Ctrl+C)"
}
func (watchCmd) Usage() string { return "watch" }

func (watchCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	clip, ok := PlatformClipboard()
	if !ok {
		return fmt.Errorf("буфер обмена недоступен на этой платформе")
	}

	app, done, err := bootstrap.OpenApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	sugar := logger.Sugar()
	defer func() { _ = logger.Sync() }()

	w := watcher.New(clip, app.Classifier, app.Items, sugar, watcher.Config{
		PollInterval: time.Duration(cfg.PollIntervalMS) * time.Millisecond,
		ClearDelay:   app.Settings.ClearDelay,
	})
	w.Start()
	defer w.Stop()

	fmt.Fprintln(Out, "Наблюдение запущено. Ctrl+C для выхода.")

	// фоновое обслуживание: ретенция раз в час, синхронизация — если включена
	maintenance := time.NewTicker(time.Hour)
	defer maintenance.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-maintenance.C:
			if err := app.Items.CleanupIfNeeded(app.Settings); err != nil {
				sugar.Errorw("retention cleanup failed", "error", err)
			}
			if app.Settings.SyncEnabled() {
				res := service.SyncAll(cfg, app.Items, app.Pinboards, app.Settings)
				if res.Status == service.SyncFailed {
					sugar.Warnw("background sync failed", "error", res.Err)
				}
			}
		}
	}
}

func init() { RegisterCmd(watchCmd{}) }
