package commands

import (
	"context"
	"fmt"
	"strconv"

	"ClipKeeper/internal/cli/bootstrap"
	"ClipKeeper/internal/config"
)

type settingsCmd struct{}

func (settingsCmd) Name() string        { return "settings" }
func (settingsCmd) Description() string { return "Показать или изменить настройки" }
func (settingsCmd) Usage() string {
	return "settings [retention-days|clear-delay|sync <value>]"
}

func (settingsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	app, done, err := bootstrap.OpenApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	if len(args) == 0 {
		fmt.Fprintf(Out, "retention-days: %d (0 = хранить вечно)\n", app.Settings.RetentionDays())
		fmt.Fprintf(Out, "clear-delay:    %s\n", app.Settings.ClearDelay())
		fmt.Fprintf(Out, "sync:           %v\n", app.Settings.SyncEnabled())
		if t := app.Settings.LastSyncAt(); !t.IsZero() {
			fmt.Fprintf(Out, "last-sync:      %s\n", t.Format("2006-01-02 15:04:05"))
		}
		return nil
	}
	if len(args) != 2 {
		return ErrUsage
	}

	switch args[0] {
	case "retention-days":
		days, err := strconv.Atoi(args[1])
		if err != nil || days < 0 {
			return ErrUsage
		}
		if err := app.Settings.SetRetentionDays(days); err != nil {
			return err
		}
	case "clear-delay":
		sec, err := strconv.Atoi(args[1])
		if err != nil || sec <= 0 {
			return ErrUsage
		}
		if err := app.Settings.SetClearDelaySec(sec); err != nil {
			return err
		}
	case "sync":
		enabled, err := strconv.ParseBool(args[1])
		if err != nil {
			return ErrUsage
		}
		if err := app.Settings.SetSyncEnabled(enabled); err != nil {
			return err
		}
	default:
		return ErrUsage
	}
	fmt.Fprintln(Out, "Настройка сохранена")
	return nil
}

func init() { RegisterCmd(settingsCmd{}) }
