package commands

import (
	"context"
	"fmt"

	"ClipKeeper/internal/cli/bootstrap"
	"ClipKeeper/internal/config"
)

type pinCmd struct{}

func (pinCmd) Name() string        { return "pin" }
func (pinCmd) Description() string { return "Закрепить запись на доске" }
func (pinCmd) Usage() string       { return "pin <item-id> <board-id>" }

func (pinCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	app, done, err := bootstrap.OpenApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	if err := app.Pinboards.AddItem(args[1], args[0]); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Закреплено")
	return nil
}

func init() { RegisterCmd(pinCmd{}) }

type unpinCmd struct{}

func (unpinCmd) Name() string        { return "unpin" }
func (unpinCmd) Description() string { return "Открепить запись от доски" }
func (unpinCmd) Usage() string       { return "unpin <item-id> <board-id>" }

func (unpinCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	app, done, err := bootstrap.OpenApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	if err := app.Pinboards.RemoveItem(args[1], args[0]); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Откреплено")
	return nil
}

func init() { RegisterCmd(unpinCmd{}) }
