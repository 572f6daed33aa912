package commands

import (
	"context"
	"fmt"

	"ClipKeeper/internal/cli/bootstrap"
	"ClipKeeper/internal/config"
)

type itemDelCmd struct{}

func (itemDelCmd) Name() string        { return "item-del" }
func (itemDelCmd) Description() string { return "Удалить записи из истории" }
func (itemDelCmd) Usage() string       { return "item-del <id> [id...]" }

func (itemDelCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	app, done, err := bootstrap.OpenApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	if err := app.Items.DeleteMany(args); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Удалено записей: %d\n", len(args))
	return nil
}

func init() { RegisterCmd(itemDelCmd{}) }
