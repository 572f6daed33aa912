package commands

import (
	"context"
	"fmt"
	"strings"

	"ClipKeeper/internal/cli/bootstrap"
	"ClipKeeper/internal/config"
)

type tagCmd struct{}

func (tagCmd) Name() string        { return "tag" }
func (tagCmd) Description() string { return "Задать теги записи (пустой список очищает)" }
func (tagCmd) Usage() string       { return "tag <id> [tag...]" }

func (tagCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	app, done, err := bootstrap.OpenApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	tags := args[1:]
	if err := app.Items.SetTags(args[0], tags); err != nil {
		return err
	}
	if len(tags) == 0 {
		fmt.Fprintln(Out, "Теги сняты")
		return nil
	}
	fmt.Fprintf(Out, "Теги: %s\n", strings.Join(tags, ", "))
	return nil
}

func init() { RegisterCmd(tagCmd{}) }
