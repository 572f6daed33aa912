package commands

import (
	"context"
	"fmt"

	"ClipKeeper/internal/cli/bootstrap"
	"ClipKeeper/internal/config"
)

type boardsCmd struct{}

func (boardsCmd) Name() string        { return "boards" }
func (boardsCmd) Description() string { return "Показать доски закреплённых записей" }
func (boardsCmd) Usage() string       { return "boards" }

func (boardsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	app, done, err := bootstrap.OpenApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	list := app.Pinboards.List()
	if len(list) == 0 {
		fmt.Fprintln(Out, "Досок нет")
		return nil
	}
	for _, b := range list {
		fmt.Fprintf(Out, "%2d. %s  %s  записей=%d  (%s)\n",
			b.SortOrder+1, b.ID, b.Name, len(b.ItemIDs), b.ShareStatus)
	}
	return nil
}

func init() { RegisterCmd(boardsCmd{}) }

type boardAddCmd struct{}

func (boardAddCmd) Name() string        { return "board-add" }
func (boardAddCmd) Description() string { return "Создать доску" }
func (boardAddCmd) Usage() string       { return "board-add <name>" }

func (boardAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	app, done, err := bootstrap.OpenApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	b, err := app.Pinboards.Create(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Создана доска %s (%s)\n", b.Name, b.ID)
	return nil
}

func init() { RegisterCmd(boardAddCmd{}) }

type boardDelCmd struct{}

func (boardDelCmd) Name() string        { return "board-del" }
func (boardDelCmd) Description() string { return "Удалить доску; записи остаются в истории" }
func (boardDelCmd) Usage() string       { return "board-del <board-id>" }

func (boardDelCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	app, done, err := bootstrap.OpenApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	if err := app.Pinboards.Delete(args[0]); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Доска удалена")
	return nil
}

func init() { RegisterCmd(boardDelCmd{}) }

type boardReorderCmd struct{}

func (boardReorderCmd) Name() string        { return "board-reorder" }
func (boardReorderCmd) Description() string { return "Переставить доски в заданном порядке" }
func (boardReorderCmd) Usage() string       { return "board-reorder <board-id> [board-id...]" }

func (boardReorderCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	app, done, err := bootstrap.OpenApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	if err := app.Pinboards.Reorder(args); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Порядок обновлён")
	return nil
}

func init() { RegisterCmd(boardReorderCmd{}) }
