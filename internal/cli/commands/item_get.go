package commands

import (
	"context"
	"fmt"
	"strings"

	"ClipKeeper/internal/cli/bootstrap"
	"ClipKeeper/internal/config"
)

type itemGetCmd struct{}

func (itemGetCmd) Name() string { return "item-get" }
func (itemGetCmd) Description() string {
	return "Показать запись; чувствительные фрагменты маскируются"
}
func (itemGetCmd) Usage() string { return "item-get <id> [--raw]" }

func (itemGetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	raw := len(args) > 1 && args[1] == "--raw"

	app, done, err := bootstrap.OpenApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	it, ok := app.Items.Get(args[0])
	if !ok {
		return fmt.Errorf("запись %s не найдена", args[0])
	}

	content := it.RawContent()
	if !raw {
		// отображение маскирует, оригинал в хранилище не трогаем
		content = app.Classifier.Mask(content)
	}

	fmt.Fprintf(Out, "ID:        %s\n", it.ID)
	fmt.Fprintf(Out, "Kind:      %s\n", it.Kind)
	fmt.Fprintf(Out, "Captured:  %s\n", it.Timestamp.Format("2006-01-02 15:04:05"))
	if it.SourceApp != "" {
		fmt.Fprintf(Out, "Source:    %s\n", it.SourceApp)
	}
	if len(it.Tags) > 0 {
		fmt.Fprintf(Out, "Tags:      %s\n", strings.Join(it.Tags, ", "))
	}
	if len(it.PinboardIDs) > 0 {
		fmt.Fprintf(Out, "Pinboards: %s\n", strings.Join(it.PinboardIDs, ", "))
	}
	fmt.Fprintln(Out, "Content:")
	fmt.Fprintln(Out, content)
	return nil
}

func init() { RegisterCmd(itemGetCmd{}) }
