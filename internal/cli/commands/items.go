package commands

import (
	"context"
	"fmt"
	"strings"

	"ClipKeeper/internal/cli/bootstrap"
	"ClipKeeper/internal/config"
)

type itemsCmd struct{}

func (itemsCmd) Name() string { return "items" }
func (itemsCmd) Description() string {
	return "Показать историю буфера обмена"
}
func (itemsCmd) Usage() string { return "items" }

func (itemsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	app, done, err := bootstrap.OpenApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	list := app.Items.List()
	if len(list) == 0 {
		fmt.Fprintln(Out, "История пуста")
		return nil
	}
	for _, it := range list {
		pin := ""
		if it.Pinned {
			pin = " [pin]"
		}
		tags := ""
		if len(it.Tags) > 0 {
			tags = "  #" + strings.Join(it.Tags, " #")
		}
		fmt.Fprintf(Out, "- %s  %s  %-5s  %s%s%s\n",
			it.ID, it.Timestamp.Format("2006-01-02 15:04"), it.Kind, it.Preview, tags, pin)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(list))
	return nil
}

func init() { RegisterCmd(itemsCmd{}) }
