package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"ClipKeeper/internal/cli/bootstrap"
	"ClipKeeper/internal/cli/items"
	"ClipKeeper/internal/cli/model"
	"ClipKeeper/internal/config"
)

type searchCmd struct{}

func (searchCmd) Name() string { return "search" }
func (searchCmd) Description() string {
	return "Поиск по истории: текст, тип, диапазон дат"
}
func (searchCmd) Usage() string {
	return "search [--kind text,link,image,file] [--from YYYY-MM-DD] [--to YYYY-MM-DD] [query]"
}

func (searchCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	kindsFlag := fs.String("kind", "", "типы записей через запятую")
	fromFlag := fs.String("from", "", "начало диапазона дат")
	toFlag := fs.String("to", "", "конец диапазона дат")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	var f items.Filter
	f.Query = strings.Join(fs.Args(), " ")
	if *kindsFlag != "" {
		for _, k := range strings.Split(*kindsFlag, ",") {
			switch kind := model.Kind(strings.TrimSpace(k)); kind {
			case model.KindText, model.KindLink, model.KindImage, model.KindFile:
				f.Kinds = append(f.Kinds, kind)
			default:
				return ErrUsage
			}
		}
	}
	if *fromFlag != "" {
		t, err := time.Parse("2006-01-02", *fromFlag)
		if err != nil {
			return ErrUsage
		}
		f.From = &t
	}
	if *toFlag != "" {
		t, err := time.Parse("2006-01-02", *toFlag)
		if err != nil {
			return ErrUsage
		}
		// включительно до конца дня
		end := t.Add(24*time.Hour - time.Nanosecond)
		f.To = &end
	}

	app, done, err := bootstrap.OpenApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	results := app.Items.Search(f)
	if len(results) == 0 {
		fmt.Fprintln(Out, "Ничего не найдено")
		return nil
	}
	for _, it := range results {
		fmt.Fprintf(Out, "- %s  %s  %-5s  %s\n",
			it.ID, it.Timestamp.Format("2006-01-02 15:04"), it.Kind, it.Preview)
	}
	fmt.Fprintf(Out, "Найдено: %d\n", len(results))
	return nil
}

func init() { RegisterCmd(searchCmd{}) }
