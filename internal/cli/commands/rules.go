package commands

import (
	"context"
	"fmt"
	"strconv"

	"ClipKeeper/internal/cli/bootstrap"
	"ClipKeeper/internal/cli/model"
	"ClipKeeper/internal/config"
)

type rulesCmd struct{}

func (rulesCmd) Name() string        { return "rules" }
func (rulesCmd) Description() string { return "Показать правила чувствительности" }
func (rulesCmd) Usage() string       { return "rules" }

func (rulesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	app, done, err := bootstrap.OpenApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	for _, r := range app.Rules.List() {
		state := "on"
		if !r.Enabled {
			state = "off"
		}
		kind := "custom"
		if r.BuiltIn {
			kind = "builtin"
		}
		fmt.Fprintf(Out, "- %s  [%s/%s]  %-6s  %s  /%s/\n", r.ID, kind, state, r.Action, r.Name, r.Pattern)
	}
	return nil
}

func init() { RegisterCmd(rulesCmd{}) }

type ruleAddCmd struct{}

func (ruleAddCmd) Name() string        { return "rule-add" }
func (ruleAddCmd) Description() string { return "Добавить правило чувствительности" }
func (ruleAddCmd) Usage() string       { return "rule-add <name> <pattern> <ignore|clear|mask>" }

func (ruleAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 3 {
		return ErrUsage
	}
	action := model.Action(args[2])
	switch action {
	case model.ActionIgnore, model.ActionClear, model.ActionMask:
	default:
		return ErrUsage
	}
	app, done, err := bootstrap.OpenApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	r, err := app.Rules.Add(args[0], args[1], action)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Правило добавлено: %s\n", r.ID)
	return nil
}

func init() { RegisterCmd(ruleAddCmd{}) }

type ruleDelCmd struct{}

func (ruleDelCmd) Name() string        { return "rule-del" }
func (ruleDelCmd) Description() string { return "Удалить правило" }
func (ruleDelCmd) Usage() string       { return "rule-del <rule-id>" }

func (ruleDelCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	app, done, err := bootstrap.OpenApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	if err := app.Rules.Remove(args[0]); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Правило удалено")
	return nil
}

func init() { RegisterCmd(ruleDelCmd{}) }

type ruleToggleCmd struct{}

func (ruleToggleCmd) Name() string        { return "rule-toggle" }
func (ruleToggleCmd) Description() string { return "Включить или выключить правило" }
func (ruleToggleCmd) Usage() string       { return "rule-toggle <rule-id> <true|false>" }

func (ruleToggleCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	enabled, err := strconv.ParseBool(args[1])
	if err != nil {
		return ErrUsage
	}
	app, done, err := bootstrap.OpenApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	if err := app.Rules.SetEnabled(args[0], enabled); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Правило обновлено")
	return nil
}

func init() { RegisterCmd(ruleToggleCmd{}) }

type rulesResetCmd struct{}

func (rulesResetCmd) Name() string { return "rules-reset" }
func (rulesResetCmd) Description() string {
	return "Восстановить встроенные правила; свои правила сохраняются"
}
func (rulesResetCmd) Usage() string { return "rules-reset" }

func (rulesResetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	app, done, err := bootstrap.OpenApp(cfg)
	if err != nil {
		return err
	}
	defer done()

	if err := app.Rules.ResetBuiltIns(); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Встроенные правила восстановлены")
	return nil
}

func init() { RegisterCmd(rulesResetCmd{}) }
