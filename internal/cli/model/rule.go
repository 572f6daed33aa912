package model

import "time"

// Action — что делать с чувствительным содержимым, совпавшим с правилом.
type Action string

const (
	// ActionIgnore — не сохранять запись в историю.
	ActionIgnore Action = "ignore"
	// ActionClear — не сохранять и дополнительно очистить буфер обмена с задержкой.
	ActionClear Action = "clear"
	// ActionMask — сохранить, но маскировать совпавшие фрагменты при показе.
	ActionMask Action = "mask"
)

// Rule — правило классификации чувствительного содержимого: паттерн + действие.
// Pattern обязан компилироваться как регулярное выражение; некорректный
// паттерн отклоняется на этапе создания/редактирования и в хранилище не попадает.
type Rule struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Pattern    string    `json:"pattern"`
	Action     Action    `json:"action"`
	Enabled    bool      `json:"enabled"`
	BuiltIn    bool      `json:"built_in"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Verdict — результат классификации содержимого (не персистится).
type Verdict struct {
	Matched bool
	Action  Action
}
