// Package keys defines configurable key bindings and renders them as help.
package keys

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/macropower/namify/pkg/ui/theme"
)

var ErrDuplicateKey = errors.New("duplicate key binding")

// Key is a single key that can trigger a binding.
type Key struct {
	// Code is the key as reported by Bubble Tea, e.g. "ctrl+c".
	Code string `json:"code" jsonschema:"title=Code"`
	// Alias replaces Code in help output.
	Alias string `json:"alias,omitempty" jsonschema:"title=Alias"`
	// Hidden keys still work but are not shown in help output.
	Hidden bool `json:"hidden,omitempty" jsonschema:"title=Hidden"`
}

type KeyOpt func(k *Key)

func New(code string, opts ...KeyOpt) Key {
	k := Key{Code: code}
	for _, opt := range opts {
		opt(&k)
	}

	return k
}

func WithAlias(alias string) KeyOpt {
	return func(k *Key) {
		k.Alias = alias
	}
}

func Hidden() KeyOpt {
	return func(k *Key) {
		k.Hidden = true
	}
}

func (k Key) String() string {
	if k.Alias != "" {
		return k.Alias
	}

	return k.Code
}

// KeyBind is an action with the keys that trigger it.
type KeyBind struct {
	// Description is shown in help output.
	Description string `json:"description" jsonschema:"title=Description"`
	// Keys trigger the action.
	Keys []Key `json:"keys" jsonschema:"title=Keys"`
}

func NewBind(description string, keys ...Key) KeyBind {
	return KeyBind{Description: description, Keys: keys}
}

// String joins the visible keys with "/".
func (kb *KeyBind) String() string {
	visible := make([]string, 0, len(kb.Keys))
	for _, k := range kb.Keys {
		if !k.Hidden {
			visible = append(visible, k.String())
		}
	}

	return strings.Join(visible, "/")
}

// Match reports whether key triggers the binding.
func (kb *KeyBind) Match(key string) bool {
	if kb == nil {
		return false
	}

	return slices.ContainsFunc(kb.Keys, func(k Key) bool {
		return k.Code == key
	})
}

// AddKey adds key unless a key with the same code is already bound.
func (kb *KeyBind) AddKey(key Key) {
	if kb == nil || kb.Match(key.Code) {
		return
	}

	kb.Keys = append(kb.Keys, key)
}

// IsTextInputAction reports whether key should be delivered to a focused
// text input instead of triggering a binding.
func IsTextInputAction(key string) bool {
	switch key {
	case "esc", "enter", "tab", "shift+tab", "up", "down", "ctrl+c", "ctrl+z":
		return false
	}

	return true
}

// SetDefaultBind fills kb from def when it is unset or partially set.
func SetDefaultBind(kb **KeyBind, def KeyBind) {
	if *kb == nil {
		*kb = &def

		return
	}

	if len((*kb).Keys) == 0 {
		(*kb).Keys = def.Keys
	}

	if (*kb).Description == "" {
		(*kb).Description = def.Description
	}
}

// ValidateBinds returns an error for every key code bound more than once
// across the given groups.
func ValidateBinds(groups ...[]KeyBind) error {
	var errs []error

	owner := map[string]string{}

	for _, group := range groups {
		for _, kb := range group {
			for _, k := range kb.Keys {
				if prev, ok := owner[k.Code]; ok {
					errs = append(errs, fmt.Errorf("%w: %q used by %q and %q",
						ErrDuplicateKey, k.Code, prev, kb.Description))

					continue
				}

				owner[k.Code] = kb.Description
			}
		}
	}

	return errors.Join(errs...)
}

// Renderer lays key bindings out in columns for the help view.
type Renderer struct {
	columns [][]KeyBind
}

// AddColumn appends a column. Empty columns are ignored.
func (r *Renderer) AddColumn(kbs ...KeyBind) {
	if len(kbs) > 0 {
		r.columns = append(r.columns, kbs)
	}
}

// Render lays the columns out side by side within width cells.
func (r *Renderer) Render(width int) string {
	if len(r.columns) == 0 {
		return ""
	}

	colWidth := max(6, width/len(r.columns)-2)

	cols := make([][]string, len(r.columns))
	rows := 0

	for i, col := range r.columns {
		cols[i] = renderColumn(colWidth, col)
		rows = max(rows, len(cols[i]))
	}

	lines := make([]string, 0, rows)
	blank := strings.Repeat(" ", colWidth)

	for row := range rows {
		var b strings.Builder

		for _, col := range cols {
			cell := blank
			if row < len(col) {
				cell = col[row]
			}

			b.WriteString(" " + cell + " ")
		}

		lines = append(lines, strings.TrimRight(b.String(), " "))
	}

	return strings.Join(lines, "\n")
}

func renderColumn(width int, kbs []KeyBind) []string {
	keyWidth := 0
	for _, kb := range kbs {
		keyWidth = max(keyWidth, ansi.StringWidth(kb.String()))
	}

	descWidth := max(0, width-keyWidth-2)

	var rows []string

	for _, kb := range kbs {
		keys := kb.String()
		if keys == "" {
			continue
		}

		desc := ansi.Truncate(kb.Description, descWidth, theme.Ellipsis)
		row := keys + strings.Repeat(" ", keyWidth-ansi.StringWidth(keys)) + "  " + desc
		rows = append(rows, row+strings.Repeat(" ", max(0, width-ansi.StringWidth(row))))
	}

	return rows
}
