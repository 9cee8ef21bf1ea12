package ui

import (
	"errors"
	"fmt"
	"slices"

	"github.com/macropower/namify/pkg/keys"
	"github.com/macropower/namify/pkg/ui/common"
	"github.com/macropower/namify/pkg/ui/searchbar"
)

// DefaultCellWidth is the number of logical pixels per terminal column.
const DefaultCellWidth = 8

var ErrInvalidConfig = errors.New("invalid ui config")

// ViewMode selects how results are laid out.
type ViewMode string

const (
	ViewCards ViewMode = "cards"
	ViewTable ViewMode = "table"
)

var ViewModes = []ViewMode{ViewCards, ViewTable}

type Config struct {
	KeyBinds *KeyBinds `json:"keybinds,omitempty" jsonschema:"title=Key Bindings"`
	// CellWidth converts terminal columns into the logical pixel widths used
	// for layout breakpoints.
	CellWidth *int `json:"cellWidth,omitempty" jsonschema:"title=Cell Width,minimum=1,maximum=64"`
	// Theme is the name of a chroma style, or "auto".
	Theme string `json:"theme,omitempty" jsonschema:"title=Theme"`
	// View is the initial results layout.
	View ViewMode `json:"view,omitempty" jsonschema:"title=View,enum=cards,enum=table"`
}

func DefaultConfig() *Config {
	c := &Config{}
	c.EnsureDefaults()

	return c
}

func (c *Config) EnsureDefaults() {
	if c.Theme == "" {
		c.Theme = "auto"
	}
	if c.View == "" {
		c.View = ViewCards
	}
	if c.CellWidth == nil {
		cw := DefaultCellWidth
		c.CellWidth = &cw
	}
	if c.KeyBinds == nil {
		c.KeyBinds = &KeyBinds{}
	}

	c.KeyBinds.EnsureDefaults()
}

// Validate checks constraints the schema cannot express.
func (c *Config) Validate() error {
	if !slices.Contains(ViewModes, c.View) {
		return fmt.Errorf("%w: unknown view %q", ErrInvalidConfig, c.View)
	}
	if c.CellWidth != nil && *c.CellWidth < 1 {
		return fmt.Errorf("%w: cellWidth must be positive", ErrInvalidConfig)
	}
	if c.KeyBinds != nil {
		if err := c.KeyBinds.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	return nil
}

type KeyBinds struct {
	Common *common.KeyBinds    `json:"common,omitempty"`
	Browse *BrowseKeyBinds     `json:"browse,omitempty"`
	Search *searchbar.KeyBinds `json:"search,omitempty"`
}

func (kb *KeyBinds) EnsureDefaults() {
	if kb.Common == nil {
		kb.Common = &common.KeyBinds{}
	}
	if kb.Browse == nil {
		kb.Browse = &BrowseKeyBinds{}
	}
	if kb.Search == nil {
		kb.Search = &searchbar.KeyBinds{}
	}

	kb.Common.EnsureDefaults()
	kb.Browse.EnsureDefaults()
	kb.Search.EnsureDefaults()
}

// Validate reports keys bound to more than one action outside the search
// input. Search bindings are only active while typing, so they may reuse
// browsing keys.
func (kb *KeyBinds) Validate() error {
	kb.EnsureDefaults()

	err := keys.ValidateBinds(kb.Common.GetKeyBinds(), kb.Browse.GetKeyBinds())
	if err != nil {
		return fmt.Errorf("keybinds: %w", err)
	}

	return nil
}

type BrowseKeyBinds struct {
	Up         *keys.KeyBind `json:"up,omitempty"`
	Down       *keys.KeyBind `json:"down,omitempty"`
	Prev       *keys.KeyBind `json:"prev,omitempty"`
	Next       *keys.KeyBind `json:"next,omitempty"`
	First      *keys.KeyBind `json:"first,omitempty"`
	Last       *keys.KeyBind `json:"last,omitempty"`
	GoTo       *keys.KeyBind `json:"goTo,omitempty"`
	Search     *keys.KeyBind `json:"search,omitempty"`
	ToggleView *keys.KeyBind `json:"toggleView,omitempty"`
	Copy       *keys.KeyBind `json:"copy,omitempty"`
}

func (kb *BrowseKeyBinds) EnsureDefaults() {
	keys.SetDefaultBind(&kb.Up,
		keys.NewBind("move up",
			keys.New("up", keys.WithAlias("↑")),
			keys.New("k"),
		))
	keys.SetDefaultBind(&kb.Down,
		keys.NewBind("move down",
			keys.New("down", keys.WithAlias("↓")),
			keys.New("j"),
		))
	keys.SetDefaultBind(&kb.Prev,
		keys.NewBind("previous page",
			keys.New("left", keys.WithAlias("←")),
			keys.New("h"),
		))
	keys.SetDefaultBind(&kb.Next,
		keys.NewBind("next page",
			keys.New("right", keys.WithAlias("→")),
			keys.New("l"),
		))
	keys.SetDefaultBind(&kb.First,
		keys.NewBind("first page",
			keys.New("home"),
			keys.New("g"),
		))
	keys.SetDefaultBind(&kb.Last,
		keys.NewBind("last page",
			keys.New("end"),
			keys.New("G"),
		))
	keys.SetDefaultBind(&kb.GoTo,
		keys.NewBind("go to page",
			keys.New(":"),
		))
	keys.SetDefaultBind(&kb.Search,
		keys.NewBind("search",
			keys.New("/"),
		))
	keys.SetDefaultBind(&kb.ToggleView,
		keys.NewBind("cards / table",
			keys.New("v"),
		))
	keys.SetDefaultBind(&kb.Copy,
		keys.NewBind("copy name",
			keys.New("y"),
		))
}

func (kb *BrowseKeyBinds) GetKeyBinds() []keys.KeyBind {
	return []keys.KeyBind{
		*kb.Up,
		*kb.Down,
		*kb.Prev,
		*kb.Next,
		*kb.First,
		*kb.Last,
		*kb.GoTo,
		*kb.Search,
		*kb.ToggleView,
		*kb.Copy,
	}
}
