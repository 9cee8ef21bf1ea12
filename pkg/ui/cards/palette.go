package cards

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/charmtone"
)

// Class groups hair colours by the text contrast their card needs.
type Class string

const (
	// ClassDark is used for brown and black hair; cards get light text.
	ClassDark Class = "black-hair"
	// ClassOther is used for every other hair colour.
	ClassOther Class = "other-hair"
)

var hairColors = map[string]lipgloss.Color{
	"black":  lipgloss.Color(charmtone.Pepper.Hex()),
	"brown":  lipgloss.Color("#6F4E37"),
	"auburn": lipgloss.Color("#A52A2A"),
	"blond":  lipgloss.Color(charmtone.Mustard.Hex()),
	"blonde": lipgloss.Color(charmtone.Mustard.Hex()),
	"white":  lipgloss.Color(charmtone.Salt.Hex()),
	"grey":   lipgloss.Color(charmtone.Smoke.Hex()),
	"gray":   lipgloss.Color(charmtone.Smoke.Hex()),
	"red":    lipgloss.Color(charmtone.Sriracha.Hex()),
}

var fallbackColor = lipgloss.Color(charmtone.Squid.Hex())

// HairClass returns the contrast class for a hair colour as reported by the
// catalog.
func HairClass(hair string) Class {
	switch primaryHair(hair) {
	case "brown", "black":
		return ClassDark
	}

	return ClassOther
}

// HairColor returns the card background for a hair colour. Multi-colour
// values such as "brown, grey" use the first colour; unknown values and
// "n/a" or "none" use a neutral grey.
func HairColor(hair string) lipgloss.Color {
	if c, ok := hairColors[primaryHair(hair)]; ok {
		return c
	}

	return fallbackColor
}

// TextColor returns the foreground that stays readable on [HairColor].
func TextColor(hair string) lipgloss.Color {
	switch primaryHair(hair) {
	case "brown", "black", "auburn", "red", "grey", "gray":
		return lipgloss.Color(charmtone.Salt.Hex())
	}

	return lipgloss.Color(charmtone.Pepper.Hex())
}

func primaryHair(hair string) string {
	first, _, _ := strings.Cut(hair, ",")

	return strings.ToLower(strings.TrimSpace(first))
}
