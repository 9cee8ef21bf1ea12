package cli

import (
	"image/color"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/exp/charmtone"

	"github.com/macropower/namify/pkg/config"
	"github.com/macropower/namify/pkg/ui/theme"
)

// ColorSchemeFunc styles help and errors with the theme named in the
// config file, falling back to the default theme.
func ColorSchemeFunc(c lipgloss.LightDarkFunc) fang.ColorScheme {
	path := os.Getenv(flagToEnvName("config"))
	if path == "" {
		path = config.GetPath()
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the user.
	if err != nil {
		return ThemeColorScheme(theme.Default, c)
	}

	name := config.ThemeName(data)
	if name == "" {
		return ThemeColorScheme(theme.Default, c)
	}

	return ThemeColorScheme(theme.New(name), c)
}

func ThemeColorScheme(t *theme.Theme, c lipgloss.LightDarkFunc) fang.ColorScheme {
	return fang.ColorScheme{
		Base:           t.GenericStyle.GetForeground(),
		Title:          t.LogoStyle.GetBackground(),
		Codeblock:      c(charmtone.Salt, lipgloss.Color("#2F2E36")),
		Program:        t.SelectedStyle.GetForeground(),
		Command:        t.SelectedStyle.GetForeground(),
		DimmedArgument: t.SubtleStyle.GetForeground(),
		Comment:        t.SubtleStyle.GetForeground(),
		Flag:           t.SelectedStyle.GetForeground(),
		Argument:       t.GenericStyle.GetForeground(),
		Description:    t.GenericStyle.GetForeground(),
		FlagDefault:    t.SubtleStyle.GetForeground(),
		QuotedString:   t.TaglineStyle.GetForeground(),
		ErrorHeader: [2]color.Color{
			t.ErrorTitleStyle.GetForeground(),
			t.ErrorTitleStyle.GetBackground(),
		},
	}
}
