package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"

	"github.com/macropower/namify/pkg/catalog"
	"github.com/macropower/namify/pkg/config"
	"github.com/macropower/namify/pkg/yaml"
)

// ErrorHandler renders errors returned by the root command.
func ErrorHandler(w io.Writer, styles fang.Styles, err error) {
	mustN(fmt.Fprintln(w, styles.ErrorHeader.String()))
	mustN(fmt.Fprintln(w, lipgloss.NewStyle().MarginLeft(2).Render(err.Error())))
	mustN(fmt.Fprintln(w))

	hint := errorHint(err)
	if hint == nil {
		return
	}

	mustN(fmt.Fprintln(w, lipgloss.JoinHorizontal(
		lipgloss.Left,
		styles.ErrorText.UnsetWidth().Render(hint[0]),
		styles.Program.Flag.Render(hint[1]),
		styles.ErrorText.UnsetWidth().UnsetMargins().UnsetTransform().PaddingLeft(1).Render(hint[2]),
	)))
	mustN(fmt.Fprintln(w))
}

// errorHint returns a "<lead> <flag> <tail>" suggestion for err, or nil.
func errorHint(err error) []string {
	var yamlErr *yaml.Error

	switch {
	case isUsageError(err), errors.Is(err, ErrInvalidFlag):
		return []string{"Try", "--help", "for usage."}
	case errors.As(err, &yamlErr), errors.Is(err, config.ErrInvalidConfig):
		return []string{"Fix the file, or point", "--config", "at another one."}
	case errors.Is(err, catalog.ErrInvalidBaseURL):
		return []string{"Check", "--base-url", "or catalog.baseURL in the config."}
	}

	return nil
}

// XXX: this is a hack to detect usage errors.
// See: https://github.com/spf13/cobra/pull/2266
func isUsageError(err error) bool {
	s := err.Error()
	for _, prefix := range []string{
		"flag needs an argument:",
		"unknown flag:",
		"unknown shorthand flag:",
		"unknown command",
		"invalid argument",
		"accepts ",
	} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}

	return false
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func mustN(_ int, err error) {
	must(err)
}
