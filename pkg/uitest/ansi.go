package uitest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// SetupColorProfile forces true colour output so styles render the same on
// every machine.
func SetupColorProfile() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

// Segment is a run of printable text rendered with one SGR state.
type Segment struct {
	Text       string
	Foreground string
	Background string
	Bold       bool
	Underline  bool
}

// Segments splits styled output into [Segment]s. Colours are reported as
// "#RRGGBB" for true colour and as the palette index otherwise.
func Segments(output string) []Segment {
	var (
		out   []Segment
		cur   Segment
		text  strings.Builder
		state byte
	)

	flush := func() {
		if text.Len() > 0 {
			cur.Text = text.String()
			out = append(out, cur)
			text.Reset()
		}
	}

	p := ansi.GetParser()
	defer ansi.PutParser(p)

	input := []byte(output)
	for len(input) > 0 {
		seq, width, n, next := ansi.DecodeSequence(input, state, p)

		switch {
		case ansi.HasCsiPrefix(seq) && seq[len(seq)-1] == 'm':
			flush()

			cur = applySGR(p, cur)
		case width > 0:
			text.Write(seq)
		case len(seq) == 1 && seq[0] == '\n':
			flush()
		}

		input = input[n:]
		state = next
	}

	flush()

	return out
}

// BackgroundOf returns the background of the first segment containing
// text, or "" when no segment does.
func BackgroundOf(output, text string) string {
	for _, seg := range Segments(output) {
		if strings.Contains(seg.Text, text) {
			return seg.Background
		}
	}

	return ""
}

// ForegroundOf returns the foreground of the first segment containing
// text, or "" when no segment does.
func ForegroundOf(output, text string) string {
	for _, seg := range Segments(output) {
		if strings.Contains(seg.Text, text) {
			return seg.Foreground
		}
	}

	return ""
}

func applySGR(p *ansi.Parser, s Segment) Segment {
	params := p.Params()
	if len(params) == 0 {
		return Segment{}
	}

	for i := 0; i < len(params); i++ {
		switch param := params[i].Param(0); {
		case param == 0:
			s = Segment{}
		case param == 1:
			s.Bold = true
		case param == 4:
			s.Underline = true
		case param == 22:
			s.Bold = false
		case param == 24:
			s.Underline = false
		case param == 38 || param == 48:
			c, used := extendedColor(params[i+1:])
			i += used
			if param == 38 {
				s.Foreground = c
			} else {
				s.Background = c
			}
		case param == 39:
			s.Foreground = ""
		case param == 49:
			s.Background = ""
		case param >= 30 && param <= 37:
			s.Foreground = strconv.Itoa(param - 30)
		case param >= 40 && param <= 47:
			s.Background = strconv.Itoa(param - 40)
		case param >= 90 && param <= 97:
			s.Foreground = strconv.Itoa(param - 90 + 8)
		case param >= 100 && param <= 107:
			s.Background = strconv.Itoa(param - 100 + 8)
		}
	}

	return s
}

// extendedColor decodes the parameters following a 38 or 48 and reports
// how many it consumed.
func extendedColor(params ansi.Params) (string, int) {
	if len(params) == 0 {
		return "", 0
	}

	switch params[0].Param(0) {
	case 5:
		if len(params) > 1 {
			return strconv.Itoa(params[1].Param(0)), 2
		}
	case 2:
		if len(params) > 3 {
			return fmt.Sprintf("#%02X%02X%02X",
				params[1].Param(0), params[2].Param(0), params[3].Param(0)), 4
		}
	}

	return "", 1
}
