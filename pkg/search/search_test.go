package search_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/macropower/namify/pkg/catalog"
	"github.com/macropower/namify/pkg/search"
)

func items(names ...string) []catalog.Item {
	out := make([]catalog.Item, 0, len(names))
	for _, n := range names {
		out = append(out, catalog.Item{Name: n})
	}

	return out
}

func names(items []catalog.Item) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, i.Name)
	}

	return out
}

func TestFilter(t *testing.T) {
	t.Parallel()

	page := items("Luke Skywalker", "C-3PO", "R2-D2", "Darth Vader", "Leia Organa", "Owen Lars")

	tcs := map[string]struct {
		term string
		want []string
	}{
		"empty term": {
			term: "",
			want: []string{"Luke Skywalker", "C-3PO", "R2-D2", "Darth Vader", "Leia Organa", "Owen Lars"},
		},
		"case insensitive": {
			term: "SKY",
			want: []string{"Luke Skywalker"},
		},
		"substring anywhere": {
			term: "ar",
			want: []string{"Darth Vader", "Owen Lars"},
		},
		"punctuation": {
			term: "-",
			want: []string{"C-3PO", "R2-D2"},
		},
		"no match": {
			term: "yoda",
			want: []string{},
		},
		"whitespace is literal": {
			term: " ",
			want: []string{"Luke Skywalker", "Darth Vader", "Leia Organa", "Owen Lars"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, names(search.Filter(page, tc.term)))
		})
	}
}

func TestFilterProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		all := rapid.SliceOf(rapid.StringMatching(`[A-Za-z0-9 -]{0,12}`)).Draw(t, "names")
		term := rapid.StringMatching(`[A-Za-z]{0,3}`).Draw(t, "term")

		got := search.Filter(items(all...), term)

		var want []string
		for _, n := range all {
			if strings.Contains(strings.ToLower(n), strings.ToLower(term)) {
				want = append(want, n)
			}
		}

		assert.Equal(t, len(want), len(got))
		assert.ElementsMatch(t, want, names(got))

		if term == "" {
			assert.Equal(t, len(all), len(got))
		}
	})
}

func TestBlank(t *testing.T) {
	t.Parallel()

	assert.True(t, search.Blank(""))
	assert.True(t, search.Blank(" \t"))
	assert.False(t, search.Blank(" r2 "))
}

func TestDuplicateNames(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		names []string
		want  []string
	}{
		"none":   {names: []string{"a", "b"}},
		"pair":   {names: []string{"a", "b", "a"}, want: []string{"a"}},
		"triple": {names: []string{"b", "a", "b", "a", "b"}, want: []string{"b", "a"}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, search.DuplicateNames(items(tc.names...)))
		})
	}
}
