package table_test

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/macropower/namify/pkg/catalog"
	"github.com/macropower/namify/pkg/ui/cards"
	"github.com/macropower/namify/pkg/ui/table"
	"github.com/macropower/namify/pkg/ui/theme"
)

func TestView(t *testing.T) {
	t.Parallel()

	m := table.New(theme.New("github"))
	m.SetSize(120, 10)
	m.SetItems([]catalog.Item{
		{Name: "Luke Skywalker", HairColor: "blond", Gender: "male", BirthYear: "19BBY", Vehicles: catalog.Refs{[]byte(`"a"`), []byte(`"b"`)}},
		{Name: "Leia Organa", HairColor: "brown", Gender: "female", BirthYear: "19BBY"},
		{Name: "Leia Organa", HairColor: "brown", Gender: "female", BirthYear: "19BBY"},
	}, []string{"Leia Organa"})

	out := ansi.Strip(m.View(1))

	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Hair Color")
	assert.Contains(t, out, "Birth Year")
	assert.Contains(t, out, "Luke Skywalker")
	assert.Contains(t, out, "19BBY")
	assert.Contains(t, out, "Leia Organa"+cards.DuplicateMarker)
}

func TestViewEmpty(t *testing.T) {
	t.Parallel()

	m := table.New(theme.New("github"))
	m.SetSize(80, 10)
	m.SetItems(nil, nil)

	out := ansi.Strip(m.View(0))
	assert.Contains(t, out, "Name")
	assert.NotContains(t, out, "Luke")
}
