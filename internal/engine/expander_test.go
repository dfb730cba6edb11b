package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
	"github.com/custodia-labs/promptsmith/internal/logger"
)

func TestExpand_Alternation(t *testing.T) {
	r := NewRand(3)
	seen := make(map[string]int)
	for i := 0; i < 200; i++ {
		got := Expand(r, "{a|b}", domain.Dataset{}, 0)
		assert.Contains(t, []string{"a", "b"}, got)
		seen[got]++
	}
	assert.Positive(t, seen["a"])
	assert.Positive(t, seen["b"])
}

func TestExpand_AlternationTrimmed(t *testing.T) {
	r := NewRand(5)
	for i := 0; i < 50; i++ {
		got := Expand(r, "a { big | small } cat", nil, 0)
		assert.Contains(t, []string{"a big cat", "a small cat"}, got)
	}
}

func TestExpand_UnresolvedKeyLeftVerbatim(t *testing.T) {
	assert.Equal(t, "{missing}", Expand(NewRand(1), "{missing}", domain.Dataset{}, 0))
	assert.Equal(t, "x {empty} y", Expand(NewRand(1), "x {empty} y", domain.Dataset{"empty": nil}, 0))
}

func TestExpand_SingleOptionIsDeterministic(t *testing.T) {
	ds := domain.Dataset{"color": {{Label: "Red", Value: "red"}}}
	for i := 0; i < 50; i++ {
		assert.Equal(t, "A red door", Expand(nil, "A {color} door", ds, 0))
	}
}

func TestExpand_TrimmedKey(t *testing.T) {
	ds := domain.Dataset{"color": opts("red")}
	assert.Equal(t, "red", Expand(nil, "{ color }", ds, 0))
}

func TestExpand_NestedValues(t *testing.T) {
	ds := domain.Dataset{
		"creature": opts("{color} dragon"),
		"color":    opts("red"),
	}
	assert.Equal(t, "a red dragon", Expand(nil, "a {creature}", ds, 0))
}

func TestExpand_AlternationInsideValue(t *testing.T) {
	ds := domain.Dataset{"weather": opts("{light|heavy} rain")}
	r := NewRand(11)
	for i := 0; i < 50; i++ {
		got := Expand(r, "{weather}", ds, 0)
		assert.Contains(t, []string{"light rain", "heavy rain"}, got)
	}
}

func TestExpand_SelfReferenceTerminates(t *testing.T) {
	quietLogs(t)
	ds := domain.Dataset{"X": opts("{X}")}

	var got string
	assert.NotPanics(t, func() {
		got = Expand(NewRand(1), "{X}", ds, 10)
	})
	assert.Equal(t, "{X}", got)
}

func TestExpand_CycleExhaustsBudget(t *testing.T) {
	quietLogs(t)
	ds := domain.Dataset{
		"A": opts("{B}"),
		"B": opts("{A}"),
	}

	got := Expand(NewRand(1), "{A}", ds, 4)

	assert.Contains(t, []string{"{A}", "{B}"}, got)
	assert.Equal(t, 1, logger.Warnings())
}

func TestExpand_GrowingCycleIsBounded(t *testing.T) {
	quietLogs(t)
	ds := domain.Dataset{"X": opts("{X}{X}")}

	got := Expand(NewRand(1), "{X}", ds, 5)

	assert.Equal(t, strings.Repeat("{X}", 32), got)
	assert.Equal(t, 1, logger.Warnings())
}

func TestExpand_LimitStopsEarly(t *testing.T) {
	quietLogs(t)
	ds := domain.Dataset{
		"creature": opts("{color} dragon"),
		"color":    opts("red"),
	}

	assert.Equal(t, "{color} dragon", Expand(nil, "{creature}", ds, 1))
	assert.Equal(t, 1, logger.Warnings())
}

func TestExpand_NoWarningWhenNothingResolvable(t *testing.T) {
	quietLogs(t)
	ds := domain.Dataset{"color": opts("red")}

	Expand(nil, "{color} {unknown}", ds, 1)

	assert.Equal(t, 0, logger.Warnings())
}

func TestExpander_RarityWeighted(t *testing.T) {
	ds := domain.Dataset{"tier": {
		{Value: "common", Rarity: domain.Rarity(2)},
		{Value: "rare", Rarity: domain.Rarity(1)},
	}}
	e := Expander{Rand: &scriptedRand{floats: []float64{0}}, Alpha: 3}

	assert.Equal(t, "common", e.Expand("{tier}", ds))
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "none", input: "plain text", want: nil},
		{name: "single", input: "a {b} c", want: []string{"b"}},
		{name: "several", input: "{a}{b|c} {d}", want: []string{"a", "b|c", "d"}},
		{name: "empty braces skipped", input: "{} {x}", want: []string{"x"}},
		{name: "innermost only", input: "{a{b}}", want: []string{"b"}},
		{name: "unclosed", input: "{a {b", want: nil},
		{name: "stray close", input: "a} {b}", want: []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, p := range Placeholders(tt.input) {
				assert.Equal(t, "{"+p.Body+"}", tt.input[p.Start:p.End])
				got = append(got, p.Body)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
