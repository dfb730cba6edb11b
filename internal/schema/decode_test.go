package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/promptsmith/internal/core/domain"
)

const fantasyYAML = `
id: fantasy
name: Fantasy Portraits
author: mira
tags: [fantasy, portrait]
promptTemplate: "{gender}, {race}, wearing {torso_armor}"
promptTemplates:
  - name: Close Up
    template: "close-up portrait of a {race}"
slots:
  - id: gender
    label: Gender
    options: [male, female]
    defaultOption: female
  - id: race
    options:
      - {label: Elf, value: elf, rarity: 2}
      - label: Dwarf
        value: dwarf
        exclusions:
          - slotId: weapon
            optionValues: [bow]
  - id: mood
    type: text
    placeholder: e.g. stoic
  - id: quality
    options: [masterpiece]
    defaultOption: masterpiece
    isLocked: true
characterProfileSchema:
  torso:
    armor: [plate armor, leather armor]
    clothing:
      - tunic
  weapon: [bow, axe]
`

func TestParse_YAML(t *testing.T) {
	p, err := Parse([]byte(fantasyYAML))
	require.NoError(t, err)

	assert.Equal(t, "fantasy", p.ID)
	assert.Equal(t, "Fantasy Portraits", p.Name)
	assert.Equal(t, "mira", p.Author)
	assert.Equal(t, []string{"fantasy", "portrait"}, p.Tags)
	assert.Equal(t, "{gender}, {race}, wearing {torso_armor}", p.Template)
	require.Len(t, p.Templates, 1)
	assert.Equal(t, "Close Up", p.Templates[0].Name)

	require.Len(t, p.Slots, 4)
	gender := p.Slots[0]
	assert.Equal(t, domain.SlotTypeSelect, gender.Type)
	assert.Equal(t, "female", gender.DefaultOption)
	assert.Equal(t, domain.Option{Label: "male", Value: "male"}, gender.Options[0])

	race := p.Slots[1]
	assert.Equal(t, "Race", race.Label, "label derived from id")
	require.Len(t, race.Options, 2)
	require.NotNil(t, race.Options[0].Rarity)
	assert.InDelta(t, 2.0, *race.Options[0].Rarity, 1e-9)
	assert.Equal(t, []domain.Exclusion{{SlotID: "weapon", Values: []string{"bow"}}}, race.Options[1].Exclusions)

	assert.Equal(t, domain.SlotTypeText, p.Slots[2].Type)
	assert.Equal(t, "e.g. stoic", p.Slots[2].Placeholder)
	assert.True(t, p.Slots[3].Locked)

	torso, ok := p.Profile["torso"].(domain.NestedSlot)
	require.True(t, ok)
	armor, ok := torso["armor"].(domain.FlatSlot)
	require.True(t, ok)
	assert.Len(t, armor, 2)
	_, ok = p.Profile["weapon"].(domain.FlatSlot)
	assert.True(t, ok)
}

func TestParse_JSONWithTabs(t *testing.T) {
	doc := "{\n\t\"name\": \"Tabs\",\n\t\"slots\": [\n\t\t{\"id\": \"color\", \"options\": [{\"label\": \"Red\", \"value\": \"red\", \"rarity\": 1.5}]}\n\t]\n}"

	p, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "Tabs", p.Name)
	require.Len(t, p.Slots, 1)
	assert.Equal(t, "Red", p.Slots[0].Options[0].Label)
	assert.InDelta(t, 1.5, *p.Slots[0].Options[0].Rarity, 1e-9)
	assert.Equal(t, "{color}", p.Template, "default template built from slots")
}

func TestParse_InvalidSchema(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "empty document", doc: ""},
		{name: "array root", doc: `[1, 2, 3]`},
		{name: "scalar root", doc: `just a string`},
		{name: "malformed yaml", doc: "slots: [\n  - id: a"},
		{name: "slots not a list", doc: `slots: {id: a}`},
		{name: "slot without id", doc: `slots: [{label: A}]`},
		{name: "unknown slot type", doc: `slots: [{id: a, type: multi}]`},
		{name: "duplicate slot", doc: `slots: [{id: a}, {id: a}]`},
		{name: "option without value", doc: `slots: [{id: a, options: [{rarity: 2}]}]`},
		{name: "rarity not a number", doc: `slots: [{id: a, options: [{value: x, rarity: high}]}]`},
		{name: "exclusion without slot", doc: `slots: [{id: a, options: [{value: x, exclusions: [{optionValues: [y]}]}]}]`},
		{name: "locked not a bool", doc: `slots: [{id: a, isLocked: maybe}]`},
		{name: "profile not an object", doc: `characterProfileSchema: [a, b]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidSchema)
		})
	}
}

func TestParse_StoredPackShape(t *testing.T) {
	doc := `{
		"id": "p1",
		"name": "Stored",
		"tags": ["anime"],
		"type": "free",
		"schema": {
			"promptTemplates": [{"name": "Main", "template": "{hair}"}],
			"characterProfileSchema": {"hair": [{"label": "Red", "value": "red"}]}
		}
	}`

	p, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "Stored", p.Name)
	assert.Equal(t, []string{"anime"}, p.Tags)
	require.Len(t, p.Templates, 1)
	assert.Equal(t, "{hair}", p.Templates[0].Template)
	assert.Equal(t, "{hair}", p.Template)

	ds, err := LoadDataset([]byte(doc))
	require.NoError(t, err)
	require.Len(t, ds["hair"], 1)
	assert.Equal(t, "red", ds["hair"][0].Value)
}

func TestParse_StoredPackShapeNotObject(t *testing.T) {
	_, err := Parse([]byte(`{"id": "p1", "schema": ["hair"]}`))
	assert.ErrorIs(t, err, domain.ErrInvalidSchema)
}

func TestParse_CommaTags(t *testing.T) {
	p, err := Parse([]byte(`{"name": "x", "tags": "anime, , chibi "}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"anime", "chibi"}, p.Tags)
}

func TestParse_EmbeddedYAMLFiles(t *testing.T) {
	doc := "prompt_template: \"{outfits}, {poses_standing}\"\n" +
		"outfits: |\n  - kimono\n  - armor\n" +
		"poses: |\n  standing: [heroic, relaxed]\n" +
		"license: MIT\n"

	p, err := Parse([]byte(doc))
	require.NoError(t, err)

	outfits, ok := p.Profile["outfits"].(domain.FlatSlot)
	require.True(t, ok)
	assert.Len(t, outfits, 2)

	poses, ok := p.Profile["poses"].(domain.NestedSlot)
	require.True(t, ok)
	assert.Contains(t, poses, "standing")

	_, ok = p.Profile["license"]
	assert.False(t, ok, "plain scalars are not slots")
}

func TestParse_TemplateShorthand(t *testing.T) {
	p, err := Parse([]byte("promptTemplates:\n  portrait: \"{race}\"\n"))
	require.NoError(t, err)
	assert.Equal(t, []domain.NamedTemplate{{Name: "portrait", Template: "{race}"}}, p.Templates)
}

func TestParse_YAMLAnchors(t *testing.T) {
	doc := "colors: &c [red, blue]\ncharacterProfileSchema:\n  eyes: *c\n  hair: *c\n"

	p, err := Parse([]byte(doc))
	require.NoError(t, err)

	eyes, ok := p.Profile["eyes"].(domain.FlatSlot)
	require.True(t, ok)
	assert.Len(t, eyes, 2)
	// colors is also a top-level option list.
	assert.Contains(t, p.Profile, "colors")
}

func TestLoadDataset(t *testing.T) {
	ds, err := LoadDataset([]byte(fantasyYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"gender", "quality", "race", "torso", "torso_armor", "torso_clothing", "weapon"}, ds.Keys())
	assert.False(t, ds.Has("mood"))

	_, err = LoadDataset([]byte(`["not", "an", "object"]`))
	assert.ErrorIs(t, err, domain.ErrInvalidSchema)
}

func TestMarshal_RoundTrip(t *testing.T) {
	p, err := Parse([]byte(fantasyYAML))
	require.NoError(t, err)

	data, err := Marshal(p)
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)

	if diff := cmp.Diff(p, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Hair Color", Label("hair_color"))
	assert.Equal(t, "Torso Armor", Label("torso-armor"))
	assert.Equal(t, "Race", Label("race"))
}
