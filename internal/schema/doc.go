// Package schema decodes pack documents into domain packs.
//
// A pack document is JSON or YAML (YAML being a superset, both go through
// the same decoder). Its root is a mapping:
//
//	name: Fantasy Portraits
//	tags: [fantasy, portrait]
//	promptTemplate: "{gender}, {race}, wearing {torso_armor}"
//	promptTemplates:
//	  - name: Close Up
//	    template: "close-up portrait of a {race}"
//	slots:
//	  - id: race
//	    options:
//	      - {label: Elf, value: elf, rarity: 2}
//	      - label: Dwarf
//	        value: dwarf
//	        exclusions: [{slotId: weapon, optionValues: [bow]}]
//	characterProfileSchema:
//	  torso:
//	    armor: [plate armor, leather armor]
//
// Other top-level keys holding option lists, nested mappings of option
// lists, or YAML text of either are merged into the character profile.
//
// A pack directory holds metadata.json (optional), schema.json, schema.yaml
// or pack.yaml, and optional wildcards/<key>.txt files with one option per line.
package schema
