package domain

import "strings"

// SlotCategory groups slots for display.
type SlotCategory string

// Available slot categories.
const (
	CategoryAppearance SlotCategory = "appearance"
	CategoryEquipment  SlotCategory = "equipment"
	CategoryStyle      SlotCategory = "style"
	CategorySetting    SlotCategory = "setting"
	CategoryClass      SlotCategory = "class"
	CategoryMisc       SlotCategory = "misc"
)

// AllCategories returns the categories in display order.
func AllCategories() []SlotCategory {
	return []SlotCategory{
		CategoryAppearance,
		CategoryEquipment,
		CategoryClass,
		CategoryStyle,
		CategorySetting,
		CategoryMisc,
	}
}

var slotCategories = map[string]SlotCategory{
	"gender":        CategoryAppearance,
	"race":          CategoryAppearance,
	"hair_style":    CategoryAppearance,
	"hair_color":    CategoryAppearance,
	"eye_style":     CategoryAppearance,
	"eye_color":     CategoryAppearance,
	"facial_detail": CategoryAppearance,
	"body_type":     CategoryAppearance,
	"face":          CategoryAppearance,
	"expression":    CategoryAppearance,
	"armor_torso":   CategoryEquipment,
	"armor_legs":    CategoryEquipment,
	"weapon":        CategoryEquipment,
	"headwear":      CategoryEquipment,
	"upper_torso":   CategoryEquipment,
	"arms":          CategoryEquipment,
	"hands":         CategoryEquipment,
	"legs":          CategoryEquipment,
	"feet":          CategoryEquipment,
	"accessory":     CategoryEquipment,
	"style":         CategoryStyle,
	"art_style":     CategoryStyle,
	"lighting":      CategoryStyle,
	"camera":        CategoryStyle,
	"mood":          CategoryStyle,
	"background":    CategorySetting,
	"location":      CategorySetting,
	"environment":   CategorySetting,
	"time_of_day":   CategorySetting,
	"weather":       CategorySetting,
	"class":         CategoryClass,
	"role":          CategoryClass,
	"profession":    CategoryClass,
}

// CategoryForSlot returns the display category for a slot key.
// Compound keys fall back to their first segment ("torso_armor" → "torso").
func CategoryForSlot(id string) SlotCategory {
	key := strings.ToLower(id)
	if c, ok := slotCategories[key]; ok {
		return c
	}
	if head, _, found := strings.Cut(key, "_"); found {
		if c, ok := slotCategories[head]; ok {
			return c
		}
		switch head {
		case "torso", "armor", "clothing", "equipment":
			return CategoryEquipment
		case "hair", "eye", "eyes", "skin":
			return CategoryAppearance
		}
	}
	return CategoryMisc
}
