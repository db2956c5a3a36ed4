package resolver

import "github.com/Nixie-Tech-LLC/pharos/internal/model"

// ResolveLanguage returns the variant of a scene that best matches the
// requested language code: an exact sibling match, then the language
// group's default member, then the scene itself. It is total — a missing
// translation can only mean content in the wrong language, never nothing.
func ResolveLanguage(scene model.Scene, code string, siblings map[int][]model.Scene) model.Scene {
	if scene.LanguageGroupID == nil {
		return scene
	}
	members := siblings[*scene.LanguageGroupID]
	if code != "" {
		for _, m := range members {
			if m.LanguageCode == code {
				return m
			}
		}
	}
	for _, m := range members {
		if m.LanguageDefault {
			return m
		}
	}
	return scene
}
