package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nixie-Tech-LLC/pharos/internal/model"
)

func languageGroup() (map[int][]model.Scene, model.Scene, model.Scene) {
	en := model.Scene{ID: 1, ContentURL: "menu-en", LanguageGroupID: intp(4), LanguageCode: "en", LanguageDefault: true}
	es := model.Scene{ID: 2, ContentURL: "menu-es", LanguageGroupID: intp(4), LanguageCode: "es"}
	return map[int][]model.Scene{4: {en, es}}, en, es
}

func TestExactLanguageMatch(t *testing.T) {
	siblings, en, es := languageGroup()

	assert.Equal(t, es, ResolveLanguage(en, "es", siblings))
	assert.Equal(t, en, ResolveLanguage(es, "en", siblings))
}

func TestMissingVariantFallsBackToGroupDefault(t *testing.T) {
	siblings, en, es := languageGroup()

	// "fr" has no variant; the default-language sibling is served
	assert.Equal(t, en, ResolveLanguage(es, "fr", siblings))
	assert.Equal(t, en, ResolveLanguage(en, "fr", siblings))
}

func TestEmptyCodeServesGroupDefault(t *testing.T) {
	siblings, en, es := languageGroup()

	assert.Equal(t, en, ResolveLanguage(es, "", siblings))
}

func TestSceneWithoutLanguageGroupIsReturnedAsIs(t *testing.T) {
	s := model.Scene{ID: 9, ContentURL: "standalone", LanguageCode: "de"}

	assert.Equal(t, s, ResolveLanguage(s, "fr", nil))
}

func TestResolutionIsTotalForAnyMemberAndCode(t *testing.T) {
	siblings, en, es := languageGroup()

	for _, member := range []model.Scene{en, es} {
		for _, code := range []string{"en", "es", "fr", "zh", ""} {
			got := ResolveLanguage(member, code, siblings)
			assert.NotZero(t, got.ID, "member %d code %q", member.ID, code)
		}
	}
}
