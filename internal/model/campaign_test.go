package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestValidateRejectsUnknownMode(t *testing.T) {
	c := Campaign{Mode: "round-robin", Items: []CampaignItem{{SceneID: 1}}}
	assert.Error(t, c.Validate())
}

func TestValidateRejectsEmptyCampaign(t *testing.T) {
	c := Campaign{Mode: RotationWeight}
	assert.Error(t, c.Validate())
}

func TestValidatePercentagesMustSumToOneHundred(t *testing.T) {
	c := Campaign{Mode: RotationPercentage, Items: []CampaignItem{
		{SceneID: 1, Percentage: 60},
		{SceneID: 2, Percentage: 30},
	}}
	assert.Error(t, c.Validate())

	c.Items[1].Percentage = 40
	assert.NoError(t, c.Validate())
}

func TestValidateRejectsHalfOpenDaypartWindow(t *testing.T) {
	c := Campaign{Mode: RotationRandom, Items: []CampaignItem{
		{SceneID: 1, DaypartStart: strp("09:00")},
	}}
	assert.Error(t, c.Validate())

	c.Items[0].DaypartEnd = strp("17:30")
	assert.NoError(t, c.Validate())
}

func TestValidateRejectsMalformedClock(t *testing.T) {
	c := Campaign{Mode: RotationRandom, Items: []CampaignItem{
		{SceneID: 1, DaypartStart: strp("25:00"), DaypartEnd: strp("17:00")},
	}}
	assert.Error(t, c.Validate())
}

func TestParseClock(t *testing.T) {
	mins, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9*60+30, mins)

	mins, err = ParseClock("00:00")
	require.NoError(t, err)
	assert.Zero(t, mins)

	_, err = ParseClock("midnight")
	assert.Error(t, err)
	_, err = ParseClock("12:75")
	assert.Error(t, err)
}
