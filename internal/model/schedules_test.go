package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var windowStart = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) // a Monday

func window(recurrence string) ScheduleEntry {
	return ScheduleEntry{
		Start:      windowStart,
		End:        windowStart.Add(2 * time.Hour),
		Recurrence: recurrence,
		Enabled:    true,
	}
}

func TestOneShotWindowIsHalfOpen(t *testing.T) {
	e := window(RecurrenceNone)

	assert.False(t, e.ActiveAt(windowStart.Add(-time.Minute)))
	assert.True(t, e.ActiveAt(windowStart))
	assert.True(t, e.ActiveAt(windowStart.Add(time.Hour)))
	assert.False(t, e.ActiveAt(windowStart.Add(2*time.Hour)))
}

func TestDisabledEntryIsNeverActive(t *testing.T) {
	e := window(RecurrenceNone)
	e.Enabled = false
	assert.False(t, e.ActiveAt(windowStart.Add(time.Hour)))
}

func TestDailyRecurrenceProjectsTheWindow(t *testing.T) {
	e := window(RecurrenceDaily)

	assert.True(t, e.ActiveAt(windowStart.AddDate(0, 0, 3).Add(time.Hour)))
	assert.False(t, e.ActiveAt(windowStart.AddDate(0, 0, 3).Add(5*time.Hour)))
}

func TestWeeklyRecurrenceSkipsOtherDays(t *testing.T) {
	e := window(RecurrenceWeekly)

	assert.True(t, e.ActiveAt(windowStart.AddDate(0, 0, 7).Add(time.Hour)))
	assert.False(t, e.ActiveAt(windowStart.AddDate(0, 0, 3).Add(time.Hour)))
}

func TestRecurUntilStopsProjection(t *testing.T) {
	until := windowStart.AddDate(0, 0, 2)
	e := window(RecurrenceDaily)
	e.RecurUntil = &until

	assert.True(t, e.ActiveAt(windowStart.AddDate(0, 0, 2).Add(time.Hour)))
	assert.False(t, e.ActiveAt(windowStart.AddDate(0, 0, 3).Add(time.Hour)))
}

func TestEmergencyOverrideWindow(t *testing.T) {
	secs := 600
	e := EmergencyOverride{Active: true, SceneID: 1, StartsAt: windowStart, DurationSecs: &secs}

	assert.False(t, e.ActiveAt(windowStart.Add(-time.Second)))
	assert.True(t, e.ActiveAt(windowStart.Add(5*time.Minute)))
	assert.False(t, e.ActiveAt(windowStart.Add(10*time.Minute)))
}

func TestEmergencyOverrideWithoutDurationRunsUntilCleared(t *testing.T) {
	e := EmergencyOverride{Active: true, SceneID: 1, StartsAt: windowStart}
	assert.True(t, e.ActiveAt(windowStart.AddDate(1, 0, 0)))

	e.Active = false
	assert.False(t, e.ActiveAt(windowStart.AddDate(1, 0, 0)))
}
