package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func weekdayRules(day string, start, end string, enabled bool) []Rule {
	return []Rule{{Day: day, StartTime: start, EndTime: end, Enabled: enabled}}
}

// A Wednesday, well in the past relative to nothing: tests pass their own now.
var testDate = time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

func TestResolveSlots_FullWindow(t *testing.T) {
	rules := weekdayRules("Wednesday", "09:00", "17:00", true)
	now := testDate.Add(-24 * time.Hour)

	slots := ResolveSlots(testDate, rules, nil, now)

	expected := []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00"}
	assert.Equal(t, expected, slots)
	assert.NotContains(t, slots, "17:00")
}

func TestResolveSlots_DisabledDay(t *testing.T) {
	rules := weekdayRules("Wednesday", "09:00", "17:00", false)
	now := testDate.Add(-24 * time.Hour)

	booked := []time.Time{testDate.Add(11 * time.Hour)}
	slots := ResolveSlots(testDate, rules, booked, now)

	assert.Empty(t, slots)
}

func TestResolveSlots_NoRuleForWeekday(t *testing.T) {
	rules := weekdayRules("Monday", "09:00", "17:00", true)
	now := testDate.Add(-24 * time.Hour)

	slots := ResolveSlots(testDate, rules, nil, now)

	assert.Empty(t, slots)
}

func TestResolveSlots_BookedSlotFiltered(t *testing.T) {
	rules := weekdayRules("Wednesday", "09:00", "17:00", true)
	now := testDate.Add(-24 * time.Hour)

	booked := []time.Time{testDate.Add(11 * time.Hour)}
	slots := ResolveSlots(testDate, rules, booked, now)

	assert.NotContains(t, slots, "11:00")
	assert.Len(t, slots, 7)
	assert.Contains(t, slots, "10:00")
	assert.Contains(t, slots, "12:00")
}

func TestResolveSlots_BookedMatchIgnoresSeconds(t *testing.T) {
	rules := weekdayRules("Wednesday", "09:00", "17:00", true)
	now := testDate.Add(-24 * time.Hour)

	// Booking at 11:00:42 still collides with the 11:00 slot.
	booked := []time.Time{testDate.Add(11*time.Hour + 42*time.Second)}
	slots := ResolveSlots(testDate, rules, booked, now)

	assert.NotContains(t, slots, "11:00")
}

func TestResolveSlots_PastSlotsExcluded(t *testing.T) {
	rules := weekdayRules("Wednesday", "09:00", "17:00", true)
	// Wall clock is 10:30 on the requested day.
	now := testDate.Add(10*time.Hour + 30*time.Minute)

	slots := ResolveSlots(testDate, rules, nil, now)

	expected := []string{"11:00", "12:00", "13:00", "14:00", "15:00", "16:00"}
	assert.Equal(t, expected, slots)
}

func TestResolveSlots_SlotExactlyNowExcluded(t *testing.T) {
	rules := weekdayRules("Wednesday", "09:00", "17:00", true)
	now := testDate.Add(10 * time.Hour)

	slots := ResolveSlots(testDate, rules, nil, now)

	// 10:00 is not strictly after now, so it is not offered.
	assert.NotContains(t, slots, "10:00")
	assert.Contains(t, slots, "11:00")
}

func TestResolveSlots_FullyBookedDay(t *testing.T) {
	rules := weekdayRules("Wednesday", "09:00", "12:00", true)
	now := testDate.Add(-24 * time.Hour)

	booked := []time.Time{
		testDate.Add(9 * time.Hour),
		testDate.Add(10 * time.Hour),
		testDate.Add(11 * time.Hour),
	}
	slots := ResolveSlots(testDate, rules, booked, now)

	assert.Empty(t, slots)
}

func TestResolveSlots_MalformedRuleTimes(t *testing.T) {
	rules := weekdayRules("Wednesday", "9am", "5pm", true)
	now := testDate.Add(-24 * time.Hour)

	slots := ResolveSlots(testDate, rules, nil, now)

	assert.Empty(t, slots)
}

func TestResolveSlots_Ascending(t *testing.T) {
	rules := weekdayRules("Wednesday", "08:00", "20:00", true)
	now := testDate.Add(-24 * time.Hour)

	slots := ResolveSlots(testDate, rules, nil, now)

	for i := 1; i < len(slots); i++ {
		assert.Less(t, slots[i-1], slots[i])
	}
}
