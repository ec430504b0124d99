// Package availability turns a doctor's recurring weekly schedule plus a
// day's existing bookings into the concrete list of offerable slots.
package availability

import "time"

// SlotLength is the fixed appointment duration. Slot granularity is not
// configurable.
const SlotLength = time.Hour

// Rule is one weekday's working window. Times are wall-clock "HH:MM" in the
// clinic timezone; the weekday name matches time.Weekday.String().
type Rule struct {
	Day       string
	StartTime string
	EndTime   string
	Enabled   bool
}

// ResolveSlots returns the bookable slot start times for one calendar date
// as "HH:MM" strings in ascending order.
//
// The rule for the date's weekday bounds the window: inclusive at StartTime,
// exclusive at EndTime (09:00-17:00 yields 09:00 through 16:00). Slots not
// strictly after now are skipped, as is any slot whose hour and minute match
// a booked instant. Missing or disabled rules, and malformed rule times,
// yield an empty result rather than an error.
//
// date fixes the day and timezone; its clock portion is ignored.
func ResolveSlots(date time.Time, rules []Rule, booked []time.Time, now time.Time) []string {
	rule, ok := ruleFor(date.Weekday().String(), rules)
	if !ok || !rule.Enabled {
		return nil
	}

	start, err := atTime(date, rule.StartTime)
	if err != nil {
		return nil
	}
	end, err := atTime(date, rule.EndTime)
	if err != nil {
		return nil
	}

	var slots []string
	for cursor := start; cursor.Before(end); cursor = cursor.Add(SlotLength) {
		if !cursor.After(now) {
			continue
		}
		if isBooked(cursor, booked) {
			continue
		}
		slots = append(slots, cursor.Format("15:04"))
	}
	return slots
}

func ruleFor(day string, rules []Rule) (Rule, bool) {
	for _, rule := range rules {
		if rule.Day == day {
			return rule, true
		}
	}
	return Rule{}, false
}

// atTime anchors an "HH:MM" wall-clock time on date's calendar day, in
// date's location.
func atTime(date time.Time, hhmm string) (time.Time, error) {
	clock, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, date.Location()), nil
}

// isBooked compares at minute granularity: two instants differing only in
// seconds collide.
func isBooked(slot time.Time, booked []time.Time) bool {
	for _, b := range booked {
		if slot.Hour() == b.Hour() && slot.Minute() == b.Minute() {
			return true
		}
	}
	return false
}
