package model

import "fmt"

// TimeSlotCatalog is the fixed ordered set of bookable one-hour windows.
// It is process-wide configuration, not user data: handlers validate
// incoming labels against it but never mutate it.
type TimeSlotCatalog []string

// DefaultTimeSlots is the canonical catalog: ten one-hour slots covering
// 08:00 through 18:00.
var DefaultTimeSlots = TimeSlotRange(8, 18)

// TimeSlotRange builds a catalog of one-hour labels from startHour
// (inclusive) to endHour (exclusive end of the last slot). Hours outside
// 0..24 or an empty range yield an empty catalog.
func TimeSlotRange(startHour, endHour int) TimeSlotCatalog {
	if startHour < 0 || endHour > 24 || startHour >= endHour {
		return TimeSlotCatalog{}
	}

	slots := make(TimeSlotCatalog, 0, endHour-startHour)
	for h := startHour; h < endHour; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00 - %02d:00", h, h+1))
	}
	return slots
}

func (c TimeSlotCatalog) Contains(label string) bool {
	for _, slot := range c {
		if slot == label {
			return true
		}
	}
	return false
}
