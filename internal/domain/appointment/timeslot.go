package appointment

import "time"

// TimeSlot is one of the clinic's standard daily booking times.
type TimeSlot string

const (
	SlotMorning9AM   TimeSlot = "MORNING_9AM"
	SlotMorning10AM  TimeSlot = "MORNING_10AM"
	SlotAfternoon2PM TimeSlot = "AFTERNOON_2PM"
	SlotAfternoon3PM TimeSlot = "AFTERNOON_3PM"
	SlotEvening5PM   TimeSlot = "EVENING_5PM"
)

type timeSlotInfo struct {
	hour, minute int
	period       string
}

var timeSlots = map[TimeSlot]timeSlotInfo{
	SlotMorning9AM:   {9, 0, "Morning"},
	SlotMorning10AM:  {10, 0, "Morning"},
	SlotAfternoon2PM: {14, 0, "Afternoon"},
	SlotAfternoon3PM: {15, 0, "Afternoon"},
	SlotEvening5PM:   {17, 0, "Evening"},
}

// TimeSlots lists the standard slots in chronological order.
func TimeSlots() []TimeSlot {
	return []TimeSlot{SlotMorning9AM, SlotMorning10AM, SlotAfternoon2PM, SlotAfternoon3PM, SlotEvening5PM}
}

func (t TimeSlot) IsValid() bool {
	_, ok := timeSlots[t]
	return ok
}

// Time returns the wall-clock time as "HH:MM".
func (t TimeSlot) Time() string {
	info := timeSlots[t]
	return time.Date(0, 1, 1, info.hour, info.minute, 0, 0, time.UTC).Format("15:04")
}

func (t TimeSlot) Period() string {
	return timeSlots[t].period
}

// At places the slot on day's calendar date in day's location.
func (t TimeSlot) At(day time.Time) time.Time {
	info := timeSlots[t]
	y, m, d := day.Date()
	return time.Date(y, m, d, info.hour, info.minute, 0, 0, day.Location())
}
