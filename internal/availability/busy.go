package availability

import "sort"

// Interval is a half-open range [StartMin, EndMin) in minutes since midnight.
type Interval struct {
	StartMin int
	EndMin   int
}

func (i Interval) Overlaps(o Interval) bool {
	return Overlaps(i.StartMin, i.EndMin, o.StartMin, o.EndMin)
}

// Appointment is a day-scoped existing booking. A nil StaffID blocks every resource.
type Appointment struct {
	StaffID  *string
	StartMin int
	EndMin   int
}

// NewAppointment normalizes a stored appointment row. The end comes from endTime when set,
// otherwise from durationMinutes, otherwise DefaultDurationMinutes after the start.
func NewAppointment(staffID *string, startTime string, endTime *string, durationMinutes *int) (Appointment, error) {
	start, err := ParseTimeToMinutes(startTime)
	if err != nil {
		return Appointment{}, err
	}

	var end int
	switch {
	case endTime != nil && *endTime != "":
		end, err = ParseTimeToMinutes(*endTime)
		if err != nil {
			return Appointment{}, err
		}
	case durationMinutes != nil:
		end = start + *durationMinutes
	default:
		end = start + DefaultDurationMinutes
	}

	return Appointment{StaffID: staffID, StartMin: start, EndMin: end}, nil
}

func (a Appointment) Interval() Interval {
	return Interval{StartMin: a.StartMin, EndMin: a.EndMin}
}

// BusySet maps a resource id to its sorted, merged busy intervals.
type BusySet map[string][]Interval

// Normalize drops empty or inverted intervals, sorts by start and merges
// intervals that overlap or touch.
func Normalize(intervals []Interval) []Interval {
	valid := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.EndMin > iv.StartMin {
			valid = append(valid, iv)
		}
	}

	sort.Slice(valid, func(i, j int) bool {
		return valid[i].StartMin < valid[j].StartMin
	})

	merged := make([]Interval, 0, len(valid))
	for _, iv := range valid {
		last := len(merged) - 1
		if last >= 0 && iv.StartMin <= merged[last].EndMin {
			if iv.EndMin > merged[last].EndMin {
				merged[last].EndMin = iv.EndMin
			}
			continue
		}
		merged = append(merged, iv)
	}

	return merged
}

// BuildBusyIntervals distributes appointments into per-resource buckets.
// An appointment with a staff id lands only in that resource's bucket (and is ignored when
// that resource is out of scope). An appointment without a staff id lands in every bucket.
func BuildBusyIntervals(appointments []Appointment, resourceIDs []string) BusySet {
	buckets := make(map[string][]Interval, len(resourceIDs))
	for _, id := range resourceIDs {
		buckets[id] = nil
	}

	for _, a := range appointments {
		iv := a.Interval()

		if a.StaffID == nil {
			for _, id := range resourceIDs {
				buckets[id] = append(buckets[id], iv)
			}
			continue
		}

		if _, ok := buckets[*a.StaffID]; ok {
			buckets[*a.StaffID] = append(buckets[*a.StaffID], iv)
		}
	}

	set := make(BusySet, len(buckets))
	for id, intervals := range buckets {
		set[id] = Normalize(intervals)
	}
	return set
}
