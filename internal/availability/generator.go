package availability

import "sort"

// Hours is a resource's working window for one day with an optional break.
type Hours struct {
	OpenMin       int
	CloseMin      int
	BreakStartMin *int
	BreakEndMin   *int
}

func (h Hours) breakWindow() (Interval, bool) {
	if h.BreakStartMin == nil || h.BreakEndMin == nil || *h.BreakEndMin <= *h.BreakStartMin {
		return Interval{}, false
	}
	return Interval{StartMin: *h.BreakStartMin, EndMin: *h.BreakEndMin}, true
}

// NewHours parses "HH:MM" bounds into Hours. The break is kept only when both ends are set.
func NewHours(openTime, closeTime string, breakStart, breakEnd *string) (Hours, error) {
	open, err := ParseTimeToMinutes(openTime)
	if err != nil {
		return Hours{}, err
	}
	closeMin, err := ParseTimeToMinutes(closeTime)
	if err != nil {
		return Hours{}, err
	}

	h := Hours{OpenMin: open, CloseMin: closeMin}
	if breakStart == nil || breakEnd == nil || *breakStart == "" || *breakEnd == "" {
		return h, nil
	}

	bs, err := ParseTimeToMinutes(*breakStart)
	if err != nil {
		return Hours{}, err
	}
	be, err := ParseTimeToMinutes(*breakEnd)
	if err != nil {
		return Hours{}, err
	}
	h.BreakStartMin, h.BreakEndMin = &bs, &be

	return h, nil
}

// ClampToSchedule narrows h to a staff working window.
func ClampToSchedule(h Hours, startMin, endMin int) Hours {
	h.OpenMin = Clamp(startMin, h.OpenMin, h.CloseMin)
	h.CloseMin = Clamp(endMin, h.OpenMin, h.CloseMin)
	return h
}

type Options struct {
	// MinStartMin is the earliest allowed start, see MinStartForDate.
	MinStartMin int
}

// Resource is one unit of booking capacity: a staff member or the owner.
type Resource struct {
	ID        string
	Hours     Hours
	Available bool
}

// ComputeAvailableStartTimes returns the strictly increasing start times t such that
// [t, t+durationMin) lies inside the working hours, starts no earlier than opts.MinStartMin
// and overlaps neither the break nor any busy interval.
//
// Candidates are seeded from the opening minute, every busy interval end and the break end,
// then walked forward in steps of durationMin. A candidate hitting the break jumps to the
// break end; one hitting busy intervals jumps to the latest overlapping end.
func ComputeAvailableStartTimes(hours Hours, durationMin int, busy []Interval, opts Options) []int {
	if durationMin <= 0 {
		return []int{}
	}

	latest := hours.CloseMin - durationMin
	if latest < hours.OpenMin {
		return []int{}
	}

	open := hours.OpenMin
	if opts.MinStartMin > open {
		open = opts.MinStartMin
	}

	busy = Normalize(busy)
	brk, hasBreak := hours.breakWindow()

	seeds := make([]int, 0, len(busy)+2)
	seeds = append(seeds, open)
	for _, b := range busy {
		seeds = append(seeds, b.EndMin)
	}
	if hasBreak {
		seeds = append(seeds, brk.EndMin)
	}

	found := make(map[int]struct{})
	for _, seed := range seeds {
		t := seed
		for {
			if t < open {
				t = open
			}
			if t > latest {
				break
			}

			candidate := Interval{StartMin: t, EndMin: t + durationMin}

			if hasBreak && candidate.Overlaps(brk) {
				t = brk.EndMin
				continue
			}

			if end, ok := latestOverlappingEnd(candidate, busy); ok {
				t = end
				continue
			}

			if _, seen := found[t]; seen {
				// the rest of this walk has already been produced from an earlier seed
				break
			}
			found[t] = struct{}{}
			t += durationMin
		}
	}

	return sortedKeys(found)
}

// ComputeForResources unions the start times of every available resource.
// A start time is returned when at least one resource is free for the whole duration.
func ComputeForResources(resources []Resource, durationMin int, busy BusySet, opts Options) []int {
	found := make(map[int]struct{})
	for _, r := range resources {
		if !r.Available {
			continue
		}
		for _, t := range ComputeAvailableStartTimes(r.Hours, durationMin, busy[r.ID], opts) {
			found[t] = struct{}{}
		}
	}
	return sortedKeys(found)
}

func latestOverlappingEnd(candidate Interval, busy []Interval) (int, bool) {
	end, ok := 0, false
	for _, b := range busy {
		if b.StartMin >= candidate.EndMin {
			break
		}
		if candidate.Overlaps(b) && b.EndMin > end {
			end, ok = b.EndMin, true
		}
	}
	return end, ok
}

func sortedKeys(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Ints(out)
	return out
}
