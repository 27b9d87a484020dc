package availability

// ResourceSelector identifies who a new booking is for. A nil StaffID means no staff member
// has been chosen, in which case any overlapping appointment is a conflict.
type ResourceSelector struct {
	StaffID *string
}

// CheckConflict reports whether proposed overlaps an existing appointment that blocks the
// selected resource. Unassigned appointments block every resource.
func CheckConflict(proposed Interval, sel ResourceSelector, appointments []Appointment) bool {
	for _, a := range appointments {
		if !proposed.Overlaps(a.Interval()) {
			continue
		}
		if a.StaffID == nil || sel.StaffID == nil || *a.StaffID == *sel.StaffID {
			return true
		}
	}
	return false
}
