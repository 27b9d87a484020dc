package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckConflict(t *testing.T) {
	appts := []Appointment{
		{StaffID: strPtr("a"), StartMin: 600, EndMin: 660},
		{StaffID: nil, StartMin: 780, EndMin: 810},
	}

	tests := []struct {
		name     string
		proposed Interval
		staffID  *string
		want     bool
	}{
		{"same staff overlap", Interval{StartMin: 630, EndMin: 690}, strPtr("a"), true},
		{"other staff overlap ignored", Interval{StartMin: 630, EndMin: 690}, strPtr("b"), false},
		{"no staff chosen, any overlap", Interval{StartMin: 630, EndMin: 690}, nil, true},
		{"touching end is free", Interval{StartMin: 660, EndMin: 690}, strPtr("a"), false},
		{"unassigned blocks staff b", Interval{StartMin: 790, EndMin: 820}, strPtr("b"), true},
		{"free window", Interval{StartMin: 700, EndMin: 760}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckConflict(tt.proposed, ResourceSelector{StaffID: tt.staffID}, appts)
			assert.Equal(t, tt.want, got)
		})
	}
}
