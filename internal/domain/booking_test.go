package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeSeats(t *testing.T) {
	tests := []struct {
		name  string
		seats []int
		want  []int
	}{
		{
			name:  "empty input stays empty",
			seats: []int{},
			want:  []int{},
		},
		{
			name:  "sorted input is unchanged",
			seats: []int{1, 2, 3},
			want:  []int{1, 2, 3},
		},
		{
			name:  "duplicates are collapsed",
			seats: []int{5, 5, 5},
			want:  []int{5},
		},
		{
			name:  "unsorted input with duplicates is sorted and deduplicated",
			seats: []int{9, 2, 9, 1, 2},
			want:  []int{1, 2, 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSeats(tt.seats)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("NormalizeSeats(%v) mismatch (-want +got):\n%s", tt.seats, diff)
			}
		})
	}
}

func TestNormalizeSeatsDoesNotMutateInput(t *testing.T) {
	seats := []int{3, 1, 2}

	NormalizeSeats(seats)

	if diff := cmp.Diff([]int{3, 1, 2}, seats); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}

func TestSeatConflictError(t *testing.T) {
	err := &SeatConflictError{Seats: []int{3, 4}}

	want := "seats already booked: [3 4]"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}
