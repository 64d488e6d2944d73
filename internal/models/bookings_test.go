package models

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{BookingPending, BookingAccepted, true},
		{BookingPending, BookingRejected, true},
		{BookingPending, BookingCancelled, true},
		{BookingPending, BookingInProgress, false},
		{BookingPending, BookingCompleted, false},

		{BookingAccepted, BookingInProgress, true},
		{BookingAccepted, BookingCancelled, true},
		{BookingAccepted, BookingCompleted, false},
		{BookingAccepted, BookingPending, false},

		{BookingInProgress, BookingCompleted, true},
		{BookingInProgress, BookingCancelled, true},
		{BookingInProgress, BookingAccepted, false},

		// Terminal states absorb.
		{BookingRejected, BookingPending, false},
		{BookingRejected, BookingAccepted, false},
		{BookingCompleted, BookingInProgress, false},
		{BookingCompleted, BookingCancelled, false},
		{BookingCancelled, BookingPending, false},
		{BookingCancelled, BookingAccepted, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestIsTerminalStatus(t *testing.T) {
	terminal := []string{BookingRejected, BookingCompleted, BookingCancelled}
	for _, s := range terminal {
		if !IsTerminalStatus(s) {
			t.Errorf("expected %q to be terminal", s)
		}
	}
	active := []string{BookingPending, BookingAccepted, BookingInProgress}
	for _, s := range active {
		if IsTerminalStatus(s) {
			t.Errorf("expected %q to not be terminal", s)
		}
	}
}

func TestValidBookingStatus(t *testing.T) {
	if !ValidBookingStatus(BookingPending) {
		t.Error("pending should be a valid status")
	}
	if ValidBookingStatus("scheduled") {
		t.Error("unknown status should be invalid")
	}
}
