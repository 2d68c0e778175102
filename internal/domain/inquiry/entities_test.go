package inquiry

import "testing"

func TestStatus_CanAdvance(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusNew, StatusContacted, true},
		{StatusNew, StatusQualified, true},
		{StatusContacted, StatusQualified, true},
		{StatusQualified, StatusClosed, true},
		{StatusQualified, StatusContacted, false},
		{StatusNew, StatusConverted, false},
		{StatusConverted, StatusClosed, false},
		{StatusClosed, StatusNew, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanAdvance(tt.to); got != tt.want {
			t.Fatalf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestStatus_Terminal(t *testing.T) {
	for _, s := range []Status{StatusConverted, StatusClosed} {
		if !s.Terminal() {
			t.Fatalf("%s should be terminal", s)
		}
	}
	for _, s := range Convertible {
		if s.Terminal() {
			t.Fatalf("%s should not be terminal", s)
		}
	}
}
