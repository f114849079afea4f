package core

import "testing"

func TestIntentsSteer(t *testing.T) {
	tests := []struct {
		name     string
		in       Intents
		expected int
	}{
		{"none", Intents{}, 0},
		{"left", Intents{SteerLeft: true}, -1},
		{"right", Intents{SteerRight: true}, 1},
		{"both cancel", Intents{SteerLeft: true, SteerRight: true}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Steer(); got != tc.expected {
				t.Errorf("Steer() = %d, expected %d", got, tc.expected)
			}
		})
	}

	if !(Intents{}).IsZero() {
		t.Error("empty intents should be zero")
	}
	if (Intents{JumpPressed: true}).IsZero() {
		t.Error("jump intent should not be zero")
	}
}
