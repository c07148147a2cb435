package types

import "testing"

func TestQuantitySaturatingAdd(t *testing.T) {
	tests := []struct {
		name  string
		q     Quantity
		delta Quantity
		want  Quantity
	}{
		{"simple", 10, 5, 15},
		{"zero delta", 10, 0, 10},
		{"from zero", 0, 7, 7},
		{"clamp at max", MaxQuantity - 1, 10, MaxQuantity},
		{"exact max", MaxQuantity - 1, 1, MaxQuantity},
		{"already max", MaxQuantity, MaxQuantity, MaxQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.SaturatingAdd(tt.delta); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQuantitySaturatingSub(t *testing.T) {
	tests := []struct {
		name  string
		q     Quantity
		delta Quantity
		want  Quantity
	}{
		{"simple", 10, 5, 5},
		{"to zero", 10, 10, 0},
		{"floor at zero", 5, 10, 0},
		{"from zero", 0, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.SaturatingSub(tt.delta); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQuantityCheckedSub(t *testing.T) {
	if _, ok := Quantity(5).CheckedSub(6); ok {
		t.Error("expected underflow for 5 - 6")
	}
	if got, ok := Quantity(5).CheckedSub(5); !ok || got != 0 {
		t.Errorf("5 - 5: got (%d, %v), want (0, true)", got, ok)
	}
	if got, ok := Quantity(100).CheckedSub(5); !ok || got != 95 {
		t.Errorf("100 - 5: got (%d, %v), want (95, true)", got, ok)
	}
}
