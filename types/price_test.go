package types

import (
	"encoding/json"
	"math"
	"testing"
)

func TestPriceTotalFor(t *testing.T) {
	tests := []struct {
		name     string
		price    Price
		quantity Quantity
		want     Amount
		ok       bool
	}{
		{"simple", NewPrice(1, 10), 5, 50, true},
		{"zero quantity", NewPrice(1, 10), 0, 0, true},
		{"zero amount", NewPrice(1, 0), 100, 0, true},
		{"max quantity", NewPrice(1, 1), MaxQuantity, Amount(math.MaxUint32), true},
		{"overflow", NewPrice(1, math.MaxUint64/2), 3, 0, false},
		{"exact max", NewPrice(1, math.MaxUint64/4), 4, Amount(math.MaxUint64 - 3), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.price.TotalFor(tt.quantity)
			if ok != tt.ok {
				t.Fatalf("ok: got %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("total: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAmountCheckedMul(t *testing.T) {
	if _, ok := Amount(math.MaxUint64).CheckedMul(2); ok {
		t.Error("expected overflow for MaxUint64 * 2")
	}
	if got, ok := Amount(0).CheckedMul(math.MaxUint64); !ok || got != 0 {
		t.Errorf("0 * n: got (%d, %v), want (0, true)", got, ok)
	}
	if got, ok := Amount(7).CheckedMul(6); !ok || got != 42 {
		t.Errorf("7 * 6: got (%d, %v), want (42, true)", got, ok)
	}
}

func TestAmountCheckedAdd(t *testing.T) {
	if _, ok := MaxAmount.CheckedAdd(1); ok {
		t.Error("expected overflow for MaxAmount + 1")
	}
	if got, ok := Amount(40).CheckedAdd(2); !ok || got != 42 {
		t.Errorf("40 + 2: got (%d, %v), want (42, true)", got, ok)
	}
}

func TestPriceSameAsset(t *testing.T) {
	a := NewPrice(1, 100)
	b := NewPrice(1, 999)
	c := NewPrice(2, 100)

	if !a.SameAsset(b) {
		t.Error("prices in asset 1 should match")
	}
	if a.SameAsset(c) {
		t.Error("prices in different assets should not match")
	}
}

func TestPriceJSONRoundTrip(t *testing.T) {
	in := NewPrice(7, 1234)
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}

	var out Price
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if !in.Equal(out) {
		t.Errorf("round trip: got %v, want %v", out, in)
	}
}
