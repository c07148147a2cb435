package types

import "math"

// Quantity counts the units of an item available for purchase.
//
// Inventory bookkeeping deliberately mixes two arithmetic modes:
// AddItem/RemoveItem clamp (SaturatingAdd/SaturatingSub) and never
// fail, while the purchase path uses CheckedSub and rejects the whole
// operation on underflow. The asymmetry is intentional — do not unify.
type Quantity uint32

// MaxQuantity is the largest representable Quantity.
const MaxQuantity = Quantity(math.MaxUint32)

// SaturatingAdd returns q + delta, clamped at MaxQuantity.
func (q Quantity) SaturatingAdd(delta Quantity) Quantity {
	sum := q + delta
	if sum < q {
		return MaxQuantity
	}
	return sum
}

// SaturatingSub returns q - delta, floored at zero.
func (q Quantity) SaturatingSub(delta Quantity) Quantity {
	if delta > q {
		return 0
	}
	return q - delta
}

// CheckedSub returns q - delta and true, or 0 and false on underflow.
func (q Quantity) CheckedSub(delta Quantity) (Quantity, bool) {
	if delta > q {
		return 0, false
	}
	return q - delta, true
}
