package item

import "testing"

func TestIDNext(t *testing.T) {
	tests := []struct {
		name string
		id   ID
		want ID
		ok   bool
	}{
		{"zero", 0, 1, true},
		{"mid", 41, 42, true},
		{"one below sentinel", MaxID - 1, MaxID, true},
		{"sentinel exhausted", MaxID, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.id.Next()
			if ok != tt.ok {
				t.Fatalf("ok: got %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("next: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseIDRoundTrip(t *testing.T) {
	for _, id := range []ID{0, 1, 42, MaxID - 1, MaxID} {
		parsed, err := ParseID(id.String())
		if err != nil {
			t.Fatalf("parse %q: %v", id.String(), err)
		}
		if parsed != id {
			t.Errorf("round trip: got %d, want %d", parsed, id)
		}
	}

	if _, err := ParseID("not-a-number"); err == nil {
		t.Error("expected error for non-numeric id")
	}
}
