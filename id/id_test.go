package id_test

import (
	"strings"
	"testing"

	"github.com/xraph/xpay/id"
)

func TestNewReceiptID(t *testing.T) {
	i := id.NewReceiptID()
	if i.IsNil() {
		t.Fatal("expected non-nil ID")
	}
	if i.Prefix() != id.PrefixReceipt {
		t.Errorf("expected prefix %q, got %q", id.PrefixReceipt, i.Prefix())
	}
	if !strings.HasPrefix(i.String(), "rcpt_") {
		t.Errorf("expected rcpt_ prefix, got %q", i.String())
	}
}

func TestParseRoundTrip(t *testing.T) {
	orig := id.NewReceiptID()

	parsed, err := id.ParseReceiptID(orig.String())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.String() != orig.String() {
		t.Errorf("round trip: got %q, want %q", parsed.String(), orig.String())
	}
}

func TestParseRejectsWrongPrefix(t *testing.T) {
	other := id.New("test")

	if _, err := id.ParseReceiptID(other.String()); err == nil {
		t.Error("expected error for wrong prefix")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "not-a-typeid", "rcpt_!!!"} {
		if _, err := id.Parse(s); err == nil {
			t.Errorf("expected error for %q", s)
		}
	}
}

func TestNilID(t *testing.T) {
	var nilID id.ID

	if !nilID.IsNil() {
		t.Error("zero value should be nil")
	}
	if nilID.String() != "" {
		t.Errorf("nil ID string: got %q, want empty", nilID.String())
	}

	data, err := nilID.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Errorf("nil ID text: got %q, want empty", data)
	}
}

func TestScan(t *testing.T) {
	orig := id.NewReceiptID()

	var scanned id.ID
	if err := scanned.Scan(orig.String()); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if scanned.String() != orig.String() {
		t.Errorf("scan: got %q, want %q", scanned.String(), orig.String())
	}

	var fromNil id.ID
	if err := fromNil.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if !fromNil.IsNil() {
		t.Error("scanning nil should produce the Nil ID")
	}

	if err := scanned.Scan(42); err == nil {
		t.Error("expected error scanning int")
	}
}
