package domain

import "testing"

func TestVectorScanValue(t *testing.T) {
	v := Vector{0.5, -1, 2.25}
	raw, err := v.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var scanned Vector
	if err := scanned.Scan(raw); err != nil {
		t.Fatalf("Scan from string: %v", err)
	}
	if len(scanned) != 3 || scanned[0] != 0.5 || scanned[2] != 2.25 {
		t.Errorf("scanned = %v", scanned)
	}

	// Drivers may hand back []byte instead of string.
	scanned = nil
	if err := scanned.Scan([]byte(`[1,2]`)); err != nil {
		t.Fatalf("Scan from bytes: %v", err)
	}
	if len(scanned) != 2 {
		t.Errorf("scanned = %v", scanned)
	}

	scanned = nil
	if err := scanned.Scan(nil); err != nil {
		t.Fatalf("Scan from nil: %v", err)
	}
	if scanned == nil || len(scanned) != 0 {
		t.Errorf("nil scan should yield an empty vector, got %v", scanned)
	}
}

func TestNilArraysSerializeAsEmptyJSON(t *testing.T) {
	sv, err := StringArray(nil).Value()
	if err != nil || sv != "[]" {
		t.Errorf("StringArray(nil).Value() = %v, %v", sv, err)
	}
	iv, err := Int64Array(nil).Value()
	if err != nil || iv != "[]" {
		t.Errorf("Int64Array(nil).Value() = %v, %v", iv, err)
	}
	vv, err := Vector(nil).Value()
	if err != nil || vv != "[]" {
		t.Errorf("Vector(nil).Value() = %v, %v", vv, err)
	}
}

func TestInt64ArrayScanInvalid(t *testing.T) {
	var a Int64Array
	if err := a.Scan(42); err == nil {
		t.Error("expected an error scanning a non-text value")
	}
}
