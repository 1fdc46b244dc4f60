package models

import (
	"reflect"
	"testing"
)

func TestParseMatsList(t *testing.T) {
	cases := []struct {
		input    string
		expected []int
	}{
		{"1", []int{1}},
		{"1-3", []int{1, 2, 3}},
		{"1-3,5", []int{1, 2, 3, 5}},
		{"1-3, 5, 7-9", []int{1, 2, 3, 5, 7, 8, 9}},
		{" 4 - 6 ", []int{4, 5, 6}},
	}
	for _, c := range cases {
		got, err := ParseMatsList(c.input)
		if err != nil {
			t.Errorf("%q: unexpected error %v", c.input, err)
			continue
		}
		if !reflect.DeepEqual(got, c.expected) {
			t.Errorf("%q: expected %v, got %v", c.input, c.expected, got)
		}
	}
}

func TestParseMatsList_Errors(t *testing.T) {
	for _, input := range []string{
		"",
		"abc",
		"0",
		"-3",
		"3-1",
		"1-3,2",
		"1-3,3-5",
		"5,1-3",
		"1,,3",
	} {
		if got, err := ParseMatsList(input); err == nil {
			t.Errorf("%q: expected error, got %v", input, got)
		}
	}
}

func TestFeatureListRoundTrip(t *testing.T) {
	// nil stays NULL
	var null FeatureList
	value, err := null.Value()
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}
	if value != nil {
		t.Errorf("expected nil driver value for nil list, got %v", value)
	}
	var scanned FeatureList
	if err := scanned.Scan(nil); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if scanned != nil {
		t.Errorf("expected nil list after scanning NULL, got %v", scanned)
	}

	// empty stays empty, not NULL
	empty := FeatureList{}
	value, err = empty.Value()
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}
	if value != "[]" {
		t.Errorf("expected '[]' for empty list, got %v", value)
	}
	if err := scanned.Scan("[]"); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if scanned == nil || len(scanned) != 0 {
		t.Errorf("expected empty non-nil list, got %v", scanned)
	}

	// populated survives
	if err := scanned.Scan(`["H","S"]`); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if !scanned.Contains(FeatureHandicap) || !scanned.Contains(FeatureShower) {
		t.Errorf("expected H and S, got %v", scanned)
	}
}

func TestFeatureMapRoundTrip(t *testing.T) {
	m := FeatureMap{
		1: {FeatureHandicap},
		3: {FeatureHandicap, FeatureShower},
		5: {FeatureShower},
	}
	value, err := m.Value()
	if err != nil {
		t.Fatalf("value failed: %v", err)
	}

	var scanned FeatureMap
	if err := scanned.Scan(value); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if !reflect.DeepEqual(scanned, m) {
		t.Errorf("expected %v, got %v", m, scanned)
	}
	if got := scanned.MatNumbers(); !reflect.DeepEqual(got, []int{1, 3, 5}) {
		t.Errorf("expected mats 1,3,5, got %v", got)
	}

	// mats outside the map are simply absent
	if _, ok := scanned[2]; ok {
		t.Errorf("mat 2 should not be present")
	}
}

func TestFeatureColumnTypes(t *testing.T) {
	if got := (FeatureList{}).GormDataType(); got != "text" {
		t.Errorf("expected text column for FeatureList, got %q", got)
	}
	if got := (FeatureMap{}).GormDataType(); got != "text" {
		t.Errorf("expected text column for FeatureMap, got %q", got)
	}
}

func TestFeatureTypeValid(t *testing.T) {
	for _, f := range []FeatureType{FeatureHandicap, FeatureShower} {
		if !f.Valid() {
			t.Errorf("expected %s to be valid", f)
		}
	}
	if FeatureType("X").Valid() {
		t.Errorf("expected X to be invalid")
	}
}

func TestPaymentTypeValid(t *testing.T) {
	for _, p := range []PaymentType{
		PaymentCash, PaymentAgency, PaymentCityTeam, PaymentFreeMat,
		PaymentMedicalMat, PaymentSevereWeather, PaymentUnknown, PaymentWorkBed,
	} {
		if !p.Valid() {
			t.Errorf("expected %s to be valid", p)
		}
	}
	if PaymentType("XX").Valid() {
		t.Errorf("expected XX to be invalid")
	}
}

func TestValidDate(t *testing.T) {
	for _, s := range []string{"2020-07-04", "1999-12-31"} {
		if !ValidDate(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []string{"", "July 4 2020", "2020-13-01", "2020-07-32", "20200704"} {
		if ValidDate(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestValidTimeOfDay(t *testing.T) {
	for _, s := range []string{"00:00", "04:00", "23:59"} {
		if !ValidTimeOfDay(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []string{"", "24:00", "4 AM", "04:60"} {
		if ValidTimeOfDay(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
