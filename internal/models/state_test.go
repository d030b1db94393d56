package models

import (
	"math"
	"testing"
)

func TestStateCodecDecode(t *testing.T) {
	codec := DefaultStateCodec

	tests := []struct {
		name string
		in   any
		want ItemState
	}{
		{"nil", nil, Absent},
		{"empty string", "", Absent},
		{"zero float", 0.0, Absent},
		{"zero int", 0, Absent},
		{"zero string", "0", Absent},
		{"NaN", math.NaN(), Absent},
		{"one float", 1.0, Present},
		{"one int", 1, Present},
		{"one string", "1", Present},
		{"one string padded", " 1 ", Present},
		{"marker", "ת", Donated},
		{"two", 2, Absent},
		{"unknown text", "yes", Absent},
		{"one point zero text", "1.0", Absent},
		{"bool", true, Absent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := codec.Decode(tt.in); got != tt.want {
				t.Errorf("Decode(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStateCodecRoundTrip(t *testing.T) {
	codecs := []StateCodec{DefaultStateCodec, {DonationMarker: "D"}, {}}
	inputs := []any{nil, "", 0, 1, 1.0, "1", "ת", "D", "junk", -3.5, math.NaN()}

	for _, c := range codecs {
		for _, v := range inputs {
			s := c.Decode(v)
			if again := c.Decode(c.Encode(s)); again != s {
				t.Errorf("marker %q: Decode(Encode(Decode(%v))) = %v, want %v", c.DonationMarker, v, again, s)
			}
		}
	}
}

func TestStateCodecEncode(t *testing.T) {
	c := DefaultStateCodec
	if got := c.Encode(Absent); got != "" {
		t.Errorf("Encode(Absent) = %q, want empty", got)
	}
	if got := c.Encode(Present); got != "1" {
		t.Errorf("Encode(Present) = %q, want 1", got)
	}
	if got := c.Encode(Donated); got != DefaultDonationMarker {
		t.Errorf("Encode(Donated) = %q, want %q", got, DefaultDonationMarker)
	}
}

func TestParseItemState(t *testing.T) {
	for _, s := range AllStates {
		got, err := ParseItemState(s.String())
		if err != nil {
			t.Fatalf("ParseItemState(%q): %v", s.String(), err)
		}
		if got != s {
			t.Errorf("ParseItemState(%q) = %v, want %v", s.String(), got, s)
		}
	}
	if _, err := ParseItemState("missing"); err == nil {
		t.Error("expected error for unknown state")
	}
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{1.0, "1"},
		{2.5, "2.5"},
		{"ת", "ת"},
		{true, "TRUE"},
	}
	for _, tt := range tests {
		if got := FormatCell(tt.in); got != tt.want {
			t.Errorf("FormatCell(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCellValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", nil},
		{"1", 1.0},
		{"2.5", 2.5},
		{"03", "03"},
		{"1.0", "1.0"},
		{"NaN", "NaN"},
		{"ת", "ת"},
	}
	for _, tt := range tests {
		if got := CellValue(tt.in); got != tt.want {
			t.Errorf("CellValue(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
