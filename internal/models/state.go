package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ItemState is the canonical state of one (person, item) cell.
type ItemState int

const (
	// Absent means the person does not have the item. Encoded as an empty cell.
	Absent ItemState = iota
	// Present means the person has the item. Encoded as 1.
	Present
	// Donated means the item was donated. Encoded as the donation marker.
	Donated
)

// DefaultDonationMarker is the cell token the equipment sheet uses for donated items.
const DefaultDonationMarker = "ת"

// AllStates lists the states in display order.
var AllStates = []ItemState{Absent, Present, Donated}

func (s ItemState) String() string {
	switch s {
	case Present:
		return "present"
	case Donated:
		return "donated"
	default:
		return "absent"
	}
}

// Held reports whether the state counts as owning the item (present or donated).
func (s ItemState) Held() bool {
	return s == Present || s == Donated
}

// ParseItemState parses the String form of a state.
func ParseItemState(s string) (ItemState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "absent", "":
		return Absent, nil
	case "present":
		return Present, nil
	case "donated":
		return Donated, nil
	}
	return Absent, fmt.Errorf("unknown item state %q", s)
}

// StateCodec maps raw cell values to ItemState and back.
type StateCodec struct {
	DonationMarker string
}

// DefaultStateCodec uses DefaultDonationMarker.
var DefaultStateCodec = StateCodec{DonationMarker: DefaultDonationMarker}

func (c StateCodec) marker() string {
	if c.DonationMarker == "" {
		return DefaultDonationMarker
	}
	return c.DonationMarker
}

// Decode normalizes a raw cell value. Unrecognized values decode to Absent.
func (c StateCodec) Decode(v any) ItemState {
	switch val := v.(type) {
	case nil:
		return Absent
	case string:
		return c.decodeString(val)
	case float64:
		return decodeNumber(val)
	case float32:
		return decodeNumber(float64(val))
	case int:
		return decodeNumber(float64(val))
	case int64:
		return decodeNumber(float64(val))
	case int32:
		return decodeNumber(float64(val))
	case fmt.Stringer:
		return c.decodeString(val.String())
	}
	return Absent
}

func (c StateCodec) decodeString(s string) ItemState {
	s = strings.TrimSpace(s)
	switch s {
	case "", "0":
		return Absent
	case "1":
		return Present
	case c.marker():
		return Donated
	}
	return Absent
}

func decodeNumber(f float64) ItemState {
	if math.IsNaN(f) {
		return Absent
	}
	if f == 1 {
		return Present
	}
	return Absent
}

// Encode returns the cell text written for a state.
func (c StateCodec) Encode(s ItemState) string {
	switch s {
	case Present:
		return "1"
	case Donated:
		return c.marker()
	default:
		return ""
	}
}

// FormatCell renders a raw backend value as cell text. Whole numbers lose
// their fractional part so a numeric 1 reads back as "1".
func FormatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if math.IsNaN(val) {
			return ""
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	}
	return fmt.Sprint(v)
}

// CellValue is the inverse of FormatCell for writing: canonical numeric text
// becomes a float64 so numeric cells stay numeric, empty text becomes nil and
// anything else (leading zeros included) stays a string.
func CellValue(s string) any {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || strconv.FormatFloat(f, 'f', -1, 64) != s {
		return s
	}
	return f
}
