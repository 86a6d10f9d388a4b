package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is the canonical identifier type. The remote service hands out numeric
// ids while locally created records use timestamp-derived ones, so every
// external value is normalized to a string before it is stored or compared.
type ID string

func (id ID) String() string { return string(id) }

// CanonicalID converts any id representation coming from an external boundary
// into the canonical string form. Raw mixed-type comparison is never allowed.
func CanonicalID(v interface{}) ID {
	switch val := v.(type) {
	case nil:
		return ""
	case ID:
		return val
	case string:
		return ID(val)
	case int:
		return ID(strconv.Itoa(val))
	case int64:
		return ID(strconv.FormatInt(val, 10))
	case float64:
		// JSON numbers decode as float64; ids are integral in practice.
		return ID(strconv.FormatInt(int64(val), 10))
	case json.Number:
		return ID(val.String())
	default:
		return ID(fmt.Sprintf("%v", val))
	}
}
