package selection

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Flag is a category flag from the export. The selector writes booleans;
// any other truthy JSON value (non-zero number, non-empty string) also
// counts as set.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		*f = false
		return nil
	case bytes.Equal(data, []byte("true")):
		*f = true
		return nil
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case float64:
		*f = t != 0
	case string:
		*f = t != ""
	case []any:
		*f = len(t) > 0
	case map[string]any:
		*f = len(t) > 0
	default:
		*f = false
	}
	return nil
}

// Text is a display value the selector writes either as a string or a number.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	// Numbers and other literals are shown as written.
	*t = Text(data)
	return nil
}

func (t Text) String() string {
	return string(t)
}

// Count is a display counter. Numbers are truncated and numeric strings
// parsed; anything else reads as zero.
type Count int

// UnmarshalJSON implements json.Unmarshaler.
func (n *Count) UnmarshalJSON(data []byte) error {
	*n = 0
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	switch t := v.(type) {
	case float64:
		*n = Count(t)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			*n = Count(f)
		}
	}
	return nil
}
