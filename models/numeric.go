package models

import (
	"bytes"
	"strconv"
)

// Numeric decodes a JSON number permissively: numbers, numeric strings,
// empty strings, null and garbage all land on a usable float, with anything
// unparseable treated as zero. Billing forms send half-filled rows and the
// shop flow expects those to count as zero, not to fail the request.
type Numeric float64

func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*n = 0
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return nil
		}
		data = []byte(s)
	}
	if v, err := strconv.ParseFloat(string(data), 64); err == nil {
		*n = Numeric(v)
	}
	return nil
}

func (n Numeric) Float64() float64 { return float64(n) }
