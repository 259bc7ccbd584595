package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an entity identifier. The API is free to send it as a JSON string
// or a JSON number; it is always handled as a string here.
type ID string

// String returns the identifier text
func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON accepts "42", 42 and null
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}
