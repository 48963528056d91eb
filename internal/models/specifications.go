package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Specifications maps a spec label to its value, stored as jsonb.
type Specifications map[string]string

// Value implements driver.Valuer
func (s Specifications) Value() (driver.Value, error) {
	if s == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner
func (s *Specifications) Scan(src interface{}) error {
	if src == nil {
		*s = Specifications{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported specifications type %T", src)
	}

	return json.Unmarshal(data, s)
}
