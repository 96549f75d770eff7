package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// RawPayload stores an arbitrary JSON object in a jsonb column.
type RawPayload map[string]interface{}

// Value implements driver.Valuer for RawPayload.
func (p RawPayload) Value() (driver.Value, error) {
	if len(p) == 0 {
		return nil, nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner for RawPayload.
func (p *RawPayload) Scan(value interface{}) error {
	if value == nil {
		*p = RawPayload{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into RawPayload", value)
	}

	return json.Unmarshal(bytes, p)
}
