package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a list of IDs that is stored as a JSON array in SQL columns.
type StringList []string

// Value implements the driver.Valuer interface.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("error marshalling string list: %w", err)
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface.
func (l *StringList) Scan(src any) error {
	return scanJSON(src, l)
}

// DropdownOptions is an ordered list of dropdown categories that is stored as a JSON array in SQL columns.
type DropdownOptions []DropdownOption

// Value implements the driver.Valuer interface.
func (o DropdownOptions) Value() (driver.Value, error) {
	if o == nil {
		o = DropdownOptions{}
	}
	b, err := json.Marshal([]DropdownOption(o))
	if err != nil {
		return nil, fmt.Errorf("error marshalling dropdown options: %w", err)
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface.
func (o *DropdownOptions) Scan(src any) error {
	return scanJSON(src, o)
}

func scanJSON(src any, dst any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		return nil
	case string:
		b = []byte(v)
	case []byte:
		b = v
	default:
		return fmt.Errorf("invalid scan, type %T not supported for %T", src, dst)
	}
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("error unmarshalling %T: %w", dst, err)
	}
	return nil
}
