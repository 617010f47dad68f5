package custom

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Datetime is a UTC timestamp that stores the same way in JSON, Mongo and SQL.
//
// The zero value means "not set" and is written as null everywhere.
type Datetime time.Time

// Now returns the current time as a Datetime, truncated to milliseconds as that is what Mongo keeps.
func Now() Datetime {
	return Datetime(time.Now().UTC().Truncate(time.Millisecond))
}

// Time returns the underlying time.
func (d Datetime) Time() time.Time {
	return time.Time(d)
}

// IsZero reports whether the datetime is unset.
func (d Datetime) IsZero() bool {
	return time.Time(d).IsZero()
}

// MarshalJSON implements the json.Marshaler interface.
func (d Datetime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(time.Time(d).UTC().Format(time.RFC3339))
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *Datetime) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		*d = Datetime{}
		return nil
	}

	var s string
	if err := json.Unmarshal(text, &s); err != nil {
		return fmt.Errorf("invalid datetime: %w", err)
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid datetime: %w", err)
	}
	*d = Datetime(t.UTC())
	return nil
}

// MarshalBSONValue implements the bson.ValueMarshaler interface. The value is stored as a native BSON datetime so
// that it can be sorted on.
func (d Datetime) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if d.IsZero() {
		return bson.TypeNull, nil, nil
	}
	return bson.MarshalValue(time.Time(d).UTC())
}

// UnmarshalBSONValue implements the bson.ValueUnmarshaler interface.
func (d *Datetime) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bson.TypeNull, bson.TypeUndefined:
		*d = Datetime{}
		return nil
	case bson.TypeDateTime:
		got, ok := bson.RawValue{Type: t, Value: data}.TimeOK()
		if !ok {
			return fmt.Errorf("invalid datetime, malformed bson value")
		}
		*d = Datetime(got.UTC())
		return nil
	default:
		return fmt.Errorf("invalid datetime, bson type %s not supported", t)
	}
}

// Value implements the driver.Valuer interface.
func (d Datetime) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return time.Time(d).UTC(), nil
}

// Scan implements the sql.Scanner interface.
func (d *Datetime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Datetime{}
	case time.Time:
		*d = Datetime(v.UTC())
	case string:
		return d.parseText(v)
	case []byte:
		return d.parseText(string(v))
	default:
		return fmt.Errorf("invalid scan, type %T not supported for %T", src, d)
	}
	return nil
}

func (d *Datetime) parseText(s string) error {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = Datetime(t.UTC())
			return nil
		}
	}
	return fmt.Errorf("invalid datetime: %s", s)
}

// String implements the fmt.Stringer interface.
func (d Datetime) String() string {
	return time.Time(d).UTC().Format(time.RFC3339)
}
