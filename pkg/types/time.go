package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// MillisecondTimestamp is a time value encoded as epoch milliseconds on the wire,
// which is the x value format the charting library consumes.
type MillisecondTimestamp time.Time

func NewMillisecondTimestampFromInt(i int64) MillisecondTimestamp {
	return MillisecondTimestamp(time.UnixMilli(i).UTC())
}

func (t MillisecondTimestamp) Time() time.Time {
	return time.Time(t)
}

func (t MillisecondTimestamp) Unix() int64 {
	return time.Time(t).UnixMilli()
}

func (t MillisecondTimestamp) String() string {
	return time.Time(t).UTC().Format(time.RFC3339)
}

func (t MillisecondTimestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(t.Unix(), 10)), nil
}

func (t *MillisecondTimestamp) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch vt := v.(type) {
	case float64:
		*t = NewMillisecondTimestampFromInt(int64(vt))
		return nil

	case string:
		if vt == "" {
			// treat empty string as 0
			*t = MillisecondTimestamp(time.Time{})
			return nil
		}

		i, err := strconv.ParseInt(vt, 10, 64)
		if err != nil {
			return err
		}

		*t = NewMillisecondTimestampFromInt(i)
		return nil
	}

	return fmt.Errorf("can not parse %T %+v as millisecond timestamp", v, v)
}

// MarshalYAML keeps the yaml output readable, the json output stays numeric.
func (t MillisecondTimestamp) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}
