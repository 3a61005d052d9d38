package model

import (
	"agenda/shared/constant"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Clock is a wall-clock time of day stored in a Postgres TIME column, kept as "HH:MM:SS".
type Clock string

func ParseClock(value string) (Clock, error) {
	value = strings.TrimSpace(value)

	for _, layout := range []string{constant.ClockFormat, constant.ClockShortFormat} {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return Clock(parsed.Format(constant.ClockFormat)), nil
		}
	}

	return "", fmt.Errorf("invalid time of day %q", value)
}

// Short renders the clock as "HH:MM" for replies.
func (c Clock) Short() string {
	parsed, err := time.Parse(constant.ClockFormat, string(c))
	if err != nil {
		return string(c)
	}

	return parsed.Format(constant.ClockShortFormat)
}

func (c Clock) String() string {
	return string(c)
}

// Scan implements sql.Scanner.
func (c *Clock) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*c = ""

		return nil
	case time.Time:
		*c = Clock(v.Format(constant.ClockFormat))

		return nil
	case []byte:
		return c.scanString(string(v))
	case string:
		return c.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into Clock", src)
	}
}

func (c *Clock) scanString(value string) error {
	// TIME columns may carry fractional seconds.
	if idx := strings.IndexByte(value, '.'); idx >= 0 {
		value = value[:idx]
	}

	parsed, err := ParseClock(value)
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}

// Value implements driver.Valuer.
func (c Clock) Value() (driver.Value, error) {
	if c == "" {
		return nil, nil
	}

	return string(c), nil
}
