package domain

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"time"
)

const DateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Date is a calendar day in YYYY-MM-DD form. Valid only checks the literal
// pattern; calendar correctness is left to the store.
type Date string

func IsDate(s string) bool { return datePattern.MatchString(s) }

func (d Date) Valid() bool { return IsDate(string(d)) }

func (d Date) Value() (driver.Value, error) {
	if d == "" {
		return nil, nil
	}
	return string(d), nil
}

// Scan accepts what the drivers hand back for DATE columns: time.Time with
// parseTime, or text that may carry a time suffix.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = Date(v.Format(DateLayout))
	case string:
		*d = trimDate(v)
	case []byte:
		*d = trimDate(string(v))
	default:
		return fmt.Errorf("date: cannot scan %T", src)
	}
	return nil
}

func trimDate(s string) Date {
	if len(s) > len(DateLayout) && IsDate(s[:len(DateLayout)]) {
		return Date(s[:len(DateLayout)])
	}
	return Date(s)
}
