package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Expense categories. The set is closed; clients aggregate by these exact values.
const (
	CategoryFood          = "Food"
	CategoryTransport     = "Transport"
	CategoryShopping      = "Shopping"
	CategoryBills         = "Bills"
	CategoryEntertainment = "Entertainment"
	CategoryOther         = "Other"
)

// Categories lists every valid expense category.
var Categories = []string{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryBills,
	CategoryEntertainment,
	CategoryOther,
}

// Expense is a single dated spending record owned by exactly one user.
// The JSON field names ("_id", ISO-8601 "date") are a compatibility
// contract with existing clients and must not change.
type Expense struct {
	ID          int     `json:"_id"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        Date    `json:"date"`
	UserID      int     `json:"-"`
}

// Date is a calendar date with no time-of-day significance. It accepts
// both "2006-01-02" and RFC 3339 input and always marshals as RFC 3339
// at UTC midnight, matching what clients already parse.
type Date struct {
	time.Time
}

// NewDate returns a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.UTC().Format(time.RFC3339) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

// Value implements driver.Valuer so Date maps to a SQL DATE column.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implements sql.Scanner for DATE columns.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	case nil:
		d.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}
