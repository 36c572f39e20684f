package domain

import (
	"database/sql/driver"
	"fmt"
)

// Category classifies a study event. The set is closed and every switch over
// a Category lists all four values (checked by the exhaustive linter).
type Category int

const (
	CategoryOther Category = iota
	CategoryAssessment
	CategoryScan
	CategoryTouchpoint
)

// ParseCategory maps the stored representation to a Category.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "assessment":
		return CategoryAssessment, nil
	case "scan":
		return CategoryScan, nil
	case "touchpoint":
		return CategoryTouchpoint, nil
	case "other":
		return CategoryOther, nil
	}
	return CategoryOther, fmt.Errorf("%w: unknown event category %q", ErrInvalidInput, s)
}

func (c Category) String() string {
	switch c {
	case CategoryAssessment:
		return "assessment"
	case CategoryScan:
		return "scan"
	case CategoryTouchpoint:
		return "touchpoint"
	case CategoryOther:
		return "other"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// DisplayName is the participant-facing name of the category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryAssessment:
		return "assessment session"
	case CategoryScan:
		return "body-composition scan"
	case CategoryTouchpoint:
		return "touchpoint visit"
	case CategoryOther:
		return "study event"
	}
	return c.String()
}

// SingleActive reports whether a participant may hold only one confirmed
// upcoming booking in this category at a time.
func (c Category) SingleActive() bool {
	switch c {
	case CategoryAssessment, CategoryScan:
		return true
	case CategoryTouchpoint, CategoryOther:
		return false
	}
	return false
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Value implements driver.Valuer so a Category can be passed as a query argument.
func (c Category) Value() (driver.Value, error) {
	return c.String(), nil
}

// Scan implements sql.Scanner for the events.category text column.
func (c *Category) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return c.UnmarshalText([]byte(v))
	case []byte:
		return c.UnmarshalText(v)
	}
	return fmt.Errorf("scan category: unsupported type %T", src)
}
