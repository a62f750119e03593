// Package core holds the domain model of the ledger: validated value
// types for entries and users, the money/date primitives, and the
// capability interfaces the storage layer implements.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	Expense EntryKind = "expense"
	Income  EntryKind = "income"
)

type (
	// EntryID is the storage-assigned identifier of a persisted entry.
	EntryID int64

	// EntryKind is a closed two-value tag; amounts are always positive
	// and the kind carries the sign of the flow.
	EntryKind string

	// Date is a calendar date; the time-of-day part is always midnight UTC.
	Date struct {
		time.Time
	}

	// Category is non-empty trimmed text, constructed via NewCategory.
	Category struct {
		name string
	}

	// NewEntry is a not-yet-persisted entry. It exists to be validated
	// and handed to EntryRepository.Add; Note may be empty (absent).
	NewEntry struct {
		Kind       EntryKind
		Amount     Money
		Category   Category
		Note       string
		OccurredOn Date
	}

	// Entry is a persisted entry. Read-only once returned; entries are
	// never updated or deleted.
	Entry struct {
		ID         EntryID
		Kind       EntryKind
		Amount     Money
		Category   Category
		Note       string
		OccurredOn Date
	}

	// EntryFilter narrows List results. Zero-value fields impose no
	// predicate; From and To are inclusive bounds on the occurred-on date.
	EntryFilter struct {
		From     Date
		To       Date
		Category Category
	}

	// User is an account holder. Password material never appears here.
	User struct {
		ID       int64
		Username string
	}
)

func (id EntryID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func (k EntryKind) Valid() bool {
	return k == Expense || k == Income
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// IsEmpty reports whether the date is unset (optional filter bounds).
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// NewCategory validates and constructs a category.
func NewCategory(name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, fmt.Errorf("%w: category cannot be empty", ErrInvalidData)
	}
	return Category{name: name}, nil
}

func (c Category) String() string {
	return c.name
}

// IsZero reports whether the category was never constructed (absent filter field).
func (c Category) IsZero() bool {
	return c.name == ""
}

// Validate checks the entry before it may reach storage. Storage performs
// no secondary validation.
func (e NewEntry) Validate() error {
	if !e.Kind.Valid() {
		return fmt.Errorf("%w: unknown entry kind %q", ErrInvalidData, string(e.Kind))
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if e.Category.IsZero() {
		return fmt.Errorf("%w: category cannot be empty", ErrInvalidData)
	}
	if e.OccurredOn.IsEmpty() {
		return fmt.Errorf("%w: occurred-on date cannot be empty", ErrInvalidData)
	}
	return nil
}
