// Package entity defines the domain models for the examples feature.
package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// NameMinLength is the minimum number of characters of a trimmed name.
	NameMinLength = 2
	// NameMaxLength mirrors the column size of examples.name.
	NameMaxLength = 255

	// DefaultOrder is the listing order: newest first, id breaks ties.
	DefaultOrder = "created_at DESC, id DESC"
)

var (
	ErrNameBlank    = errors.New("This field may not be blank.")
	ErrNameTooShort = fmt.Errorf("Name must be at least %d characters long.", NameMinLength)
	ErrNameTooLong  = fmt.Errorf("Ensure this field has no more than %d characters.", NameMaxLength)
)

// Example represents a single "Example Item" record.
// Timestamps are maintained by the usecase clock, not by gorm callbacks,
// so that created_at == updated_at on creation and updated_at strictly grows.
type Example struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:255;not null;index:idx_examples_name"`
	Description string    `gorm:"type:text;not null;default:''"`
	CreatedAt   time.Time `gorm:"not null;precision:6;autoCreateTime:false;index:idx_examples_active_created,priority:2"`
	UpdatedAt   time.Time `gorm:"not null;precision:6;autoUpdateTime:false"`
	IsActive    bool      `gorm:"not null;default:true;index:idx_examples_active_created,priority:1"`
}

// TableName returns the table name for GORM.
func (Example) TableName() string {
	return "examples"
}

// String renders the record the way it is shown to humans.
func (e Example) String() string {
	return e.Name
}

// GoString is used by %#v.
func (e Example) GoString() string {
	return fmt.Sprintf("<ExampleModel: %s>", e.Name)
}

// Stamp sets both timestamps for a new record.
func (e *Example) Stamp(now time.Time) {
	now = normalizeTime(now)
	e.CreatedAt = now
	e.UpdatedAt = now
}

// Touch refreshes UpdatedAt. The new value is always strictly after the
// previous one, even when the clock has not advanced at storage precision.
func (e *Example) Touch(now time.Time) {
	now = normalizeTime(now)
	if !now.After(e.UpdatedAt) {
		now = e.UpdatedAt.Add(time.Microsecond)
	}
	e.UpdatedAt = now
}

// NormalizeName trims surrounding whitespace and checks the length rules.
func NormalizeName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	n := utf8.RuneCountInString(name)
	switch {
	case n == 0:
		return "", ErrNameBlank
	case n < NameMinLength:
		return "", ErrNameTooShort
	case n > NameMaxLength:
		return "", ErrNameTooLong
	}
	return name, nil
}

// normalizeTime drops sub-microsecond precision so values survive a
// round trip through every supported database.
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
