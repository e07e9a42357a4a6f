package domain

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// IdentitySeparator splits a source filename into title, author and year.
const IdentitySeparator = " - "

// BookIdentity is the (title, author, year) triple that identifies a book
// for deduplication purposes.
type BookIdentity struct {
	Title  string
	Author string
	Year   int
}

// YearString renders the year the way it is stored: four digits.
func (b BookIdentity) YearString() string {
	return FormatYear(b.Year)
}

// Key returns a stable string for in-process locking and logging.
func (b BookIdentity) Key() string {
	return b.Title + IdentitySeparator + b.Author + IdentitySeparator + b.YearString()
}

func (b BookIdentity) String() string {
	return fmt.Sprintf("%q by %s (%s)", b.Title, b.Author, b.YearString())
}

// Validate checks that every part of the identity is present.
func (b BookIdentity) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("%w: empty title", ErrInvalidInput)
	}
	if strings.TrimSpace(b.Author) == "" {
		return fmt.Errorf("%w: empty author", ErrInvalidInput)
	}
	if b.Year < 0 || b.Year > 9999 {
		return fmt.Errorf("%w: year %d out of range", ErrInvalidInput, b.Year)
	}
	return nil
}

// StoredDocument is a book held by the search engine. It is never
// updated or deleted once stored.
type StoredDocument struct {
	ID       string
	Identity BookIdentity
	Text     string
}

// FormatYear renders a year as a zero-padded four digit string.
func FormatYear(year int) string {
	return fmt.Sprintf("%04d", year)
}

// ParseYear accepts exactly four ASCII digits.
func ParseYear(s string) (int, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("%w: year %q is not four digits", ErrInvalidInput, s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: year %q is not four digits", ErrInvalidInput, s)
		}
	}
	return strconv.Atoi(s)
}

// ParseFilename derives a BookIdentity from "<title> - <author> - <year>.<ext>".
// Only the last extension is removed. Anything that does not split into
// exactly three non-empty segments with a four digit year is ErrMalformedInput.
func ParseFilename(name string) (BookIdentity, error) {
	base := filepath.Base(name)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	parts := strings.Split(stem, IdentitySeparator)
	if len(parts) != 3 {
		return BookIdentity{}, fmt.Errorf("%w: %q has %d segment(s), want 3", ErrMalformedInput, base, len(parts))
	}
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			return BookIdentity{}, fmt.Errorf("%w: %q has an empty segment", ErrMalformedInput, base)
		}
	}

	year, err := ParseYear(parts[2])
	if err != nil {
		return BookIdentity{}, fmt.Errorf("%w: %q: %v", ErrMalformedInput, base, err)
	}

	return BookIdentity{Title: parts[0], Author: parts[1], Year: year}, nil
}
