package domain

import (
	"fmt"
	"strings"
)

// Stored field names.
const (
	FieldTitle  = "title"
	FieldAuthor = "author"
	FieldYear   = "year_publication"
	FieldText   = "text"
)

// ClauseKind selects how a clause is matched.
type ClauseKind int

const (
	// ClauseMatch is a relevance-scored full-text match of Text against Field.
	ClauseMatch ClauseKind = iota

	// ClauseRange requires Field to lie within [From, To] inclusive.
	ClauseRange
)

// Clause is a single condition of a Query.
type Clause struct {
	Kind  ClauseKind
	Field string

	// Text is the match text for ClauseMatch.
	Text string

	// From and To bound a ClauseRange, inclusive.
	From string
	To   string
}

// Match builds a full-text match clause.
func Match(field, text string) Clause {
	return Clause{Kind: ClauseMatch, Field: field, Text: text}
}

// Range builds an inclusive range clause.
func Range(field, from, to string) Clause {
	return Clause{Kind: ClauseRange, Field: field, From: from, To: to}
}

func (c Clause) String() string {
	if c.Kind == ClauseRange {
		return fmt.Sprintf("%s:[%s TO %s]", c.Field, c.From, c.To)
	}
	return fmt.Sprintf("%s:%q", c.Field, c.Text)
}

// Query is an engine-neutral structured query: every Must clause has to
// hold and no MustNot clause may hold.
type Query struct {
	Must    []Clause
	MustNot []Clause
}

func (q Query) String() string {
	parts := make([]string, 0, len(q.Must)+len(q.MustNot))
	for _, c := range q.Must {
		parts = append(parts, "+"+c.String())
	}
	for _, c := range q.MustNot {
		parts = append(parts, "-"+c.String())
	}
	return strings.Join(parts, " ")
}

// Hit is one document returned by a search.
type Hit struct {
	ID     string
	Fields map[string]string
}

// Identity reads the book identity back out of a hit's stored fields.
func (h Hit) Identity() (BookIdentity, error) {
	year, err := ParseYear(h.Fields[FieldYear])
	if err != nil {
		return BookIdentity{}, fmt.Errorf("hit %s: %w", h.ID, err)
	}
	return BookIdentity{
		Title:  h.Fields[FieldTitle],
		Author: h.Fields[FieldAuthor],
		Year:   year,
	}, nil
}

// Book is a search result row.
type Book struct {
	ID       string
	Identity BookIdentity
}
