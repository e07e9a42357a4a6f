package services

import "github.com/custodia-labs/folio/internal/core/domain"

// IdentityQuery matches documents whose title, author and year all match.
// It is a relevance match, so differently tokenised near-duplicates can slip through.
func IdentityQuery(id domain.BookIdentity) domain.Query {
	return domain.Query{Must: []domain.Clause{
		domain.Match(domain.FieldTitle, id.Title),
		domain.Match(domain.FieldAuthor, id.Author),
		domain.Match(domain.FieldYear, id.YearString()),
	}}
}

// WordQuery matches documents whose text matches word.
func WordQuery(word string) domain.Query {
	return domain.Query{Must: []domain.Clause{
		domain.Match(domain.FieldText, word),
	}}
}

// AuthorWordQuery matches documents by author whose text matches word.
func AuthorWordQuery(author, word string) domain.Query {
	return domain.Query{Must: []domain.Clause{
		domain.Match(domain.FieldText, word),
		domain.Match(domain.FieldAuthor, author),
	}}
}

// DateRangeExcludingWordQuery matches documents published in [fromYear, toYear]
// whose text does not match word.
func DateRangeExcludingWordQuery(fromYear, toYear int, word string) domain.Query {
	return domain.Query{
		Must: []domain.Clause{
			domain.Range(domain.FieldYear, domain.FormatYear(fromYear), domain.FormatYear(toYear)),
		},
		MustNot: []domain.Clause{
			domain.Match(domain.FieldText, word),
		},
	}
}

// AuthorQuery matches every document by author.
func AuthorQuery(author string) domain.Query {
	return domain.Query{Must: []domain.Clause{
		domain.Match(domain.FieldAuthor, author),
	}}
}

// YearQuery matches every document published in exactly year.
func YearQuery(year int) domain.Query {
	return domain.Query{Must: []domain.Clause{
		domain.Match(domain.FieldYear, domain.FormatYear(year)),
	}}
}
