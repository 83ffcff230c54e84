package ports

import (
	"context"

	"namecorrector/domain/taxon"
)

// NameMatcher resolves one scientific name against a taxonomic backbone
type NameMatcher interface {
	Match(ctx context.Context, name string) (*taxon.MatchResult, error)
}

// StatusCoder is implemented by matcher errors that carry the HTTP status of
// a non-success response
type StatusCoder interface {
	StatusCode() int
}
