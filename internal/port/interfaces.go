package port

import (
	"context"

	"starred-catalog/internal/domain"
)

// StarLister pages through the caller's (or a named user's) starred list.
type StarLister interface {
	ListStarred(ctx context.Context) ([]*domain.StarredItem, error)
}

// RepoFetcher reads the single-repository resource. Any failure is fatal.
type RepoFetcher interface {
	GetRepo(ctx context.Context, owner, name string) (*domain.RepoMeta, error)
}

// LanguageFetcher returns the top languages of a repository, most bytes
// first. A non-success response yields an empty slice, not an error.
type LanguageFetcher interface {
	GetLanguages(ctx context.Context, owner, name string) ([]string, error)
}

// Classifier assigns subjects from description and topics.
type Classifier interface {
	Classify(description string, topics []string) []string
}

// Pacer throttles consecutive page requests.
type Pacer interface {
	Wait(ctx context.Context) error
}

// CatalogStore persists the finished catalog in one write.
type CatalogStore interface {
	Save(records []*domain.RepoRecord) error
	Path() string
}
