package service

import (
	"context"
	"time"

	"starred-catalog/internal/domain"
	"starred-catalog/internal/logger"
	"starred-catalog/internal/port"

	"github.com/sirupsen/logrus"
)

// updatedAtLayout matches UTC timestamps with microseconds, e.g.
// 2024-06-02T10:00:00.123456Z.
const updatedAtLayout = "2006-01-02T15:04:05.000000Z"

// CatalogService runs the starred-repository pipeline.
type CatalogService struct {
	stars      port.StarLister
	repos      port.RepoFetcher
	languages  port.LanguageFetcher
	classifier port.Classifier
	store      port.CatalogStore
	nowFunc    func() time.Time
}

// NewCatalogService wires the pipeline stages.
func NewCatalogService(
	stars port.StarLister,
	repos port.RepoFetcher,
	languages port.LanguageFetcher,
	classifier port.Classifier,
	store port.CatalogStore,
) *CatalogService {
	return &CatalogService{
		stars:      stars,
		repos:      repos,
		languages:  languages,
		classifier: classifier,
		store:      store,
		nowFunc:    time.Now,
	}
}

// Run builds the catalog and writes it once. It returns the record count.
// Nothing is written when any fatal step fails.
func (s *CatalogService) Run(ctx context.Context) (int, error) {
	records, err := s.Build(ctx)
	if err != nil {
		return 0, err
	}

	if err := s.store.Save(records); err != nil {
		return 0, err
	}

	logger.WithFields(logrus.Fields{
		"records": len(records),
		"path":    s.store.Path(),
	}).Info("catalog written")
	return len(records), nil
}

// Build fetches, enriches and classifies every starred repository and
// returns the records sorted newest first.
func (s *CatalogService) Build(ctx context.Context) ([]*domain.RepoRecord, error) {
	starred, err := s.stars.ListStarred(ctx)
	if err != nil {
		return nil, err
	}
	logger.Infof("fetched %d starred repositories", len(starred))

	records := make([]*domain.RepoRecord, 0, len(starred))
	for _, item := range starred {
		record, err := s.Enrich(ctx, item)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	domain.SortRecords(records)
	return records, nil
}

// Enrich turns one starred entry into a record. A failed detail fetch is
// returned as is; the language fetcher reports non-success statuses as an
// empty slice.
func (s *CatalogService) Enrich(ctx context.Context, item *domain.StarredItem) (*domain.RepoRecord, error) {
	meta, err := s.repos.GetRepo(ctx, item.Owner, item.Name)
	if err != nil {
		return nil, err
	}

	langs, err := s.languages.GetLanguages(ctx, item.Owner, item.Name)
	if err != nil {
		return nil, err
	}
	if langs == nil {
		langs = []string{}
	}

	topics := meta.Topics
	if topics == nil {
		topics = []string{}
	}

	logger.WithField("repo", item.FullName()).Debug("repository enriched")

	return &domain.RepoRecord{
		ID:             item.FullName(),
		Name:           meta.Name,
		Owner:          item.Owner,
		URL:            meta.URL,
		Description:    meta.Description,
		Topics:         topics,
		License:        meta.License,
		Stars:          meta.Stars,
		LastUpdate:     meta.PushedAt,
		Languages:      langs,
		Subjects:       s.classifier.Classify(meta.Description, topics),
		ManualSubjects: []string{},
		StarredAt:      item.StarredAt,
		UpdatedAt:      s.nowFunc().UTC().Format(updatedAtLayout),
	}, nil
}
