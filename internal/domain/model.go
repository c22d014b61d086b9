package domain

import "sort"

// NoAssertion is the license value used when a repository declares none.
const NoAssertion = "NOASSERTION"

// StarredItem is one entry of the starred list, before enrichment.
type StarredItem struct {
	Owner string
	Name  string
	// StarredAt is nil when the API answered without the star timestamp.
	StarredAt *string
}

// FullName returns "owner/name".
func (s *StarredItem) FullName() string {
	return s.Owner + "/" + s.Name
}

// RepoMeta holds the fields read from the single-repository resource.
type RepoMeta struct {
	Name        string
	URL         string
	Description string
	Topics      []string
	License     string
	Stars       int
	PushedAt    *string
}

// RepoRecord is one entry of the persisted catalog.
type RepoRecord struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Owner          string   `json:"owner"`
	URL            string   `json:"url"`
	Description    string   `json:"description"`
	Topics         []string `json:"topics"`
	License        string   `json:"license"`
	Stars          int      `json:"stars"`
	LastUpdate     *string  `json:"last_update"`
	Languages      []string `json:"languages"`
	Subjects       []string `json:"subjects"`
	ManualSubjects []string `json:"manual_subjects"`
	StarredAt      *string  `json:"starred_at"`
	UpdatedAt      string   `json:"updated_at"`
}

// SortKey is starred_at when known, else last_update, else "".
func (r *RepoRecord) SortKey() string {
	if r.StarredAt != nil && *r.StarredAt != "" {
		return *r.StarredAt
	}
	if r.LastUpdate != nil && *r.LastUpdate != "" {
		return *r.LastUpdate
	}
	return ""
}

// SortRecords orders records by SortKey, newest first. ISO-8601 strings
// compare chronologically. Records with equal keys keep their input order.
func SortRecords(records []*RepoRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SortKey() > records[j].SortKey()
	})
}
