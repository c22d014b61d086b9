package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestStarredItem_FullName(t *testing.T) {
	item := &StarredItem{Owner: "acme", Name: "widget"}
	assert.Equal(t, "acme/widget", item.FullName())
}

func TestRepoRecord_SortKey(t *testing.T) {
	tests := []struct {
		name   string
		record *RepoRecord
		want   string
	}{
		{
			name:   "starred_at wins",
			record: &RepoRecord{StarredAt: strPtr("2024-02-01T00:00:00Z"), LastUpdate: strPtr("2024-05-01T00:00:00Z")},
			want:   "2024-02-01T00:00:00Z",
		},
		{
			name:   "falls back to last_update",
			record: &RepoRecord{LastUpdate: strPtr("2023-01-01T00:00:00Z")},
			want:   "2023-01-01T00:00:00Z",
		},
		{
			name:   "nothing known",
			record: &RepoRecord{},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.SortKey())
		})
	}
}

func TestSortRecords_Fallback(t *testing.T) {
	jan := &RepoRecord{ID: "a/jan", StarredAt: strPtr("2024-01-01")}
	mar := &RepoRecord{ID: "b/mar", StarredAt: strPtr("2024-03-01")}
	old := &RepoRecord{ID: "c/old", LastUpdate: strPtr("2023-01-01")}

	records := []*RepoRecord{jan, mar, old}
	SortRecords(records)

	assert.Equal(t, []string{"b/mar", "a/jan", "c/old"}, ids(records))
}

func TestSortRecords_StableOnTies(t *testing.T) {
	first := &RepoRecord{ID: "x/first"}
	second := &RepoRecord{ID: "x/second"}
	newest := &RepoRecord{ID: "x/newest", StarredAt: strPtr("2024-06-01T10:00:00Z")}

	records := []*RepoRecord{first, second, newest}
	SortRecords(records)

	assert.Equal(t, []string{"x/newest", "x/first", "x/second"}, ids(records))
}

func ids(records []*RepoRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}
