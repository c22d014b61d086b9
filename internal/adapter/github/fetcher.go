package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"starred-catalog/internal/common"
	"starred-catalog/internal/domain"
	"starred-catalog/internal/logger"
	"starred-catalog/internal/port"

	"github.com/google/go-github/v53/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const (
	// mediaTypeStarTimestamps asks for {starred_at, repo} entries.
	mediaTypeStarTimestamps = "application/vnd.github.v3.star+json"

	defaultPerPage = 100
	maxLanguages   = 3
)

// Fetcher implements port.StarLister, port.RepoFetcher and
// port.LanguageFetcher on top of the GitHub REST API.
type Fetcher struct {
	client   *github.Client
	username string
	perPage  int
	pacer    port.Pacer
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithUsername lists the named user's stars instead of the caller's.
func WithUsername(username string) Option {
	return func(f *Fetcher) {
		f.username = strings.TrimSpace(username)
	}
}

// WithPacer sets the delay applied after each non-empty starred page.
func WithPacer(p port.Pacer) Option {
	return func(f *Fetcher) {
		if p != nil {
			f.pacer = p
		}
	}
}

// WithPerPage overrides the starred page size. Default is 100.
func WithPerPage(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.perPage = n
		}
	}
}

// NewFetcher builds a GitHub client authenticated with token.
func NewFetcher(token string, opts ...Option) *Fetcher {
	var client *github.Client

	if token == "" {
		client = github.NewClient(nil)
	} else {
		ctx := context.Background()
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		tc := oauth2.NewClient(ctx, ts)
		client = github.NewClient(tc)
	}

	f := &Fetcher{
		client:  client,
		perPage: defaultPerPage,
		pacer:   common.NewFixedPacer(common.DefaultPageDelay),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SetBaseURL points the client at another API root, e.g. GitHub Enterprise.
func (f *Fetcher) SetBaseURL(raw string) error {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return common.WrapError(common.ErrCodeConfig, "invalid GitHub API URL", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return common.NewError(common.ErrCodeConfig, fmt.Sprintf("invalid GitHub API URL %q", raw))
	}
	f.client.BaseURL = u
	return nil
}

// starTarget is the starred-list endpoint, resolved once before paging.
type starTarget struct {
	kind     starTargetKind
	username string
}

type starTargetKind int

const (
	targetAuthenticatedUser starTargetKind = iota
	targetNamedUser
)

func resolveStarTarget(username string) starTarget {
	if username == "" {
		return starTarget{kind: targetAuthenticatedUser}
	}
	return starTarget{kind: targetNamedUser, username: username}
}

func (t starTarget) path(page, perPage int) string {
	q := url.Values{}
	q.Set("per_page", fmt.Sprint(perPage))
	q.Set("page", fmt.Sprint(page))

	if t.kind == targetNamedUser {
		return fmt.Sprintf("users/%s/starred?%s", url.PathEscape(t.username), q.Encode())
	}
	return "user/starred?" + q.Encode()
}

// ListStarred pages through the starred list until an empty page.
func (f *Fetcher) ListStarred(ctx context.Context) ([]*domain.StarredItem, error) {
	target := resolveStarTarget(f.username)

	var items []*domain.StarredItem
	for page := 1; ; page++ {
		batch, err := f.fetchStarredPage(ctx, target, page)
		if err != nil {
			return nil, common.WrapError(common.ErrCodeGitHubAPI, fmt.Sprintf("list starred page %d", page), err)
		}
		if len(batch) == 0 {
			break
		}
		items = append(items, batch...)

		logger.WithFields(logrus.Fields{
			"page":  page,
			"count": len(batch),
			"total": len(items),
		}).Debug("starred page fetched")

		if err := f.pacer.Wait(ctx); err != nil {
			return nil, err
		}
	}

	return items, nil
}

func (f *Fetcher) fetchStarredPage(ctx context.Context, target starTarget, page int) ([]*domain.StarredItem, error) {
	req, err := f.client.NewRequest(http.MethodGet, target.path(page, f.perPage), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", mediaTypeStarTimestamps)

	var raw []json.RawMessage
	if _, err := f.client.Do(ctx, req, &raw); err != nil {
		return nil, err
	}

	items := make([]*domain.StarredItem, 0, len(raw))
	for i, entry := range raw {
		item, err := decodeStarredEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

type starredEntry struct {
	StarredAt *string            `json:"starred_at"`
	Repo      *github.Repository `json:"repo"`
}

// decodeStarredEntry accepts both the timestamped shape and a bare
// repository object, which is what comes back when the media type is ignored.
func decodeStarredEntry(data json.RawMessage) (*domain.StarredItem, error) {
	var entry starredEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, common.WrapError(common.ErrCodeInvalidInput, "decode starred entry", err)
	}

	repo := entry.Repo
	starredAt := entry.StarredAt
	if repo == nil {
		repo = new(github.Repository)
		if err := json.Unmarshal(data, repo); err != nil {
			return nil, common.WrapError(common.ErrCodeInvalidInput, "decode starred repository", err)
		}
		starredAt = nil
	}

	owner, name := repo.GetOwner().GetLogin(), repo.GetName()
	if owner == "" || name == "" {
		if parts := strings.SplitN(repo.GetFullName(), "/", 2); len(parts) == 2 {
			owner, name = parts[0], parts[1]
		}
	}
	if owner == "" || name == "" {
		return nil, common.NewError(common.ErrCodeInvalidInput, "starred entry without owner/name")
	}

	return &domain.StarredItem{Owner: owner, Name: name, StarredAt: starredAt}, nil
}

// GetRepo fetches repository metadata. Any failure aborts the run.
func (f *Fetcher) GetRepo(ctx context.Context, owner, name string) (*domain.RepoMeta, error) {
	repo, _, err := f.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, common.WrapError(common.ErrCodeGitHubAPI, fmt.Sprintf("get repository %s/%s", owner, name), err)
	}
	return toRepoMeta(repo), nil
}

func toRepoMeta(repo *github.Repository) *domain.RepoMeta {
	topics := make([]string, len(repo.Topics))
	copy(topics, repo.Topics)

	license := repo.GetLicense().GetSPDXID()
	if license == "" {
		license = domain.NoAssertion
	}

	var pushedAt *string
	if repo.PushedAt != nil && !repo.PushedAt.IsZero() {
		s := repo.PushedAt.UTC().Format(time.RFC3339)
		pushedAt = &s
	}

	return &domain.RepoMeta{
		Name:        repo.GetName(),
		URL:         repo.GetHTMLURL(),
		Description: repo.GetDescription(),
		Topics:      topics,
		License:     license,
		Stars:       repo.GetStargazersCount(),
		PushedAt:    pushedAt,
	}
}

// GetLanguages returns up to three languages by descending byte count. A
// non-success status degrades to an empty slice; transport errors are
// returned.
func (f *Fetcher) GetLanguages(ctx context.Context, owner, name string) ([]string, error) {
	langs, resp, err := f.client.Repositories.ListLanguages(ctx, owner, name)
	if err != nil {
		if resp != nil && resp.Response != nil && !isSuccess(resp.StatusCode) {
			logger.WithFields(logrus.Fields{
				"repo":   owner + "/" + name,
				"status": resp.StatusCode,
			}).Warn("languages unavailable, continuing without them")
			return []string{}, nil
		}
		return nil, common.WrapError(common.ErrCodeGitHubAPI, fmt.Sprintf("list languages %s/%s", owner, name), err)
	}
	return topLanguages(langs, maxLanguages), nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// topLanguages orders by bytes descending, then name, and keeps n.
func topLanguages(langs map[string]int, n int) []string {
	names := make([]string, 0, len(langs))
	for lang := range langs {
		names = append(names, lang)
	}
	sort.Slice(names, func(i, j int) bool {
		if langs[names[i]] != langs[names[j]] {
			return langs[names[i]] > langs[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}
