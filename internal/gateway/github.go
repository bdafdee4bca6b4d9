// Package gateway provides a gateway to a GitHub-style repository API,
// wrapping the raw paginated REST endpoints behind a small interface.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v84/github"
	"github.com/montanaflynn/stats"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	"github.com/mizuno-gh/repoview/internal/config"
	"github.com/mizuno-gh/repoview/internal/domain"
)

const acceptHeader = "application/vnd.github+json"

// Resource types served by FetchEntries.
const (
	ResourceCommits      = "commits"
	ResourceIssues       = "issues"
	ResourceContributors = "contributors"
)

// Issue state filters.
const (
	StateOpen   = "open"
	StateClosed = "closed"
)

// Entry is one JSON object from a paginated collection. The records differ
// per resource type, so they stay schemaless here; callers that need typed
// fields decode further themselves.
type Entry map[string]any

// PageResult is the outcome of one page request. Exactly one of three shapes
// occurs: a transport failure (Err set, Status zero), a non-200 response
// (Status set, everything else empty), or a 200 response (Raw holds the body
// if it could be read, Entries the decoded array if Raw parses). A decode
// failure leaves Raw intact.
type PageResult struct {
	Page    int
	Status  int
	Entries []Entry
	Raw     []byte
	Err     error
}

// Terminal reports whether this page ends pagination: any failure, any
// non-200 status, or a page with no entries.
func (p PageResult) Terminal() bool {
	return p.Err != nil || p.Status != http.StatusOK || len(p.Entries) == 0
}

// Fetcher defines the behavior of a gateway for fetching repository data.
type Fetcher interface {
	// FetchRepository retrieves the repository metadata document.
	FetchRepository(ctx context.Context) (*domain.Repository, error)
	// FetchEntries retrieves a full paginated collection. The state filter
	// applies to issues and is skipped by passing "".
	FetchEntries(ctx context.Context, resource, state string) ([]Entry, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	httpClient *http.Client
	baseURL    string
	batchSize  int
	userAgent  string
	logger     *log.Logger
}

// NewGitHubGateway creates a gateway whose HTTP client carries the bearer
// token on every request and pauses on GitHub secondary rate limits.
func NewGitHubGateway(cfg config.Config, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
		Timeout: cfg.HTTPTimeout,
	}
	return &GitHubGateway{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		batchSize:  cfg.BatchSize,
		userAgent:  cfg.UserAgent,
		logger:     logger,
	}, nil
}

// FetchRepository performs a single GET of the base URL and maps the typed
// response onto the domain type.
func (g *GitHubGateway) FetchRepository(ctx context.Context) (*domain.Repository, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build repository request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch repository metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch repository metadata: status %d", resp.StatusCode)
	}

	var repo github.Repository
	if err := json.NewDecoder(resp.Body).Decode(&repo); err != nil {
		return nil, fmt.Errorf("decode repository metadata: %w", err)
	}

	return &domain.Repository{
		ID:       repo.GetID(),
		NodeID:   repo.GetNodeID(),
		Name:     repo.GetName(),
		FullName: repo.GetFullName(),
		Language: repo.GetLanguage(),
		Private:  repo.GetPrivate(),
	}, nil
}

// FetchEntries retrieves the whole collection at {base}/{resource} by
// requesting pages in rounds of batchSize concurrent GETs. A round is joined
// completely before it is evaluated; valid pages of the final round are still
// appended before pagination stops (a short page elsewhere in the batch does
// not discard its siblings). There are no retries: a transient failure of a
// single page is indistinguishable from pagination exhaustion and ends the
// fetch for this resource.
func (g *GitHubGateway) FetchEntries(ctx context.Context, resource, state string) ([]Entry, error) {
	endpoint, err := url.JoinPath(g.baseURL, resource)
	if err != nil {
		return nil, fmt.Errorf("build %s URL: %w", resource, err)
	}

	var (
		all       []Entry
		pageSizes []float64
	)
	page := 1

	for {
		results := make([]PageResult, g.batchSize)
		var eg errgroup.Group
		for i := 0; i < g.batchSize; i++ {
			eg.Go(func() error {
				results[i] = g.fetchPage(ctx, endpoint, page+i, state)
				return nil
			})
		}
		// Every outcome lands in its PageResult slot; nothing errors here.
		_ = eg.Wait()

		terminal := false
		for _, res := range results {
			if res.Terminal() {
				terminal = true
				continue
			}
			all = append(all, res.Entries...)
			pageSizes = append(pageSizes, float64(len(res.Entries)))
		}
		if terminal {
			break
		}
		page += g.batchSize
	}

	if len(pageSizes) > 0 {
		mean, _ := stats.Mean(pageSizes)
		median, _ := stats.Median(pageSizes)
		g.logger.Debug("fetched collection",
			"resource", resource,
			"entries", len(all),
			"pages", len(pageSizes),
			"mean_page_size", mean,
			"median_page_size", median,
		)
	}
	return all, nil
}

// fetchPage performs one page GET. All failure modes are absorbed into the
// returned PageResult so pagination never sees a partially initialized value.
func (g *GitHubGateway) fetchPage(ctx context.Context, endpoint string, page int, state string) PageResult {
	result := PageResult{Page: page}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		result.Err = err
		return result
	}
	q := req.URL.Query()
	q.Set("page", strconv.Itoa(page))
	if state != "" {
		q.Set("state", state)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Warn("page fetch failed", "url", req.URL.String(), "error", err)
		result.Err = err
		return result
	}
	defer resp.Body.Close()

	result.Status = resp.StatusCode
	if resp.StatusCode != http.StatusOK {
		g.logger.Warn("unexpected page status", "url", req.URL.String(), "status", resp.StatusCode)
		return result
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		g.logger.Warn("reading page body failed", "url", req.URL.String(), "error", err)
		return result
	}
	result.Raw = raw

	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		g.logger.Warn("decoding page body failed", "url", req.URL.String(), "error", err)
		return result
	}
	result.Entries = entries
	return result
}
