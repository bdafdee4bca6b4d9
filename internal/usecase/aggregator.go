// Package usecase contains the business logic of the application.
package usecase

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/mizuno-gh/repoview/internal/domain"
	"github.com/mizuno-gh/repoview/internal/gateway"
)

// Aggregator is the use case for building a repository activity report.
type Aggregator struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, logger *log.Logger) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Report fetches the repository metadata and the four activity collections
// and assembles their counts. Collections are fetched strictly one after
// another, each to completion; concurrency lives inside the gateway's
// pagination rounds. Every fetch failure is logged and degrades to a missing
// repository block or a zero count. Report never fails as a whole.
func (a *Aggregator) Report(ctx context.Context) *domain.Report {
	report := &domain.Report{}

	repo, err := a.fetcher.FetchRepository(ctx)
	if err != nil {
		a.logger.Warn("repository metadata unavailable", "error", err)
	} else {
		report.Repository = repo
	}

	commits, err := a.fetcher.FetchEntries(ctx, gateway.ResourceCommits, "")
	if err != nil {
		a.logger.Warn("fetching commits failed", "error", err)
	}
	report.Commits = len(commits)

	openIssues, err := a.fetcher.FetchEntries(ctx, gateway.ResourceIssues, gateway.StateOpen)
	if err != nil {
		a.logger.Warn("fetching open issues failed", "error", err)
	}
	report.OpenIssues = len(openIssues)

	closedIssues, err := a.fetcher.FetchEntries(ctx, gateway.ResourceIssues, gateway.StateClosed)
	if err != nil {
		a.logger.Warn("fetching closed issues failed", "error", err)
	}
	report.ClosedIssues = len(closedIssues)

	contributors, err := a.fetcher.FetchEntries(ctx, gateway.ResourceContributors, "")
	if err != nil {
		a.logger.Warn("fetching contributors failed", "error", err)
	}
	report.Contributors = len(contributors)

	return report
}
