package repository

import (
	"context"
	"fmt"

	"reviewer-dashboard/internal/config"
	"reviewer-dashboard/internal/domain"
	"reviewer-dashboard/internal/retry"

	"github.com/sirupsen/logrus"
)

// reviewedPages выборка истории ограничена одной страницей из 100 PR.
const reviewedPages = 1

// PRRepository реализует domain.PullRequestSource поверх GitHub GraphQL API.
type PRRepository struct {
	client GraphQLRunner
	owner  string
	name   string
	policy retry.Policy
	logger *logrus.Logger
}

// NewPRRepository создает новый экземпляр PRRepository.
func NewPRRepository(client GraphQLRunner, cfg config.Config, logger *logrus.Logger) *PRRepository {
	return &PRRepository{
		client: client,
		owner:  cfg.RepoOwner,
		name:   cfg.RepoName,
		policy: retry.NewPolicy(cfg.RetryMaxAttempts, cfg.RetryInitialDelay, IsTransient),
		logger: logger,
	}
}

// FetchOpenPullRequests возвращает все открытые PR с их запросами ревью.
func (r *PRRepository) FetchOpenPullRequests(ctx context.Context) ([]domain.OpenPullRequest, bool) {
	logEntry := r.logEntry("fetch_open_pull_requests")
	logEntry.Info("Fetching open pull requests")

	prs, complete := fetchPages(ctx, r.policy, logEntry, 0, func(ctx context.Context, cursor *string) (page[domain.OpenPullRequest], error) {
		var resp openPullRequestsResponse
		if err := r.client.Run(ctx, openPullRequestsQuery, r.vars(cursor), &resp); err != nil {
			return page[domain.OpenPullRequest]{}, fmt.Errorf("failed to query open pull requests: %w", err)
		}

		conn := resp.Repository.PullRequests
		return page[domain.OpenPullRequest]{
			nodes:       toOpenPullRequests(conn.Nodes),
			endCursor:   conn.PageInfo.EndCursor,
			hasNextPage: conn.PageInfo.HasNextPage,
		}, nil
	})

	withReviewers := 0
	for _, pr := range prs {
		if len(pr.ReviewRequests) > 0 {
			withReviewers++
		}
	}

	logEntry.WithFields(logrus.Fields{
		"total":          len(prs),
		"with_reviewers": withReviewers,
		"complete":       complete,
	}).Info("Open pull requests fetched")

	return prs, complete
}

// FetchReviewedPullRequests возвращает одну страницу недавно обновленных PR с ревью.
func (r *PRRepository) FetchReviewedPullRequests(ctx context.Context) ([]domain.HistoricalPullRequest, bool) {
	logEntry := r.logEntry("fetch_reviewed_pull_requests")
	logEntry.Info("Fetching reviewed pull requests")

	prs, complete := fetchPages(ctx, r.policy, logEntry, reviewedPages, func(ctx context.Context, cursor *string) (page[domain.HistoricalPullRequest], error) {
		var resp reviewedPullRequestsResponse
		if err := r.client.Run(ctx, reviewedPullRequestsQuery, r.vars(cursor), &resp); err != nil {
			return page[domain.HistoricalPullRequest]{}, fmt.Errorf("failed to query reviewed pull requests: %w", err)
		}

		conn := resp.Repository.PullRequests
		return page[domain.HistoricalPullRequest]{
			nodes:       toHistoricalPullRequests(conn.Nodes),
			endCursor:   conn.PageInfo.EndCursor,
			hasNextPage: conn.PageInfo.HasNextPage,
		}, nil
	})

	logEntry.WithFields(logrus.Fields{
		"total":    len(prs),
		"complete": complete,
	}).Info("Reviewed pull requests fetched")

	return prs, complete
}

func (r *PRRepository) logEntry(operation string) *logrus.Entry {
	return r.logger.WithFields(logrus.Fields{
		"operation":  operation,
		"repository": r.owner + "/" + r.name,
	})
}

func (r *PRRepository) vars(cursor *string) map[string]interface{} {
	return map[string]interface{}{
		"owner":  r.owner,
		"name":   r.name,
		"cursor": cursor,
	}
}

func toOpenPullRequests(nodes []openPullRequestNode) []domain.OpenPullRequest {
	result := make([]domain.OpenPullRequest, len(nodes))
	for i, node := range nodes {
		requests := make([]domain.ReviewRequest, len(node.ReviewRequests.Nodes))
		for j, rr := range node.ReviewRequests.Nodes {
			requests[j] = domain.ReviewRequest{Login: rr.RequestedReviewer.login()}
		}
		result[i] = domain.OpenPullRequest{ReviewRequests: requests}
	}
	return result
}

func toHistoricalPullRequests(nodes []reviewedPullRequestNode) []domain.HistoricalPullRequest {
	result := make([]domain.HistoricalPullRequest, len(nodes))
	for i, node := range nodes {
		reviews := make([]domain.Review, len(node.Reviews.Nodes))
		for j, review := range node.Reviews.Nodes {
			reviews[j] = domain.Review{
				AuthorLogin: review.Author.login(),
				State:       review.State,
				CreatedAt:   review.CreatedAt,
			}
		}
		result[i] = domain.HistoricalPullRequest{
			Number:      node.Number,
			AuthorLogin: node.Author.login(),
			Reviews:     reviews,
		}
	}
	return result
}
