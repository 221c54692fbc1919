package mocks

import (
	"context"

	"reviewer-dashboard/internal/domain"

	"github.com/stretchr/testify/mock"
)

// PullRequestSource мок domain.PullRequestSource.
type PullRequestSource struct {
	mock.Mock
}

func (m *PullRequestSource) FetchOpenPullRequests(ctx context.Context) ([]domain.OpenPullRequest, bool) {
	args := m.Called(ctx)
	prs, _ := args.Get(0).([]domain.OpenPullRequest)
	return prs, args.Bool(1)
}

func (m *PullRequestSource) FetchReviewedPullRequests(ctx context.Context) ([]domain.HistoricalPullRequest, bool) {
	args := m.Called(ctx)
	prs, _ := args.Get(0).([]domain.HistoricalPullRequest)
	return prs, args.Bool(1)
}
