package domain

import (
	"context"
	"time"
)

// ReviewStateApproved единственное состояние ревью, которое засчитывается как одобрение.
const ReviewStateApproved = "APPROVED"

// ReviewRequest запрос ревью открытого PR. Login пустой, если запрошена команда, а не пользователь.
type ReviewRequest struct {
	Login string
}

// OpenPullRequest открытый PR со списком запросов ревью.
type OpenPullRequest struct {
	ReviewRequests []ReviewRequest
}

// Review ревью исторического PR. AuthorLogin пустой, если аккаунт автора больше не существует.
type Review struct {
	AuthorLogin string
	State       string
	CreatedAt   time.Time
}

// HistoricalPullRequest PR из выборки недавней истории (open/merged/closed).
type HistoricalPullRequest struct {
	Number      int
	AuthorLogin string
	Reviews     []Review
}

// PullRequestSource определяет контракт получения данных о PR из удаленного API.
// Ошибки страниц не пробрасываются: источник возвращает накопленное и флаг полноты.
type PullRequestSource interface {
	FetchOpenPullRequests(ctx context.Context) ([]OpenPullRequest, bool)
	FetchReviewedPullRequests(ctx context.Context) ([]HistoricalPullRequest, bool)
}
