package repository

import (
	"context"

	"reviewer-dashboard/internal/retry"

	"github.com/sirupsen/logrus"
)

type page[N any] struct {
	nodes       []N
	endCursor   *string
	hasNextPage bool
}

type pageFetcher[N any] func(ctx context.Context, cursor *string) (page[N], error)

// fetchPages запрашивает страницы по курсору, пока hasNextPage или пока не достигнут maxPages
// (0 без ограничения). Страница, упавшая после всех повторов, обрывает обход: возвращается
// накопленное и complete=false, ошибка только логируется.
func fetchPages[N any](ctx context.Context, policy retry.Policy, logEntry *logrus.Entry, maxPages int, fetch pageFetcher[N]) ([]N, bool) {
	var (
		all    []N
		cursor *string
	)

	for pageNum := 1; ; pageNum++ {
		pageLog := logEntry.WithField("page", pageNum)

		p, err := retry.Do(ctx, policy, pageLog, func(ctx context.Context) (page[N], error) {
			return fetch(ctx, cursor)
		})
		if err != nil {
			pageLog.WithError(err).WithField("accumulated", len(all)).Error("Page fetch failed, stopping pagination")
			return all, false
		}

		all = append(all, p.nodes...)
		pageLog.WithField("nodes", len(p.nodes)).Debug("Fetched page")

		if !p.hasNextPage {
			return all, true
		}
		if maxPages > 0 && pageNum >= maxPages {
			return all, true
		}
		if p.endCursor == nil {
			pageLog.Warn("Next page reported without cursor, stopping pagination")
			return all, false
		}
		cursor = p.endCursor
	}
}
