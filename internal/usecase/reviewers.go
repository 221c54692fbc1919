package usecase

import (
	"sort"
	"time"

	"reviewer-dashboard/internal/domain"
	"reviewer-dashboard/internal/ordered"
)

const (
	// ActivityLookback окно, в котором ревьювер считается активным.
	ActivityLookback = 30 * 24 * time.Hour

	approvalDaysDefault = 7
	approvalDaysTuesday = 14
)

// ActiveReviewers возвращает авторов ревью не старше ActivityLookback, кроме excluded.
// Порядок множества соответствует первому появлению автора в выборке.
func ActiveReviewers(prs []domain.HistoricalPullRequest, excluded *ordered.Set[string], now time.Time) *ordered.Set[string] {
	since := now.Add(-ActivityLookback)
	active := ordered.NewSet[string]()

	for _, pr := range prs {
		for _, review := range pr.Reviews {
			if review.AuthorLogin == "" || review.CreatedAt.Before(since) {
				continue
			}
			if excluded.Has(review.AuthorLogin) {
				continue
			}
			active.Add(review.AuthorLogin)
		}
	}

	return active
}

// CountAssignments считает открытые запросы ревью на каждого пользователя.
// Активные ревьюверы стартуют с нуля; назначенный, но неактивный пользователь
// добавляется в конец при первом запросе (исключения здесь не применяются).
func CountAssignments(active *ordered.Set[string], prs []domain.OpenPullRequest) *ordered.Map[string, int] {
	assigned := ordered.NewMap[string, int]()
	for _, login := range active.Items() {
		assigned.Set(login, 0)
	}

	for _, pr := range prs {
		for _, request := range pr.ReviewRequests {
			if request.Login == "" {
				continue
			}
			assigned.Set(request.Login, assigned.GetOrDefault(request.Login, 0)+1)
		}
	}

	return assigned
}

// ApprovalWindowDays 14 дней, если в loc сейчас вторник, иначе 7.
func ApprovalWindowDays(now time.Time, loc *time.Location) int {
	if now.In(loc).Weekday() == time.Tuesday {
		return approvalDaysTuesday
	}
	return approvalDaysDefault
}

// CountApprovals считает различные PR, одобренные каждым пользователем начиная с cutoff.
// Одобрение собственного PR не учитывается, повторные одобрения одного PR считаются один раз.
func CountApprovals(prs []domain.HistoricalPullRequest, cutoff time.Time) *ordered.Map[string, int] {
	approvedPRs := ordered.NewMap[string, *ordered.Set[int]]()

	for _, pr := range prs {
		for _, review := range pr.Reviews {
			if review.State != domain.ReviewStateApproved || review.AuthorLogin == "" {
				continue
			}
			if review.CreatedAt.Before(cutoff) {
				continue
			}
			if review.AuthorLogin == pr.AuthorLogin {
				continue
			}

			numbers, ok := approvedPRs.Get(review.AuthorLogin)
			if !ok {
				numbers = ordered.NewSet[int]()
				approvedPRs.Set(review.AuthorLogin, numbers)
			}
			numbers.Add(pr.Number)
		}
	}

	counts := ordered.NewMap[string, int]()
	approvedPRs.Each(func(login string, numbers *ordered.Set[int]) {
		counts.Set(login, numbers.Len())
	})

	return counts
}

// Aggregate объединяет счетчики по пользователям из assigned и сортирует по убыванию
// назначений. Одобрения пользователей, которых нет в assigned, в отчет не попадают.
// При равенстве остается порядок вставки в assigned; на него не стоит опираться.
func Aggregate(assigned, approved *ordered.Map[string, int]) []domain.ReviewerTally {
	result := make([]domain.ReviewerTally, 0, assigned.Len())
	assigned.Each(func(login string, count int) {
		result = append(result, domain.ReviewerTally{
			Login:         login,
			AssignedCount: count,
			ApprovedCount: approved.GetOrDefault(login, 0),
		})
	})

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].AssignedCount > result[j].AssignedCount
	})

	return result
}

// idleReport отчет для случая без открытых PR: все активные с нулями, по логину.
func idleReport(active *ordered.Set[string]) []domain.ReviewerTally {
	result := make([]domain.ReviewerTally, 0, active.Len())
	for _, login := range active.Items() {
		result = append(result, domain.ReviewerTally{Login: login})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Login < result[j].Login
	})

	return result
}
