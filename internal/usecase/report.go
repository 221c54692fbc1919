package usecase

import (
	"context"
	"time"

	"reviewer-dashboard/internal/domain"
	"reviewer-dashboard/internal/ordered"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ReportUseCase реализует бизнес-логику построения отчета по ревьюверам.
type ReportUseCase struct {
	source   domain.PullRequestSource
	excluded *ordered.Set[string]
	location *time.Location
	clock    domain.Clock
	logger   *logrus.Logger
}

// NewReportUseCase создает новый экземпляр ReportUseCase.
func NewReportUseCase(
	source domain.PullRequestSource,
	excludedReviewers []string,
	location *time.Location,
	clock domain.Clock,
	logger *logrus.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		source:   source,
		excluded: ordered.NewSet(excludedReviewers...),
		location: location,
		clock:    clock,
		logger:   logger,
	}
}

// BuildReport собирает отчет заново при каждом вызове. Ошибки выборок не
// пробрасываются, неполнота отражается в Report.Complete.
func (uc *ReportUseCase) BuildReport(ctx context.Context) (*domain.Report, error) {
	logEntry := uc.logger.WithFields(logrus.Fields{
		"operation": "build_report",
		"run_id":    uuid.NewString(),
	})
	now := uc.clock.Now()
	logEntry.Info("Building reviewer report")

	// 1. Параллельно получаем открытые PR и недавнюю историю ревью
	var (
		openPRs          []domain.OpenPullRequest
		reviewedPRs      []domain.HistoricalPullRequest
		openComplete     bool
		reviewedComplete bool
	)

	var g errgroup.Group
	g.Go(func() error {
		openPRs, openComplete = uc.source.FetchOpenPullRequests(ctx)
		return nil
	})
	g.Go(func() error {
		reviewedPRs, reviewedComplete = uc.source.FetchReviewedPullRequests(ctx)
		return nil
	})
	// Обе выборки не возвращают ошибок, Wait служит только точкой соединения
	g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 2. Активные ревьюверы за последние 30 дней
	active := ActiveReviewers(reviewedPRs, uc.excluded, now)

	approvalDays := ApprovalWindowDays(now, uc.location)
	report := &domain.Report{
		ApprovalDays: approvalDays,
		Complete:     openComplete && reviewedComplete,
		GeneratedAt:  now,
	}

	// 3. Нет открытых PR: все активные с нулевыми счетчиками
	if len(openPRs) == 0 {
		report.Data = idleReport(active)
		uc.logResult(logEntry, report, active.Len())
		return report, nil
	}

	// 4. Назначения и одобрения в окне
	assigned := CountAssignments(active, openPRs)
	cutoff := now.Add(-time.Duration(approvalDays) * 24 * time.Hour)
	approved := CountApprovals(reviewedPRs, cutoff)

	// 5. Итоговая сортировка
	report.Data = Aggregate(assigned, approved)
	uc.logResult(logEntry, report, active.Len())

	return report, nil
}

func (uc *ReportUseCase) logResult(logEntry *logrus.Entry, report *domain.Report, activeCount int) {
	entry := logEntry.WithFields(logrus.Fields{
		"reviewers":     len(report.Data),
		"active":        activeCount,
		"approval_days": report.ApprovalDays,
		"complete":      report.Complete,
	})
	if !report.Complete {
		entry.Warn("Reviewer report built from partial data")
		return
	}
	entry.Info("Reviewer report built")
}
