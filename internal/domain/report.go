package domain

import (
	"context"
	"time"
)

// ReviewerTally итоговая строка отчета по одному ревьюверу.
type ReviewerTally struct {
	Login         string
	AssignedCount int
	ApprovedCount int
}

// Report результат одного прогона агрегации.
type Report struct {
	Data         []ReviewerTally
	ApprovalDays int
	// Complete false, если хотя бы одна выборка оборвалась после ошибки.
	Complete    bool
	GeneratedAt time.Time
}

// ReportUseCase определяет бизнес-логику построения отчета по ревьюверам.
type ReportUseCase interface {
	BuildReport(ctx context.Context) (*Report, error)
}

// Clock источник текущего времени.
type Clock interface {
	Now() time.Time
}

// SystemClock возвращает системное время.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// ClockFunc адаптер функции к Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}
