package mocks

import (
	"context"

	"reviewer-dashboard/internal/domain"

	"github.com/stretchr/testify/mock"
)

// ReportUseCase мок domain.ReportUseCase.
type ReportUseCase struct {
	mock.Mock
}

func (m *ReportUseCase) BuildReport(ctx context.Context) (*domain.Report, error) {
	args := m.Called(ctx)
	report, _ := args.Get(0).(*domain.Report)
	return report, args.Error(1)
}
