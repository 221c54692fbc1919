package handler

import (
	"net/http"

	"reviewer-dashboard/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// ReportHandler отдает клиенту дашборда готовый отсортированный отчет.
type ReportHandler struct {
	*BaseHandler
	reportUseCase   domain.ReportUseCase
	pullRequestsURL func(login string) string
}

// NewReportHandler создает новый экземпляр ReportHandler.
func NewReportHandler(reportUseCase domain.ReportUseCase, pullRequestsURL func(login string) string, logger *logrus.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler:     NewBaseHandler(logger),
		reportUseCase:   reportUseCase,
		pullRequestsURL: pullRequestsURL,
	}
}

// GetReviewers обрабатывает GET запрос отчета по ревьюверам. Каждый запрос пересчитывает отчет.
func (h *ReportHandler) GetReviewers(c echo.Context) error {
	logEntry := h.logRequest(c, "get_reviewers")
	logEntry.Info("Getting reviewer report")

	report, err := h.reportUseCase.BuildReport(c.Request().Context())
	if err != nil {
		logEntry.WithError(err).Error("Failed to build reviewer report")
		if httpErr, ok := domain.ToHTTPError(err); ok {
			return c.JSON(getHTTPStatusCode(err), toAPIErrorResponse(httpErr))
		}
		return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
	}

	logEntry.WithFields(logrus.Fields{
		"reviewers": len(report.Data),
		"complete":  report.Complete,
	}).Info("Reviewer report retrieved")
	return c.JSON(http.StatusOK, toAPIReport(report, h.pullRequestsURL))
}
