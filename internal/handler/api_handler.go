package handler

import (
	"net/http"

	"reviewer-dashboard/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type APIHandler struct {
	*ReportHandler
}

func NewAPIHandler(
	reportUseCase domain.ReportUseCase,
	pullRequestsURL func(login string) string,
	logger *logrus.Logger,
) *APIHandler {

	return &APIHandler{
		ReportHandler: NewReportHandler(reportUseCase, pullRequestsURL, logger),
	}
}

// RegisterHandlers регистрирует маршруты API дашборда.
func RegisterHandlers(e *echo.Echo, h *APIHandler) {
	e.GET("/api/reviewers", h.GetReviewers)
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}
