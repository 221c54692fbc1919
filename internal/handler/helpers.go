package handler

import (
	"errors"
	"net/http"
	"time"

	"reviewer-dashboard/internal/domain"
)

// Модели ответа API дашборда

type ReviewerTally struct {
	Login           string `json:"login"`
	AssignedCount   int    `json:"assignedCount"`
	ApprovedCount   int    `json:"approvedCount"`
	PullRequestsURL string `json:"pullRequestsUrl"`
}

type ReportResponse struct {
	Data         []ReviewerTally `json:"data"`
	ApprovalDays int             `json:"approvalDays"`
	Complete     bool            `json:"complete"`
	GeneratedAt  time.Time       `json:"generatedAt"`
}

func toAPIReport(report *domain.Report, pullRequestsURL func(login string) string) ReportResponse {
	data := make([]ReviewerTally, len(report.Data))
	for i, tally := range report.Data {
		data[i] = ReviewerTally{
			Login:           tally.Login,
			AssignedCount:   tally.AssignedCount,
			ApprovedCount:   tally.ApprovedCount,
			PullRequestsURL: pullRequestsURL(tally.Login),
		}
	}
	return ReportResponse{
		Data:         data,
		ApprovalDays: report.ApprovalDays,
		Complete:     report.Complete,
		GeneratedAt:  report.GeneratedAt,
	}
}

func toErrorResponse(code, message string) domain.ErrorResponse {
	return domain.ErrorResponse{
		Error: domain.HTTPError{
			Code:    code,
			Message: message,
		},
	}
}

func toAPIErrorResponse(httpErr domain.HTTPError) domain.ErrorResponse {
	return domain.ErrorResponse{Error: httpErr}
}

func getHTTPStatusCode(err error) int {
	switch {
	// Service Unavailable (503) - сервис не настроен
	case errors.Is(err, domain.ErrMissingToken), errors.Is(err, domain.ErrInvalidConfig):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
