package domain

import "errors"

// Domain errors (для бизнес-логики)
var (
	// Configuration errors
	ErrMissingToken  = errors.New("github token is not set, set the GITHUB_TOKEN environment variable")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// HTTPError для ответа клиенту дашборда
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error HTTPError `json:"error"`
}

// Маппинг domain ошибок в HTTP ошибки
var ErrorMapping = map[error]HTTPError{
	ErrMissingToken:  {Code: "CONFIG_ERROR", Message: "github token is not configured"},
	ErrInvalidConfig: {Code: "CONFIG_ERROR", Message: "service configuration is invalid"},
}

// ToHTTPError преобразует domain ошибку в HTTP ошибку
func ToHTTPError(err error) (HTTPError, bool) {
	for domainErr, httpErr := range ErrorMapping {
		if errors.Is(err, domainErr) {
			return httpErr, true
		}
	}
	return HTTPError{}, false
}
