package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata"

	"reviewer-dashboard/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	GitHubToken       string        `env:"GITHUB_TOKEN"`
	APIURL            string        `env:"GITHUB_API_URL" env-default:"https://api.github.com/graphql" validate:"required,url"`
	RepoOwner         string        `env:"REPO_OWNER" env-default:"legrande-health" validate:"required"`
	RepoName          string        `env:"REPO_NAME" env-default:"nomp" validate:"required"`
	ExcludedReviewers []string      `env:"EXCLUDED_REVIEWERS" env-default:"copilot-pull-request-reviewer" env-separator:","`
	ReferenceTimezone string        `env:"REFERENCE_TIMEZONE" env-default:"America/New_York" validate:"required"`
	HTTPTimeout       time.Duration `env:"HTTP_TIMEOUT" env-default:"30s" validate:"gt=0"`
	RetryMaxAttempts  int           `env:"RETRY_MAX_ATTEMPTS" env-default:"3" validate:"min=1"`
	RetryInitialDelay time.Duration `env:"RETRY_INITIAL_DELAY" env-default:"1s" validate:"gte=0"`
	ServerPort        string        `env:"SERVER_PORT" env-default:"8080" validate:"required"`
	LogLevel          string        `env:"LOG_LEVEL" env-default:"info"`
}

// LoadConfig читает .env (если есть) и переменные окружения.
// Ошибка без domain.ErrInvalidConfig означает только отсутствие .env.
func LoadConfig() (Config, error) {
	envErr := godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	cfg.ExcludedReviewers = normalizeLogins(cfg.ExcludedReviewers)

	return cfg, envErr
}

// Validate проверяет конфигурацию до первого сетевого вызова.
func (c Config) Validate() error {
	if strings.TrimSpace(c.GitHubToken) == "" {
		return domain.ErrMissingToken
	}

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}

	return nil
}

// Location возвращает часовой пояс, в котором вычисляется день недели.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.ReferenceTimezone)
}

// PullRequestsURL ссылка на открытые PR, где у пользователя запрошено ревью.
func (c Config) PullRequestsURL(login string) string {
	query := url.QueryEscape("is:pr is:open user-review-requested:" + login)
	return fmt.Sprintf("https://github.com/%s/%s/pulls?q=%s", c.RepoOwner, c.RepoName, query)
}

func normalizeLogins(logins []string) []string {
	result := make([]string, 0, len(logins))
	for _, login := range logins {
		if login = strings.TrimSpace(login); login != "" {
			result = append(result, login)
		}
	}
	return result
}
