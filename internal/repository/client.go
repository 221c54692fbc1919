package repository

import (
	"context"
	"io"
	"net/http"
	"strings"

	"reviewer-dashboard/internal/config"
	"reviewer-dashboard/internal/domain"

	"github.com/machinebox/graphql"
	"github.com/sirupsen/logrus"
)

// GraphQLRunner выполняет один GraphQL запрос и декодирует поле data в resp.
type GraphQLRunner interface {
	Run(ctx context.Context, query string, vars map[string]interface{}, resp interface{}) error
}

// Client GraphQL клиент GitHub с bearer авторизацией.
type Client struct {
	gql   *graphql.Client
	token string
}

// NewClient создает клиент. Без токена возвращает domain.ErrMissingToken, не выполняя запросов.
func NewClient(cfg config.Config, logger *logrus.Logger) (*Client, error) {
	token := strings.TrimSpace(cfg.GitHubToken)
	if token == "" {
		return nil, domain.ErrMissingToken
	}

	httpClient := &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: &statusTransport{base: http.DefaultTransport},
	}

	gql := graphql.NewClient(cfg.APIURL, graphql.WithHTTPClient(httpClient))
	gql.Log = func(s string) {
		logger.Trace(s)
	}

	return &Client{
		gql:   gql,
		token: token,
	}, nil
}

func (c *Client) Run(ctx context.Context, query string, vars map[string]interface{}, resp interface{}) error {
	req := graphql.NewRequest(query)
	for key, value := range vars {
		req.Var(key, value)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	return c.gql.Run(ctx, req, resp)
}

// statusTransport превращает ответы вне 2xx в *StatusError.
// graphql клиент без этого принимает JSON тело ошибки за пустой ответ.
type statusTransport struct {
	base http.RoundTripper
}

func (t *statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return resp, nil
}
