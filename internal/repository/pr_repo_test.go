package repository_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"reviewer-dashboard/internal/config"
	"reviewer-dashboard/internal/domain"
	"reviewer-dashboard/internal/repository"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// fakeGitHub отдает заранее заданные ответы по курсору и считает обращения.
type fakeGitHub struct {
	mu        sync.Mutex
	hits      map[string]int
	variables []map[string]interface{}
	auth      []string
	respond   func(w http.ResponseWriter, req graphqlRequest, cursor string, hit int)
}

func newFakeGitHub(t *testing.T, respond func(w http.ResponseWriter, req graphqlRequest, cursor string, hit int)) (*fakeGitHub, *httptest.Server) {
	f := &fakeGitHub{hits: map[string]int{}, respond: respond}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeGitHub) serve(w http.ResponseWriter, r *http.Request) {
	var req graphqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cursor, _ := req.Variables["cursor"].(string)

	f.mu.Lock()
	f.hits[cursor]++
	hit := f.hits[cursor]
	f.variables = append(f.variables, req.Variables)
	f.auth = append(f.auth, r.Header.Get("Authorization"))
	f.mu.Unlock()

	f.respond(w, req, cursor, hit)
}

func (f *fakeGitHub) hitsFor(cursor string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[cursor]
}

func writeData(w http.ResponseWriter, data string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"data":%s}`, data)
}

func openPage(endCursor string, hasNext bool, logins ...string) string {
	requests := make([]string, len(logins))
	for i, login := range logins {
		if login == "" {
			requests[i] = `{"requestedReviewer":{}}`
			continue
		}
		requests[i] = fmt.Sprintf(`{"requestedReviewer":{"login":%q}}`, login)
	}
	return fmt.Sprintf(
		`{"repository":{"pullRequests":{"pageInfo":{"endCursor":%q,"hasNextPage":%t},"nodes":[{"reviewRequests":{"nodes":[%s]}}]}}}`,
		endCursor, hasNext, strings.Join(requests, ","),
	)
}

func newTestRepository(t *testing.T, url string, timeout time.Duration) *repository.PRRepository {
	cfg := config.Config{
		GitHubToken:       "test-token",
		APIURL:            url,
		RepoOwner:         "acme",
		RepoName:          "widgets",
		HTTPTimeout:       timeout,
		RetryMaxAttempts:  3,
		RetryInitialDelay: time.Millisecond,
	}
	logger, _ := test.NewNullLogger()

	client, err := repository.NewClient(cfg, logger)
	require.NoError(t, err)

	return repository.NewPRRepository(client, cfg, logger)
}

func TestNewClient_MissingToken(t *testing.T) {
	logger, _ := test.NewNullLogger()

	client, err := repository.NewClient(config.Config{APIURL: "http://localhost"}, logger)

	assert.ErrorIs(t, err, domain.ErrMissingToken)
	assert.Nil(t, client)
}

func TestFetchOpenPullRequests_AllPages(t *testing.T) {
	fake, srv := newFakeGitHub(t, func(w http.ResponseWriter, req graphqlRequest, cursor string, hit int) {
		switch cursor {
		case "":
			writeData(w, openPage("c1", true, "alice", ""))
		case "c1":
			writeData(w, openPage("c2", true, "bob"))
		default:
			writeData(w, openPage("", false, "alice"))
		}
	})
	repo := newTestRepository(t, srv.URL, 5*time.Second)

	prs, complete := repo.FetchOpenPullRequests(context.Background())

	assert.True(t, complete)
	require.Len(t, prs, 3)
	assert.Equal(t, []domain.ReviewRequest{{Login: "alice"}, {Login: ""}}, prs[0].ReviewRequests)
	assert.Equal(t, []domain.ReviewRequest{{Login: "bob"}}, prs[1].ReviewRequests)
	assert.Equal(t, []domain.ReviewRequest{{Login: "alice"}}, prs[2].ReviewRequests)

	assert.Equal(t, "acme", fake.variables[0]["owner"])
	assert.Equal(t, "widgets", fake.variables[0]["name"])
	assert.Nil(t, fake.variables[0]["cursor"])
	assert.Equal(t, "c1", fake.variables[1]["cursor"])
	assert.Equal(t, "Bearer test-token", fake.auth[0])
}

func TestFetchOpenPullRequests_PageFailsAfterRetries(t *testing.T) {
	fake, srv := newFakeGitHub(t, func(w http.ResponseWriter, req graphqlRequest, cursor string, hit int) {
		switch cursor {
		case "":
			writeData(w, openPage("c1", true, "alice"))
		case "c1":
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, `{"message":"unavailable"}`)
		default:
			writeData(w, openPage("", false, "bob"))
		}
	})
	repo := newTestRepository(t, srv.URL, 5*time.Second)

	prs, complete := repo.FetchOpenPullRequests(context.Background())

	assert.False(t, complete)
	require.Len(t, prs, 1)
	assert.Equal(t, "alice", prs[0].ReviewRequests[0].Login)
	assert.Equal(t, 3, fake.hitsFor("c1"))
	assert.Equal(t, 0, fake.hitsFor("c2"))
}

func TestFetchOpenPullRequests_RecoversFromTransientFailure(t *testing.T) {
	fake, srv := newFakeGitHub(t, func(w http.ResponseWriter, req graphqlRequest, cursor string, hit int) {
		if hit == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		writeData(w, openPage("", false, "alice"))
	})
	repo := newTestRepository(t, srv.URL, 5*time.Second)

	prs, complete := repo.FetchOpenPullRequests(context.Background())

	assert.True(t, complete)
	assert.Len(t, prs, 1)
	assert.Equal(t, 2, fake.hitsFor(""))
}

func TestFetchOpenPullRequests_RetriesClientTimeout(t *testing.T) {
	fake, srv := newFakeGitHub(t, func(w http.ResponseWriter, req graphqlRequest, cursor string, hit int) {
		if hit == 1 {
			time.Sleep(300 * time.Millisecond)
		}
		writeData(w, openPage("", false, "alice"))
	})
	repo := newTestRepository(t, srv.URL, 100*time.Millisecond)

	prs, complete := repo.FetchOpenPullRequests(context.Background())

	assert.True(t, complete)
	assert.Len(t, prs, 1)
	assert.Equal(t, 2, fake.hitsFor(""))
}

func TestFetchOpenPullRequests_RetriesDroppedConnection(t *testing.T) {
	fake, srv := newFakeGitHub(t, func(w http.ResponseWriter, req graphqlRequest, cursor string, hit int) {
		if hit == 1 {
			conn, _, err := w.(http.Hijacker).Hijack()
			if assert.NoError(t, err) {
				conn.Close()
			}
			return
		}
		writeData(w, openPage("", false, "alice"))
	})
	repo := newTestRepository(t, srv.URL, 5*time.Second)

	prs, complete := repo.FetchOpenPullRequests(context.Background())

	assert.True(t, complete)
	assert.Len(t, prs, 1)
	assert.Equal(t, 2, fake.hitsFor(""))
}

func TestFetchOpenPullRequests_FatalErrorIsNotRetried(t *testing.T) {
	fake, srv := newFakeGitHub(t, func(w http.ResponseWriter, req graphqlRequest, cursor string, hit int) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"Bad credentials"}`)
	})
	repo := newTestRepository(t, srv.URL, 5*time.Second)

	prs, complete := repo.FetchOpenPullRequests(context.Background())

	assert.False(t, complete)
	assert.Empty(t, prs)
	assert.Equal(t, 1, fake.hitsFor(""))
}

func TestFetchOpenPullRequests_GraphQLErrorIsFatal(t *testing.T) {
	fake, srv := newFakeGitHub(t, func(w http.ResponseWriter, req graphqlRequest, cursor string, hit int) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"errors":[{"message":"Could not resolve to a Repository"}]}`)
	})
	repo := newTestRepository(t, srv.URL, 5*time.Second)

	prs, complete := repo.FetchOpenPullRequests(context.Background())

	assert.False(t, complete)
	assert.Empty(t, prs)
	assert.Equal(t, 1, fake.hitsFor(""))
}

func TestFetchReviewedPullRequests_SinglePage(t *testing.T) {
	fake, srv := newFakeGitHub(t, func(w http.ResponseWriter, req graphqlRequest, cursor string, hit int) {
		assert.Contains(t, req.Query, "orderBy: {field: UPDATED_AT, direction: DESC}")
		writeData(w, `{"repository":{"pullRequests":{"pageInfo":{"endCursor":"c1","hasNextPage":true},"nodes":[
			{"number":10,"author":{"login":"carol"},"reviews":{"nodes":[
				{"author":{"login":"alice"},"state":"APPROVED","createdAt":"2026-10-10T12:00:00Z"},
				{"author":null,"state":"COMMENTED","createdAt":"2026-10-11T08:30:00Z"}
			]}},
			{"number":11,"author":null,"reviews":{"nodes":[]}}
		]}}}`)
	})
	repo := newTestRepository(t, srv.URL, 5*time.Second)

	prs, complete := repo.FetchReviewedPullRequests(context.Background())

	assert.True(t, complete)
	assert.Equal(t, 1, fake.hitsFor(""))
	assert.Equal(t, 0, fake.hitsFor("c1"))

	require.Len(t, prs, 2)
	assert.Equal(t, 10, prs[0].Number)
	assert.Equal(t, "carol", prs[0].AuthorLogin)
	assert.Equal(t, []domain.Review{
		{AuthorLogin: "alice", State: "APPROVED", CreatedAt: time.Date(2026, 10, 10, 12, 0, 0, 0, time.UTC)},
		{AuthorLogin: "", State: "COMMENTED", CreatedAt: time.Date(2026, 10, 11, 8, 30, 0, 0, time.UTC)},
	}, prs[0].Reviews)
	assert.Equal(t, "", prs[1].AuthorLogin)
	assert.Empty(t, prs[1].Reviews)
}

func TestFetchReviewedPullRequests_FailureReturnsEmpty(t *testing.T) {
	fake, srv := newFakeGitHub(t, func(w http.ResponseWriter, req graphqlRequest, cursor string, hit int) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	repo := newTestRepository(t, srv.URL, 5*time.Second)

	prs, complete := repo.FetchReviewedPullRequests(context.Background())

	assert.False(t, complete)
	assert.Empty(t, prs)
	assert.Equal(t, 3, fake.hitsFor(""))
}
