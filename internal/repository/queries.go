package repository

import "time"

const openPullRequestsQuery = `
query GetOpenPullRequests($owner: String!, $name: String!, $cursor: String) {
	repository(owner: $owner, name: $name) {
		pullRequests(first: 100, after: $cursor, states: [OPEN]) {
			pageInfo {
				endCursor
				hasNextPage
			}
			nodes {
				reviewRequests(first: 20) {
					nodes {
						requestedReviewer {
							... on User {
								login
							}
						}
					}
				}
			}
		}
	}
}`

const reviewedPullRequestsQuery = `
query GetReviewedPullRequests($owner: String!, $name: String!, $cursor: String) {
	repository(owner: $owner, name: $name) {
		pullRequests(first: 100, after: $cursor, states: [OPEN, MERGED, CLOSED], orderBy: {field: UPDATED_AT, direction: DESC}) {
			pageInfo {
				endCursor
				hasNextPage
			}
			nodes {
				number
				author {
					login
				}
				reviews(first: 100) {
					nodes {
						author {
							login
						}
						state
						createdAt
					}
				}
			}
		}
	}
}`

type pageInfo struct {
	EndCursor   *string `json:"endCursor"`
	HasNextPage bool    `json:"hasNextPage"`
}

type actor struct {
	Login string `json:"login"`
}

type openPullRequestNode struct {
	ReviewRequests struct {
		Nodes []struct {
			RequestedReviewer *actor `json:"requestedReviewer"`
		} `json:"nodes"`
	} `json:"reviewRequests"`
}

type openPullRequestsResponse struct {
	Repository struct {
		PullRequests struct {
			PageInfo pageInfo              `json:"pageInfo"`
			Nodes    []openPullRequestNode `json:"nodes"`
		} `json:"pullRequests"`
	} `json:"repository"`
}

type reviewNode struct {
	Author    *actor    `json:"author"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"createdAt"`
}

type reviewedPullRequestNode struct {
	Number  int    `json:"number"`
	Author  *actor `json:"author"`
	Reviews struct {
		Nodes []reviewNode `json:"nodes"`
	} `json:"reviews"`
}

type reviewedPullRequestsResponse struct {
	Repository struct {
		PullRequests struct {
			PageInfo pageInfo                  `json:"pageInfo"`
			Nodes    []reviewedPullRequestNode `json:"nodes"`
		} `json:"pullRequests"`
	} `json:"repository"`
}

func (a *actor) login() string {
	if a == nil {
		return ""
	}
	return a.Login
}
