// Package gateway provides a gateway to the GitHub Events API,
// abstracting away the underlying REST client.
package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v62/github"
	"go.uber.org/zap"

	"github.com/naka-gawa/github-activity/internal/domain"
)

const (
	// DefaultUserAgent identifies this client. GitHub rejects requests without one.
	DefaultUserAgent = "github-activity"

	acceptHeader     = "application/vnd.github+json"
	apiVersionHeader = "X-Github-Api-Version"
	apiVersion       = "2022-11-28"
)

// Fetcher defines the behavior of a gateway for fetching a user's event feed.
type Fetcher interface {
	// FetchEvents returns the first page of the user's public events, newest first.
	// Any failure is returned as a *FetchError and no events are returned with it.
	FetchEvents(ctx context.Context, username string) ([]domain.Event, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient *github.Client
	logger     *zap.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// An empty userAgent falls back to DefaultUserAgent.
func NewGitHubGateway(userAgent string, logger *zap.Logger) *GitHubGateway {
	return &GitHubGateway{
		restClient: newRESTClient(http.DefaultClient, userAgent),
		logger:     logger,
	}
}

// newRESTClient wraps the transport of httpClient so every request carries
// the fixed GitHub headers.
func newRESTClient(httpClient *http.Client, userAgent string) *github.Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	wrapped := *httpClient
	wrapped.Transport = &headerTransport{base: httpClient.Transport, userAgent: userAgent}
	return github.NewClient(&wrapped)
}

// headerTransport sets the fixed GitHub headers on every request. Its Accept
// replaces go-github's default "application/vnd.github.v3+json".
type headerTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set(apiVersionHeader, apiVersion)
	req.Header.Set("User-Agent", t.userAgent)
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

// FetchEvents performs a single GET on /users/{username}/events.
// Only the first page with the default page size is requested.
func (g *GitHubGateway) FetchEvents(ctx context.Context, username string) ([]domain.Event, error) {
	user := escapeUsername(username)
	endpoint := g.restClient.BaseURL.String() + "users/" + user + "/events"
	g.logger.Debug("fetching events", zap.String("url", endpoint))

	raw, resp, err := g.restClient.Activity.ListEventsPerformedByUser(ctx, user, false, nil)
	if err != nil {
		return nil, classify(username, resp, err)
	}
	g.logger.Debug("fetched events",
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Int("events", len(raw)),
	)

	events := make([]domain.Event, 0, len(raw))
	for _, e := range raw {
		events = append(events, g.toDomainEvent(e))
	}
	return events, nil
}

// escapeUsername turns username into a single path segment, so that "/", "?"
// and dot segments cannot reach another endpoint or add a query.
func escapeUsername(username string) string {
	escaped := url.PathEscape(username)
	if strings.Trim(escaped, ".") == "" {
		return strings.ReplaceAll(escaped, ".", "%2E")
	}
	return escaped
}

// toDomainEvent maps a go-github event onto the domain union.
// Missing or mistyped payloads fall back to the zero values of their type.
func (g *GitHubGateway) toDomainEvent(e *github.Event) domain.Event {
	repo := e.GetRepo().GetName()
	if repo == "" {
		repo = domain.UnknownRepo
	}

	switch e.GetType() {
	case "PushEvent":
		push := domain.PushEvent{Repo: repo}
		if p, ok := g.parsePayload(e).(*github.PushEvent); ok && p != nil {
			push.Commits = len(p.Commits)
			push.Ref = p.GetRef()
		}
		return push
	case "IssuesEvent":
		issues := domain.IssuesEvent{Repo: repo}
		if p, ok := g.parsePayload(e).(*github.IssuesEvent); ok && p != nil {
			issues.Action = p.GetAction()
		}
		return issues
	case "WatchEvent":
		return domain.WatchEvent{Repo: repo}
	default:
		return domain.UnknownEvent{Type: e.GetType(), Repo: repo}
	}
}

// parsePayload returns the typed go-github payload, or nil when it is absent or malformed.
func (g *GitHubGateway) parsePayload(e *github.Event) interface{} {
	if e.RawPayload == nil || len(*e.RawPayload) == 0 {
		return nil
	}
	payload, err := e.ParsePayload()
	if err != nil {
		g.logger.Debug("ignoring malformed payload",
			zap.String("type", e.GetType()),
			zap.String("id", e.GetID()),
			zap.Error(err),
		)
		return nil
	}
	return payload
}
