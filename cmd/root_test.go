package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/naka-gawa/github-activity/internal/domain"
	"github.com/naka-gawa/github-activity/internal/gateway"
	"github.com/naka-gawa/github-activity/internal/usecase"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchEvents(ctx context.Context, username string) ([]domain.Event, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}

// runCommand executes the command with a mock fetcher and captures its output.
func runCommand(t *testing.T, fetcher *mockFetcher, args ...string) (code int, stdout, stderr string, factoryCalls int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	factory := func(_ *zap.Logger) gateway.Fetcher {
		factoryCalls++
		return fetcher
	}
	code = execute(args, &outBuf, &errBuf, factory)
	return code, outBuf.String(), errBuf.String(), factoryCalls
}

func TestExecute_Usage(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{name: "no arguments", args: []string{}},
		{name: "too many arguments", args: []string{"octocat", "extra"}},
		{name: "blank username", args: []string{"  "}},
		{name: "unknown flag", args: []string{"--nope", "octocat"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := new(mockFetcher)

			code, stdout, stderr, factoryCalls := runCommand(t, fetcher, tc.args...)

			assert.Equal(t, 1, code)
			assert.Contains(t, stdout, "Usage:")
			assert.Contains(t, stdout, "github-activity <username>")
			assert.Contains(t, stderr, "Error:")
			assert.Zero(t, factoryCalls, "no fetcher must be built on a usage error")
			fetcher.AssertNotCalled(t, "FetchEvents", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_Text(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("FetchEvents", mock.Anything, "octocat").Return([]domain.Event{
		domain.PushEvent{Repo: "a/b", Commits: 2},
		domain.UnknownEvent{Type: "ForkEvent", Repo: "c/d"},
		domain.IssuesEvent{Repo: "e/f", Action: "opened"},
		domain.WatchEvent{Repo: "g/h"},
	}, nil)

	code, stdout, stderr, _ := runCommand(t, fetcher, "octocat")

	assert.Equal(t, 0, code)
	assert.Equal(t, "Pushed 2 commits to a/b\nOpened a new issue in e/f\nStarred g/h\n", stdout)
	assert.Empty(t, stderr)
	fetcher.AssertExpectations(t)
}

func TestExecute_FetchFailure(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("FetchEvents", mock.Anything, "octocat").Return(nil, &gateway.FetchError{
		Kind:     gateway.NetworkFailure,
		Username: "octocat",
		Err:      errors.New("dial tcp: no such host"),
	})

	code, stdout, stderr, _ := runCommand(t, fetcher, "octocat")

	assert.Equal(t, 0, code)
	assert.Equal(t, usecase.NoActivityMessage+"\n", stdout)
	assert.Contains(t, stderr, "failed to fetch activity")
	assert.Contains(t, stderr, "no such host")
	fetcher.AssertExpectations(t)
}

func TestExecute_JSON(t *testing.T) {
	testCases := []struct {
		name       string
		mockEvents []domain.Event
		mockErr    error
		expected   []domain.Activity
	}{
		{
			name: "renders recognized events",
			mockEvents: []domain.Event{
				domain.PushEvent{Repo: "a/b", Ref: "refs/heads/main"},
				domain.IssuesEvent{Repo: "c/d", Action: "closed"},
				domain.WatchEvent{Repo: "e/f"},
			},
			expected: []domain.Activity{
				{Type: "PushEvent", Repo: "a/b", Summary: "Pushed to branch main in a/b"},
				{Type: "WatchEvent", Repo: "e/f", Summary: "Starred e/f"},
			},
		},
		{
			name:     "fetch failure renders an empty array",
			mockErr:  errors.New("boom"),
			expected: []domain.Activity{},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := new(mockFetcher)
			if tc.mockErr != nil {
				fetcher.On("FetchEvents", mock.Anything, "octocat").Return(nil, tc.mockErr)
			} else {
				fetcher.On("FetchEvents", mock.Anything, "octocat").Return(tc.mockEvents, nil)
			}

			code, stdout, _, _ := runCommand(t, fetcher, "--json", "octocat")

			assert.Equal(t, 0, code)
			var got []domain.Activity
			require.NoError(t, json.Unmarshal([]byte(stdout), &got))
			assert.Equal(t, tc.expected, got)
			fetcher.AssertExpectations(t)
		})
	}
}

func TestExecute_Verbose(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("FetchEvents", mock.Anything, "octocat").Return([]domain.Event{}, nil)

	code, stdout, stderr, _ := runCommand(t, fetcher, "-v", "octocat")

	assert.Equal(t, 0, code)
	assert.Equal(t, usecase.NoActivityMessage+"\n", stdout)
	assert.Contains(t, stderr, "fetched activity")
}
