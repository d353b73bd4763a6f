package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/go-github/v62/github"
)

// FailureKind tells why fetching the event feed failed.
type FailureKind int

const (
	// NetworkFailure covers connection, DNS and transport errors.
	NetworkFailure FailureKind = iota + 1
	// HTTPStatusFailure is a response with a non-2xx status.
	HTTPStatusFailure
	// ParseFailure is a response body that is not a JSON array of events.
	ParseFailure
)

func (k FailureKind) String() string {
	switch k {
	case NetworkFailure:
		return "network failure"
	case HTTPStatusFailure:
		return "http status failure"
	case ParseFailure:
		return "parse failure"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

// FetchError is returned by FetchEvents for every failure.
type FetchError struct {
	Kind     FailureKind
	Username string
	Err      error
	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch events for %s: %s (status %d): %v", e.Username, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("failed to fetch events for %s: %s: %v", e.Username, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func classify(username string, resp *github.Response, err error) *FetchError {
	fe := &FetchError{Kind: NetworkFailure, Username: username, Err: err}
	if resp != nil && resp.Response != nil {
		fe.StatusCode = resp.StatusCode
	}

	var (
		errResp   *github.ErrorResponse
		rateErr   *github.RateLimitError
		abuseErr  *github.AbuseRateLimitError
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &errResp), errors.As(err, &rateErr), errors.As(err, &abuseErr):
		fe.Kind = HTTPStatusFailure
	case fe.StatusCode != 0 && (fe.StatusCode < 200 || fe.StatusCode > 299):
		fe.Kind = HTTPStatusFailure
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr), errors.Is(err, io.ErrUnexpectedEOF):
		fe.Kind = ParseFailure
	}
	return fe
}
