// Package domain contains the core data structures and domain logic for the application.
package domain

import "strings"

// UnknownRepo is used when an event does not carry a repository name.
const UnknownRepo = "unknown repo"

const branchRefPrefix = "refs/heads/"

// Event is a single entry of a user's public event feed.
// It is a closed set: PushEvent, IssuesEvent, WatchEvent, and UnknownEvent
// for every type this application does not interpret.
type Event interface {
	// EventType returns GitHub's name for the event, e.g. "PushEvent".
	EventType() string
	// RepoName returns the "owner/name" of the repository the event belongs to.
	RepoName() string

	isEvent()
}

// PushEvent is one or more commits pushed to a repository branch.
type PushEvent struct {
	Repo    string
	Commits int
	// Ref is the full git ref, e.g. "refs/heads/main". Empty when absent.
	Ref string
}

// Branch returns Ref without its "refs/heads/" prefix.
func (e PushEvent) Branch() string {
	return strings.TrimPrefix(e.Ref, branchRefPrefix)
}

func (e PushEvent) EventType() string { return "PushEvent" }
func (e PushEvent) RepoName() string  { return e.Repo }
func (PushEvent) isEvent()            {}

// IssuesEvent is activity on an issue. Action is e.g. "opened" or "closed".
type IssuesEvent struct {
	Repo   string
	Action string
}

func (e IssuesEvent) EventType() string { return "IssuesEvent" }
func (e IssuesEvent) RepoName() string  { return e.Repo }
func (IssuesEvent) isEvent()            {}

// WatchEvent is a user starring a repository.
type WatchEvent struct {
	Repo string
}

func (e WatchEvent) EventType() string { return "WatchEvent" }
func (e WatchEvent) RepoName() string  { return e.Repo }
func (WatchEvent) isEvent()            {}

// UnknownEvent keeps the type tag of an event this application does not render.
type UnknownEvent struct {
	Type string
	Repo string
}

func (e UnknownEvent) EventType() string { return e.Type }
func (e UnknownEvent) RepoName() string  { return e.Repo }
func (UnknownEvent) isEvent()            {}
