package usecase

import (
	"fmt"

	"github.com/naka-gawa/github-activity/internal/domain"
)

// NoActivityMessage replaces the activity lines when the feed is empty or could not be fetched.
const NoActivityMessage = "No activity found or an error occurred."

// Summarize returns the human-readable line for a single event.
// It reports false for events that produce no output.
func Summarize(event domain.Event) (string, bool) {
	switch e := event.(type) {
	case domain.PushEvent:
		return summarizePush(e), true
	case domain.IssuesEvent:
		if e.Action != "opened" {
			return "", false
		}
		return fmt.Sprintf("Opened a new issue in %s", e.Repo), true
	case domain.WatchEvent:
		return fmt.Sprintf("Starred %s", e.Repo), true
	default:
		return "", false
	}
}

// summarizePush prefers the commit count, then the branch, then the bare repository.
func summarizePush(e domain.PushEvent) string {
	switch {
	case e.Commits > 0:
		return fmt.Sprintf("Pushed %d %s to %s", e.Commits, pluralize(e.Commits, "commit"), e.Repo)
	case e.Branch() != "":
		return fmt.Sprintf("Pushed to branch %s in %s", e.Branch(), e.Repo)
	default:
		return fmt.Sprintf("Pushed to %s", e.Repo)
	}
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// Render classifies events in input order and drops the ones with no output.
// It always returns a non-nil slice.
func Render(events []domain.Event) []domain.Activity {
	activities := make([]domain.Activity, 0, len(events))
	for _, event := range events {
		summary, ok := Summarize(event)
		if !ok {
			continue
		}
		activities = append(activities, domain.Activity{
			Type:    event.EventType(),
			Repo:    event.RepoName(),
			Summary: summary,
		})
	}
	return activities
}

// Lines renders the text form of a feed: one line per recognized event,
// or NoActivityMessage alone when there are no events at all.
func Lines(events []domain.Event) []string {
	if len(events) == 0 {
		return []string{NoActivityMessage}
	}
	activities := Render(events)
	lines := make([]string, 0, len(activities))
	for _, a := range activities {
		lines = append(lines, a.Summary)
	}
	return lines
}
