// Package cmd contains the CLI command for the application,
// built using the Cobra library.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/naka-gawa/github-activity/internal/domain"
)

// printLines writes each line of the text summary on its own line.
func printLines(w io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}

// printActivitiesJSON writes the activity as a pretty-printed JSON array.
func printActivitiesJSON(w io.Writer, activities []domain.Activity) error {
	jsonData, err := json.MarshalIndent(activities, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal activity to JSON: %w", err)
	}
	fmt.Fprintln(w, string(jsonData))
	return nil
}
