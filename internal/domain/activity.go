package domain

// Activity is one rendered line of a user's activity summary.
type Activity struct {
	Type    string `json:"type"`
	Repo    string `json:"repo"`
	Summary string `json:"summary"`
}
