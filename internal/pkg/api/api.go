package api

// UnassignedOwner is set for action items without a known owner
const UnassignedOwner = "Unassigned"

// AudioBlob is an uploaded audio file kept in memory for one request
type AudioBlob struct {
	Name string
	Data []byte
}

// Empty returns true if there is no audio data
func (a *AudioBlob) Empty() bool {
	return a == nil || len(a.Data) == 0
}

// ActionItem is a task with its owner
type ActionItem struct {
	Task  string `json:"task"`
	Owner string `json:"owner"`
}

// Summary is a structured meeting summary
type Summary struct {
	KeyDecisions []string     `json:"key_decisions"`
	ActionItems  []ActionItem `json:"action_items"`
}

// Result is the successful response of the summarize request
type Result struct {
	Transcript string   `json:"transcript"`
	Summary    *Summary `json:"summary"`
}

// ErrorResult is the failure response
type ErrorResult struct {
	Error string `json:"error"`
}
