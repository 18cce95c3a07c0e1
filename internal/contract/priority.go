package contract

type NextTaskSuggestion struct {
	Suggestion *ScoredTask `json:"suggestion,omitempty"`
	Rationale  []string    `json:"rationale,omitempty"`
	Message    string      `json:"message,omitempty"`
}

type FocusResult struct {
	Next  *ScoredTask  `json:"next,omitempty"`
	Top   []ScoredTask `json:"top"`
	Count int          `json:"count"`
}

type StagnantTask struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Suggestion string `json:"suggestion"`
}

type StagnantReport struct {
	Count int            `json:"count"`
	Tasks []StagnantTask `json:"tasks"`
}

type ProgressOverview struct {
	Total           int     `json:"total"`
	Done            int     `json:"done"`
	CompletionRatio float64 `json:"completion_ratio"`
}
