package entity

const (
	PromptMessage      = "Please enter a question."
	ThinkingMessage    = "Thinking..."
	UnreachableMessage = "Backend not reachable."
)

// Question is the request payload sent to the backend.
type Question struct {
	Question string `json:"question"`
}

// Answer is the decoded backend response. Source is optional.
type Answer struct {
	Answer string `json:"answer"`
	Source string `json:"source,omitempty"`
}

func (a Answer) HasSource() bool {
	return a.Source != ""
}

// Markup is an HTML fragment ready to be placed into a display region.
type Markup string

func (m Markup) String() string {
	return string(m)
}

type Outcome string

const (
	OutcomeRejected Outcome = "rejected"
	OutcomeAnswered Outcome = "answered"
	OutcomeFailed   Outcome = "failed"
)
