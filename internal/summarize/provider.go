// Package summarize generates the rows of the summaries table: short Dutch
// condensations of multi-topic question headers and formal dossier titles,
// produced by an LLM provider and keyed by the sha256 hash of the input text.
package summarize

import "context"

// Task identifies the kind of text being condensed. The value is stored in
// the task column of each generated summaries row.
type Task string

const (
	// TaskQuestionTopics condenses a semicolon-separated topic header into
	// one topic.
	TaskQuestionTopics Task = "question_topics"

	// TaskDossierTitle condenses a formal legislative dossier title.
	TaskDossierTitle Task = "dossier_title"
)

// Request is one summarization call.
type Request struct {
	Task  Task
	Input string

	// Model overrides the provider's configured model when set.
	Model string

	// MaxTokens limits the response length; 0 uses the provider default.
	MaxTokens int
}

// Response is the provider's answer to one Request.
type Response struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Provider generates summaries. Implementations wrap one LLM API.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Summarize generates a summary for the request.
	Summarize(ctx context.Context, req Request) (*Response, error)

	// IsAvailable checks if the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// systemPrompt returns the instruction for a task. The result must slot
// straight into the dataset, so every prompt forbids surrounding prose.
func systemPrompt(task Task) string {
	switch task {
	case TaskQuestionTopics:
		return "The assistant receives a semicolon-separated list of parliamentary question topics " +
			"and generates a single concise topic (no more than 20 words) that covers all of them. " +
			"The result must be in Dutch and match the style of the input topics. " +
			"Do not add explanations or filler words such as 'including' or 'such as'. " +
			"Only return the summarized topic, without any additional text."
	case TaskDossierTitle:
		return "The assistant receives a formal legislative dossier title in Dutch and generates a " +
			"concise summarized version (max. 20 words) in simple, formal Dutch. " +
			"Focus on the key subject or change the law addresses, with wording like 'Wetsontwerp ter...' " +
			"and no introductory phrases. Avoid abbreviations and technical jargon. " +
			"Only return the summary, without any additional text."
	}
	return ""
}
