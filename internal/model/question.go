package model

// Question is a plenary or commission question with resolved speakers and
// optional AI summary text (looked up by content hash, exact match only).
type Question struct {
	Type        MeetingType `json:"type"`
	QuestionID  string      `json:"question_id"`
	SessionID   string      `json:"session_id"`
	MeetingID   string      `json:"meeting_id"`
	Date        string      `json:"date"`
	Questioners []Person    `json:"questioners"`
	Respondents []Person    `json:"respondents"`

	TopicsNL []string `json:"topics_nl"`
	TopicsFR []string `json:"topics_fr"`

	// Summaries are generated for the Dutch topic text only; the French
	// field mirrors it until a French generation pass exists.
	TopicsSummaryNL string `json:"topics_summary_nl"`
	TopicsSummaryFR string `json:"topics_summary_fr"`

	Discussion    []DiscussionTurn `json:"discussion"`
	DiscussionIDs []string         `json:"discussion_ids"`

	// Tags are the matched main-topic taxonomy keys for the Dutch topic
	// text. Contribution counting attributes subtopic hits to the subtopic
	// key instead; see the topics package.
	Tags []string `json:"tags"`
}

// DiscussionTurn is one speaker turn of a question transcript, with the
// speaker resolved to a party.
type DiscussionTurn struct {
	Speaker Person `json:"speaker"`
	Text    string `json:"text"`
}
