package model

// UnknownParty is the sentinel used whenever a free-text name cannot be
// resolved to a member record. Entries are never dropped for lack of a
// party, they carry the sentinel instead.
const UnknownParty = "Unknown"

// Member is the denormalized per-member record: identity plus every child
// collection joined onto it. Members are keyed by the normalized full name;
// a member appearing in several sessions keeps all observed parties and
// fractions, not just the latest.
type Member struct {
	MemberID      string `json:"member_id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Gender        string `json:"gender"`
	DateOfBirth   string `json:"date_of_birth"`
	PlaceOfBirth  string `json:"place_of_birth"`
	Language      string `json:"language"`
	Constituency  string `json:"constituency"`
	Email         string `json:"email"`
	Active        bool   `json:"active"`
	StartDate     string `json:"start_date"`

	Sessions  []string `json:"sessions"`  // session ids served, insertion order
	Parties   []string `json:"parties"`   // all observed party affiliations
	Fractions []string `json:"fractions"` // all observed fraction names

	Age *int `json:"age"` // nil when the birth date is unparseable

	Remunerations       map[string]*RemunerationYear `json:"remunerations"`
	Propositions        []MemberProposition          `json:"propositions"`
	Questions           []MemberQuestion             `json:"questions"`
	CommissionQuestions []MemberQuestion             `json:"commissionQuestions"`
	Subdocuments        []MemberSubdocument          `json:"subdocuments"`
	Votes               []MemberVote                 `json:"votes"`

	// Derived metrics, filled by the metrics pass after joining.
	Attendance           float64 `json:"attendance"`
	NormalizedAttendance float64 `json:"normalizedAttendance"`
	Outlier              float64 `json:"outlier"` // conformity percentage, 100 = never deviates
}

// RemunerationYear groups a member's declared remunerations for one year.
type RemunerationYear struct {
	Entries  []Remuneration `json:"entries"`
	TotalMin float64        `json:"total_min"`
	TotalMax float64        `json:"total_max"`
}

// Remuneration is one declared mandate with its remuneration band.
type Remuneration struct {
	Mandate   string  `json:"mandate"`
	Institute string  `json:"institute"`
	Min       float64 `json:"remuneration_min"`
	Max       float64 `json:"remuneration_max"`
}

// MemberVote is a member's position on one vote, annotated with whether it
// deviated from the party majority.
type MemberVote struct {
	VoteID    string     `json:"vote_id"`
	SessionID string     `json:"session_id"`
	MeetingID string     `json:"meeting_id"`
	Date      string     `json:"date"`
	TitleNL   string     `json:"title_nl"`
	TitleFR   string     `json:"title_fr"`
	Choice    VoteChoice `json:"vote"`
	Outlier   bool       `json:"outlier"`
}

// MemberProposition is a proposition attributed to a member through the
// dossier author list.
type MemberProposition struct {
	PropositionID string `json:"proposition_id"`
	SessionID     string `json:"session_id"`
	MeetingID     string `json:"meeting_id"`
	TitleNL       string `json:"title_nl"`
	TitleFR       string `json:"title_fr"`
	DossierID     string `json:"dossier_id"`
	DocumentID    string `json:"document_id"`
	DossierTitle  string `json:"dossier_title"`
	DocumentType  string `json:"document_type"`
	Status        string `json:"status"`
	VoteDate      string `json:"vote_date"` // ISO, "" when unknown
}

// MemberQuestion is a question attributed to a member, either as questioner
// or as respondent. The per-index topic is kept next to the full topic
// lists because a multi-questioner row assigns one topic per questioner.
type MemberQuestion struct {
	QuestionID   string           `json:"question_id"`
	SessionID    string           `json:"session_id"`
	MeetingID    string           `json:"meeting_id"`
	Date         string           `json:"date"`
	Type         MeetingType      `json:"type"`
	TopicNL      string           `json:"topic_nl"`
	TopicFR      string           `json:"topic_fr"`
	TopicsNL     []string         `json:"topics_nl"`
	TopicsFR     []string         `json:"topics_fr"`
	Questioners  []Person         `json:"questioners"`
	Respondents  []Person         `json:"respondents"`
	Discussion   []DiscussionTurn `json:"discussion"`
	AsRespondent bool             `json:"asRespondent"`
}

// MemberSubdocument is an amendment or report authored by the member.
type MemberSubdocument struct {
	Date string `json:"date"`
	Type string `json:"type"`
}
