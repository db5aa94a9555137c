package model

// MeetingType discriminates the two id spaces meetings live in. A commission
// question must never attach to a plenary meeting sharing the same numeric
// ids, so every meeting lookup carries the type.
type MeetingType string

const (
	MeetingPlenary    MeetingType = "plenary"
	MeetingCommission MeetingType = "commission"
)

// VoteChoice is a member's position on a vote.
type VoteChoice string

const (
	VoteYes     VoteChoice = "yes"
	VoteNo      VoteChoice = "no"
	VoteAbstain VoteChoice = "abstain"
)

// Person is a resolved {name, party} pair. Party is UnknownParty when the
// name did not resolve through the member lookup.
type Person struct {
	Name  string `json:"name"`
	Party string `json:"party"`
}

// Meeting is one plenary or commission sitting with everything that
// happened in it joined on.
type Meeting struct {
	Type           MeetingType `json:"type"`
	CommissionType string      `json:"commission_type"` // commission name, "" for plenary
	SessionID      string      `json:"session_id"`
	MeetingID      string      `json:"meeting_id"`
	Date           string      `json:"date"`
	StartTime      string      `json:"start_time"`
	EndTime        string      `json:"end_time"`
	TimeOfDay      string      `json:"time_of_day"`
	Chairs         []Person    `json:"chairs"`

	Questions    []Question     `json:"questions"`
	Propositions []*Proposition `json:"propositions"`

	// Votes holds orphan votes only: votes whose (session, dossier) matched
	// no proposition. AllVotes holds every vote of the meeting regardless of
	// attachment.
	Votes    []*Vote `json:"votes"`
	AllVotes []*Vote `json:"allVotes"`

	Attendance Attendance `json:"attendance"`
	Absentees  []Person   `json:"absentees"`
}

// Attendance is the single-sample attendance estimate for a meeting: the
// yes+no+abstain head count of the first vote over the chamber size.
type Attendance struct {
	Count int     `json:"count"`
	Ratio float64 `json:"ratio"`
}

// Vote is one roll-call vote with its member lists resolved to parties.
// The proposition it attaches to (if any) is referenced by dossier id, never
// embedded, to keep the tree cycle-free.
type Vote struct {
	VoteID       string     `json:"vote_id"`
	SessionID    string     `json:"session_id"`
	MeetingID    string     `json:"meeting_id"`
	Date         string     `json:"date"`
	TitleNL      string     `json:"title_nl"`
	TitleFR      string     `json:"title_fr"`
	YesCount     int        `json:"yes_count"`
	NoCount      int        `json:"no_count"`
	AbstainCount int        `json:"abstain_count"`
	YesMembers     []Person `json:"yes_members"`
	NoMembers      []Person `json:"no_members"`
	AbstainMembers []Person `json:"abstain_members"`

	VotesByParty        map[string]PartyVoteCount    `json:"votes_by_party"`
	GroupedVotesByParty map[string]GroupedPartyVotes `json:"grouped_votes_by_party"`

	DossierID  string `json:"dossier_id"`
	DocumentID string `json:"document_id"`
}

// PartyVoteCount aggregates one party's positions on a vote.
type PartyVoteCount struct {
	Yes     int `json:"yes"`
	No      int `json:"no"`
	Abstain int `json:"abstain"`
}

// GroupedPartyVotes lists one party's members by position on a vote.
type GroupedPartyVotes struct {
	Yes     []Person `json:"yes"`
	No      []Person `json:"no"`
	Abstain []Person `json:"abstain"`
}

// Proposition is a voted text within a meeting, enriched from its dossier.
type Proposition struct {
	PropositionID  string   `json:"proposition_id"`
	SessionID      string   `json:"session_id"`
	MeetingID      string   `json:"meeting_id"`
	Date           string   `json:"date"`
	TitleNL        string   `json:"title_nl"`
	TitleFR        string   `json:"title_fr"`
	TitleSummaryNL string   `json:"title_summary_nl"`
	DossierID      string   `json:"dossier_id"`
	DocumentID     string   `json:"document_id"`
	Authors        []Person `json:"authors"`
	DocumentType   string   `json:"document_type"`
	Status         string   `json:"status"`
	VoteDate       string   `json:"vote_date"`
	Votes          []*Vote  `json:"votes"`
}
