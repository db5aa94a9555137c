package model

// Dossier is a legislative file: the parent of a proposition and its
// amendments/subdocuments, scoped within one session.
type Dossier struct {
	SessionID      string        `json:"session_id"`
	DossierID      string        `json:"dossier_id"`
	Title          string        `json:"title"`
	Authors        []Person      `json:"authors"`
	SubmissionDate string        `json:"submission_date"` // ISO, "" when unknown
	EndDate        string        `json:"end_date"`
	VoteDate       string        `json:"vote_date"`
	DocumentType   string        `json:"document_type"`
	Status         string        `json:"status"`
	Subdocuments   []Subdocument `json:"subdocuments"`
}

// Subdocument is an amendment, report or advisory text attached to a
// dossier, separately authored and separately votable.
type Subdocument struct {
	ID      string            `json:"id"`
	Date    string            `json:"date"`
	Type    string            `json:"type"`
	Authors []Person          `json:"authors"`
	Votes   []SubdocumentVote `json:"votes"`
}

// SubdocumentVote is the slim vote record attached to a subdocument; the
// full vote (member lists included) lives on the meeting.
type SubdocumentVote struct {
	VoteID       string `json:"vote_id"`
	SessionID    string `json:"session_id"`
	MeetingID    string `json:"meeting_id"`
	YesCount     int    `json:"yes_count"`
	NoCount      int    `json:"no_count"`
	AbstainCount int    `json:"abstain_count"`
	DossierID    string `json:"dossier_id"`
	DocumentID   string `json:"document_id"`
}

// Lobby is one registered lobby organisation.
type Lobby struct {
	Name      string `json:"name"`
	Contacts  string `json:"contacts"`
	Interests string `json:"interests"`
	URL       string `json:"url"`
}
