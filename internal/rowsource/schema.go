package rowsource

// Table names as published in the dataset directory. One parquet file per
// table, named "<table>.parquet".
const (
	TableMembers             = "members"
	TableMeetings            = "meetings"
	TableCommissions         = "commissions"
	TableVotes               = "votes"
	TableQuestions           = "questions"
	TableCommissionQuestions = "commission_questions"
	TablePropositions        = "propositions"
	TableDossiers            = "dossiers"
	TableSubdocuments        = "subdocuments"
	TableRemunerations       = "remunerations"
	TableSummaries           = "summaries"
	TableLobby               = "lobby"
)

// Column indices per table. The dataset is positional: the scrapers emit
// columns in this exact order and every join below reads them by index.
// Changing any of these requires a dataset regeneration.

// members
const (
	MemberID = iota
	MemberSession
	MemberFirstName
	MemberLastName
	MemberGender
	MemberDateOfBirth
	MemberPlaceOfBirth
	MemberLanguage
	MemberConstituency
	MemberParty
	MemberFraction
	MemberEmail
	MemberActive
	MemberStartDate
)

// meetings (plenary)
const (
	MeetingSession = iota
	MeetingID
	MeetingDate
	MeetingTimeOfDay
	MeetingStartTime
	MeetingEndTime
)

// commissions
const (
	CommissionSession = iota
	CommissionID
	CommissionDate
	CommissionTimeOfDay
	CommissionStartTime
	CommissionEndTime
	CommissionName
	CommissionChairs
)

// votes
const (
	VoteID = iota
	VoteSession
	VoteMeeting
	VoteDate
	VoteTitleNL
	VoteTitleFR
	VoteYesCount
	VoteNoCount
	VoteAbstainCount
	VoteYesMembers
	VoteNoMembers
	VoteAbstainMembers
	VoteDossier
	VoteDocument
)

// questions and commission_questions share one schema
const (
	QuestionID = iota
	QuestionSession
	QuestionMeeting
	QuestionQuestioners
	QuestionRespondents
	QuestionTopicsNL
	QuestionTopicsFR
	QuestionDiscussion
	QuestionDiscussionIDs
)

// propositions
const (
	PropositionID = iota
	PropositionSession
	PropositionMeeting
	PropositionTitleNL
	PropositionTitleFR
	PropositionDossier
	PropositionDocument
)

// dossiers
const (
	DossierSession = iota
	DossierID
	DossierTitle
	DossierAuthors
	DossierSubmissionDate
	DossierEndDate
	DossierVoteDate
	DossierDocumentType
	DossierStatus
)

// subdocuments
const (
	SubdocumentDossier = iota
	SubdocumentID
	SubdocumentDate
	SubdocumentType
	SubdocumentAuthors
)

// remunerations
const (
	RemunerationFirstName = iota
	RemunerationLastName
	RemunerationYear
	RemunerationMandate
	RemunerationInstitute
	RemunerationMin
	RemunerationMax
)

// summaries
const (
	SummaryInputHash = iota
	SummaryTask
	SummaryText
)

// lobby
const (
	LobbyName = iota
	LobbyContacts
	LobbyInterests
	LobbyURL
)
