package model

// View-model containers, one per generated JSON file. Each has a defined
// empty fallback (EmptyX) that the pipeline emits when the producing
// operation fails, so a broken table degrades one file instead of the run.

// MembersData is the members view-model.
type MembersData struct {
	MemberCount int       `json:"memberCount"`
	Members     []*Member `json:"members"`
	Ages        []*int    `json:"ages"`
	Incomes2023 []float64 `json:"incomes2023"`

	Parties                []PartySeats                `json:"parties"`
	Graph                  Graph                       `json:"graph"`
	TopContributorsByTopic map[string][]TopContributor `json:"topContributorsByTopic"`
}

// EmptyMembersData is the fallback when member loading fails.
func EmptyMembersData() *MembersData {
	return &MembersData{
		Members:                []*Member{},
		Ages:                   []*int{},
		Incomes2023:            []float64{},
		Parties:                []PartySeats{},
		Graph:                  Graph{Nodes: []GraphNode{}, Links: []GraphLink{}},
		TopContributorsByTopic: map[string][]TopContributor{},
	}
}

// MeetingsData is the meetings view-model.
type MeetingsData struct {
	Meetings  []*Meeting `json:"meetings"`
	Durations []float64  `json:"durations"` // minutes, aligned with Meetings
}

// EmptyMeetingsData is the fallback when meeting loading fails.
func EmptyMeetingsData() *MeetingsData {
	return &MeetingsData{Meetings: []*Meeting{}, Durations: []float64{}}
}

// DossiersData is the dossiers view-model.
type DossiersData struct {
	Dossiers []*Dossier `json:"dossiers"`
}

// EmptyDossiersData is the fallback when dossier loading fails.
func EmptyDossiersData() *DossiersData {
	return &DossiersData{Dossiers: []*Dossier{}}
}

// QuestionsData is the combined plenary+commission questions view-model.
type QuestionsData struct {
	Questions []*Question `json:"questions"`
}

// EmptyQuestionsData is the fallback when question loading fails.
func EmptyQuestionsData() *QuestionsData {
	return &QuestionsData{Questions: []*Question{}}
}

// PropositionsData is the flat propositions view-model.
type PropositionsData struct {
	Propositions []*Proposition `json:"propositions"`
}

// EmptyPropositionsData is the fallback when proposition loading fails.
func EmptyPropositionsData() *PropositionsData {
	return &PropositionsData{Propositions: []*Proposition{}}
}

// PartiesData is the parties view-model.
type PartiesData struct {
	Parties map[string]*Party `json:"parties"`
}

// EmptyPartiesData is the fallback when party loading fails.
func EmptyPartiesData() *PartiesData {
	return &PartiesData{Parties: map[string]*Party{}}
}

// LobbyData is the lobby view-model.
type LobbyData struct {
	Lobby []Lobby `json:"lobby"`
}

// EmptyLobbyData is the fallback when lobby loading fails.
func EmptyLobbyData() *LobbyData {
	return &LobbyData{Lobby: []Lobby{}}
}
