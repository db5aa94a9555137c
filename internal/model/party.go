package model

// Party groups everything attributable to one party: every member ever
// affiliated, the questions its members asked, and the propositions with at
// least one author in the party. A multi-party proposition appears under
// each of its parties.
type Party struct {
	Name         string         `json:"name"`
	Members      []PartyMember  `json:"members"`
	Questions    []Question     `json:"questions"`
	Propositions []*Proposition `json:"propositions"`
}

// PartyMember is the member subset exposed under a party.
type PartyMember struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Active       bool   `json:"active"`
	DateOfBirth  string `json:"date_of_birth"`
	PlaceOfBirth string `json:"place_of_birth"`
	Language     string `json:"language"`
	Constituency string `json:"constituency"`
}

// PartySeats is the seat-count summary shown on the members page, with the
// party's display color from the color config.
type PartySeats struct {
	Name  string `json:"name"`
	Seats int    `json:"seats"`
	Color string `json:"color"`
}

// Graph is the member-similarity graph: one node per active member, one
// link per pair whose voting-vector cosine similarity clears the threshold.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}

// GraphNode is one active member in the similarity graph.
type GraphNode struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Party string `json:"party"`
	Color string `json:"color"`
}

// GraphLink is one similarity edge between two members.
type GraphLink struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// TopContributor is one entry of a per-topic top-contributor ranking.
type TopContributor struct {
	Party        string `json:"party"`
	Name         string `json:"name"`
	Total        int    `json:"total"`
	Questions    int    `json:"questions"`
	Propositions int    `json:"propositions"`
}
