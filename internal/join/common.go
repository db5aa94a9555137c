// Package join turns raw dataset rows into denormalized entities.
//
// Each joiner owns one target entity type (meetings, members, dossiers,
// parties, questions, propositions, lobby). A joiner takes the raw rows of
// its subject tables plus prebuilt lookups and returns fully-populated
// records; joins go through maps keyed by composite ids, never repeated
// linear scans, keeping cost near O(total rows).
//
// Error policy is local recovery throughout: unresolvable names get the
// Unknown party sentinel, malformed transcripts become empty transcripts
// with a stderr warning, known-bad commission rows (session id "404") are
// skipped silently. Nothing here aborts a generation run.
package join

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/wetstraat/kamerdata/internal/identity"
	"github.com/wetstraat/kamerdata/internal/lookup"
	"github.com/wetstraat/kamerdata/internal/model"
	"github.com/wetstraat/kamerdata/internal/rowsource"
)

// badSessionID marks known-bad commission rows in the source dataset; they
// are skipped entirely, never defaulted.
const badSessionID = "404"

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}

// atoi parses a count column, returning 0 for anything unparseable.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// parseFloat parses a numeric column, returning 0 for anything unparseable.
func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// splitTopics splits a semicolon-separated topic column, keeping blank
// entries so topic positions stay aligned with questioner positions.
func splitTopics(raw string) []string {
	return identity.SplitTopics(raw)
}

// splitIDs splits a comma-separated id column.
func splitIDs(raw string) []string {
	return identity.SplitList(raw)
}

// rawTranscriptTurn is the serialized transcript shape in the source rows.
type rawTranscriptTurn struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// parseTranscript decodes a serialized discussion and resolves each
// speaker's party. A malformed transcript yields an empty sequence and a
// warning carrying the question id; the question itself is kept.
func parseTranscript(raw, questionID string, partyByName map[string]string) []model.DiscussionTurn {
	var turns []rawTranscriptTurn
	if err := json.Unmarshal([]byte(raw), &turns); err != nil {
		warnf("question %s: cannot parse discussion: %v", questionID, err)
		return []model.DiscussionTurn{}
	}

	out := make([]model.DiscussionTurn, 0, len(turns))
	for _, turn := range turns {
		out = append(out, model.DiscussionTurn{
			Speaker: lookup.Person(partyByName, turn.Speaker),
			Text:    turn.Text,
		})
	}
	return out
}

// parseVote builds the full vote record from a votes row: member lists
// resolved to parties, per-party counts and groupings, date from the
// meeting date map.
func parseVote(row rowsource.Row, dates map[lookup.MeetingKey]string, partyByName map[string]string) *model.Vote {
	key := lookup.MeetingKey{
		SessionID: row.Get(rowsource.VoteSession),
		MeetingID: row.Get(rowsource.VoteMeeting),
	}

	vote := &model.Vote{
		VoteID:         row.Get(rowsource.VoteID),
		SessionID:      key.SessionID,
		MeetingID:      key.MeetingID,
		Date:           dates[key],
		TitleNL:        row.Get(rowsource.VoteTitleNL),
		TitleFR:        row.Get(rowsource.VoteTitleFR),
		YesCount:       atoi(row.Get(rowsource.VoteYesCount)),
		NoCount:        atoi(row.Get(rowsource.VoteNoCount)),
		AbstainCount:   atoi(row.Get(rowsource.VoteAbstainCount)),
		YesMembers:     lookup.People(partyByName, row.Get(rowsource.VoteYesMembers)),
		NoMembers:      lookup.People(partyByName, row.Get(rowsource.VoteNoMembers)),
		AbstainMembers: lookup.People(partyByName, row.Get(rowsource.VoteAbstainMembers)),
		DossierID:      row.Get(rowsource.VoteDossier),
		DocumentID:     row.Get(rowsource.VoteDocument),
	}

	vote.VotesByParty = make(map[string]model.PartyVoteCount)
	vote.GroupedVotesByParty = make(map[string]model.GroupedPartyVotes)

	group := func(people []model.Person, choice model.VoteChoice) {
		for _, person := range people {
			counts := vote.VotesByParty[person.Party]
			grouped := vote.GroupedVotesByParty[person.Party]
			switch choice {
			case model.VoteYes:
				counts.Yes++
				grouped.Yes = append(grouped.Yes, person)
			case model.VoteNo:
				counts.No++
				grouped.No = append(grouped.No, person)
			case model.VoteAbstain:
				counts.Abstain++
				grouped.Abstain = append(grouped.Abstain, person)
			}
			vote.VotesByParty[person.Party] = counts
			vote.GroupedVotesByParty[person.Party] = grouped
		}
	}
	group(vote.YesMembers, model.VoteYes)
	group(vote.NoMembers, model.VoteNo)
	group(vote.AbstainMembers, model.VoteAbstain)

	return vote
}

// ActiveMembers extracts the {name, party} list of active members from the
// raw members table, deduplicated by normalized name in row order. Meeting
// attendance uses it to compute absentee lists.
func ActiveMembers(memberRows []rowsource.Row) []model.Person {
	seen := make(map[string]bool)
	out := []model.Person{}
	for _, row := range memberRows {
		if row.Get(rowsource.MemberActive) != "true" {
			continue
		}
		key := identity.MemberKey(row.Get(rowsource.MemberFirstName), row.Get(rowsource.MemberLastName))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		party := row.Get(rowsource.MemberParty)
		if party == "" {
			party = model.UnknownParty
		}
		out = append(out, model.Person{
			Name:  row.Get(rowsource.MemberFirstName) + " " + row.Get(rowsource.MemberLastName),
			Party: party,
		})
	}
	return out
}

// parseDate parses the date formats the dataset carries: ISO dates and the
// DD/MM/YYYY scraper format. The zero time signals "unknown".
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02", "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
