package join

import (
	"github.com/wetstraat/kamerdata/internal/identity"
	"github.com/wetstraat/kamerdata/internal/lookup"
	"github.com/wetstraat/kamerdata/internal/model"
	"github.com/wetstraat/kamerdata/internal/rowsource"
)

// PartyJoiner builds the per-party view: members ever affiliated, the
// plenary questions its members asked, and the propositions with at least
// one author in the party.
type PartyJoiner struct {
	plenaryDates map[lookup.MeetingKey]string
	partyByName  map[string]string
	summaries    map[string]string
	dossiers     map[string]lookup.DossierInfo
}

// NewPartyJoiner creates a PartyJoiner over the given lookups.
func NewPartyJoiner(
	plenaryDates map[lookup.MeetingKey]string,
	partyByName map[string]string,
	summaries map[string]string,
	dossiers map[string]lookup.DossierInfo,
) *PartyJoiner {
	return &PartyJoiner{
		plenaryDates: plenaryDates,
		partyByName:  partyByName,
		summaries:    summaries,
		dossiers:     dossiers,
	}
}

// Build joins members, questions and propositions into parties. A question
// is attributed to the party of each of its questioners; a multi-party
// proposition appears under each author's party once.
func (j *PartyJoiner) Build(memberRows, questionRows, propositionRows []rowsource.Row) *model.PartiesData {
	out := &model.PartiesData{Parties: map[string]*model.Party{}}

	j.addMembers(out.Parties, memberRows)
	j.addQuestions(out.Parties, questionRows)
	j.addPropositions(out.Parties, propositionRows)

	return out
}

func (j *PartyJoiner) party(parties map[string]*model.Party, name string) *model.Party {
	party, ok := parties[name]
	if !ok {
		party = &model.Party{
			Name:         name,
			Members:      []model.PartyMember{},
			Questions:    []model.Question{},
			Propositions: []*model.Proposition{},
		}
		parties[name] = party
	}
	return party
}

// addMembers registers each member under every party the rows affiliate
// them with, once per (party, member) pair even when the member served the
// party across several sessions.
func (j *PartyJoiner) addMembers(parties map[string]*model.Party, rows []rowsource.Row) {
	type affiliation struct {
		party  string
		member string
	}
	seen := map[affiliation]bool{}

	for _, row := range rows {
		key := identity.MemberKey(row.Get(rowsource.MemberFirstName), row.Get(rowsource.MemberLastName))
		if key == "" {
			continue
		}
		partyName := row.Get(rowsource.MemberParty)
		pair := affiliation{party: partyName, member: key}
		if seen[pair] {
			continue
		}
		seen[pair] = true

		party := j.party(parties, partyName)
		party.Members = append(party.Members, model.PartyMember{
			FirstName:    row.Get(rowsource.MemberFirstName),
			LastName:     row.Get(rowsource.MemberLastName),
			Active:       row.Get(rowsource.MemberActive) == "true",
			DateOfBirth:  row.Get(rowsource.MemberDateOfBirth),
			PlaceOfBirth: row.Get(rowsource.MemberPlaceOfBirth),
			Language:     row.Get(rowsource.MemberLanguage),
			Constituency: row.Get(rowsource.MemberConstituency),
		})
	}
}

// addQuestions attributes each plenary question to the party of every
// questioner that resolves to one. The attributed copy carries only the
// questioner's own positional topic; blanks are dropped.
func (j *PartyJoiner) addQuestions(parties map[string]*model.Party, rows []rowsource.Row) {
	for _, row := range rows {
		key := lookup.MeetingKey{
			SessionID: row.Get(rowsource.QuestionSession),
			MeetingID: row.Get(rowsource.QuestionMeeting),
		}
		questioners := lookup.People(j.partyByName, row.Get(rowsource.QuestionQuestioners))
		respondents := lookup.People(j.partyByName, row.Get(rowsource.QuestionRespondents))
		topicsNL := splitTopics(row.Get(rowsource.QuestionTopicsNL))
		topicsFR := splitTopics(row.Get(rowsource.QuestionTopicsFR))
		discussion := parseTranscript(row.Get(rowsource.QuestionDiscussion), row.Get(rowsource.QuestionID), j.partyByName)
		discussionIDs := splitIDs(row.Get(rowsource.QuestionDiscussionIDs))

		for i, questioner := range questioners {
			partyName, ok := j.partyByName[identity.NormalizeName(questioner.Name)]
			if !ok || partyName == "" {
				continue
			}

			party := j.party(parties, partyName)
			party.Questions = append(party.Questions, model.Question{
				Type:          model.MeetingPlenary,
				QuestionID:    row.Get(rowsource.QuestionID),
				SessionID:     key.SessionID,
				MeetingID:     key.MeetingID,
				Date:          j.plenaryDates[key],
				Questioners:   questioners,
				Respondents:   respondents,
				TopicsNL:      presentTopic(topicsNL, i),
				TopicsFR:      presentTopic(topicsFR, i),
				Discussion:    discussion,
				DiscussionIDs: discussionIDs,
				Tags:          []string{},
			})
		}
	}
}

// addPropositions attaches each proposition to the party of every resolved
// dossier author, once per party.
func (j *PartyJoiner) addPropositions(parties map[string]*model.Party, rows []rowsource.Row) {
	for _, row := range rows {
		dossierID := row.Get(rowsource.PropositionDossier)
		info, ok := j.dossiers[dossierID]
		if !ok {
			continue
		}

		key := lookup.MeetingKey{
			SessionID: row.Get(rowsource.PropositionSession),
			MeetingID: row.Get(rowsource.PropositionMeeting),
		}
		titleNL := row.Get(rowsource.PropositionTitleNL)

		var prop *model.Proposition
		credited := map[string]bool{}
		for _, author := range info.Authors {
			partyName, ok := j.partyByName[identity.NormalizeName(author)]
			if !ok || partyName == "" || credited[partyName] {
				continue
			}
			credited[partyName] = true

			if prop == nil {
				prop = &model.Proposition{
					PropositionID:  row.Get(rowsource.PropositionID),
					SessionID:      key.SessionID,
					MeetingID:      key.MeetingID,
					Date:           j.plenaryDates[key],
					TitleNL:        titleNL,
					TitleFR:        row.Get(rowsource.PropositionTitleFR),
					TitleSummaryNL: j.summaries[lookup.ContentHash(titleNL+".")],
					DossierID:      dossierID,
					DocumentID:     row.Get(rowsource.PropositionDocument),
					Authors:        resolveAuthors(j.partyByName, info.Authors),
					DocumentType:   info.DocumentType,
					Status:         info.Status,
					VoteDate:       info.VoteDate,
					Votes:          []*model.Vote{},
				}
			}

			party := j.party(parties, partyName)
			party.Propositions = append(party.Propositions, prop)
		}
	}
}

// presentTopic is the single positional topic as a list, empty when blank.
func presentTopic(topics []string, i int) []string {
	topic := topicAt(topics, i)
	if topic == "" {
		return []string{}
	}
	return []string{topic}
}
