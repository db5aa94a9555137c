package join

import (
	"sort"
	"time"

	"github.com/wetstraat/kamerdata/internal/colors"
	"github.com/wetstraat/kamerdata/internal/identity"
	"github.com/wetstraat/kamerdata/internal/lookup"
	"github.com/wetstraat/kamerdata/internal/model"
	"github.com/wetstraat/kamerdata/internal/rowsource"
)

// MemberJoiner builds the per-member records: identity merged across
// sessions, then every child collection joined on via the normalized name
// key. Records whose author or voter name does not resolve to a member are
// dropped from the member view, matching the source data's coverage.
type MemberJoiner struct {
	plenaryDates    map[lookup.MeetingKey]string
	commissionDates map[lookup.MeetingKey]string
	partyByName     map[string]string
	dossiers        map[string]lookup.DossierInfo
	palette         colors.Palette

	// now is the age reference time, overridable in tests.
	now time.Time
}

// NewMemberJoiner creates a MemberJoiner over the given lookups.
func NewMemberJoiner(
	plenaryDates, commissionDates map[lookup.MeetingKey]string,
	partyByName map[string]string,
	dossiers map[string]lookup.DossierInfo,
	palette colors.Palette,
) *MemberJoiner {
	return &MemberJoiner{
		plenaryDates:    plenaryDates,
		commissionDates: commissionDates,
		partyByName:     partyByName,
		dossiers:        dossiers,
		palette:         palette,
		now:             time.Now(),
	}
}

// Build joins every member-level table. The returned data has attendance,
// outlier scores, the similarity graph and the contributor rankings still
// zero; the metrics pass fills those in afterwards.
func (j *MemberJoiner) Build(
	memberRows, remunerationRows, questionRows, commissionQuestionRows,
	propositionRows, subdocumentRows, voteRows []rowsource.Row,
) *model.MembersData {
	byKey, ordered := j.loadMembers(memberRows)

	j.attachPropositions(byKey, propositionRows)
	j.attachSubdocuments(byKey, subdocumentRows)
	j.attachRemunerations(byKey, remunerationRows)
	j.attachQuestions(byKey, questionRows, model.MeetingPlenary)
	j.attachQuestions(byKey, commissionQuestionRows, model.MeetingCommission)
	j.attachVotes(byKey, voteRows)

	ages := make([]*int, len(ordered))
	incomes := make([]float64, len(ordered))
	for i, member := range ordered {
		ages[i] = member.Age
		incomes[i] = income2023(member)
	}

	return &model.MembersData{
		// One source row per member per session; the count deliberately
		// keeps that granularity instead of the deduplicated list length.
		MemberCount: len(memberRows),
		Members:     ordered,
		Ages:        ages,
		Incomes2023: incomes,
		Parties:     j.partySeats(ordered),
	}
}

// loadMembers folds the per-session member rows into one record per
// normalized name. The first row seeds the identity fields; later rows only
// extend the session, party and fraction histories.
func (j *MemberJoiner) loadMembers(rows []rowsource.Row) (map[string]*model.Member, []*model.Member) {
	byKey := make(map[string]*model.Member)
	ordered := []*model.Member{}

	for _, row := range rows {
		key := identity.MemberKey(row.Get(rowsource.MemberFirstName), row.Get(rowsource.MemberLastName))
		if key == "" {
			continue
		}

		if member, ok := byKey[key]; ok {
			appendUnique(&member.Sessions, row.Get(rowsource.MemberSession))
			appendUnique(&member.Parties, row.Get(rowsource.MemberParty))
			appendUnique(&member.Fractions, row.Get(rowsource.MemberFraction))
			continue
		}

		member := &model.Member{
			MemberID:     row.Get(rowsource.MemberID),
			FirstName:    row.Get(rowsource.MemberFirstName),
			LastName:     row.Get(rowsource.MemberLastName),
			Gender:       row.Get(rowsource.MemberGender),
			DateOfBirth:  row.Get(rowsource.MemberDateOfBirth),
			PlaceOfBirth: row.Get(rowsource.MemberPlaceOfBirth),
			Language:     row.Get(rowsource.MemberLanguage),
			Constituency: row.Get(rowsource.MemberConstituency),
			Email:        row.Get(rowsource.MemberEmail),
			Active:       row.Get(rowsource.MemberActive) == "true",
			StartDate:    row.Get(rowsource.MemberStartDate),

			Sessions:  []string{row.Get(rowsource.MemberSession)},
			Parties:   []string{row.Get(rowsource.MemberParty)},
			Fractions: []string{row.Get(rowsource.MemberFraction)},

			Age: j.age(row.Get(rowsource.MemberDateOfBirth)),

			Remunerations:       map[string]*model.RemunerationYear{},
			Propositions:        []model.MemberProposition{},
			Questions:           []model.MemberQuestion{},
			CommissionQuestions: []model.MemberQuestion{},
			Subdocuments:        []model.MemberSubdocument{},
			Votes:               []model.MemberVote{},
		}
		byKey[key] = member
		ordered = append(ordered, member)
	}

	return byKey, ordered
}

// age computes full years between the birth date and the reference time,
// nil when the birth date does not parse.
func (j *MemberJoiner) age(birthDate string) *int {
	born := parseDate(birthDate)
	if born.IsZero() {
		return nil
	}

	years := j.now.Year() - born.Year()
	if j.now.Month() < born.Month() || (j.now.Month() == born.Month() && j.now.Day() < born.Day()) {
		years--
	}
	return &years
}

// attachPropositions credits each proposition to every dossier author that
// resolves to a member.
func (j *MemberJoiner) attachPropositions(byKey map[string]*model.Member, rows []rowsource.Row) {
	for _, row := range rows {
		dossierID := row.Get(rowsource.PropositionDossier)
		info, ok := j.dossiers[dossierID]
		if !ok {
			continue
		}

		for _, author := range info.Authors {
			member, ok := byKey[identity.NormalizeName(author)]
			if !ok {
				continue
			}
			member.Propositions = append(member.Propositions, model.MemberProposition{
				PropositionID: row.Get(rowsource.PropositionID),
				SessionID:     row.Get(rowsource.PropositionSession),
				MeetingID:     row.Get(rowsource.PropositionMeeting),
				TitleNL:       row.Get(rowsource.PropositionTitleNL),
				TitleFR:       row.Get(rowsource.PropositionTitleFR),
				DossierID:     dossierID,
				DocumentID:    row.Get(rowsource.PropositionDocument),
				DossierTitle:  info.Title,
				DocumentType:  info.DocumentType,
				Status:        info.Status,
				VoteDate:      info.VoteDate,
			})
		}
	}
}

// attachSubdocuments credits amendments and reports to their authors.
func (j *MemberJoiner) attachSubdocuments(byKey map[string]*model.Member, rows []rowsource.Row) {
	for _, row := range rows {
		for _, author := range identity.SplitList(row.Get(rowsource.SubdocumentAuthors)) {
			member, ok := byKey[identity.NormalizeName(author)]
			if !ok {
				continue
			}
			member.Subdocuments = append(member.Subdocuments, model.MemberSubdocument{
				Date: row.Get(rowsource.SubdocumentDate),
				Type: row.Get(rowsource.SubdocumentType),
			})
		}
	}
}

// attachRemunerations groups a member's declared remunerations by year with
// running band totals.
func (j *MemberJoiner) attachRemunerations(byKey map[string]*model.Member, rows []rowsource.Row) {
	for _, row := range rows {
		key := identity.MemberKey(row.Get(rowsource.RemunerationFirstName), row.Get(rowsource.RemunerationLastName))
		member, ok := byKey[key]
		if !ok {
			continue
		}

		year := row.Get(rowsource.RemunerationYear)
		bucket := member.Remunerations[year]
		if bucket == nil {
			bucket = &model.RemunerationYear{Entries: []model.Remuneration{}}
			member.Remunerations[year] = bucket
		}

		entry := model.Remuneration{
			Mandate:   row.Get(rowsource.RemunerationMandate),
			Institute: row.Get(rowsource.RemunerationInstitute),
			Min:       parseFloat(row.Get(rowsource.RemunerationMin)),
			Max:       parseFloat(row.Get(rowsource.RemunerationMax)),
		}
		bucket.Entries = append(bucket.Entries, entry)
		bucket.TotalMin += entry.Min
		bucket.TotalMax += entry.Max
	}
}

// attachQuestions credits questions to their questioners and respondents. A
// multi-questioner row assigns one topic per questioner by position;
// respondents get the first topic. The full question context rides along on
// every credited entry.
func (j *MemberJoiner) attachQuestions(byKey map[string]*model.Member, rows []rowsource.Row, typ model.MeetingType) {
	dates := j.plenaryDates
	if typ == model.MeetingCommission {
		dates = j.commissionDates
	}

	for _, row := range rows {
		if typ == model.MeetingCommission && row.Get(rowsource.QuestionSession) == badSessionID {
			continue
		}

		key := lookup.MeetingKey{
			SessionID: row.Get(rowsource.QuestionSession),
			MeetingID: row.Get(rowsource.QuestionMeeting),
		}
		questioners := lookup.People(j.partyByName, row.Get(rowsource.QuestionQuestioners))
		respondents := lookup.People(j.partyByName, row.Get(rowsource.QuestionRespondents))
		topicsNL := splitTopics(row.Get(rowsource.QuestionTopicsNL))
		topicsFR := splitTopics(row.Get(rowsource.QuestionTopicsFR))
		discussion := parseTranscript(row.Get(rowsource.QuestionDiscussion), row.Get(rowsource.QuestionID), j.partyByName)

		base := model.MemberQuestion{
			QuestionID:  row.Get(rowsource.QuestionID),
			SessionID:   key.SessionID,
			MeetingID:   key.MeetingID,
			Date:        dates[key],
			Type:        typ,
			Questioners: questioners,
			Respondents: respondents,
			Discussion:  discussion,
		}

		credit := func(person model.Person, topicIndex int, asRespondent bool) {
			member, ok := byKey[identity.NormalizeName(person.Name)]
			if !ok {
				return
			}
			q := base
			q.TopicNL = topicAt(topicsNL, topicIndex)
			q.TopicFR = topicAt(topicsFR, topicIndex)
			q.TopicsNL = []string{q.TopicNL}
			q.TopicsFR = []string{q.TopicFR}
			q.AsRespondent = asRespondent

			if typ == model.MeetingCommission {
				member.CommissionQuestions = append(member.CommissionQuestions, q)
			} else {
				member.Questions = append(member.Questions, q)
			}
		}

		for i, person := range questioners {
			credit(person, i, false)
		}
		for _, person := range respondents {
			credit(person, 0, true)
		}
	}
}

// attachVotes appends each member's position on each vote, flagged when it
// deviates from their party's majority on that vote. The majority is a
// strict plurality over {yes, no, abstain}; any tie counts as abstain.
func (j *MemberJoiner) attachVotes(byKey map[string]*model.Member, rows []rowsource.Row) {
	for _, row := range rows {
		byChoice := map[model.VoteChoice][]string{
			model.VoteYes:     identity.SplitList(row.Get(rowsource.VoteYesMembers)),
			model.VoteNo:      identity.SplitList(row.Get(rowsource.VoteNoMembers)),
			model.VoteAbstain: identity.SplitList(row.Get(rowsource.VoteAbstainMembers)),
		}

		majority := partyMajorities(byKey, byChoice)

		for _, choice := range []model.VoteChoice{model.VoteYes, model.VoteNo, model.VoteAbstain} {
			for _, name := range byChoice[choice] {
				member, ok := byKey[identity.NormalizeName(name)]
				if !ok {
					continue
				}
				member.Votes = append(member.Votes, model.MemberVote{
					VoteID:    row.Get(rowsource.VoteID),
					SessionID: row.Get(rowsource.VoteSession),
					MeetingID: row.Get(rowsource.VoteMeeting),
					Date:      row.Get(rowsource.VoteDate),
					TitleNL:   row.Get(rowsource.VoteTitleNL),
					TitleFR:   row.Get(rowsource.VoteTitleFR),
					Choice:    choice,
					Outlier:   choice != majority[memberParty(member)],
				})
			}
		}
	}
}

// partyMajorities computes each party's majority choice on one vote. Only
// voters that resolve to a member count; the party attribution uses the
// member's first observed party, matching the seat chart.
func partyMajorities(byKey map[string]*model.Member, byChoice map[model.VoteChoice][]string) map[string]model.VoteChoice {
	counts := map[string]model.PartyVoteCount{}
	for choice, names := range byChoice {
		for _, name := range names {
			member, ok := byKey[identity.NormalizeName(name)]
			if !ok {
				continue
			}
			party := memberParty(member)
			count := counts[party]
			switch choice {
			case model.VoteYes:
				count.Yes++
			case model.VoteNo:
				count.No++
			case model.VoteAbstain:
				count.Abstain++
			}
			counts[party] = count
		}
	}

	majority := make(map[string]model.VoteChoice, len(counts))
	for party, count := range counts {
		choice := model.VoteAbstain
		if count.Yes > count.No && count.Yes > count.Abstain {
			choice = model.VoteYes
		} else if count.No > count.Yes && count.No > count.Abstain {
			choice = model.VoteNo
		}
		majority[party] = choice
	}
	return majority
}

// partySeats counts seats per party over active members and decorates the
// result with display colors, largest party first.
func (j *MemberJoiner) partySeats(members []*model.Member) []model.PartySeats {
	seats := map[string]int{}
	order := []string{}

	for _, member := range members {
		if !member.Active {
			continue
		}
		for _, party := range member.Parties {
			if _, ok := seats[party]; !ok {
				order = append(order, party)
			}
			seats[party]++
		}
	}

	out := make([]model.PartySeats, 0, len(order))
	for _, party := range order {
		out = append(out, model.PartySeats{
			Name:  party,
			Seats: seats[party],
			Color: j.palette.Primary(party),
		})
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].Seats > out[k].Seats })
	return out
}

// memberParty is the member's first observed party, Unknown when the
// history is empty.
func memberParty(member *model.Member) string {
	if len(member.Parties) > 0 && member.Parties[0] != "" {
		return member.Parties[0]
	}
	return model.UnknownParty
}

// income2023 is the midpoint of the member's declared 2023 remuneration
// band, 0 without a declaration.
func income2023(member *model.Member) float64 {
	year, ok := member.Remunerations["2023"]
	if !ok {
		return 0
	}
	return (year.TotalMin + year.TotalMax) / 2
}

// topicAt returns the positional topic, falling back to empty.
func topicAt(topics []string, i int) string {
	if i >= 0 && i < len(topics) {
		return topics[i]
	}
	return ""
}

// appendUnique appends value when the slice does not already hold it,
// preserving insertion order.
func appendUnique(slice *[]string, value string) {
	for _, existing := range *slice {
		if existing == value {
			return
		}
	}
	*slice = append(*slice, value)
}
