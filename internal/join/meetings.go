package join

import (
	"sort"
	"strconv"
	"strings"

	"github.com/wetstraat/kamerdata/internal/lookup"
	"github.com/wetstraat/kamerdata/internal/model"
	"github.com/wetstraat/kamerdata/internal/rowsource"
	"github.com/wetstraat/kamerdata/internal/topics"
)

// meetingRef locates a meeting within its id space. The type is part of
// the key: a commission question must never attach to a plenary meeting
// that happens to share the numeric ids.
type meetingRef struct {
	SessionID string
	MeetingID string
	Type      model.MeetingType
}

// propositionRef locates a proposition for vote attachment.
type propositionRef struct {
	SessionID string
	DossierID string
}

// MeetingJoiner builds the merged plenary+commission meeting list with
// questions, propositions and votes attached.
type MeetingJoiner struct {
	questions *QuestionJoiner

	plenaryDates    map[lookup.MeetingKey]string
	commissionDates map[lookup.MeetingKey]string
	partyByName     map[string]string
	summaries       map[string]string
	dossiers        map[string]lookup.DossierInfo
}

// NewMeetingJoiner creates a MeetingJoiner over the given lookups.
func NewMeetingJoiner(
	plenaryDates, commissionDates map[lookup.MeetingKey]string,
	partyByName map[string]string,
	summaries map[string]string,
	dossiers map[string]lookup.DossierInfo,
	taxonomy topics.Taxonomy,
) *MeetingJoiner {
	return &MeetingJoiner{
		questions:       NewQuestionJoiner(plenaryDates, commissionDates, partyByName, summaries, taxonomy),
		plenaryDates:    plenaryDates,
		commissionDates: commissionDates,
		partyByName:     partyByName,
		summaries:       summaries,
		dossiers:        dossiers,
	}
}

// Build joins all meeting-level tables. Meetings come back sorted by date
// descending, ties broken by time of day (evening before afternoon before
// morning, matching how the site lists a day's sittings).
func (j *MeetingJoiner) Build(
	meetingRows, commissionRows, questionRows, commissionQuestionRows, propositionRows, voteRows []rowsource.Row,
) *model.MeetingsData {
	meetings := []*model.Meeting{}
	byRef := make(map[meetingRef]*model.Meeting)

	add := func(m *model.Meeting) {
		meetings = append(meetings, m)
		byRef[meetingRef{SessionID: m.SessionID, MeetingID: m.MeetingID, Type: m.Type}] = m
	}

	for _, row := range meetingRows {
		add(&model.Meeting{
			Type:         model.MeetingPlenary,
			SessionID:    row.Get(rowsource.MeetingSession),
			MeetingID:    row.Get(rowsource.MeetingID),
			Date:         row.Get(rowsource.MeetingDate),
			TimeOfDay:    row.Get(rowsource.MeetingTimeOfDay),
			StartTime:    row.Get(rowsource.MeetingStartTime),
			EndTime:      row.Get(rowsource.MeetingEndTime),
			Chairs:       []model.Person{},
			Questions:    []model.Question{},
			Propositions: []*model.Proposition{},
			Votes:        []*model.Vote{},
			AllVotes:     []*model.Vote{},
			Absentees:    []model.Person{},
		})
	}

	for _, row := range commissionRows {
		add(&model.Meeting{
			Type:           model.MeetingCommission,
			CommissionType: row.Get(rowsource.CommissionName),
			SessionID:      row.Get(rowsource.CommissionSession),
			MeetingID:      row.Get(rowsource.CommissionID),
			Date:           row.Get(rowsource.CommissionDate),
			TimeOfDay:      row.Get(rowsource.CommissionTimeOfDay),
			StartTime:      row.Get(rowsource.CommissionStartTime),
			EndTime:        row.Get(rowsource.CommissionEndTime),
			Chairs:         lookup.People(j.partyByName, row.Get(rowsource.CommissionChairs)),
			Questions:      []model.Question{},
			Propositions:   []*model.Proposition{},
			Votes:          []*model.Vote{},
			AllVotes:       []*model.Vote{},
			Absentees:      []model.Person{},
		})
	}

	j.attachQuestions(byRef, questionRows, model.MeetingPlenary)
	j.attachQuestions(byRef, commissionQuestionRows, model.MeetingCommission)
	propositions := j.attachPropositions(byRef, propositionRows)
	j.attachVotes(byRef, propositions, voteRows)

	sortMeetings(meetings)

	durations := make([]float64, len(meetings))
	for i, m := range meetings {
		durations[i] = meetingDuration(m.StartTime, m.EndTime)
	}

	return &model.MeetingsData{Meetings: meetings, Durations: durations}
}

// attachQuestions parses the question rows of one type and attaches them to
// their meetings. Questions referencing an unknown meeting are dropped from
// the meeting view (they still appear in the questions view-model, which
// does not require a meeting).
func (j *MeetingJoiner) attachQuestions(byRef map[meetingRef]*model.Meeting, rows []rowsource.Row, typ model.MeetingType) {
	for _, row := range rows {
		if typ == model.MeetingCommission && row.Get(rowsource.QuestionSession) == badSessionID {
			continue
		}
		ref := meetingRef{
			SessionID: row.Get(rowsource.QuestionSession),
			MeetingID: row.Get(rowsource.QuestionMeeting),
			Type:      typ,
		}
		meeting, ok := byRef[ref]
		if !ok {
			continue
		}
		meeting.Questions = append(meeting.Questions, *j.questions.parse(row, typ))
	}
}

// attachPropositions builds propositions from their rows, attaches each to
// its meeting, and returns the (session, dossier) index used for vote
// attachment. Plenary meetings win when both id spaces hold the ids.
func (j *MeetingJoiner) attachPropositions(byRef map[meetingRef]*model.Meeting, rows []rowsource.Row) map[propositionRef]*model.Proposition {
	index := make(map[propositionRef]*model.Proposition)

	for _, row := range rows {
		sessionID := row.Get(rowsource.PropositionSession)
		meetingID := row.Get(rowsource.PropositionMeeting)

		meeting := findEitherType(byRef, sessionID, meetingID)
		if meeting == nil {
			continue
		}

		titleNL := row.Get(rowsource.PropositionTitleNL)
		dossierID := row.Get(rowsource.PropositionDossier)
		info := j.dossiers[dossierID]

		prop := &model.Proposition{
			PropositionID:  row.Get(rowsource.PropositionID),
			SessionID:      sessionID,
			MeetingID:      meetingID,
			Date:           meeting.Date,
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

		meeting.Propositions = append(meeting.Propositions, prop)
		if dossierID != "" {
			index[propositionRef{SessionID: sessionID, DossierID: dossierID}] = prop
		}
	}

	return index
}

// attachVotes parses vote rows and attaches each vote to its proposition
// when (session, dossier) matches one, otherwise to the meeting's orphan
// list. Every vote also lands in the meeting's AllVotes.
func (j *MeetingJoiner) attachVotes(byRef map[meetingRef]*model.Meeting, propositions map[propositionRef]*model.Proposition, rows []rowsource.Row) {
	for _, row := range rows {
		meeting := findEitherType(byRef, row.Get(rowsource.VoteSession), row.Get(rowsource.VoteMeeting))
		if meeting == nil {
			continue
		}

		vote := parseVote(row, j.plenaryDates, j.partyByName)

		ref := propositionRef{SessionID: vote.SessionID, DossierID: vote.DossierID}
		if prop, ok := propositions[ref]; ok && vote.DossierID != "" {
			prop.Votes = append(prop.Votes, vote)
		} else {
			meeting.Votes = append(meeting.Votes, vote)
		}
		meeting.AllVotes = append(meeting.AllVotes, vote)
	}
}

// findEitherType resolves a meeting for tables that do not discriminate the
// meeting type (propositions, votes); the plenary id space is tried first.
func findEitherType(byRef map[meetingRef]*model.Meeting, sessionID, meetingID string) *model.Meeting {
	if m, ok := byRef[meetingRef{SessionID: sessionID, MeetingID: meetingID, Type: model.MeetingPlenary}]; ok {
		return m
	}
	if m, ok := byRef[meetingRef{SessionID: sessionID, MeetingID: meetingID, Type: model.MeetingCommission}]; ok {
		return m
	}
	return nil
}

// resolveAuthors maps the dossier's raw author names to {name, party}.
func resolveAuthors(partyByName map[string]string, names []string) []model.Person {
	out := make([]model.Person, 0, len(names))
	for _, name := range names {
		out = append(out, lookup.Person(partyByName, name))
	}
	return out
}

// timeOfDayOrder ranks a day's sittings: an evening sitting is listed
// before the afternoon and morning ones on the same date.
var timeOfDayOrder = map[string]int{
	"evening":   0,
	"afternoon": 1,
	"morning":   2,
}

func sortMeetings(meetings []*model.Meeting) {
	sort.SliceStable(meetings, func(i, k int) bool {
		di, dk := parseDate(meetings[i].Date), parseDate(meetings[k].Date)
		if !di.Equal(dk) {
			return di.After(dk)
		}
		oi, ok := timeOfDayOrder[meetings[i].TimeOfDay]
		if !ok {
			oi = 999
		}
		om, ok := timeOfDayOrder[meetings[k].TimeOfDay]
		if !ok {
			om = 999
		}
		return oi < om
	})
}

// meetingDuration returns the sitting length in minutes from "14h19"-style
// start and end times, wrapping past midnight. Unparseable times yield 0.
func meetingDuration(start, end string) float64 {
	startMin, okStart := parseClock(start)
	endMin, okEnd := parseClock(end)
	if !okStart || !okEnd {
		return 0
	}

	duration := float64(endMin - startMin)
	if duration < 0 {
		duration += 24 * 60
	}
	return duration
}

// parseClock parses "14h19" or "14:19" into minutes since midnight.
func parseClock(s string) (int, bool) {
	s = strings.ReplaceAll(s, "h", ":")
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, false
	}
	hours, errH := strconv.Atoi(strings.TrimSpace(parts[0]))
	minutes, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errH != nil || errM != nil {
		return 0, false
	}
	return hours*60 + minutes, true
}
