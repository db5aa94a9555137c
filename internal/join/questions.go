package join

import (
	"github.com/wetstraat/kamerdata/internal/lookup"
	"github.com/wetstraat/kamerdata/internal/model"
	"github.com/wetstraat/kamerdata/internal/rowsource"
	"github.com/wetstraat/kamerdata/internal/topics"
)

// QuestionJoiner builds Question entities from the plenary and commission
// question tables. The two tables share one schema but live in distinct
// meeting id spaces, so each carries its own date map.
type QuestionJoiner struct {
	plenaryDates    map[lookup.MeetingKey]string
	commissionDates map[lookup.MeetingKey]string
	partyByName     map[string]string
	summaries       map[string]string
	taxonomy        topics.Taxonomy
}

// NewQuestionJoiner creates a QuestionJoiner over the given lookups. The
// taxonomy may be nil, in which case questions carry no topic tags.
func NewQuestionJoiner(
	plenaryDates, commissionDates map[lookup.MeetingKey]string,
	partyByName map[string]string,
	summaries map[string]string,
	taxonomy topics.Taxonomy,
) *QuestionJoiner {
	return &QuestionJoiner{
		plenaryDates:    plenaryDates,
		commissionDates: commissionDates,
		partyByName:     partyByName,
		summaries:       summaries,
		taxonomy:        taxonomy,
	}
}

// Build returns the combined question list: plenary questions first, then
// commission questions, both in dataset order. Commission rows with the
// known-bad session id are skipped.
func (j *QuestionJoiner) Build(plenaryRows, commissionRows []rowsource.Row) *model.QuestionsData {
	out := &model.QuestionsData{Questions: []*model.Question{}}

	for _, row := range plenaryRows {
		out.Questions = append(out.Questions, j.parse(row, model.MeetingPlenary))
	}
	for _, row := range commissionRows {
		if row.Get(rowsource.QuestionSession) == badSessionID {
			continue
		}
		out.Questions = append(out.Questions, j.parse(row, model.MeetingCommission))
	}

	return out
}

// parse builds one Question from a row of either table.
func (j *QuestionJoiner) parse(row rowsource.Row, typ model.MeetingType) *model.Question {
	key := lookup.MeetingKey{
		SessionID: row.Get(rowsource.QuestionSession),
		MeetingID: row.Get(rowsource.QuestionMeeting),
	}

	dates := j.plenaryDates
	if typ == model.MeetingCommission {
		dates = j.commissionDates
	}

	rawTopicsNL := row.Get(rowsource.QuestionTopicsNL)
	summary := j.summaries[lookup.ContentHash(rawTopicsNL)]

	question := &model.Question{
		Type:        typ,
		QuestionID:  row.Get(rowsource.QuestionID),
		SessionID:   key.SessionID,
		MeetingID:   key.MeetingID,
		Date:        dates[key],
		Questioners: lookup.People(j.partyByName, row.Get(rowsource.QuestionQuestioners)),
		Respondents: lookup.People(j.partyByName, row.Get(rowsource.QuestionRespondents)),

		TopicsNL: splitTopics(rawTopicsNL),
		TopicsFR: splitTopics(row.Get(rowsource.QuestionTopicsFR)),

		// Only Dutch summaries are generated; the French field mirrors the
		// Dutch text until a French pass exists.
		TopicsSummaryNL: summary,
		TopicsSummaryFR: summary,

		Discussion:    parseTranscript(row.Get(rowsource.QuestionDiscussion), row.Get(rowsource.QuestionID), j.partyByName),
		DiscussionIDs: splitIDs(row.Get(rowsource.QuestionDiscussionIDs)),
	}

	if j.taxonomy != nil {
		question.Tags = j.taxonomy.Tags(rawTopicsNL)
	} else {
		question.Tags = []string{}
	}

	return question
}
