package join

import (
	"github.com/wetstraat/kamerdata/internal/lookup"
	"github.com/wetstraat/kamerdata/internal/model"
	"github.com/wetstraat/kamerdata/internal/rowsource"
)

// PropositionJoiner builds the flat proposition list with dossier-inherited
// fields and title summaries.
type PropositionJoiner struct {
	plenaryDates map[lookup.MeetingKey]string
	partyByName  map[string]string
	summaries    map[string]string
	dossiers     map[string]lookup.DossierInfo
}

// NewPropositionJoiner creates a PropositionJoiner over the given lookups.
func NewPropositionJoiner(
	plenaryDates map[lookup.MeetingKey]string,
	partyByName map[string]string,
	summaries map[string]string,
	dossiers map[string]lookup.DossierInfo,
) *PropositionJoiner {
	return &PropositionJoiner{
		plenaryDates: plenaryDates,
		partyByName:  partyByName,
		summaries:    summaries,
		dossiers:     dossiers,
	}
}

// Build returns every proposition in dataset order. Unlike the meeting
// view, a proposition without a resolvable meeting is kept; its date is
// simply empty. The title summary is looked up by the hash of the Dutch
// title with a trailing period, matching how the generation input was
// formed.
func (j *PropositionJoiner) Build(propositionRows []rowsource.Row) *model.PropositionsData {
	out := &model.PropositionsData{Propositions: []*model.Proposition{}}

	for _, row := range propositionRows {
		key := lookup.MeetingKey{
			SessionID: row.Get(rowsource.PropositionSession),
			MeetingID: row.Get(rowsource.PropositionMeeting),
		}
		dossierID := row.Get(rowsource.PropositionDossier)
		info := j.dossiers[dossierID]
		titleNL := row.Get(rowsource.PropositionTitleNL)

		out.Propositions = append(out.Propositions, &model.Proposition{
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
		})
	}

	return out
}
