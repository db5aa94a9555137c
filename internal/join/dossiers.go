package join

import (
	"github.com/wetstraat/kamerdata/internal/lookup"
	"github.com/wetstraat/kamerdata/internal/model"
	"github.com/wetstraat/kamerdata/internal/rowsource"
)

// DossierJoiner builds dossiers with their subdocument trees and the votes
// attached to each subdocument.
type DossierJoiner struct {
	partyByName map[string]string
}

// NewDossierJoiner creates a DossierJoiner over the party lookup.
func NewDossierJoiner(partyByName map[string]string) *DossierJoiner {
	return &DossierJoiner{partyByName: partyByName}
}

// Build joins dossiers, subdocuments and votes. Votes reach a subdocument
// through (dossier id, padded trailing number of the vote's document id);
// votes whose document id carries no trailing digits attach to nothing
// here, only to meetings. Source DD/MM/YYYY dates come out ISO.
func (j *DossierJoiner) Build(dossierRows, subdocumentRows, voteRows []rowsource.Row) *model.DossiersData {
	votesByDoc := j.indexVotes(voteRows)
	subdocsByDossier := j.indexSubdocuments(subdocumentRows, votesByDoc)

	out := &model.DossiersData{Dossiers: []*model.Dossier{}}
	for _, row := range dossierRows {
		dossierID := row.Get(rowsource.DossierID)

		subdocuments := subdocsByDossier[dossierID]
		if subdocuments == nil {
			subdocuments = []model.Subdocument{}
		}

		out.Dossiers = append(out.Dossiers, &model.Dossier{
			SessionID:      row.Get(rowsource.DossierSession),
			DossierID:      dossierID,
			Title:          row.Get(rowsource.DossierTitle),
			Authors:        lookup.People(j.partyByName, row.Get(rowsource.DossierAuthors)),
			SubmissionDate: lookup.ConvertDate(row.Get(rowsource.DossierSubmissionDate)),
			EndDate:        lookup.ConvertDate(row.Get(rowsource.DossierEndDate)),
			VoteDate:       lookup.ConvertDate(row.Get(rowsource.DossierVoteDate)),
			DocumentType:   row.Get(rowsource.DossierDocumentType),
			Status:         row.Get(rowsource.DossierStatus),
			Subdocuments:   subdocuments,
		})
	}
	return out
}

func (j *DossierJoiner) indexVotes(rows []rowsource.Row) map[lookup.VoteDocKey][]model.SubdocumentVote {
	out := make(map[lookup.VoteDocKey][]model.SubdocumentVote)
	for _, row := range rows {
		docID := lookup.SubdocumentDocID(row.Get(rowsource.VoteDocument))
		if docID == "" {
			continue
		}
		key := lookup.VoteDocKey{
			DossierID:  row.Get(rowsource.VoteDossier),
			DocumentID: docID,
		}
		out[key] = append(out[key], model.SubdocumentVote{
			VoteID:       row.Get(rowsource.VoteID),
			SessionID:    row.Get(rowsource.VoteSession),
			MeetingID:    row.Get(rowsource.VoteMeeting),
			YesCount:     atoi(row.Get(rowsource.VoteYesCount)),
			NoCount:      atoi(row.Get(rowsource.VoteNoCount)),
			AbstainCount: atoi(row.Get(rowsource.VoteAbstainCount)),
			DossierID:    row.Get(rowsource.VoteDossier),
			DocumentID:   row.Get(rowsource.VoteDocument),
		})
	}
	return out
}

func (j *DossierJoiner) indexSubdocuments(rows []rowsource.Row, votesByDoc map[lookup.VoteDocKey][]model.SubdocumentVote) map[string][]model.Subdocument {
	out := make(map[string][]model.Subdocument)
	for _, row := range rows {
		dossierID := row.Get(rowsource.SubdocumentDossier)
		subdocID := row.Get(rowsource.SubdocumentID)

		votes := votesByDoc[lookup.VoteDocKey{DossierID: dossierID, DocumentID: subdocID}]
		if votes == nil {
			votes = []model.SubdocumentVote{}
		}

		out[dossierID] = append(out[dossierID], model.Subdocument{
			ID:      subdocID,
			Date:    lookup.ConvertDate(row.Get(rowsource.SubdocumentDate)),
			Type:    row.Get(rowsource.SubdocumentType),
			Authors: lookup.People(j.partyByName, row.Get(rowsource.SubdocumentAuthors)),
			Votes:   votes,
		})
	}
	return out
}
