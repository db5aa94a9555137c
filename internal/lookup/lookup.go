// Package lookup builds the single-purpose maps every joiner needs before
// it touches its own rows: meeting dates, party by member name, dossier
// summaries, AI summaries by content hash.
//
// All composite keys are structs, not concatenated strings, so a separator
// character inside an id can never collide two keys.
package lookup

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/wetstraat/kamerdata/internal/identity"
	"github.com/wetstraat/kamerdata/internal/model"
	"github.com/wetstraat/kamerdata/internal/rowsource"
)

// MeetingKey identifies a meeting within one id space (plenary or
// commission; the two tables are built into separate maps).
type MeetingKey struct {
	SessionID string
	MeetingID string
}

// DateByMeeting maps (session, meeting) to the sitting date. It works for
// both the meetings and the commissions table, whose first three columns
// agree; build it once per table since the id spaces are distinct.
func DateByMeeting(rows []rowsource.Row) map[MeetingKey]string {
	out := make(map[MeetingKey]string, len(rows))
	for _, row := range rows {
		key := MeetingKey{
			SessionID: row.Get(rowsource.MeetingSession),
			MeetingID: row.Get(rowsource.MeetingID),
		}
		out[key] = row.Get(rowsource.MeetingDate)
	}
	return out
}

// PartyByName maps the normalized member name to the latest observed party.
// The members table holds one row per member per session; last write wins,
// which matches "current party". Callers needing the full affiliation
// history must use Member.Parties instead.
func PartyByName(memberRows []rowsource.Row) map[string]string {
	out := make(map[string]string, len(memberRows))
	for _, row := range memberRows {
		key := identity.MemberKey(row.Get(rowsource.MemberFirstName), row.Get(rowsource.MemberLastName))
		if key == "" {
			continue
		}
		out[key] = row.Get(rowsource.MemberParty)
	}
	return out
}

// Party resolves a display name through the party map, returning the
// UnknownParty sentinel when the name does not match.
func Party(partyByName map[string]string, displayName string) string {
	if party, ok := partyByName[identity.NormalizeName(displayName)]; ok && party != "" {
		return strings.TrimSpace(party)
	}
	return model.UnknownParty
}

// Person resolves a display name to a {name, party} pair; the name keeps
// its display form, only the party is looked up.
func Person(partyByName map[string]string, displayName string) model.Person {
	name := strings.TrimSpace(displayName)
	return model.Person{Name: name, Party: Party(partyByName, name)}
}

// People resolves a comma-separated multi-value field to {name, party}
// pairs. Unresolved names keep the UnknownParty sentinel, they are never
// dropped.
func People(partyByName map[string]string, raw string) []model.Person {
	names := identity.SplitList(raw)
	out := make([]model.Person, 0, len(names))
	for _, name := range names {
		out = append(out, Person(partyByName, name))
	}
	return out
}

// DossierInfo is the dossier summary the joiners enrich from.
type DossierInfo struct {
	SessionID    string
	Title        string
	Authors      []string // raw display names, comma-split and trimmed
	DocumentType string
	Status       string
	VoteDate     string // ISO, "" when the source date was malformed
}

// DossierByID maps dossier id to its summary. Dossier ids are scoped within
// a session in the source; in practice they do not collide across sessions,
// and the original site keys them globally, which is kept here.
func DossierByID(dossierRows []rowsource.Row) map[string]DossierInfo {
	out := make(map[string]DossierInfo, len(dossierRows))
	for _, row := range dossierRows {
		id := row.Get(rowsource.DossierID)
		out[id] = DossierInfo{
			SessionID:    row.Get(rowsource.DossierSession),
			Title:        row.Get(rowsource.DossierTitle),
			Authors:      identity.SplitList(row.Get(rowsource.DossierAuthors)),
			DocumentType: row.Get(rowsource.DossierDocumentType),
			Status:       row.Get(rowsource.DossierStatus),
			VoteDate:     ConvertDate(row.Get(rowsource.DossierVoteDate)),
		}
	}
	return out
}

// SummaryByHash maps sha256 content hashes to generated summary text.
// Attachment is exact-match only; no fuzzy matching.
func SummaryByHash(summaryRows []rowsource.Row) map[string]string {
	out := make(map[string]string, len(summaryRows))
	for _, row := range summaryRows {
		out[row.Get(rowsource.SummaryInputHash)] = row.Get(rowsource.SummaryText)
	}
	return out
}

// ContentHash returns the sha256 hex digest of the exact raw source text.
// Question summaries hash the raw topics string; proposition and dossier
// title summaries hash the title with a trailing period appended.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// ConvertDate converts a DD/MM/YYYY source date to ISO YYYY-MM-DD. Invalid
// or partial dates yield "", never an error; downstream treats "" as
// unknown, not as epoch.
func ConvertDate(raw string) string {
	parts := strings.Split(raw, "/")
	if len(parts) != 3 {
		return ""
	}
	day, month, year := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2])
	if day == "" || month == "" || year == "" {
		return ""
	}
	return year + "-" + pad2(month) + "-" + pad2(day)
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// VoteDocKey joins a vote to a subdocument: dossier id plus the padded
// trailing number of the vote's document id.
type VoteDocKey struct {
	DossierID  string
	DocumentID string
}

// SubdocumentDocID extracts the subdocument number from a raw vote document
// id: the trailing digit run, left-padded to three digits so it lines up
// with subdocument ids. Returns "" when the id carries no trailing digits.
func SubdocumentDocID(raw string) string {
	end := len(raw)
	start := end
	for start > 0 && raw[start-1] >= '0' && raw[start-1] <= '9' {
		start--
	}
	if start == end {
		return ""
	}
	digits := raw[start:end]
	for len(digits) < 3 {
		digits = "0" + digits
	}
	return digits
}
