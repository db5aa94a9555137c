package lookup

import (
	"testing"

	"github.com/wetstraat/kamerdata/internal/model"
	"github.com/wetstraat/kamerdata/internal/rowsource"
)

func memberRow(firstName, lastName, party string) rowsource.Row {
	row := make(rowsource.Row, 14)
	row[rowsource.MemberFirstName] = firstName
	row[rowsource.MemberLastName] = lastName
	row[rowsource.MemberParty] = party
	return row
}

func TestDateByMeeting(t *testing.T) {
	rows := []rowsource.Row{
		{"55", "1", "2024-01-10", "afternoon"},
		{"55", "2", "2024-01-17", "morning"},
	}

	dates := DateByMeeting(rows)
	if got := dates[MeetingKey{SessionID: "55", MeetingID: "1"}]; got != "2024-01-10" {
		t.Errorf("date for 55/1 = %q, want 2024-01-10", got)
	}
	if got := dates[MeetingKey{SessionID: "55", MeetingID: "2"}]; got != "2024-01-17" {
		t.Errorf("date for 55/2 = %q, want 2024-01-17", got)
	}
	if _, ok := dates[MeetingKey{SessionID: "55", MeetingID: "3"}]; ok {
		t.Error("unexpected entry for missing meeting")
	}
}

func TestPartyByName_LastWriteWins(t *testing.T) {
	rows := []rowsource.Row{
		memberRow("Jane", "Doe", "Green"),
		memberRow("Jane", "Doe", "Blue"), // later session overwrites
	}

	parties := PartyByName(rows)
	if got := parties["jane-doe"]; got != "Blue" {
		t.Errorf("party for jane-doe = %q, want Blue", got)
	}
}

func TestParty_UnknownSentinel(t *testing.T) {
	parties := PartyByName([]rowsource.Row{memberRow("Jane", "Doe", "Green")})

	if got := Party(parties, "Jane Doe"); got != "Green" {
		t.Errorf("Party(Jane Doe) = %q, want Green", got)
	}
	if got := Party(parties, "  jane   DOE "); got != "Green" {
		t.Errorf("Party with odd spacing = %q, want Green", got)
	}
	if got := Party(parties, "John Roe"); got != model.UnknownParty {
		t.Errorf("Party(John Roe) = %q, want %q", got, model.UnknownParty)
	}
}

func TestPeople_NeverDrops(t *testing.T) {
	parties := PartyByName([]rowsource.Row{memberRow("Jane", "Doe", "Green")})

	people := People(parties, "Jane Doe, John Roe")
	if len(people) != 2 {
		t.Fatalf("got %d people, want 2", len(people))
	}
	if people[0] != (model.Person{Name: "Jane Doe", Party: "Green"}) {
		t.Errorf("people[0] = %+v", people[0])
	}
	if people[1] != (model.Person{Name: "John Roe", Party: model.UnknownParty}) {
		t.Errorf("people[1] = %+v", people[1])
	}
}

func TestDossierByID(t *testing.T) {
	rows := []rowsource.Row{
		{"55", "D1", "Some title", "Jane Doe,John Roe", "01/02/2024", "", "15/03/2024", "Wetsvoorstel", "Aangenomen"},
	}

	dossiers := DossierByID(rows)
	info, ok := dossiers["D1"]
	if !ok {
		t.Fatal("dossier D1 missing")
	}
	if info.VoteDate != "2024-03-15" {
		t.Errorf("vote date = %q, want 2024-03-15", info.VoteDate)
	}
	if len(info.Authors) != 2 || info.Authors[0] != "Jane Doe" {
		t.Errorf("authors = %v", info.Authors)
	}
	if info.DocumentType != "Wetsvoorstel" || info.Status != "Aangenomen" {
		t.Errorf("type/status = %q/%q", info.DocumentType, info.Status)
	}
}

func TestConvertDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"15/03/2024", "2024-03-15"},
		{"1/2/2024", "2024-02-01"},
		{"", ""},
		{"2024-03-15", ""}, // already ISO: not a source date
		{"15/03", ""},
		{"//", ""},
	}
	for _, c := range cases {
		if got := ConvertDate(c.in); got != c.want {
			t.Errorf("ConvertDate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestContentHash(t *testing.T) {
	// sha256 of the empty string, a fixed reference value.
	if got := ContentHash(""); got != "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855" {
		t.Errorf("ContentHash(empty) = %q", got)
	}
	if ContentHash("a") == ContentHash("b") {
		t.Error("distinct inputs must hash differently")
	}
}

func TestSummaryByHash(t *testing.T) {
	hash := ContentHash("De klimaatplannen")
	rows := []rowsource.Row{{hash, "question_topics", "Korte samenvatting."}}

	summaries := SummaryByHash(rows)
	if got := summaries[hash]; got != "Korte samenvatting." {
		t.Errorf("summary = %q", got)
	}
	if _, ok := summaries[ContentHash("iets anders")]; ok {
		t.Error("no fuzzy matching allowed")
	}
}

func TestSubdocumentDocID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1234/004", "004"},
		{"1234/4", "004"},
		{"55K0123", "0123"}, // whole trailing run is kept
		{"abc", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := SubdocumentDocID(c.in); got != c.want {
			t.Errorf("SubdocumentDocID(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
