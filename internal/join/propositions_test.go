package join

import (
	"testing"

	"github.com/wetstraat/kamerdata/internal/lookup"
	"github.com/wetstraat/kamerdata/internal/model"
	"github.com/wetstraat/kamerdata/internal/rowsource"
)

func TestPropositionJoiner_Build(t *testing.T) {
	plenaryDates := map[lookup.MeetingKey]string{
		{SessionID: "55", MeetingID: "100"}: "2024-03-01",
	}
	parties := map[string]string{"jan-peeters": "Groen"}
	summaries := map[string]string{
		lookup.ContentHash("Wetsontwerp energie."): "Regelt de energiemarkt.",
	}
	dossiers := map[string]lookup.DossierInfo{
		"3001": {
			Title:        "Wetsontwerp energie",
			Authors:      []string{"Jan Peeters"},
			DocumentType: "WETSONTWERP",
			Status:       "AANGENOMEN",
			VoteDate:     "2024-03-01",
		},
	}
	j := NewPropositionJoiner(plenaryDates, parties, summaries, dossiers)

	data := j.Build([]rowsource.Row{
		propositionRow("p1", "55", "100", "Wetsontwerp energie", "Projet", "3001", "55K3001"),
		propositionRow("p2", "55", "999", "Zonder vergadering", "Sans", "", ""),
	})

	if len(data.Propositions) != 2 {
		t.Fatalf("propositions = %d", len(data.Propositions))
	}

	first := data.Propositions[0]
	if first.Date != "2024-03-01" {
		t.Errorf("date = %q", first.Date)
	}
	if first.TitleSummaryNL != "Regelt de energiemarkt." {
		t.Errorf("summary = %q", first.TitleSummaryNL)
	}
	if first.Status != "AANGENOMEN" || len(first.Authors) != 1 || first.Authors[0].Party != "Groen" {
		t.Errorf("dossier fields = %+v", first)
	}

	// Unknown meeting and dossier degrade to empty fields, the record stays.
	second := data.Propositions[1]
	if second.Date != "" || second.Status != "" {
		t.Errorf("second = %+v", second)
	}
	if second.Authors == nil {
		t.Error("authors must be empty, not nil")
	}
}

func TestBuildLobby(t *testing.T) {
	data := BuildLobby([]rowsource.Row{
		{"Vereniging X", "info@x.be", "energie, klimaat", "https://x.be"},
	})
	if len(data.Lobby) != 1 {
		t.Fatalf("lobby = %d", len(data.Lobby))
	}
	want := model.Lobby{Name: "Vereniging X", Contacts: "info@x.be", Interests: "energie, klimaat", URL: "https://x.be"}
	if data.Lobby[0] != want {
		t.Errorf("lobby = %+v", data.Lobby[0])
	}
}

func TestBuildLobby_Empty(t *testing.T) {
	if data := BuildLobby(nil); data.Lobby == nil || len(data.Lobby) != 0 {
		t.Errorf("lobby = %v", data.Lobby)
	}
}
