package join

import (
	"testing"
	"time"

	"github.com/wetstraat/kamerdata/internal/colors"
	"github.com/wetstraat/kamerdata/internal/lookup"
	"github.com/wetstraat/kamerdata/internal/model"
	"github.com/wetstraat/kamerdata/internal/rowsource"
)

func memberRow(id, session, first, last, party, fraction, active, startDate string) rowsource.Row {
	return rowsource.Row{
		id, session, first, last, "m", "1980-06-15", "Gent", "nl", "Oost-Vlaanderen",
		party, fraction, first + "@dekamer.be", active, startDate,
	}
}

func testMemberJoiner() *MemberJoiner {
	palette := colors.Palette{
		"groen":   {Primary: "#00ff00"},
		"vooruit": {Primary: "#ff0000"},
	}
	dossiers := map[string]lookup.DossierInfo{
		"3001": {
			SessionID:    "55",
			Title:        "Wetsontwerp energie",
			Authors:      []string{"Jan Peeters", "Niet Lid"},
			DocumentType: "WETSONTWERP",
			Status:       "AANGENOMEN",
			VoteDate:     "2024-03-01",
		},
	}
	j := NewMemberJoiner(nil, nil, nil, dossiers, palette)
	j.now = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return j
}

func TestMemberJoiner_MergesSessions(t *testing.T) {
	j := testMemberJoiner()

	data := j.Build(
		[]rowsource.Row{
			memberRow("m1", "54", "Jan", "Peeters", "Groen", "Ecolo-Groen", "false", "2014-06-19"),
			memberRow("m1b", "55", "Jan", "Peeters", "Groen!", "Ecolo-Groen", "true", "2019-06-20"),
			memberRow("m2", "55", "An", "Smet", "Vooruit", "Vooruit", "true", "2019-06-20"),
		},
		nil, nil, nil, nil, nil, nil,
	)

	if data.MemberCount != 3 {
		t.Errorf("memberCount = %d, want 3 (one per row)", data.MemberCount)
	}
	if len(data.Members) != 2 {
		t.Fatalf("got %d members", len(data.Members))
	}

	jan := data.Members[0]
	if jan.MemberID != "m1" {
		t.Errorf("first row wins identity, got %q", jan.MemberID)
	}
	if len(jan.Sessions) != 2 || len(jan.Parties) != 2 {
		t.Errorf("sessions = %v, parties = %v", jan.Sessions, jan.Parties)
	}
	if jan.Active {
		t.Error("active should come from the first row")
	}

	// Born 1980-06-15, reference 2024-06-01: birthday not yet reached.
	if jan.Age == nil || *jan.Age != 43 {
		t.Errorf("age = %v, want 43", jan.Age)
	}
}

func TestMemberJoiner_AgeNilOnBadBirthDate(t *testing.T) {
	j := testMemberJoiner()
	row := memberRow("m1", "55", "Jan", "Peeters", "Groen", "", "true", "2019-06-20")
	row[rowsource.MemberDateOfBirth] = "onbekend"

	data := j.Build([]rowsource.Row{row}, nil, nil, nil, nil, nil, nil)
	if data.Members[0].Age != nil {
		t.Errorf("age = %v, want nil", *data.Members[0].Age)
	}
}

func TestMemberJoiner_Propositions(t *testing.T) {
	j := testMemberJoiner()

	data := j.Build(
		[]rowsource.Row{memberRow("m1", "55", "Jan", "Peeters", "Groen", "", "true", "2019-06-20")},
		nil, nil, nil,
		[]rowsource.Row{propositionRow("p1", "55", "100", "Wetsontwerp energie", "Projet", "3001", "55K3001")},
		nil, nil,
	)

	jan := data.Members[0]
	if len(jan.Propositions) != 1 {
		t.Fatalf("propositions = %d", len(jan.Propositions))
	}
	prop := jan.Propositions[0]
	if prop.DossierTitle != "Wetsontwerp energie" || prop.Status != "AANGENOMEN" || prop.VoteDate != "2024-03-01" {
		t.Errorf("proposition = %+v", prop)
	}
}

func TestMemberJoiner_SubdocumentsAndRemunerations(t *testing.T) {
	j := testMemberJoiner()

	data := j.Build(
		[]rowsource.Row{memberRow("m1", "55", "Jan", "Peeters", "Groen", "", "true", "2019-06-20")},
		[]rowsource.Row{
			{"Jan", "Peeters", "2023", "Burgemeester", "Stad Gent", "10000", "50000"},
			{"Jan", "Peeters", "2023", "Bestuurder", "Intercommunale", "1", "4999"},
			{"Jan", "Peeters", "2022", "Burgemeester", "Stad Gent", "10000", "50000"},
			{"Geen", "Lid", "2023", "Iets", "Ergens", "1", "2"},
		},
		nil, nil, nil,
		[]rowsource.Row{
			{"3001", "004", "2024-02-01", "AMENDEMENT", "Jan Peeters, Onbekend Iemand"},
		},
		nil,
	)

	jan := data.Members[0]
	if len(jan.Subdocuments) != 1 || jan.Subdocuments[0].Type != "AMENDEMENT" {
		t.Errorf("subdocuments = %v", jan.Subdocuments)
	}

	year2023 := jan.Remunerations["2023"]
	if year2023 == nil || len(year2023.Entries) != 2 {
		t.Fatalf("remunerations 2023 = %+v", year2023)
	}
	if year2023.TotalMin != 10001 || year2023.TotalMax != 54999 {
		t.Errorf("totals = %v/%v", year2023.TotalMin, year2023.TotalMax)
	}
	if len(jan.Remunerations) != 2 {
		t.Errorf("years = %d", len(jan.Remunerations))
	}

	// Midpoint of the 2023 band.
	if got := data.Incomes2023[0]; got != (10001+54999)/2.0 {
		t.Errorf("income = %v", got)
	}
}

func TestMemberJoiner_QuestionsPerIndexTopic(t *testing.T) {
	j := testMemberJoiner()

	members := []rowsource.Row{
		memberRow("m1", "55", "Jan", "Peeters", "Groen", "", "true", "2019-06-20"),
		memberRow("m2", "55", "An", "Smet", "Vooruit", "", "true", "2019-06-20"),
	}
	questions := []rowsource.Row{
		questionRow("55", "100", "Jan Peeters,An Smet", "An Smet", "Klimaat;Begroting", "Climat;Budget", "[]"),
	}

	data := j.Build(members, nil, questions, nil, nil, nil, nil)

	jan, an := data.Members[0], data.Members[1]
	if len(jan.Questions) != 1 || jan.Questions[0].TopicNL != "Klimaat" {
		t.Errorf("jan questions = %+v", jan.Questions)
	}
	if jan.Questions[0].AsRespondent {
		t.Error("jan is a questioner")
	}

	// An appears twice: once as second questioner (topic by position), once
	// as respondent (first topic).
	if len(an.Questions) != 2 {
		t.Fatalf("an questions = %d", len(an.Questions))
	}
	if an.Questions[0].TopicNL != "Begroting" || an.Questions[0].AsRespondent {
		t.Errorf("questioner entry = %+v", an.Questions[0])
	}
	if an.Questions[1].TopicNL != "Klimaat" || !an.Questions[1].AsRespondent {
		t.Errorf("respondent entry = %+v", an.Questions[1])
	}
}

func TestMemberJoiner_CommissionQuestionsSeparate(t *testing.T) {
	j := testMemberJoiner()

	members := []rowsource.Row{memberRow("m1", "55", "Jan", "Peeters", "Groen", "", "true", "2019-06-20")}
	commission := []rowsource.Row{
		questionRow("55", "7", "Jan Peeters", "", "Begroting", "", "[]"),
		questionRow("404", "9", "Jan Peeters", "", "Kapot", "", "[]"),
	}

	data := j.Build(members, nil, nil, commission, nil, nil, nil)

	jan := data.Members[0]
	if len(jan.Questions) != 0 {
		t.Errorf("plenary questions = %v", jan.Questions)
	}
	if len(jan.CommissionQuestions) != 1 {
		t.Fatalf("commission questions = %d", len(jan.CommissionQuestions))
	}
	if jan.CommissionQuestions[0].Type != model.MeetingCommission {
		t.Errorf("type = %q", jan.CommissionQuestions[0].Type)
	}
}

func TestMemberJoiner_VoteOutliers(t *testing.T) {
	j := testMemberJoiner()

	members := []rowsource.Row{
		memberRow("m1", "55", "Jan", "Peeters", "Groen", "", "true", "2019-06-20"),
		memberRow("m2", "55", "An", "Smet", "Groen", "", "true", "2019-06-20"),
		memberRow("m3", "55", "Piet", "Maes", "Groen", "", "true", "2019-06-20"),
	}
	votes := []rowsource.Row{
		{
			"v1", "55", "100", "2024-03-01", "Stemming", "Vote",
			"2", "1", "0",
			"Jan Peeters,An Smet", "Piet Maes", "",
			"", "",
		},
	}

	data := j.Build(members, nil, nil, nil, nil, nil, votes)

	jan, piet := data.Members[0], data.Members[2]
	if len(jan.Votes) != 1 || jan.Votes[0].Choice != model.VoteYes || jan.Votes[0].Outlier {
		t.Errorf("jan vote = %+v", jan.Votes)
	}
	if len(piet.Votes) != 1 || !piet.Votes[0].Outlier {
		t.Errorf("piet should deviate from the Groen majority, got %+v", piet.Votes)
	}
}

func TestPartyMajorities_TieIsAbstain(t *testing.T) {
	byKey := map[string]*model.Member{
		"jan-peeters": {Parties: []string{"Groen"}},
		"an-smet":     {Parties: []string{"Groen"}},
		"piet-maes":   {Parties: []string{"Groen"}},
	}
	byChoice := map[model.VoteChoice][]string{
		model.VoteYes:     {"Jan Peeters"},
		model.VoteNo:      {"An Smet"},
		model.VoteAbstain: {"Piet Maes"},
	}

	majority := partyMajorities(byKey, byChoice)
	if majority["Groen"] != model.VoteAbstain {
		t.Errorf("majority = %q, want abstain on a three-way tie", majority["Groen"])
	}
}

func TestMemberJoiner_PartySeats(t *testing.T) {
	j := testMemberJoiner()

	data := j.Build(
		[]rowsource.Row{
			memberRow("m1", "55", "Jan", "Peeters", "Groen", "", "true", "2019-06-20"),
			memberRow("m2", "55", "An", "Smet", "Groen", "", "true", "2019-06-20"),
			memberRow("m3", "55", "Piet", "Maes", "Vooruit", "", "true", "2019-06-20"),
			memberRow("m4", "55", "Oud", "Lid", "Vooruit", "", "false", "2014-06-19"),
		},
		nil, nil, nil, nil, nil, nil,
	)

	if len(data.Parties) != 2 {
		t.Fatalf("parties = %+v", data.Parties)
	}
	if data.Parties[0].Name != "Groen" || data.Parties[0].Seats != 2 {
		t.Errorf("largest party = %+v", data.Parties[0])
	}
	if data.Parties[0].Color != "#00ff00" {
		t.Errorf("color = %q", data.Parties[0].Color)
	}
	if data.Parties[1].Seats != 1 {
		t.Errorf("inactive member should not hold a seat, got %+v", data.Parties[1])
	}
}
