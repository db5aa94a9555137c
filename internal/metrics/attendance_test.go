package metrics

import (
	"testing"

	"github.com/wetstraat/kamerdata/internal/model"
	"github.com/wetstraat/kamerdata/internal/rowsource"
)

func TestApplyMeetingAttendance(t *testing.T) {
	active := []model.Person{
		{Name: "Jan Peeters", Party: "Groen"},
		{Name: "An Smet", Party: "CD&V"},
		{Name: "Piet Maes", Party: "Vooruit"},
	}
	meeting := &model.Meeting{
		AllVotes: []*model.Vote{
			{
				YesCount: 80, NoCount: 50, AbstainCount: 10,
				YesMembers: []model.Person{{Name: "Jan Peeters", Party: "Groen"}},
				NoMembers:  []model.Person{{Name: "Piet Maes", Party: "Vooruit"}},
			},
			// Later votes never influence the estimate.
			{YesCount: 150},
		},
	}

	ApplyMeetingAttendance([]*model.Meeting{meeting}, active, 150)

	if meeting.Attendance.Count != 140 {
		t.Errorf("count = %d", meeting.Attendance.Count)
	}
	if got := meeting.Attendance.Ratio; got < 0 || got > 1.2 {
		t.Errorf("ratio = %v out of bounds", got)
	}
	if meeting.Attendance.Ratio != 140.0/150.0 {
		t.Errorf("ratio = %v", meeting.Attendance.Ratio)
	}

	if len(meeting.Absentees) != 1 || meeting.Absentees[0].Name != "An Smet" {
		t.Errorf("absentees = %v", meeting.Absentees)
	}
}

func TestApplyMeetingAttendance_AbsenteesSortedByParty(t *testing.T) {
	active := []model.Person{
		{Name: "Piet Maes", Party: "Vooruit"},
		{Name: "An Smet", Party: "CD&V"},
		{Name: "Jan Peeters", Party: "Groen"},
	}
	meeting := &model.Meeting{
		AllVotes: []*model.Vote{{YesCount: 1, YesMembers: []model.Person{{Name: "Iemand Anders"}}}},
	}

	ApplyMeetingAttendance([]*model.Meeting{meeting}, active, 150)

	want := []string{"CD&V", "Groen", "Vooruit"}
	for i, party := range want {
		if meeting.Absentees[i].Party != party {
			t.Fatalf("absentees = %v, want party order %v", meeting.Absentees, want)
		}
	}
}

func TestApplyMeetingAttendance_NoVotes(t *testing.T) {
	meeting := &model.Meeting{AllVotes: []*model.Vote{}}
	ApplyMeetingAttendance([]*model.Meeting{meeting}, nil, 150)

	if meeting.Attendance.Count != 0 || meeting.Attendance.Ratio != 0 {
		t.Errorf("attendance = %+v", meeting.Attendance)
	}
	if meeting.Absentees == nil || len(meeting.Absentees) != 0 {
		t.Errorf("absentees = %v", meeting.Absentees)
	}
}

func voteRowOn(date string) rowsource.Row {
	return rowsource.Row{"v", "55", "100", date, "", "", "0", "0", "0", "", "", "", "", ""}
}

func TestApplyMemberAttendance(t *testing.T) {
	voteRows := []rowsource.Row{
		voteRowOn("2024-01-10"),
		voteRowOn("2024-01-10"),
		voteRowOn("2024-02-01"),
		voteRowOn("2019-01-01"), // before the member's start
	}
	member := &model.Member{
		StartDate: "2020-01-01",
		Votes: []model.MemberVote{
			{Date: "2024-01-10"},
			{Date: "2024-01-10"},
		},
	}

	ApplyMemberAttendance([]*model.Member{member}, voteRows)

	if member.Attendance != 2.0/3.0 {
		t.Errorf("attendance = %v", member.Attendance)
	}
	// Two eligible days, one attended.
	if member.NormalizedAttendance != 0.5 {
		t.Errorf("normalizedAttendance = %v", member.NormalizedAttendance)
	}
}

func TestApplyMemberAttendance_NoEligibleVotes(t *testing.T) {
	member := &model.Member{StartDate: "2030-01-01"}
	ApplyMemberAttendance([]*model.Member{member}, []rowsource.Row{voteRowOn("2024-01-10")})

	if member.Attendance != 0 || member.NormalizedAttendance != 0 {
		t.Errorf("attendance = %v / %v", member.Attendance, member.NormalizedAttendance)
	}
}

func TestApplyOutlierScores(t *testing.T) {
	conformist := &model.Member{Votes: []model.MemberVote{{}, {}, {}}}
	deviant := &model.Member{Votes: []model.MemberVote{
		{Outlier: true}, {}, {},
	}}
	silent := &model.Member{}

	ApplyOutlierScores([]*model.Member{conformist, deviant, silent})

	if conformist.Outlier != 100 {
		t.Errorf("conformist = %v", conformist.Outlier)
	}
	// 1 of 3 deviations: 100 - round(333.3...)/10 = 66.7
	if diff := deviant.Outlier - 66.7; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("deviant = %v, want 66.7", deviant.Outlier)
	}
	if silent.Outlier != 100 {
		t.Errorf("zero votes must score exactly 100, got %v", silent.Outlier)
	}
}
