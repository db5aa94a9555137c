// Package metrics computes the derived statistics layered on top of the
// joined entities: attendance estimates, party-conformity scores, the
// member-similarity graph and the per-topic contributor rankings. Every
// function here mutates or reads fully-built records; nothing touches raw
// rows except where the definition itself is row-based (eligible votes).
package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/wetstraat/kamerdata/internal/identity"
	"github.com/wetstraat/kamerdata/internal/model"
	"github.com/wetstraat/kamerdata/internal/rowsource"
)

// ApplyMeetingAttendance fills each meeting's attendance estimate and
// absentee list. The estimate is a deliberate single-sample approximation:
// the head count of the meeting's first vote over the chamber size, not an
// aggregate over all votes. Meetings without votes get zero attendance and
// no absentees.
func ApplyMeetingAttendance(meetings []*model.Meeting, active []model.Person, chamberSize int) {
	for _, meeting := range meetings {
		if len(meeting.AllVotes) == 0 {
			meeting.Attendance = model.Attendance{}
			meeting.Absentees = []model.Person{}
			continue
		}

		first := meeting.AllVotes[0]
		count := first.YesCount + first.NoCount + first.AbstainCount
		meeting.Attendance = model.Attendance{
			Count: count,
			Ratio: float64(count) / float64(chamberSize),
		}

		present := map[string]bool{}
		for _, list := range [][]model.Person{first.YesMembers, first.NoMembers, first.AbstainMembers} {
			for _, person := range list {
				present[identity.NormalizeName(person.Name)] = true
			}
		}

		absentees := []model.Person{}
		for _, person := range active {
			if !present[identity.NormalizeName(person.Name)] {
				absentees = append(absentees, person)
			}
		}
		sort.SliceStable(absentees, func(i, k int) bool {
			return absentees[i].Party < absentees[k].Party
		})
		meeting.Absentees = absentees
	}
}

// ApplyMemberAttendance fills both attendance definitions per member:
// votes cast over eligible votes, and distinct voting days over distinct
// eligible voting days. A vote is eligible when dated on or after the
// member's start date. Members with no eligible votes score 0 on both.
func ApplyMemberAttendance(members []*model.Member, voteRows []rowsource.Row) {
	type voteDay struct {
		date time.Time
		raw  string
	}
	days := make([]voteDay, 0, len(voteRows))
	for _, row := range voteRows {
		raw := row.Get(rowsource.VoteDate)
		days = append(days, voteDay{date: parseDate(raw), raw: raw})
	}

	for _, member := range members {
		start := parseDate(member.StartDate)

		eligible := 0
		eligibleDays := map[string]bool{}
		for _, day := range days {
			if day.date.IsZero() || start.IsZero() || day.date.Before(start) {
				continue
			}
			eligible++
			eligibleDays[day.raw] = true
		}

		if eligible == 0 {
			member.Attendance = 0
		} else {
			member.Attendance = float64(len(member.Votes)) / float64(eligible)
		}

		if len(eligibleDays) == 0 {
			member.NormalizedAttendance = 0
			continue
		}
		attendedDays := map[string]bool{}
		for _, vote := range member.Votes {
			attendedDays[vote.Date] = true
		}
		member.NormalizedAttendance = float64(len(attendedDays)) / float64(len(eligibleDays))
	}
}

// ApplyOutlierScores fills each member's conformity percentage from the
// outlier flags set during vote joining: 100 means the member never
// deviated from their party's majority, including the vacuous zero-vote
// case.
func ApplyOutlierScores(members []*model.Member) {
	for _, member := range members {
		total := len(member.Votes)
		if total == 0 {
			member.Outlier = 100
			continue
		}
		outliers := 0
		for _, vote := range member.Votes {
			if vote.Outlier {
				outliers++
			}
		}
		member.Outlier = 100 - math.Round(float64(outliers)/float64(total)*1000)/10
	}
}

// parseDate handles the two date formats the dataset carries. The zero
// time signals unparseable.
func parseDate(s string) time.Time {
	for _, layout := range []string{"2006-01-02", "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
