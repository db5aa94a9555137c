package metrics

import (
	"sort"

	"github.com/wetstraat/kamerdata/internal/model"
	"github.com/wetstraat/kamerdata/internal/topics"
)

type contribution struct {
	party        string
	questions    int
	propositions int
}

// TopContributors ranks members per topic by how often their plenary
// questions and propositions match the topic's keywords. Subtopic hits
// count under the subtopic's own key. Each topic lists at most five
// members, most contributions first, name ascending on ties.
func TopContributors(members []*model.Member, taxonomy topics.Taxonomy) map[string][]model.TopContributor {
	counts := map[string]map[string]*contribution{}

	register := func(key, name, party string, isQuestion bool) {
		byMember, ok := counts[key]
		if !ok {
			byMember = map[string]*contribution{}
			counts[key] = byMember
		}
		entry, ok := byMember[name]
		if !ok {
			entry = &contribution{party: party}
			byMember[name] = entry
		}
		if isQuestion {
			entry.questions++
		} else {
			entry.propositions++
		}
	}

	for _, member := range members {
		name := member.FirstName + " " + member.LastName
		party := firstParty(member)

		for _, question := range member.Questions {
			for _, match := range taxonomy.Match(question.TopicNL) {
				register(match.ContributionKey, name, party, true)
			}
		}
		for _, prop := range member.Propositions {
			for _, match := range taxonomy.Match(prop.TitleNL) {
				register(match.ContributionKey, name, party, false)
			}
		}
	}

	out := make(map[string][]model.TopContributor, len(counts))
	for key, byMember := range counts {
		ranked := make([]model.TopContributor, 0, len(byMember))
		for name, entry := range byMember {
			ranked = append(ranked, model.TopContributor{
				Party:        entry.party,
				Name:         name,
				Total:        entry.questions + entry.propositions,
				Questions:    entry.questions,
				Propositions: entry.propositions,
			})
		}
		sort.Slice(ranked, func(i, k int) bool {
			if ranked[i].Total != ranked[k].Total {
				return ranked[i].Total > ranked[k].Total
			}
			return ranked[i].Name < ranked[k].Name
		})
		if len(ranked) > 5 {
			ranked = ranked[:5]
		}
		out[key] = ranked
	}
	return out
}
