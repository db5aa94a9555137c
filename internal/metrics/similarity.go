package metrics

import (
	"math"

	"github.com/wetstraat/kamerdata/internal/colors"
	"github.com/wetstraat/kamerdata/internal/model"
)

// voteValue maps a position to its vector entry. Votes a member did not
// cast are absent from the vector entirely, which is different from an
// abstain (0).
var voteValue = map[model.VoteChoice]float64{
	model.VoteYes:     1,
	model.VoteNo:      -1,
	model.VoteAbstain: 0,
}

// BuildGraph builds the member-similarity graph over active members: one
// node per member, one link per unordered pair whose voting vectors have
// cosine similarity strictly above the threshold.
//
// The pair loop is O(members² × votes). Acceptable while the chamber holds
// a few hundred members; revisit before pointing this at a larger dataset.
func BuildGraph(members []*model.Member, palette colors.Palette, threshold float64) model.Graph {
	active := []*model.Member{}
	for _, member := range members {
		if member.Active {
			active = append(active, member)
		}
	}

	nodes := make([]model.GraphNode, len(active))
	vectors := make([]map[string]float64, len(active))
	for i, member := range active {
		party := firstParty(member)
		nodes[i] = model.GraphNode{
			ID:    member.MemberID,
			Name:  member.FirstName + " " + member.LastName,
			Party: party,
			Color: palette.Primary(party),
		}
		vectors[i] = voteVector(member)
	}

	links := []model.GraphLink{}
	for i := 0; i < len(active); i++ {
		for k := i + 1; k < len(active); k++ {
			sim := cosineSimilarity(vectors[i], vectors[k])
			if sim > threshold {
				links = append(links, model.GraphLink{
					Source: active[i].MemberID,
					Target: active[k].MemberID,
					Weight: sim,
				})
			}
		}
	}

	return model.Graph{Nodes: nodes, Links: links}
}

// voteVector is the member's sparse voting vector keyed by vote id. A
// member voting twice on the same id keeps the last position.
func voteVector(member *model.Member) map[string]float64 {
	vec := make(map[string]float64, len(member.Votes))
	for _, vote := range member.Votes {
		vec[vote.VoteID] = voteValue[vote.Choice]
	}
	return vec
}

// cosineSimilarity computes pairwise-complete cosine similarity: only vote
// ids present in both vectors contribute to the dot product and both
// magnitudes. Pairs with no overlap, or whose overlap is all abstains,
// score 0.
func cosineSimilarity(a, b map[string]float64) float64 {
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}

	var dot, magA, magB float64
	for id, va := range small {
		vb, ok := large[id]
		if !ok {
			continue
		}
		dot += va * vb
		magA += va * va
		magB += vb * vb
	}

	denom := math.Sqrt(magA) * math.Sqrt(magB)
	if denom == 0 {
		return 0
	}
	return dot / denom
}

// firstParty is the member's first observed party, Unknown when none.
func firstParty(member *model.Member) string {
	if len(member.Parties) > 0 && member.Parties[0] != "" {
		return member.Parties[0]
	}
	return model.UnknownParty
}
