// Package topics loads the topic taxonomy config and matches free text
// against it.
//
// The taxonomy is a fixed two-level hierarchy: main topics with keyword
// lists and labeled subtopics with their own keyword lists. Matching is
// case-insensitive substring containment. One text can match many topics;
// matching never short-circuits across topics, only within a single keyword
// list once that list has hit.
package topics

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Topic is one main topic of the taxonomy.
type Topic struct {
	LabelNL   string              `json:"nl"`
	LabelFR   string              `json:"fr"`
	Icon      string              `json:"icon"`
	Keywords  []string            `json:"keywords"`
	Subtopics map[string][]string `json:"subtopics"`
}

// Taxonomy maps topic keys to their definitions.
type Taxonomy map[string]Topic

// Load reads the taxonomy JSON config from disk.
func Load(path string) (Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read topics config: %w", err)
	}
	var tax Taxonomy
	if err := json.Unmarshal(data, &tax); err != nil {
		return nil, fmt.Errorf("parse topics config: %w", err)
	}
	return tax, nil
}

// Match is one taxonomy hit with its two attribution targets made explicit:
// TagKey is used for plain topic tagging (always the main-topic key, also
// for subtopic hits), ContributionKey for contribution counting (the exact
// subtopic key when a subtopic matched). The two call sites intentionally
// attribute differently; keeping both keys in one result keeps them from
// drifting apart.
type Match struct {
	TagKey          string
	ContributionKey string
}

// Match returns all taxonomy hits for the given free text, in deterministic
// (sorted topic key) order.
func (t Taxonomy) Match(text string) []Match {
	lower := strings.ToLower(text)
	var out []Match

	for _, topicKey := range t.sortedKeys() {
		topic := t[topicKey]

		// Subtopics first: a hit registers under the subtopic for counting
		// but under the parent for tagging.
		for _, subKey := range sortedSubKeys(topic.Subtopics) {
			for _, keyword := range topic.Subtopics[subKey] {
				if keyword != "" && strings.Contains(lower, strings.ToLower(keyword)) {
					out = append(out, Match{TagKey: topicKey, ContributionKey: subKey})
					break
				}
			}
		}

		for _, keyword := range topic.Keywords {
			if keyword != "" && strings.Contains(lower, strings.ToLower(keyword)) {
				out = append(out, Match{TagKey: topicKey, ContributionKey: topicKey})
				break
			}
		}
	}

	return out
}

// Tags returns the deduplicated main-topic tag keys for the text, sorted.
func (t Taxonomy) Tags(text string) []string {
	seen := make(map[string]bool)
	tags := []string{}
	for _, m := range t.Match(text) {
		if !seen[m.TagKey] {
			seen[m.TagKey] = true
			tags = append(tags, m.TagKey)
		}
	}
	sort.Strings(tags)
	return tags
}

func (t Taxonomy) sortedKeys() []string {
	keys := make([]string, 0, len(t))
	for key := range t {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedSubKeys(subtopics map[string][]string) []string {
	keys := make([]string, 0, len(subtopics))
	for key := range subtopics {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
