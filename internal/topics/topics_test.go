package topics

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func testTaxonomy() Taxonomy {
	return Taxonomy{
		"klimaat": {
			LabelNL:  "Klimaat",
			Keywords: []string{"klimaat", "co2"},
			Subtopics: map[string][]string{
				"energie": {"windmolen", "kerncentrale"},
			},
		},
		"zorg": {
			LabelNL:  "Zorg",
			Keywords: []string{"ziekenhuis", "zorg"},
		},
	}
}

func TestMatch_MainTopic(t *testing.T) {
	tax := testTaxonomy()

	got := tax.Match("Vraag over het KLIMAAT in 2024")
	want := []Match{{TagKey: "klimaat", ContributionKey: "klimaat"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Match = %v, want %v", got, want)
	}
}

func TestMatch_SubtopicUsesParentForTag(t *testing.T) {
	tax := testTaxonomy()

	got := tax.Match("de nieuwe kerncentrale")
	want := []Match{{TagKey: "klimaat", ContributionKey: "energie"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Match = %v, want %v", got, want)
	}
}

func TestMatch_SubtopicAndMainBothRegister(t *testing.T) {
	tax := testTaxonomy()

	// Hits both the subtopic keyword and a main keyword: both register,
	// matching never short-circuits across lists.
	got := tax.Match("klimaat en de kerncentrale")
	want := []Match{
		{TagKey: "klimaat", ContributionKey: "energie"},
		{TagKey: "klimaat", ContributionKey: "klimaat"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Match = %v, want %v", got, want)
	}
}

func TestMatch_MultipleTopics(t *testing.T) {
	tax := testTaxonomy()

	got := tax.Match("klimaat in het ziekenhuis")
	want := []Match{
		{TagKey: "klimaat", ContributionKey: "klimaat"},
		{TagKey: "zorg", ContributionKey: "zorg"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Match = %v, want %v", got, want)
	}
}

func TestMatch_WithinListStopsAtFirstHit(t *testing.T) {
	tax := testTaxonomy()

	// Both "klimaat" and "co2" appear; the klimaat topic registers once.
	got := tax.Match("klimaat en co2")
	want := []Match{{TagKey: "klimaat", ContributionKey: "klimaat"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Match = %v, want %v", got, want)
	}
}

func TestMatch_NoHit(t *testing.T) {
	tax := testTaxonomy()
	if got := tax.Match("volledig ongerelateerd"); len(got) != 0 {
		t.Errorf("Match = %v, want none", got)
	}
}

func TestTags_Deduplicated(t *testing.T) {
	tax := testTaxonomy()

	got := tax.Tags("klimaat en de kerncentrale")
	want := []string{"klimaat"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tags = %v, want %v", got, want)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "topics.json")
	config := `{
		"klimaat": {
			"nl": "Klimaat",
			"fr": "Climat",
			"icon": "leaf",
			"keywords": ["klimaat"],
			"subtopics": {"energie": ["windmolen"]}
		}
	}`
	if err := os.WriteFile(path, []byte(config), 0o644); err != nil {
		t.Fatal(err)
	}

	tax, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	topic, ok := tax["klimaat"]
	if !ok {
		t.Fatal("klimaat topic missing")
	}
	if topic.LabelFR != "Climat" || topic.Icon != "leaf" {
		t.Errorf("topic = %+v", topic)
	}
	if len(topic.Subtopics["energie"]) != 1 {
		t.Errorf("subtopics = %v", topic.Subtopics)
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
