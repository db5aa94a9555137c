package identity

import (
	"reflect"
	"testing"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Jane Doe", "jane-doe"},
		{"  Jane   Doe  ", "jane-doe"},
		{"JANE DOE", "jane-doe"},
		{"Jan Van Den Berg", "jan-van-den-berg"},
		{"", ""},
		{"   ", ""},
	}

	for _, c := range cases {
		if got := NormalizeName(c.in); got != c.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeName_Idempotent(t *testing.T) {
	names := []string{"Jane Doe", "jan van den berg", "  Mixed   Case Name "}
	for _, name := range names {
		once := NormalizeName(name)
		twice := NormalizeName(once)
		if once != twice {
			t.Errorf("NormalizeName not idempotent: %q -> %q -> %q", name, once, twice)
		}
	}
}

func TestMemberKey(t *testing.T) {
	if got := MemberKey("Jane", "Doe"); got != "jane-doe" {
		t.Errorf("MemberKey = %q, want jane-doe", got)
	}
	if got := MemberKey("Jan", "Van Den Berg"); got != "jan-van-den-berg" {
		t.Errorf("MemberKey = %q, want jan-van-den-berg", got)
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList("Jane Doe, John Roe ,,  ")
	want := []string{"Jane Doe", "John Roe"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitList = %v, want %v", got, want)
	}

	if got := SplitList(""); len(got) != 0 {
		t.Errorf("SplitList(empty) = %v, want empty", got)
	}
}

func TestSplitTopics_KeepsPositions(t *testing.T) {
	got := SplitTopics("klimaat; ;energie")
	want := []string{"klimaat", "", "energie"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitTopics = %v, want %v", got, want)
	}
}
