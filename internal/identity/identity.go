// Package identity canonicalizes member display names into lookup keys.
//
// The source dataset refers to the same person in several free-text forms
// (vote member lists, dossier author lists, question speakers), with varying
// casing and whitespace. Every join that resolves a name to a member record
// goes through NormalizeName so that all paths agree on one key. A name that
// still fails to match is dropped by the caller; that is a data-quality
// problem in the source, not something to paper over here.
package identity

import "strings"

// NormalizeName returns the canonical lookup key for a display name:
// lowercase, with every run of whitespace collapsed to a single hyphen.
// Normalizing an already-normalized key returns the same key.
func NormalizeName(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	return strings.Join(fields, "-")
}

// MemberKey builds the canonical key from separate first and last names,
// as they appear in the members and remunerations tables.
func MemberKey(firstName, lastName string) string {
	return NormalizeName(firstName + " " + lastName)
}

// SplitList splits a comma-separated multi-value field (questioners,
// respondents, authors, vote member lists) into trimmed entries. Empty
// entries are kept out; an empty input yields an empty slice, never nil.
func SplitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SplitTopics splits a semicolon-separated topic field into trimmed entries.
// Unlike SplitList, blank entries are preserved so that topic positions stay
// aligned with questioner positions.
func SplitTopics(raw string) []string {
	parts := strings.Split(raw, ";")
	out := make([]string, len(parts))
	for i, part := range parts {
		out[i] = strings.TrimSpace(part)
	}
	return out
}
