// Package util provides common string helpers used across the readout generator.
package util

import (
	"regexp"
	"strings"
)

var (
	notesPattern    = regexp.MustCompile(`\s*\[[^\]]*\]`)
	sideArcPattern  = regexp.MustCompile(`\s+(Fwd|Aft)/`)
	filenameReplace = strings.NewReplacer(" ", "_", ":", "_", "/", "_", `\`, "_")
)

// TrimQuotes removes leading and trailing double quotes from a string.
func TrimQuotes(s string) string {
	return strings.Trim(s, `"`)
}

// StripWord removes every occurrence of word that follows whitespace,
// so "LRM 20 Ammo" becomes "LRM 20" and "Laser Bay" becomes "Laser".
func StripWord(s, word string) string {
	re := regexp.MustCompile(`\s+` + regexp.QuoteMeta(word))
	return re.ReplaceAllString(s, "")
}

// StripNotes drops bracketed annotations such as "[Clan]" from a name.
func StripNotes(s string) string {
	return strings.TrimSpace(notesPattern.ReplaceAllString(s, ""))
}

// JoinArcNames joins arc names with "/" and collapses mirrored side arcs,
// "Left Fwd/Right Fwd" becoming "Left/Right Fwd".
func JoinArcNames(names []string) string {
	return sideArcPattern.ReplaceAllString(strings.Join(names, "/"), "/")
}

// SafeFileName replaces characters that are awkward in file names.
func SafeFileName(s string) string {
	return filenameReplace.Replace(strings.TrimSpace(s))
}

// JoinLocationNames joins location names with "/", factoring out a shared
// trailing word so "Right Wing" and "Left Wing" become "Right/Left Wing".
func JoinLocationNames(names []string) string {
	if len(names) < 2 {
		return strings.Join(names, "/")
	}
	i := strings.LastIndex(names[0], " ")
	if i < 0 {
		return strings.Join(names, "/")
	}
	suffix := names[0][i:]
	heads := make([]string, len(names))
	for n, name := range names {
		head, ok := strings.CutSuffix(name, suffix)
		if !ok || head == "" {
			return strings.Join(names, "/")
		}
		heads[n] = head
	}
	return strings.Join(heads, "/") + suffix
}
