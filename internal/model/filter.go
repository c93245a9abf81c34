package model

import "strings"

// FilterWindows returns the windows that pass the visibility, PID and class
// filters. Title filtering is left to the caller because empty titles may
// still be resolved after this pass.
//
// A zero pid or empty class disables that filter. Class matching is a
// case-insensitive substring match.
func FilterWindows(windows []Window, all bool, pid int, class string) []Window {
	classLower := strings.ToLower(class)
	result := make([]Window, 0, len(windows))
	for _, w := range windows {
		if !all && !w.Visible {
			continue
		}
		if pid != 0 && w.PID != pid {
			continue
		}
		if classLower != "" && !strings.Contains(strings.ToLower(w.Class), classLower) {
			continue
		}
		result = append(result, w)
	}
	return result
}

// MatchTitle reports whether title contains text, ignoring case. An empty
// text matches every title.
func MatchTitle(title, text string) bool {
	if text == "" {
		return true
	}
	return strings.Contains(strings.ToLower(title), strings.ToLower(text))
}
