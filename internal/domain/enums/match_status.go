package enums

import "strings"

type MatchStatus string

const (
	MatchStatusPending     MatchStatus = "pending"
	MatchStatusShortlisted MatchStatus = "shortlisted"
	MatchStatusRejected    MatchStatus = "rejected"
	// MatchStatusMatched is reserved for moderation promotion; no swipe
	// decision produces it.
	MatchStatusMatched MatchStatus = "matched"
)

func ParseMatchStatus(input string) (MatchStatus, bool) {
	switch MatchStatus(strings.ToLower(strings.TrimSpace(input))) {
	case MatchStatusPending:
		return MatchStatusPending, true
	case MatchStatusShortlisted:
		return MatchStatusShortlisted, true
	case MatchStatusRejected:
		return MatchStatusRejected, true
	case MatchStatusMatched:
		return MatchStatusMatched, true
	default:
		return "", false
	}
}

// ParseDecisionStatus accepts only the statuses a swipe decision may set.
func ParseDecisionStatus(input string) (MatchStatus, bool) {
	status, ok := ParseMatchStatus(input)
	if !ok || status == MatchStatusMatched {
		return "", false
	}
	return status, true
}
