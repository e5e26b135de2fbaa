package matching

import "github.com/spanapp/span-backend/internal/domain"

// personalityCompat maps each of the 16 four-letter personality codes to the
// types it pairs naturally with. Based on common MBTI compatibility charts.
var personalityCompat = map[string][]string{
	"INFJ": {"ENTP", "ENFP", "INFJ", "INTJ"},
	"INFP": {"ENFJ", "ENTJ", "INFP", "INFJ"},
	"ENFJ": {"INFP", "ISFP", "ENFJ", "ENFP"},
	"ENFP": {"INFJ", "INTJ", "ENFP", "ENFJ"},
	"INTJ": {"ENFP", "ENTP", "INTJ", "INFJ"},
	"INTP": {"ENTJ", "ESTJ", "INTP", "INTJ"},
	"ENTJ": {"INTP", "INFP", "ENTJ", "ENTP"},
	"ENTP": {"INFJ", "INTJ", "ENTP", "ENFP"},
	"ISFJ": {"ESFP", "ESTP", "ISFJ", "ISTJ"},
	"ISTJ": {"ESFP", "ESTP", "ISTJ", "ISFJ"},
	"ESFJ": {"ISFP", "ISTP", "ESFJ", "ENFJ"},
	"ESTJ": {"INTP", "ISTP", "ESTJ", "ESFJ"},
	"ISFP": {"ENFJ", "ESFJ", "ISFP", "INFP"},
	"ISTP": {"ESFJ", "ESTJ", "ISTP", "ISFP"},
	"ESFP": {"ISFJ", "ISTJ", "ESFP", "ESTP"},
	"ESTP": {"ISFJ", "ISTJ", "ESTP", "ESFP"},
}

// intentCompat lists, per intent, the partner intents that earn partial
// credit when there is no exact match. Serious pairs only with itself.
var intentCompat = map[domain.RelationshipIntent][]domain.RelationshipIntent{
	domain.IntentSerious: {},
	domain.IntentCasual:  {domain.IntentOpen},
	domain.IntentFriends: {domain.IntentCasual},
	domain.IntentOpen:    {domain.IntentCasual},
}

// KnownPersonalityType reports whether code names one of the 16 types.
func KnownPersonalityType(code string) bool {
	_, ok := personalityCompat[code]
	return ok
}

// Family groups the 16 personality codes into the four trait-pair clusters:
// NT analysts, NF diplomats, SJ sentinels, SP explorers. Unknown or
// malformed codes map to the empty family, which never matches anything.
func Family(code string) string {
	if len(code) != 4 {
		return ""
	}
	switch {
	case code[1] == 'N' && code[2] == 'T':
		return "analyst"
	case code[1] == 'N' && code[2] == 'F':
		return "diplomat"
	case code[1] == 'S' && code[3] == 'J':
		return "sentinel"
	case code[1] == 'S' && code[3] == 'P':
		return "explorer"
	}
	return ""
}
