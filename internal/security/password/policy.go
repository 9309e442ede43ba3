package password

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MinLen       = 8
	MaxScore     = 6
	SpecialChars = "!@#$%^&*"
)

// Label is the coarse strength bucket derived from a score.
type Label string

const (
	Weak     Label = "Weak"
	Moderate Label = "Moderate"
	Strong   Label = "Strong"
)

// Check weights; they sum to MaxScore.
const (
	weightLength  = 2
	weightCase    = 2
	weightDigit   = 1
	weightSpecial = 1
)

const (
	SuggestCommon  = "This password is too common and easily guessable. Please choose another."
	SuggestLength  = "Password should be at least 8 characters long."
	SuggestCase    = "Password should contain both uppercase and lowercase letters."
	SuggestDigit   = "Password should include at least one digit (0-9)."
	SuggestSpecial = "Password should have at least one special character (!@#$%^&*)."
)

var blacklist = map[string]struct{}{
	"password123": {},
	"123456":      {},
	"qwerty":      {},
	"letmein":     {},
	"admin":       {},
}

type Result struct {
	Strength    Label    `json:"strength"`
	Score       int      `json:"score"`
	MaxScore    int      `json:"max_score"`
	Suggestions []string `json:"suggestions"`
}

// IsCommon reports whether pwd is on the denylist. Exact, case-sensitive match.
func IsCommon(pwd string) bool {
	_, ok := blacklist[pwd]
	return ok
}

// Evaluate scores pwd against the length, case, digit and special checks.
// Suggestions come back in that same order. Denylisted passwords short-circuit
// to Weak/0 with a single suggestion.
func Evaluate(pwd string) Result {
	if IsCommon(pwd) {
		return Result{Strength: Weak, Score: 0, MaxScore: MaxScore, Suggestions: []string{SuggestCommon}}
	}

	var hasL, hasU, hasD, hasS bool
	for _, r := range pwd {
		switch {
		case unicode.IsLower(r):
			hasL = true
		case unicode.IsUpper(r):
			hasU = true
		case unicode.IsDigit(r):
			hasD = true
		}
		if strings.ContainsRune(SpecialChars, r) {
			hasS = true
		}
	}

	score := 0
	sugg := make([]string, 0, 4)

	if utf8.RuneCountInString(pwd) >= MinLen {
		score += weightLength
	} else {
		sugg = append(sugg, SuggestLength)
	}
	if hasL && hasU {
		score += weightCase
	} else {
		sugg = append(sugg, SuggestCase)
	}
	if hasD {
		score += weightDigit
	} else {
		sugg = append(sugg, SuggestDigit)
	}
	if hasS {
		score += weightSpecial
	} else {
		sugg = append(sugg, SuggestSpecial)
	}

	return Result{Strength: Classify(score), Score: score, MaxScore: MaxScore, Suggestions: sugg}
}

// Classify maps a score onto a Label: <=2 Weak, 3..5 Moderate, >=6 Strong.
func Classify(score int) Label {
	switch {
	case score <= 2:
		return Weak
	case score <= 5:
		return Moderate
	default:
		return Strong
	}
}
