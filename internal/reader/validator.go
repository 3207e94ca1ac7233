package reader

import "strings"

// defaultJunkPhrases are lowercase signatures of error pages, bot challenges,
// and login walls that frequently arrive with an HTTP 200.
var defaultJunkPhrases = []string{
	"something went wrong",
	"enable javascript",
	"javascript is disabled",
	"checking your browser",
	"access denied",
	"just a moment",
	"verify you are human",
	"please log in to continue",
	"404 not found",
}

// ContentValidator rejects text that is too short or carries junk signatures.
// Cheap strategies succeed at the transport level while returning unusable
// shells; this classifier is what lets the orchestrator keep falling back.
type ContentValidator struct {
	minLength int
	phrases   []string
}

// NewContentValidator builds a validator with the given minimum length.
// Phrases may be nil to use the built-in junk list.
func NewContentValidator(minLength int, phrases []string) *ContentValidator {
	if phrases == nil {
		phrases = defaultJunkPhrases
	}
	lowered := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			lowered = append(lowered, p)
		}
	}
	return &ContentValidator{minLength: minLength, phrases: lowered}
}

// IsValid reports whether text looks like real page content.
func (v *ContentValidator) IsValid(text string) bool {
	if len(text) < v.minLength {
		return false
	}
	lower := strings.ToLower(text)
	for _, phrase := range v.phrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	return true
}
