package chunk

import (
	"strings"

	"github.com/ling0322/sentparse/text"
)

var auxiliaryVerbs = map[string]bool{
	"be": true, "is": true, "are": true, "was": true, "were": true, "am": true,
	"have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true,
	"can": true, "could": true, "may": true, "might": true, "must": true,
	"shall": true, "should": true, "will": true, "would": true,
}

func isVerb(tok text.TaggedToken) bool {
	return strings.HasPrefix(tok.Tag, "VB")
}

// HeadVerb finds the main verb of a verb phrase: the last verb that is not an
// auxiliary, or the first verb when all of them are auxiliaries
func HeadVerb(tokens []text.TaggedToken) (string, bool) {
	for i := len(tokens) - 1; i >= 0; i-- {
		tok := tokens[i]
		if isVerb(tok) && !auxiliaryVerbs[strings.ToLower(tok.Text)] {
			return tok.Text, true
		}
	}
	for _, tok := range tokens {
		if isVerb(tok) {
			return tok.Text, true
		}
	}
	return "", false
}
