package chunk

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/ling0322/sentparse/text"
)

// DefaultRules chunk noun phrases and verb phrases from Penn Treebank tags
var DefaultRules = []string{
	"NP: {<DT>?<JJ>*<NN.*>+}",
	"VP: {<VB.*>+<RB.?>*<RP>?<NN.*|DT>?}",
}

// Chunk is a run of consecutive tagged tokens matched by a rule
type Chunk struct {
	Label  string             `json:"label"`
	Tokens []text.TaggedToken `json:"tokens"`

	// Start and End are the token offsets [Start, End) in the sentence
	Start int `json:"start"`
	End   int `json:"end"`
}

// Text returns the words of chunk joined by a space
func (c Chunk) Text() string {
	words := make([]string, len(c.Tokens))
	for i, tok := range c.Tokens {
		words[i] = tok.Text
	}
	return strings.Join(words, " ")
}

// Rule is a compiled tag pattern, like NP: {<DT>?<JJ>*<NN.*>+}
type Rule struct {
	Label   string
	Pattern string
	re      *regexp.Regexp
}

var (
	rulePattern = regexp.MustCompile(`^\s*([^:\s]+)\s*:\s*\{(.*)\}\s*$`)
	tagPattern  = regexp.MustCompile(`<[^<>]+>`)
	// What may appear outside <...> in a tag pattern
	outsidePattern = regexp.MustCompile(`^[()|?*+{},0-9]*$`)
)

// ParseRule compiles a chunk rule. Inside angle brackets a tag is matched by
// regular expression, where '.' never matches across tags
func ParseRule(ruleText string) (*Rule, error) {
	m := rulePattern.FindStringSubmatch(ruleText)
	if m == nil {
		return nil, errors.Errorf("ParseRule: 'LABEL: {pattern}' expected in '%s'", ruleText)
	}
	pattern := strings.Join(strings.Fields(m[2]), "")
	if pattern == "" {
		return nil, errors.Errorf("ParseRule: empty pattern in '%s'", ruleText)
	}
	if !outsidePattern.MatchString(tagPattern.ReplaceAllString(pattern, "")) {
		return nil, errors.Errorf("ParseRule: bad tag pattern '%s'", pattern)
	}

	reText := tagPattern.ReplaceAllStringFunc(pattern, func(tag string) string {
		inner := strings.ReplaceAll(tag[1:len(tag)-1], ".", `[^{}<>]`)
		return "(?:<(?:" + inner + ")>)"
	})
	re, err := regexp.Compile(reText)
	if err != nil {
		return nil, errors.Wrapf(err, "ParseRule: '%s'", ruleText)
	}
	return &Rule{Label: m[1], Pattern: pattern, re: re}, nil
}

// String returns the rule in its source format
func (r *Rule) String() string {
	return r.Label + ": {" + r.Pattern + "}"
}

// Chunker applies tag pattern rules to tagged sentences. Every rule is applied
// to the whole sentence independently
type Chunker struct {
	Rules []*Rule
}

// NewChunker compiles the rules, DefaultRules if none given
func NewChunker(rules ...string) (*Chunker, error) {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	c := &Chunker{}
	for _, ruleText := range rules {
		rule, err := ParseRule(ruleText)
		if err != nil {
			return nil, err
		}
		c.Rules = append(c.Rules, rule)
	}
	return c, nil
}

// Chunk returns the chunks of every rule in rule order. The chunks of a rule
// are the leftmost non-overlapping matches
func (c *Chunker) Chunk(tagged []text.TaggedToken) []Chunk {
	// The tags are encoded as <DT><JJ><NN>, starts[i] is the offset of token i
	var sb strings.Builder
	starts := map[int]int{}
	ends := map[int]int{}
	for i, tok := range tagged {
		starts[sb.Len()] = i
		sb.WriteString("<" + tok.Tag + ">")
		ends[sb.Len()] = i + 1
	}
	encoded := sb.String()

	chunks := []Chunk{}
	for _, rule := range c.Rules {
		for _, loc := range rule.re.FindAllStringIndex(encoded, -1) {
			start, ok1 := starts[loc[0]]
			end, ok2 := ends[loc[1]]
			if !ok1 || !ok2 || end <= start {
				continue
			}
			chunks = append(chunks, Chunk{
				Label:  rule.Label,
				Tokens: append([]text.TaggedToken{}, tagged[start:end]...),
				Start:  start,
				End:    end,
			})
		}
	}
	return chunks
}

// Select returns the chunks labelled label
func Select(chunks []Chunk, label string) []Chunk {
	selected := []Chunk{}
	for _, c := range chunks {
		if c.Label == label {
			selected = append(selected, c)
		}
	}
	return selected
}
