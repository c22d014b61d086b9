package classifier

import (
	"sort"
	"strings"
)

// KeywordClassifier implements port.Classifier with substring matching.
type KeywordClassifier struct {
	rules RuleSet
}

// New builds a classifier over rs. Keywords are lower-cased once here.
func New(rs RuleSet) *KeywordClassifier {
	return &KeywordClassifier{rules: rs.normalized()}
}

// Classify returns every subject whose keywords occur anywhere in the
// lower-cased description and topics, sorted. It never returns an empty
// slice: without a match the result is the default subject alone.
func (c *KeywordClassifier) Classify(description string, topics []string) []string {
	blob := strings.ToLower(description) + " " + strings.ToLower(strings.Join(topics, " "))

	seen := make(map[string]struct{})
	for _, rule := range c.rules.Rules {
		if _, ok := seen[rule.Subject]; ok {
			continue
		}
		for _, kw := range rule.Keywords {
			if strings.Contains(blob, kw) {
				seen[rule.Subject] = struct{}{}
				break
			}
		}
	}

	if len(seen) == 0 {
		return []string{c.rules.Default}
	}

	subjects := make([]string, 0, len(seen))
	for s := range seen {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)
	return subjects
}
