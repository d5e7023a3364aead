package parsefields

import "regexp"

// Match is a successful TryExtract: the strategy that won and its capture
// groups.
type Match struct {
	Strategy string
	Groups   []string
}

// Group returns capture group i (0-based), or "" when absent.
func (m Match) Group(i int) string {
	if i < 0 || i >= len(m.Groups) {
		return ""
	}
	return m.Groups[i]
}

// Matcher is one extraction strategy.
type Matcher interface {
	TryExtract(text string) (Match, bool)
}

// RegexMatcher reports the first match of Pattern in the text.
type RegexMatcher struct {
	Name    string
	Pattern *regexp.Regexp
}

func (m RegexMatcher) TryExtract(text string) (Match, bool) {
	sub := m.Pattern.FindStringSubmatch(text)
	if sub == nil {
		return Match{}, false
	}
	return Match{Strategy: m.Name, Groups: sub[1:]}, true
}

// Chain tries its matchers in order; the first hit wins.
type Chain []Matcher

func (c Chain) TryExtract(text string) (Match, bool) {
	for _, m := range c {
		if res, ok := m.TryExtract(text); ok {
			return res, true
		}
	}
	return Match{}, false
}
