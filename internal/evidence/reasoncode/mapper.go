package reasoncode

import (
	"regexp"
	"strings"

	"github.com/kevin07696/dispute-evidence/internal/domain"
)

// Match is a mapped reason code and the cascade step that found it
type Match struct {
	Info  domain.ReasonCodeInfo
	Stage domain.ReasonCodeMatchStage
}

// keywordRule maps a free-text pattern to a catalogue entry when nothing else matched
type keywordRule struct {
	pattern *regexp.Regexp
	id      string
}

var keywordRules = []keywordRule{
	{pattern: regexp.MustCompile(`fraud|fraude`), id: "10.4"},
	{pattern: regexp.MustCompile(`not.?received|n[aã]o.?receb`), id: "13.1"},
	{pattern: regexp.MustCompile(`credit|cr[eé]dito|refund|estorno`), id: "13.6"},
	{pattern: regexp.MustCompile(`disagree|desacordo|dispute|disputa`), id: "4853"},
}

// Map resolves a free-text dispute reason to a catalogue entry.
//
// The cascade is: exact identifier or code, then case-insensitive containment either
// way against code and descriptions, then keyword heuristics. Within each step the
// first entry in catalogue order wins. Blank input never matches.
func Map(reason string) (Match, bool) {
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return Match{}, false
	}

	for _, info := range catalogue {
		if info.ID == trimmed || info.Code == trimmed {
			return Match{Info: clone(info), Stage: domain.MatchStageExact}, true
		}
	}

	normalized := strings.ToLower(trimmed)
	for _, info := range catalogue {
		for _, term := range []string{info.Code, info.Description, info.DescriptionLocalized} {
			t := strings.ToLower(term)
			if strings.Contains(normalized, t) || strings.Contains(t, normalized) {
				return Match{Info: clone(info), Stage: domain.MatchStageSubstring}, true
			}
		}
	}

	for _, rule := range keywordRules {
		if !rule.pattern.MatchString(normalized) {
			continue
		}
		if info, ok := Lookup(rule.id); ok {
			return Match{Info: info, Stage: domain.MatchStageKeyword}, true
		}
	}

	return Match{}, false
}
