package settings

import (
	"encoding/json"
	"sort"
	"strings"
)

// DefaultTruthyTokens are the string forms read as true.
// Everything else, including "0", "no", "false", "off" and "", is false.
var DefaultTruthyTokens = []string{"1", "true", "yes", "on"}

// BoolParser coerces stored option values to bool.
//
// Truth table:
//
//	bool            the value itself
//	string          true iff the trimmed, lower-cased value is a truthy token
//	integer/float   true iff the value equals 1
//	json.Number     as its string form
//	nil, other      false
type BoolParser struct {
	truthy map[string]struct{}
}

// NewBoolParser builds a parser accepting the given truthy tokens.
// With no tokens, DefaultTruthyTokens are used.
func NewBoolParser(truthy ...string) *BoolParser {
	if len(truthy) == 0 {
		truthy = DefaultTruthyTokens
	}
	p := &BoolParser{truthy: make(map[string]struct{}, len(truthy))}
	for _, t := range truthy {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			p.truthy[t] = struct{}{}
		}
	}
	return p
}

// Parse returns the boolean reading of v. It never fails.
func (p *BoolParser) Parse(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		_, ok := p.truthy[strings.ToLower(strings.TrimSpace(val))]
		return ok
	case json.Number:
		return p.Parse(val.String())
	case int:
		return val == 1
	case int64:
		return val == 1
	case uint64:
		return val == 1
	case float64:
		return val == 1
	default:
		return false
	}
}

// Tokens returns the accepted truthy tokens, sorted.
func (p *BoolParser) Tokens() []string {
	out := make([]string, 0, len(p.truthy))
	for t := range p.truthy {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
