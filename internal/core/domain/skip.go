package domain

import "strings"

// SkipAll suppresses every stage and every toolchain default.
const SkipAll = "all"

// SkipTOML suppresses schema formatting and validation of workspace configs.
const SkipTOML = "toml"

// SkipSet is the set of lowercase tokens parsed from the --skip flag.
type SkipSet map[string]struct{}

// ParseSkip parses a comma separated list of tokens.
// Tokens are trimmed and lowercased, empty tokens are dropped.
func ParseSkip(raw string) SkipSet {
	set := make(SkipSet)
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok != "" {
			set[tok] = struct{}{}
		}
	}
	return set
}

// Has reports whether the token is present.
func (s SkipSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// All reports whether the all sentinel is present.
func (s SkipSet) All() bool {
	return s.Has(SkipAll)
}

// SkipsStage reports whether the whole stage is suppressed.
func (s SkipSet) SkipsStage(stage Stage) bool {
	return s.All() || s.Has(string(stage))
}

// SkipsKind reports whether the default tasks of the kind are suppressed.
func (s SkipSet) SkipsKind(kind ProjectKind) bool {
	if s.All() {
		return true
	}
	for _, tok := range kind.SkipTokens() {
		if s.Has(tok) {
			return true
		}
	}
	return false
}

// SkipsTOML reports whether config schema formatting and validation is suppressed.
func (s SkipSet) SkipsTOML() bool {
	return s.All() || s.Has(SkipTOML)
}
