package matchmaking

import "strings"

// Category-match tiers. The category score later dominates the strict
// aggregate, so the tiers are spaced wide apart.
const (
	categoryExact   = 1.0
	categoryPartial = 0.9
	categoryPrefix  = 0.7
	categoryNone    = 0.1
)

// StrictThreshold is the minimum category score a candidate needs to stay
// in strict-profile results. Everything below a weak partial match is out.
const StrictThreshold = 0.6

// SignalKind identifies which of the redundant category truth sources a
// signal came from.
type SignalKind int

const (
	SignalPrimary SignalKind = iota
	SignalLegacy
	SignalSet
	SignalSpecialization
)

// CategorySignal is one category clue extracted from a candidate record.
type CategorySignal struct {
	Kind  SignalKind
	Value string
}

// CategorySignals extracts the candidate's category clues in source order:
// primary category, legacy category, categories set, specialization.
func CategorySignals(c Candidate) []CategorySignal {
	out := make([]CategorySignal, 0, 3+len(c.Categories))
	if c.PrimaryCategory != nil && strings.TrimSpace(c.PrimaryCategory.Name) != "" {
		out = append(out, CategorySignal{Kind: SignalPrimary, Value: c.PrimaryCategory.Name})
	}
	if c.LegacyCategory != nil && strings.TrimSpace(c.LegacyCategory.Name) != "" {
		out = append(out, CategorySignal{Kind: SignalLegacy, Value: c.LegacyCategory.Name})
	}
	for _, ref := range c.Categories {
		if strings.TrimSpace(ref.Name) == "" {
			continue
		}
		out = append(out, CategorySignal{Kind: SignalSet, Value: ref.Name})
	}
	if strings.TrimSpace(c.Specialization) != "" {
		out = append(out, CategorySignal{Kind: SignalSpecialization, Value: c.Specialization})
	}
	return out
}

// CategoryScore assigns the name-based category-match score in [0,1] for a
// requested category. Checks run in a fixed priority order, first hit wins:
// exact matches across the three truth sources, then substring matches in
// either direction, then a 4-character prefix probe, then no-match.
// Comparison is case-insensitive and trimmed throughout.
func CategoryScore(requested string, c Candidate) float64 {
	req := normalizeName(requested)
	if req == "" {
		return categoryNone
	}

	signals := CategorySignals(c)
	values := make(map[SignalKind][]string, 4)
	for _, s := range signals {
		values[s.Kind] = append(values[s.Kind], normalizeName(s.Value))
	}

	first := func(kind SignalKind) string {
		if v := values[kind]; len(v) > 0 {
			return v[0]
		}
		return ""
	}
	primary := first(SignalPrimary)
	legacy := first(SignalLegacy)
	spec := first(SignalSpecialization)

	if primary != "" && primary == req {
		return categoryExact
	}
	if legacy != "" && legacy == req {
		return categoryExact
	}
	for _, v := range values[SignalSet] {
		if v == req {
			return categoryExact
		}
	}

	if primary != "" && strings.Contains(primary, req) {
		return categoryPartial
	}
	if legacy != "" && strings.Contains(legacy, req) {
		return categoryPartial
	}
	for _, v := range values[SignalSet] {
		if strings.Contains(v, req) {
			return categoryPartial
		}
	}
	if spec != "" && strings.Contains(spec, req) {
		return categoryPartial
	}

	if primary != "" && strings.Contains(req, primary) {
		return categoryPartial
	}
	for _, v := range values[SignalSet] {
		if v != "" && strings.Contains(req, v) {
			return categoryPartial
		}
	}

	// Prefix probe over characters, not bytes: slicing a multi-byte name
	// mid-rune would both corrupt the probe and shorten it.
	if primary != "" {
		if r := []rune(req); len(r) >= 4 && strings.Contains(primary, string(r[:4])) {
			return categoryPrefix
		}
	}

	return categoryNone
}

// MatchesCategoryID reports whether the candidate carries the requested
// category id in any of the three truth sources. This is the id-exact
// alternative to CategoryScore: set membership only, no partial credit.
func MatchesCategoryID(categoryID int64, c Candidate) bool {
	if categoryID == 0 {
		return false
	}
	if c.PrimaryCategory != nil && c.PrimaryCategory.ID == categoryID {
		return true
	}
	if c.LegacyCategory != nil && c.LegacyCategory.ID == categoryID {
		return true
	}
	for _, ref := range c.Categories {
		if ref.ID == categoryID {
			return true
		}
	}
	return false
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
