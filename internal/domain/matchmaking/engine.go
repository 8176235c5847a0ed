package matchmaking

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Profile selects one of the two scoring strategies the platform's call
// sites historically used. Strict is the default; Points is the id-exact
// dashboard variant.
type Profile int

const (
	// ProfileStrict gates on a name-based category score and produces a
	// user-facing 0-100 percentage from normalized weights.
	ProfileStrict Profile = iota
	// ProfilePoints requires an exact category-id hit and accumulates
	// unnormalized points; the score is a ranking key, not a percentage.
	ProfilePoints
)

// Request describes one matchmaking invocation. Category is the requested
// category name (strict profile); CategoryID is the numeric id (points
// profile).
type Request struct {
	Category   string
	CategoryID int64
	Profile    Profile
}

// Dimension names used in the per-candidate score breakdown.
const (
	DimCategoryMatch = "category_match"
	DimAvailability  = "availability"
	DimRating        = "rating"
	DimResponseTime  = "response_time"
	DimExperience    = "experience"
	DimWorkload      = "workload"
	DimSuccessRate   = "success_rate"
)

// Strict-profile weights. Category dominates; experience and workload are
// reported in the breakdown but carry no weight.
const (
	weightCategory     = 0.70
	weightAvailability = 0.20
	weightRating       = 0.06
	weightResponse     = 0.04
)

// MatchResult is the scored outcome for one candidate.
type MatchResult struct {
	Candidate     Candidate
	Score         int
	CategoryScore float64
	Dimensions    map[string]int
	Confidence    float64
	Justification string
}

// Match evaluates the pool and returns the single best candidate, or nil
// when no candidate survives the profile's eligibility gate. The pool may
// be empty; that is not an error.
func Match(req Request, pool []Candidate) *MatchResult {
	ranked := Rank(req, pool)
	if len(ranked) == 0 {
		return nil
	}
	best := ranked[0]
	return &best
}

// Rank evaluates every candidate in the pool against the request, drops
// the ineligible ones, and returns the rest ordered best-first. The sort
// is stable and descending on (category score, aggregate score), so equal
// keys keep their input order.
func Rank(req Request, pool []Candidate) []MatchResult {
	defaults := DefaultsFor(req.Profile)

	out := make([]MatchResult, 0, len(pool))
	for _, c := range pool {
		var res *MatchResult
		switch req.Profile {
		case ProfilePoints:
			res = evaluatePoints(req, c, defaults)
		default:
			res = evaluateStrict(req, c, defaults)
		}
		if res == nil {
			continue
		}
		out = append(out, *res)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CategoryScore != out[j].CategoryScore {
			return out[i].CategoryScore > out[j].CategoryScore
		}
		return out[i].Score > out[j].Score
	})

	return out
}

func evaluateStrict(req Request, c Candidate, d Defaults) *MatchResult {
	category := CategoryScore(req.Category, c)
	if category < StrictThreshold {
		return nil
	}

	rating := resolveRating(c, d)
	sessions := resolveSessions(c, d)
	years := resolveYears(c, d)

	availability := availabilityScore(c)
	ratingDim := ratingScore(rating, sessions)
	response := responseScore(resolveResponseBucket(c, d))
	experience := experienceScore(years)
	workload := workloadScore(c.CurrentLoad, resolveMaxLoad(c, d))

	weighted := category*weightCategory +
		availability*weightAvailability +
		ratingDim*weightRating +
		response*weightResponse

	score := int(math.Round(weighted * 100))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return &MatchResult{
		Candidate:     c,
		Score:         score,
		CategoryScore: category,
		Dimensions: map[string]int{
			DimCategoryMatch: percent(category),
			DimAvailability:  percent(availability),
			DimRating:        percent(ratingDim),
			DimResponseTime:  percent(response),
			DimExperience:    percent(experience),
			DimWorkload:      percent(workload),
		},
		Confidence:    confidence(category, sessions),
		Justification: justification(req.Category, category, c, years),
	}
}

func evaluatePoints(req Request, c Candidate, d Defaults) *MatchResult {
	if !MatchesCategoryID(req.CategoryID, c) {
		return nil
	}

	rating := resolveRating(c, d)
	sessions := resolveSessions(c, d)
	years := resolveYears(c, d)
	success := successRate(rating, sessions)

	points := rating * 10
	points += sessionTier(sessions) * 25
	points += math.Min(float64(years), 10) * 1.5
	points += success / 100 * 10
	points += math.Min(float64(sessions)/20, 5)
	if c.Online {
		points += 5
	}
	if points < 0 {
		points = 0
	}

	return &MatchResult{
		Candidate:     c,
		Score:         int(math.Round(points)),
		CategoryScore: categoryExact,
		Dimensions: map[string]int{
			DimCategoryMatch: percent(categoryExact),
			DimAvailability:  percent(availabilityScore(c)),
			DimRating:        percent(ratingScore(rating, sessions)),
			DimExperience:    percent(experienceScore(years)),
			DimSuccessRate:   int(math.Round(success)),
		},
		Confidence:    confidence(categoryExact, sessions),
		Justification: justification(c.categoryNameForID(req.CategoryID), categoryExact, c, years),
	}
}

func confidence(categoryScore float64, sessions int) float64 {
	conf := 0.80
	if categoryScore == categoryExact {
		conf += 0.15
	}
	if sessions > 20 {
		conf += 0.05
	}
	if conf > 0.95 {
		conf = 0.95
	}
	return conf
}

// justification builds the short human-readable reason string shown next
// to a match: category phrase first, then availability, then experience.
func justification(requested string, categoryScore float64, c Candidate, years int) string {
	parts := make([]string, 0, 3)

	label := strings.TrimSpace(requested)
	if label == "" {
		label = "your request"
	}
	if categoryScore >= categoryExact {
		parts = append(parts, "Specializes in "+label)
	} else {
		parts = append(parts, "Experience related to "+label)
	}

	switch {
	case c.Online:
		parts = append(parts, "Online now")
	case c.Available:
		parts = append(parts, "Available today")
	}

	if years > 5 {
		parts = append(parts, fmt.Sprintf("%d years of experience", years))
	}

	return strings.Join(parts, " • ")
}

// categoryNameForID returns the display name the candidate carries for a
// category id, for use in justification text.
func (c Candidate) categoryNameForID(id int64) string {
	if c.PrimaryCategory != nil && c.PrimaryCategory.ID == id {
		return c.PrimaryCategory.Name
	}
	if c.LegacyCategory != nil && c.LegacyCategory.ID == id {
		return c.LegacyCategory.Name
	}
	for _, ref := range c.Categories {
		if ref.ID == id {
			return ref.Name
		}
	}
	return ""
}

func percent(v float64) int {
	p := int(math.Round(v * 100))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
