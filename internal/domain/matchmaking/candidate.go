package matchmaking

import (
	"github.com/google/uuid"
)

// Response-time buckets recognized by the response scorer. Anything else
// falls back to the lowest-but-one score.
const (
	ResponseUnder1Hour   = "< 1 hour"
	ResponseUnder2Hours  = "< 2 hours"
	ResponseUnder4Hours  = "< 4 hours"
	ResponseUnder8Hours  = "< 8 hours"
	ResponseUnder24Hours = "< 24 hours"
)

// CategoryRef is one category affiliation of a professional. The same
// candidate may carry up to three independently populated sources of
// category truth: a primary category, a legacy single category, and a
// categories set.
type CategoryRef struct {
	ID      int64
	Name    string
	Primary bool
}

// Candidate is a professional record as fetched from upstream. Pointer
// fields distinguish absent from zero; absent fields are resolved via
// profile defaults, never rejected.
type Candidate struct {
	ID   uuid.UUID
	Name string

	PrimaryCategory *CategoryRef
	LegacyCategory  *CategoryRef
	Categories      []CategoryRef
	Specialization  string

	Online    bool
	Available bool

	Rating          *float64
	Sessions        *int
	YearsExperience *int
	ResponseBucket  string
	CurrentLoad     int
	MaxLoad         int
}

// Defaults holds the per-field fallback values applied to absent candidate
// fields. The sessions default is profile-specific.
type Defaults struct {
	Rating          float64
	Sessions        int
	YearsExperience int
	ResponseBucket  string
	MaxLoad         int
}

// DefaultsFor returns the fallback values used by the given profile. The
// two call sites the profiles were consolidated from seeded the Bayesian
// rating formula with different session defaults; both are preserved.
func DefaultsFor(p Profile) Defaults {
	d := Defaults{
		Rating:          4.0,
		Sessions:        0,
		YearsExperience: 1,
		ResponseBucket:  ResponseUnder4Hours,
		MaxLoad:         5,
	}
	if p == ProfilePoints {
		d.Sessions = 1
	}
	return d
}

func resolveRating(c Candidate, d Defaults) float64 {
	if c.Rating == nil {
		return d.Rating
	}
	return clampFloat(*c.Rating, 0, 5)
}

func resolveSessions(c Candidate, d Defaults) int {
	if c.Sessions == nil || *c.Sessions < 0 {
		return d.Sessions
	}
	return *c.Sessions
}

func resolveYears(c Candidate, d Defaults) int {
	if c.YearsExperience == nil || *c.YearsExperience < 0 {
		return d.YearsExperience
	}
	return *c.YearsExperience
}

func resolveResponseBucket(c Candidate, d Defaults) string {
	if c.ResponseBucket == "" {
		return d.ResponseBucket
	}
	return c.ResponseBucket
}

func resolveMaxLoad(c Candidate, d Defaults) int {
	if c.MaxLoad <= 0 {
		return d.MaxLoad
	}
	return c.MaxLoad
}

func clampFloat(v, minV, maxV float64) float64 {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
