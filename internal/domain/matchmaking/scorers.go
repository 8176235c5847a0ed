package matchmaking

import "math"

const (
	ratingPriorMean   = 4.0
	ratingPriorWeight = 5.0
)

var responseScores = map[string]float64{
	ResponseUnder1Hour:   1.0,
	ResponseUnder2Hours:  0.9,
	ResponseUnder4Hours:  0.7,
	ResponseUnder8Hours:  0.5,
	ResponseUnder24Hours: 0.3,
}

// availabilityScore folds the two independent availability booleans into
// one signal: online dominates, available adds the rest.
func availabilityScore(c Candidate) float64 {
	s := 0.0
	if c.Online {
		s += 0.6
	}
	if c.Available {
		s += 0.4
	}
	if s > 1.0 {
		s = 1.0
	}
	return s
}

// ratingScore shrinks the raw rating toward a prior of 4.0 weighted as 5
// pseudo-sessions, then rescales the 1..5 band onto [0,1]. Low-volume
// candidates land near the prior instead of their raw average.
func ratingScore(rating float64, sessions int) float64 {
	n := float64(sessions)
	if n < 0 {
		n = 0
	}
	shrunk := (rating*n + ratingPriorMean*ratingPriorWeight) / (n + ratingPriorWeight)
	return clampFloat((shrunk-1)/4, 0, 1)
}

func responseScore(bucket string) float64 {
	if v, ok := responseScores[bucket]; ok {
		return v
	}
	return 0.2
}

func experienceScore(years int) float64 {
	if years <= 0 {
		return 0
	}
	return clampFloat(float64(years)/10, 0, 1)
}

// workloadScore is a three-tier step over current/max utilization.
func workloadScore(current, max int) float64 {
	if max <= 0 {
		return 1.0
	}
	ratio := float64(current) / float64(max)
	switch {
	case ratio <= 0.7:
		return 1.0
	case ratio <= 0.9:
		return 0.5
	default:
		return 0.1
	}
}

// successRate derives a 0-95 percentage from rating and session volume.
// Used by the points profile only; not folded into the strict weighted sum.
func successRate(rating float64, sessions int) float64 {
	v := rating*20 + math.Min(float64(sessions)*0.1, 10)
	if v > 95 {
		v = 95
	}
	if v < 0 {
		v = 0
	}
	return v
}

// sessionTier maps completed-session volume onto the response-speed tier
// used by the points profile.
func sessionTier(sessions int) float64 {
	switch {
	case sessions > 1000:
		return 1.0
	case sessions > 500:
		return 0.9
	case sessions > 100:
		return 0.8
	default:
		return 0.6
	}
}
