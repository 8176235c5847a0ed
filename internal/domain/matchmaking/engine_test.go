package matchmaking

import (
	"math"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func legalCandidate() Candidate {
	return Candidate{
		ID:              uuid.New(),
		Name:            "Asha Njeri",
		PrimaryCategory: catRef(7, "Legal Advice"),
		Online:          true,
		Available:       true,
		Rating:          fptr(4.8),
		Sessions:        iptr(120),
		YearsExperience: iptr(8),
		ResponseBucket:  ResponseUnder1Hour,
		CurrentLoad:     1,
		MaxLoad:         5,
	}
}

func TestMatch_StrictTopCandidateFullMarks(t *testing.T) {
	c := legalCandidate()
	res := Match(Request{Category: "Legal Advice"}, []Candidate{c})
	if res == nil {
		t.Fatal("expected a match")
	}
	if res.CategoryScore != 1.0 {
		t.Fatalf("category score = %v, want 1.0", res.CategoryScore)
	}
	if res.Score != 100 {
		t.Fatalf("aggregate = %d, want 100", res.Score)
	}
	if res.Dimensions[DimAvailability] != 100 {
		t.Fatalf("availability dim = %d, want 100", res.Dimensions[DimAvailability])
	}
	if res.Confidence != 0.95 {
		t.Fatalf("confidence = %v, want 0.95 (exact match, high volume)", res.Confidence)
	}
}

func TestMatch_EmptyPool(t *testing.T) {
	if res := Match(Request{Category: "Legal Advice"}, nil); res != nil {
		t.Fatalf("expected nil for empty pool, got %+v", res)
	}
	if out := Rank(Request{Category: "Legal Advice"}, nil); len(out) != 0 {
		t.Fatalf("expected empty rank output, got %d results", len(out))
	}
}

func TestRank_StrictExcludesBelowThreshold(t *testing.T) {
	noSignals := Candidate{ID: uuid.New(), Name: "No Signals", Specialization: "General Consulting"}
	prefixOnly := Candidate{ID: uuid.New(), Name: "Prefix", PrimaryCategory: catRef(2, "Paralegal Services")}

	out := Rank(Request{Category: "Medical Help"}, []Candidate{noSignals, prefixOnly, legalCandidate()})
	for _, r := range out {
		if r.CategoryScore < StrictThreshold {
			t.Fatalf("candidate %q with category score %v leaked past the threshold", r.Candidate.Name, r.CategoryScore)
		}
	}
	if len(out) != 0 {
		t.Fatalf("expected no eligible candidates for %q, got %d", "Medical Help", len(out))
	}

	if res := Match(Request{Category: "Medical Help"}, []Candidate{noSignals}); res != nil {
		t.Fatalf("expected nil match for no-signal candidate")
	}
}

func TestRank_OrderAndTieBreaks(t *testing.T) {
	strong := legalCandidate()
	strong.Name = "A"

	weaker := legalCandidate()
	weaker.Name = "B"
	weaker.Online = false
	weaker.Available = true
	weaker.ResponseBucket = ResponseUnder8Hours

	partial := Candidate{
		ID:              uuid.New(),
		Name:            "C",
		PrimaryCategory: catRef(3, "Legal Advice and Contracts"),
		Online:          true,
		Available:       true,
		Rating:          fptr(5.0),
		Sessions:        iptr(900),
		ResponseBucket:  ResponseUnder1Hour,
	}

	out := Rank(Request{Category: "Legal Advice"}, []Candidate{partial, weaker, strong})
	if len(out) != 3 {
		t.Fatalf("expected 3 results, got %d", len(out))
	}

	// Exact category matches outrank partials regardless of the partials'
	// other dimensions; within the exact tie, higher aggregate wins.
	if out[0].Candidate.Name != "A" || out[1].Candidate.Name != "B" || out[2].Candidate.Name != "C" {
		t.Fatalf("unexpected order: %s, %s, %s", out[0].Candidate.Name, out[1].Candidate.Name, out[2].Candidate.Name)
	}
	if out[0].Score < out[1].Score {
		t.Fatalf("tie break violated: %d then %d", out[0].Score, out[1].Score)
	}
}

func TestRank_StableForEqualKeys(t *testing.T) {
	make3 := func(name string) Candidate {
		c := legalCandidate()
		c.Name = name
		return c
	}
	out := Rank(Request{Category: "Legal Advice"}, []Candidate{make3("first"), make3("second"), make3("third")})
	if len(out) != 3 {
		t.Fatalf("expected 3 results, got %d", len(out))
	}
	for i, want := range []string{"first", "second", "third"} {
		if out[i].Candidate.Name != want {
			t.Fatalf("position %d: got %q, want %q (input order must survive equal keys)", i, out[i].Candidate.Name, want)
		}
	}
}

func TestRank_StrictAggregateBounds(t *testing.T) {
	pool := []Candidate{
		legalCandidate(),
		{ID: uuid.New(), PrimaryCategory: catRef(1, "Legal Advice"), Rating: fptr(0), Sessions: iptr(0), ResponseBucket: "whenever"},
		{ID: uuid.New(), LegacyCategory: catRef(1, "Legal Advice"), Rating: fptr(5), Sessions: iptr(100000), Online: true, Available: true, ResponseBucket: ResponseUnder1Hour},
	}
	for _, r := range Rank(Request{Category: "Legal Advice"}, pool) {
		if r.Score < 0 || r.Score > 100 {
			t.Fatalf("aggregate %d out of [0,100]", r.Score)
		}
		if r.Confidence < 0.80 || r.Confidence > 0.95 {
			t.Fatalf("confidence %v out of [0.80,0.95]", r.Confidence)
		}
		for name, v := range r.Dimensions {
			if v < 0 || v > 100 {
				t.Fatalf("dimension %s = %d out of [0,100]", name, v)
			}
		}
	}
}

func TestRank_PointsProfile(t *testing.T) {
	inCategory := legalCandidate()
	inCategory.Name = "in"

	outOfCategory := legalCandidate()
	outOfCategory.Name = "out"
	outOfCategory.PrimaryCategory = catRef(99, "Tax Law")

	lowVolume := Candidate{
		ID:              uuid.New(),
		Name:            "fresh",
		PrimaryCategory: catRef(7, "Legal Advice"),
	}

	out := Rank(Request{CategoryID: 7, Profile: ProfilePoints}, []Candidate{outOfCategory, lowVolume, inCategory})
	if len(out) != 2 {
		t.Fatalf("expected 2 results (id-exact gate), got %d", len(out))
	}
	if out[0].Candidate.Name != "in" {
		t.Fatalf("expected experienced candidate first, got %q", out[0].Candidate.Name)
	}
	for _, r := range out {
		if r.Score < 0 {
			t.Fatalf("points score %d went negative", r.Score)
		}
	}

	// 48 (rating) + 20 (tier 0.8) + 12 (years) + 9.5 (success 95) + 5
	// (session bonus) + 5 (online) = 99.5, rounded up.
	best := out[0]
	if best.Score != 100 {
		t.Fatalf("points score = %d, want 100", best.Score)
	}
}

func TestConfidence_Steps(t *testing.T) {
	cases := []struct {
		category float64
		sessions int
		want     float64
	}{
		{1.0, 120, 0.95},
		{1.0, 5, 0.95},
		{0.9, 120, 0.85},
		{0.9, 5, 0.80},
	}
	for _, tc := range cases {
		// The steps are sums of binary-inexact constants, so compare
		// within an epsilon.
		if got := confidence(tc.category, tc.sessions); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("confidence(%v, %d) = %v, want %v", tc.category, tc.sessions, got, tc.want)
		}
	}
}

func TestJustification_Phrases(t *testing.T) {
	c := legalCandidate()
	res := Match(Request{Category: "Legal Advice"}, []Candidate{c})
	if res == nil {
		t.Fatal("expected match")
	}
	want := "Specializes in Legal Advice • Online now • 8 years of experience"
	if res.Justification != want {
		t.Fatalf("justification = %q, want %q", res.Justification, want)
	}

	c.Online = false
	c.YearsExperience = iptr(3)
	res = Match(Request{Category: "Legal Advice"}, []Candidate{c})
	if res == nil {
		t.Fatal("expected match")
	}
	if !strings.Contains(res.Justification, "Available today") {
		t.Fatalf("expected availability phrase, got %q", res.Justification)
	}
	if strings.Contains(res.Justification, "years of experience") {
		t.Fatalf("experience phrase should be omitted under 6 years: %q", res.Justification)
	}
}

func TestMatch_DefaultsNeverReject(t *testing.T) {
	bare := Candidate{ID: uuid.New(), PrimaryCategory: catRef(1, "Legal Advice")}
	res := Match(Request{Category: "Legal Advice"}, []Candidate{bare})
	if res == nil {
		t.Fatal("candidate with absent quality fields must still score")
	}
	// Default rating 4.0 with zero sessions sits exactly on the prior.
	if res.Dimensions[DimRating] != 75 {
		t.Fatalf("rating dim = %d, want 75 (prior)", res.Dimensions[DimRating])
	}
	if res.Dimensions[DimResponseTime] != 70 {
		t.Fatalf("response dim = %d, want 70 (default bucket)", res.Dimensions[DimResponseTime])
	}
}
