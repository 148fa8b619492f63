package engine

import "testing"

func filterFixture() Listing {
	return Listing{
		ID:            1,
		Title:         "Assistant Kabaddi Coach",
		Description:   "Train junior players and assist the head coach with fitness drills.",
		Employer:      "Pune Sports Academy",
		Location:      "Pune, Maharashtra",
		JobType:       "Full Time",
		Category:      "Coaching",
		Qualification: "NIS Certificate",
	}
}

func TestFilterLocation(t *testing.T) {
	initTestEngine(t, "http://upstream.invalid")
	l := filterFixture()

	t.Run("any keyword matches", func(t *testing.T) {
		fc := FilterContext{LocationKeywords: []string{"mumbai", "pune"}}
		if !fc.Keep(l) {
			t.Error("expected OR semantics to keep the listing")
		}
	})
	t.Run("no keyword matches", func(t *testing.T) {
		fc := FilterContext{LocationKeywords: []string{"delhi", "chennai"}}
		if fc.Keep(l) {
			t.Error("expected listing to be filtered out")
		}
	})
	t.Run("empty filter matches everything", func(t *testing.T) {
		if !(FilterContext{}).Keep(l) {
			t.Error("empty filter context must keep all listings")
		}
	})
}

func TestFilterJobType(t *testing.T) {
	initTestEngine(t, "http://upstream.invalid")
	l := filterFixture()

	if !(FilterContext{JobType: "full time"}).Keep(l) {
		t.Error("case-insensitive substring match expected")
	}
	if (FilterContext{JobType: "internship"}).Keep(l) {
		t.Error("non-matching job type must be filtered out")
	}
}

func TestFilterKeywordCoverage(t *testing.T) {
	initTestEngine(t, "http://upstream.invalid")
	l := filterFixture()

	tests := []struct {
		name     string
		keywords []string
		keep     bool
	}{
		// ceil(0.6*1)=1
		{"single hit", []string{"kabaddi"}, true},
		{"single miss", []string{"cricket"}, false},
		// ceil(0.6*2)=2: both must hit
		{"two of two", []string{"kabaddi", "coach"}, true},
		{"one of two", []string{"kabaddi", "cricket"}, false},
		// ceil(0.6*3)=2: majority is enough
		{"two of three", []string{"kabaddi", "coach", "cricket"}, true},
		{"one of three", []string{"kabaddi", "cricket", "football"}, false},
		// duplicates collapse before the threshold is computed
		{"duplicate keyword", []string{"kabaddi", "kabaddi"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := FilterContext{SearchKeywords: tt.keywords}
			if got := fc.Keep(l); got != tt.keep {
				t.Errorf("Keep with %v = %v, want %v", tt.keywords, got, tt.keep)
			}
		})
	}
}

func TestFiltersAreConjunctive(t *testing.T) {
	initTestEngine(t, "http://upstream.invalid")
	l := filterFixture()

	fc := FilterContext{
		LocationKeywords: []string{"pune"},
		JobType:          "full",
		SearchKeywords:   []string{"coach"},
	}
	if !fc.Keep(l) {
		t.Error("listing passing all filters must be kept")
	}

	fc.JobType = "internship"
	if fc.Keep(l) {
		t.Error("failing any one filter must reject the listing")
	}
}
