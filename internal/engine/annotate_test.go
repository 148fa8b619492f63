package engine

import (
	"reflect"
	"testing"
)

func TestAnnotateRelevance(t *testing.T) {
	listings := []Listing{
		{ID: 1, Title: "Python Developer", Description: "We need a python developer for our analytics team."},
		{ID: 2, Title: "Groundskeeper", Description: "Maintain the stadium pitch."},
		{ID: 3, Title: "Data Analyst", Description: "SQL and statistics for match analysis.", Experience: "2 years"},
	}

	AnnotateRelevance(listings, []string{"Python", "SQL"}, []string{"analytics", "statistics"})

	t.Run("original casing preserved", func(t *testing.T) {
		r := listings[0].Relevance
		if r == nil {
			t.Fatal("expected relevance on matching listing")
		}
		if !reflect.DeepEqual(r.SkillMatches, []string{"Python"}) {
			t.Errorf("skill matches = %v, want [Python]", r.SkillMatches)
		}
		if !reflect.DeepEqual(r.GeneralMatches, []string{"analytics"}) {
			t.Errorf("general matches = %v, want [analytics]", r.GeneralMatches)
		}
	})

	t.Run("no match leaves relevance unset", func(t *testing.T) {
		if listings[1].Relevance != nil {
			t.Errorf("expected nil relevance, got %+v", listings[1].Relevance)
		}
	})

	t.Run("partial match still annotated", func(t *testing.T) {
		r := listings[2].Relevance
		if r == nil {
			t.Fatal("expected relevance")
		}
		if !reflect.DeepEqual(r.SkillMatches, []string{"SQL"}) {
			t.Errorf("skill matches = %v, want [SQL]", r.SkillMatches)
		}
		if !reflect.DeepEqual(r.GeneralMatches, []string{"statistics"}) {
			t.Errorf("general matches = %v, want [statistics]", r.GeneralMatches)
		}
	})
}

func TestAnnotateRelevanceDedupesKeywords(t *testing.T) {
	listings := []Listing{{ID: 1, Title: "Python Engineer"}}
	AnnotateRelevance(listings, []string{"Python", "python", "PYTHON"}, nil)

	r := listings[0].Relevance
	if r == nil {
		t.Fatal("expected relevance")
	}
	if !reflect.DeepEqual(r.SkillMatches, []string{"Python"}) {
		t.Errorf("skill matches = %v, want first-seen casing only", r.SkillMatches)
	}
}

func TestAnnotateRelevanceKeepsOrder(t *testing.T) {
	listings := []Listing{
		{ID: 3, Title: "Third"},
		{ID: 1, Title: "First python job"},
		{ID: 2, Title: "Second"},
	}
	AnnotateRelevance(listings, []string{"python"}, nil)

	ids := []int{listings[0].ID, listings[1].ID, listings[2].ID}
	if !reflect.DeepEqual(ids, []int{3, 1, 2}) {
		t.Errorf("order changed: %v", ids)
	}
}

func TestAnnotateRelevanceNoKeywords(t *testing.T) {
	listings := []Listing{{ID: 1, Title: "Anything"}}
	AnnotateRelevance(listings, nil, nil)
	if listings[0].Relevance != nil {
		t.Error("no keyword lists must leave relevance unset")
	}
}
