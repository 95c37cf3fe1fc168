package treatment

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseTemporalRelation(t *testing.T) {
	tests := []struct {
		in   string
		want TemporalRelation
	}{
		{"Pre", Before},
		{"pre", Before},
		{"Before", Before},
		{"Post", After},
		{" AFTER ", After},
	}
	for _, tt := range tests {
		got, err := ParseTemporalRelation(tt.in)
		if err != nil {
			t.Errorf("ParseTemporalRelation(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTemporalRelation(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseTemporalRelation_Invalid(t *testing.T) {
	_, err := ParseTemporalRelation("during")
	if !errors.Is(err, ErrInvalidTemporalRelation) {
		t.Errorf("expected ErrInvalidTemporalRelation, got %v", err)
	}
}

func TestNewOredTerms_RejectsEmptyGroup(t *testing.T) {
	_, err := NewOredTerms()
	if !errors.Is(err, ErrEmptyOrGroup) {
		t.Errorf("expected ErrEmptyOrGroup, got %v", err)
	}
}

func TestNewOredTerms_RejectsBlankTreatment(t *testing.T) {
	_, err := NewOredTerms(FilterTerm{Treatment: "  ", Time: Before})
	if !errors.Is(err, ErrInvalidTerm) {
		t.Errorf("expected ErrInvalidTerm, got %v", err)
	}
}

func TestNewOredTerms_RejectsUnknownTime(t *testing.T) {
	_, err := NewOredTerms(FilterTerm{Treatment: "DrugA", Time: "During"})
	if !errors.Is(err, ErrInvalidTerm) {
		t.Errorf("expected ErrInvalidTerm, got %v", err)
	}
}

func TestNewAndedGroups_AllowsNoGroups(t *testing.T) {
	a, err := NewAndedGroups()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.IsEmpty() {
		t.Error("expected empty expression")
	}
}

func TestAndedGroups_RejectsEmptyOrGroupLiteral(t *testing.T) {
	a := AndedGroups{Filters: []OredTerms{{Filters: []FilterTerm{{"DrugA", Before}}}, {}}}
	if err := a.Validate(); !errors.Is(err, ErrEmptyOrGroup) {
		t.Errorf("expected ErrEmptyOrGroup, got %v", err)
	}
}

func TestAndedGroups_Terms_Distinct(t *testing.T) {
	a := AndedGroups{Filters: []OredTerms{
		{Filters: []FilterTerm{{"DrugA", Before}, {"DrugB", After}}},
		{Filters: []FilterTerm{{"DrugB", After}, {"DrugA", After}}},
	}}
	terms := a.Terms()
	if len(terms) != 3 {
		t.Fatalf("expected 3 distinct terms, got %d: %v", len(terms), terms)
	}
	if terms[2] != (FilterTerm{"DrugA", After}) {
		t.Errorf("expected first-seen order, got %v", terms)
	}
}

func TestAndedGroups_UnmarshalJSON(t *testing.T) {
	body := `{"filters":[{"filters":[{"treatment":"DrugA","time":"Pre"},{"treatment":"DrugB","time":"Post"}]}]}`
	var a AndedGroups
	if err := json.Unmarshal([]byte(body), &a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.Filters) != 1 || len(a.Filters[0].Filters) != 2 {
		t.Fatalf("unexpected shape: %+v", a)
	}
	if a.Filters[0].Filters[1].Time != After {
		t.Errorf("expected Post, got %q", a.Filters[0].Filters[1].Time)
	}
}

func TestAndedGroups_UnmarshalJSON_EmptyOrGroup(t *testing.T) {
	body := `{"filters":[{"filters":[]}]}`
	var a AndedGroups
	if err := json.Unmarshal([]byte(body), &a); !errors.Is(err, ErrEmptyOrGroup) {
		t.Errorf("expected ErrEmptyOrGroup, got %v", err)
	}
}

func TestTemporalRelation_UnmarshalJSON_Invalid(t *testing.T) {
	var tr TemporalRelation
	if err := json.Unmarshal([]byte(`"sometime"`), &tr); err == nil {
		t.Error("expected error for unknown timing")
	}
}
