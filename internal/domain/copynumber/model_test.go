package copynumber

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestParseCNA(t *testing.T) {
	tests := []struct {
		in   string
		want CNA
	}{
		{"HOMDEL", HomDel},
		{"hetloss", HetLoss},
		{" Diploid ", Diploid},
		{"GAIN", Gain},
		{"amp", Amp},
	}
	for _, tt := range tests {
		got, err := ParseCNA(tt.in)
		if err != nil {
			t.Errorf("ParseCNA(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCNA(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseCNA("LOSS"); !errors.Is(err, ErrInvalidCNA) {
		t.Errorf("expected ErrInvalidCNA, got %v", err)
	}
}

func TestGeneFilterQuery_JSONUsesNames(t *testing.T) {
	var q GeneFilterQuery
	if err := json.Unmarshal([]byte(`{"entrezGeneId":672,"alterations":["AMP","HOMDEL"]}`), &q); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(q.Alterations, []CNA{Amp, HomDel}) {
		t.Errorf("alterations = %v", q.Alterations)
	}
	if err := json.Unmarshal([]byte(`{"alterations":["SPLIT"]}`), &q); err == nil {
		t.Error("expected error for unknown alteration name")
	}
}

func TestParseEventType(t *testing.T) {
	got, err := ParseEventType("")
	if err != nil || got != EventHomDelAndAmp {
		t.Errorf("expected HOMDEL_AND_AMP default, got %v, %v", got, err)
	}
	got, err = ParseEventType("gain")
	if err != nil || !reflect.DeepEqual(got.Alterations(), []int{1}) {
		t.Errorf("expected [1] for GAIN, got %v, %v", got.Alterations(), err)
	}
	if len(EventAll.Alterations()) != 5 {
		t.Errorf("expected ALL to cover five alterations, got %v", EventAll.Alterations())
	}
	if _, err := ParseEventType("LOSS"); err == nil {
		t.Error("expected error for unknown event type")
	}
}

func TestIsHomdelOrAmpOnly(t *testing.T) {
	if !isHomdelOrAmpOnly([]int{-2}) || !isHomdelOrAmpOnly([]int{-2, 2}) {
		t.Error("expected HOMDEL/AMP sets to use the event store")
	}
	if isHomdelOrAmpOnly([]int{-2, -1}) || isHomdelOrAmpOnly([]int{0}) {
		t.Error("expected sets with other alterations to fall back")
	}
}

func TestGeneFilterQuery_AdmitsDriver(t *testing.T) {
	driver := &DiscreteCopyNumberData{DriverFilter: strPtr("Putative_Driver"), DriverTiersFilter: strPtr("Tier 1")}
	passenger := &DiscreteCopyNumberData{DriverFilter: strPtr("Putative_Passenger")}
	unknown := &DiscreteCopyNumberData{}

	open := GeneFilterQuery{}
	if !open.admitsDriver(driver) || !open.admitsDriver(unknown) {
		t.Error("expected query without driver flags to admit everything")
	}

	driversOnly := GeneFilterQuery{IncludeDriver: true}
	if !driversOnly.admitsDriver(driver) || driversOnly.admitsDriver(passenger) || driversOnly.admitsDriver(unknown) {
		t.Error("expected only putative drivers")
	}

	vusAndUnknown := GeneFilterQuery{IncludeVUS: true, IncludeUnknownOncogenicity: true}
	if vusAndUnknown.admitsDriver(driver) || !vusAndUnknown.admitsDriver(passenger) || !vusAndUnknown.admitsDriver(unknown) {
		t.Error("expected passengers and unannotated events")
	}

	tiered := GeneFilterQuery{IncludeDriver: true, IncludeUnknownOncogenicity: true, SelectedTiers: []string{"Tier 2"}}
	if tiered.admitsDriver(driver) {
		t.Error("expected Tier 1 driver to be excluded by tier selection")
	}
	if tiered.admitsDriver(unknown) {
		t.Error("expected untiered event to be excluded without IncludeUnknownTier")
	}
	tiered.IncludeUnknownTier = true
	if !tiered.admitsDriver(unknown) {
		t.Error("expected untiered event with IncludeUnknownTier")
	}
}
