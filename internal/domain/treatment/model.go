package treatment

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// SampleKey identifies a sample. Sample ids are only unique within a study.
type SampleKey struct {
	SampleID string `json:"sampleId" csv:"sample_id" yaml:"sampleId"`
	StudyID  string `json:"studyId" csv:"study_id" yaml:"studyId"`
}

func (k SampleKey) String() string {
	return k.StudyID + ":" + k.SampleID
}

// TemporalRelation says whether a sample was taken before or after a treatment started.
type TemporalRelation string

const (
	Before TemporalRelation = "Pre"
	After  TemporalRelation = "Post"
)

var ErrInvalidTemporalRelation = errors.New("invalid temporal relation")

// ParseTemporalRelation accepts the wire values Pre/Post as well as Before/After.
func ParseTemporalRelation(s string) (TemporalRelation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pre", "before":
		return Before, nil
	case "post", "after":
		return After, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTemporalRelation, s)
}

func (t TemporalRelation) Valid() bool {
	return t == Before || t == After
}

func (t *TemporalRelation) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseTemporalRelation(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t *TemporalRelation) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := ParseTemporalRelation(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ClinicalEventSample is a sample observed relative to a clinical event.
type ClinicalEventSample struct {
	PatientID string `json:"patientId"`
	SampleID  string `json:"sampleId"`
	StudyID   string `json:"studyId"`
	TimeTaken int    `json:"timeTaken"`
}

func (s ClinicalEventSample) Key() SampleKey {
	return SampleKey{SampleID: s.SampleID, StudyID: s.StudyID}
}

// SampleTreatmentRow lists the samples taken with the given timing relative to one treatment.
type SampleTreatmentRow struct {
	Time      TemporalRelation      `json:"time"`
	Treatment string                `json:"treatment"`
	Count     int                   `json:"count"`
	Samples   []ClinicalEventSample `json:"samples"`
}

// Treatment is a treatment event for a patient; Start is days from diagnosis.
type Treatment struct {
	PatientID string `db:"patient_id" json:"patientId"`
	StudyID   string `db:"study_id" json:"studyId"`
	Treatment string `db:"treatment" json:"treatment"`
	Start     int    `db:"start_date" json:"start"`
	Stop      *int   `db:"stop_date" json:"stop,omitempty"`
}

var (
	ErrEmptyOrGroup = errors.New("treatment filter group must contain at least one term")
	ErrInvalidTerm  = errors.New("invalid treatment filter term")
)

// FilterTerm is satisfied by samples in the Time group for Treatment.
type FilterTerm struct {
	Treatment string           `json:"treatment" yaml:"treatment"`
	Time      TemporalRelation `json:"time" yaml:"time"`
}

func (f FilterTerm) validate() error {
	if strings.TrimSpace(f.Treatment) == "" {
		return fmt.Errorf("%w: treatment is required", ErrInvalidTerm)
	}
	if !f.Time.Valid() {
		return fmt.Errorf("%w: time %q", ErrInvalidTerm, f.Time)
	}
	return nil
}

// OredTerms is satisfied when any of its terms is.
type OredTerms struct {
	Filters []FilterTerm `json:"filters" yaml:"filters"`
}

func NewOredTerms(terms ...FilterTerm) (OredTerms, error) {
	o := OredTerms{Filters: terms}
	if err := o.validate(); err != nil {
		return OredTerms{}, err
	}
	return o, nil
}

func (o OredTerms) validate() error {
	if len(o.Filters) == 0 {
		return ErrEmptyOrGroup
	}
	for _, f := range o.Filters {
		if err := f.validate(); err != nil {
			return err
		}
	}
	return nil
}

// AndedGroups is satisfied when every group is. No groups admits everything.
type AndedGroups struct {
	Filters []OredTerms `json:"filters" yaml:"filters"`
}

func NewAndedGroups(groups ...OredTerms) (AndedGroups, error) {
	a := AndedGroups{Filters: groups}
	if err := a.Validate(); err != nil {
		return AndedGroups{}, err
	}
	return a, nil
}

func (a AndedGroups) Validate() error {
	for i, g := range a.Filters {
		if err := g.validate(); err != nil {
			return fmt.Errorf("group %d: %w", i, err)
		}
	}
	return nil
}

func (a AndedGroups) IsEmpty() bool {
	return len(a.Filters) == 0
}

// Terms returns the distinct terms referenced by the expression in first-seen order.
func (a AndedGroups) Terms() []FilterTerm {
	seen := make(map[FilterTerm]bool)
	var terms []FilterTerm
	for _, g := range a.Filters {
		for _, f := range g.Filters {
			if !seen[f] {
				seen[f] = true
				terms = append(terms, f)
			}
		}
	}
	return terms
}

func (a *AndedGroups) UnmarshalJSON(b []byte) error {
	type raw AndedGroups
	var r raw
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}
	if err := AndedGroups(r).Validate(); err != nil {
		return err
	}
	*a = AndedGroups(r)
	return nil
}
