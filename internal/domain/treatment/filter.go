package treatment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// MembershipSource returns the rows for every requested (treatment, timing)
// combination, restricted to the samples in scope. It must be safe for
// concurrent use when the filter is.
type MembershipSource interface {
	GetSampleTreatmentRows(ctx context.Context, treatments []string, timings []TemporalRelation, scope []SampleKey) ([]*SampleTreatmentRow, error)
}

// SampleFilter narrows a list of samples with an AND-of-OR treatment expression.
type SampleFilter struct {
	source MembershipSource
	logger zerolog.Logger
}

func NewSampleFilter(source MembershipSource, logger zerolog.Logger) *SampleFilter {
	return &SampleFilter{source: source, logger: logger}
}

// Filter returns the samples satisfying expr in their original order.
// A single request is made to the membership source per call, unless expr
// has no groups, in which case every sample passes. An expression built
// without the constructors is validated here, so an empty group is an error.
func (f *SampleFilter) Filter(ctx context.Context, samples []SampleKey, expr AndedGroups) ([]SampleKey, error) {
	if err := expr.Validate(); err != nil {
		return nil, err
	}
	if expr.IsEmpty() {
		return append([]SampleKey{}, samples...), nil
	}

	terms := expr.Terms()
	names, timings := splitTerms(terms)

	rows, err := f.source.GetSampleTreatmentRows(ctx, names, timings, samples)
	if err != nil {
		return nil, fmt.Errorf("load sample treatment rows: %w", err)
	}
	index := indexRows(rows)

	result := []SampleKey{}
	for _, s := range samples {
		if matches(s, expr, index) {
			result = append(result, s)
		}
	}

	f.logger.Debug().
		Int("candidates", len(samples)).
		Int("retained", len(result)).
		Int("terms", len(terms)).
		Int("rows", len(rows)).
		Msg("sample treatment filter applied")
	return result, nil
}

func splitTerms(terms []FilterTerm) ([]string, []TemporalRelation) {
	seenName := make(map[string]bool)
	seenTime := make(map[TemporalRelation]bool)
	var names []string
	var timings []TemporalRelation
	for _, t := range terms {
		if !seenName[t.Treatment] {
			seenName[t.Treatment] = true
			names = append(names, t.Treatment)
		}
		if !seenTime[t.Time] {
			seenTime[t.Time] = true
			timings = append(timings, t.Time)
		}
	}
	return names, timings
}

type membershipIndex map[FilterTerm]map[SampleKey]struct{}

func indexRows(rows []*SampleTreatmentRow) membershipIndex {
	index := make(membershipIndex, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		term := FilterTerm{Treatment: row.Treatment, Time: row.Time}
		set, ok := index[term]
		if !ok {
			set = make(map[SampleKey]struct{}, len(row.Samples))
			index[term] = set
		}
		for _, s := range row.Samples {
			set[s.Key()] = struct{}{}
		}
	}
	return index
}

func matches(s SampleKey, expr AndedGroups, index membershipIndex) bool {
	for _, group := range expr.Filters {
		if !matchesAny(s, group, index) {
			return false
		}
	}
	return true
}

func matchesAny(s SampleKey, group OredTerms, index membershipIndex) bool {
	for _, term := range group.Filters {
		if _, ok := index[term][s]; ok {
			return true
		}
	}
	return false
}
