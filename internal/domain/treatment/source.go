package treatment

import "context"

// RowSource is a MembershipSource over rows already in memory, such as rows
// exported from another portal instance.
type RowSource struct {
	rows []*SampleTreatmentRow
}

func NewRowSource(rows []*SampleTreatmentRow) *RowSource {
	return &RowSource{rows: rows}
}

func (s *RowSource) GetSampleTreatmentRows(_ context.Context, treatments []string, timings []TemporalRelation, scope []SampleKey) ([]*SampleTreatmentRow, error) {
	wantName := make(map[string]bool, len(treatments))
	for _, n := range treatments {
		wantName[n] = true
	}
	wantTime := make(map[TemporalRelation]bool, len(timings))
	for _, t := range timings {
		wantTime[t] = true
	}
	inScope := make(map[SampleKey]bool, len(scope))
	for _, k := range scope {
		inScope[k] = true
	}

	result := []*SampleTreatmentRow{}
	for _, r := range s.rows {
		if !wantName[r.Treatment] || !wantTime[r.Time] {
			continue
		}
		var samples []ClinicalEventSample
		for _, sm := range r.Samples {
			if inScope[sm.Key()] {
				samples = append(samples, sm)
			}
		}
		if len(samples) == 0 {
			continue
		}
		result = append(result, &SampleTreatmentRow{Time: r.Time, Treatment: r.Treatment, Count: len(samples), Samples: samples})
	}
	return result, nil
}
