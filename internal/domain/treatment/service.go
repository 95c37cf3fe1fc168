package treatment

import (
	"context"
	"fmt"
	"sort"
)

type Service struct {
	repo TreatmentRepository
}

func NewService(repo TreatmentRepository) *Service {
	return &Service{repo: repo}
}

// GetSampleTreatmentRows computes, for every requested treatment and timing,
// which samples in scope were taken before (time taken <= treatment start)
// or after the treatment started. Rows with no samples are omitted.
func (s *Service) GetSampleTreatmentRows(ctx context.Context, treatments []string, timings []TemporalRelation, scope []SampleKey) ([]*SampleTreatmentRow, error) {
	if len(treatments) == 0 || len(timings) == 0 || len(scope) == 0 {
		return []*SampleTreatmentRow{}, nil
	}
	for _, t := range timings {
		if !t.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTemporalRelation, t)
		}
	}

	samples, err := s.repo.ListSampleEvents(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list sample events: %w", err)
	}
	if len(samples) == 0 {
		return []*SampleTreatmentRow{}, nil
	}
	events, err := s.repo.ListTreatments(ctx, studyIDs(scope), treatments)
	if err != nil {
		return nil, fmt.Errorf("list treatments: %w", err)
	}

	type patientKey struct{ study, patient string }
	byPatient := make(map[patientKey][]*ClinicalEventSample)
	for _, smp := range samples {
		k := patientKey{smp.StudyID, smp.PatientID}
		byPatient[k] = append(byPatient[k], smp)
	}

	members := make(map[FilterTerm]map[SampleKey]ClinicalEventSample)
	for _, ev := range events {
		for _, smp := range byPatient[patientKey{ev.StudyID, ev.PatientID}] {
			time := After
			if smp.TimeTaken <= ev.Start {
				time = Before
			}
			term := FilterTerm{Treatment: ev.Treatment, Time: time}
			if members[term] == nil {
				members[term] = make(map[SampleKey]ClinicalEventSample)
			}
			members[term][smp.Key()] = *smp
		}
	}

	rows := []*SampleTreatmentRow{}
	for _, name := range dedupe(treatments) {
		for _, time := range dedupe(timings) {
			set := members[FilterTerm{Treatment: name, Time: time}]
			if len(set) == 0 {
				continue
			}
			row := &SampleTreatmentRow{Time: time, Treatment: name, Count: len(set)}
			for _, smp := range set {
				row.Samples = append(row.Samples, smp)
			}
			sort.Slice(row.Samples, func(i, j int) bool {
				a, b := row.Samples[i], row.Samples[j]
				if a.StudyID != b.StudyID {
					return a.StudyID < b.StudyID
				}
				return a.SampleID < b.SampleID
			})
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (s *Service) GetTreatmentNames(ctx context.Context, studyIDs []string) ([]string, error) {
	if len(studyIDs) == 0 {
		return nil, fmt.Errorf("at least one studyId is required")
	}
	return s.repo.ListTreatmentNames(ctx, studyIDs)
}

func studyIDs(scope []SampleKey) []string {
	ids := make([]string, 0, len(scope))
	for _, k := range scope {
		ids = append(ids, k.StudyID)
	}
	return dedupe(ids)
}

func dedupe[T comparable](in []T) []T {
	seen := make(map[T]bool, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
