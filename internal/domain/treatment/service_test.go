package treatment

import (
	"context"
	"errors"
	"testing"
)

// -- Mock Repository --

type mockTreatmentRepo struct {
	treatments []*Treatment
	samples    []*ClinicalEventSample
	names      []string
	err        error

	treatmentCalls int
	sampleCalls    int
	gotStudies     []string
	gotNames       []string
}

func (m *mockTreatmentRepo) ListTreatments(_ context.Context, studyIDs []string, names []string) ([]*Treatment, error) {
	m.treatmentCalls++
	m.gotStudies = studyIDs
	m.gotNames = names
	if m.err != nil {
		return nil, m.err
	}
	wanted := make(map[string]bool)
	for _, n := range names {
		wanted[n] = true
	}
	var result []*Treatment
	for _, t := range m.treatments {
		if names == nil || wanted[t.Treatment] {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *mockTreatmentRepo) ListSampleEvents(_ context.Context, scope []SampleKey) ([]*ClinicalEventSample, error) {
	m.sampleCalls++
	if m.err != nil {
		return nil, m.err
	}
	inScope := make(map[SampleKey]bool)
	for _, k := range scope {
		inScope[k] = true
	}
	var result []*ClinicalEventSample
	for _, s := range m.samples {
		if inScope[s.Key()] {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockTreatmentRepo) ListTreatmentNames(_ context.Context, studyIDs []string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.names, nil
}

func newTestRepo() *mockTreatmentRepo {
	return &mockTreatmentRepo{
		treatments: []*Treatment{
			{PatientID: "P1", StudyID: "ST_0", Treatment: "DrugA", Start: 100},
			{PatientID: "P2", StudyID: "ST_0", Treatment: "DrugA", Start: 10},
			{PatientID: "P2", StudyID: "ST_0", Treatment: "DrugB", Start: 500},
		},
		samples: []*ClinicalEventSample{
			{PatientID: "P1", SampleID: "S1", StudyID: "ST_0", TimeTaken: 50},
			{PatientID: "P1", SampleID: "S2", StudyID: "ST_0", TimeTaken: 100},
			{PatientID: "P1", SampleID: "S3", StudyID: "ST_0", TimeTaken: 150},
			{PatientID: "P2", SampleID: "S4", StudyID: "ST_0", TimeTaken: 20},
		},
	}
}

func allScope() []SampleKey {
	return []SampleKey{
		{SampleID: "S1", StudyID: "ST_0"},
		{SampleID: "S2", StudyID: "ST_0"},
		{SampleID: "S3", StudyID: "ST_0"},
		{SampleID: "S4", StudyID: "ST_0"},
	}
}

func findRow(rows []*SampleTreatmentRow, name string, time TemporalRelation) *SampleTreatmentRow {
	for _, r := range rows {
		if r.Treatment == name && r.Time == time {
			return r
		}
	}
	return nil
}

func sampleIDs(r *SampleTreatmentRow) []string {
	var ids []string
	for _, s := range r.Samples {
		ids = append(ids, s.SampleID)
	}
	return ids
}

func TestService_GetSampleTreatmentRows_SplitsOnStart(t *testing.T) {
	svc := NewService(newTestRepo())
	rows, err := svc.GetSampleTreatmentRows(context.Background(), []string{"DrugA", "DrugB"}, []TemporalRelation{Before, After}, allScope())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pre := findRow(rows, "DrugA", Before)
	if pre == nil {
		t.Fatal("expected DrugA/Pre row")
	}
	// S2 is taken on the start day and counts as before.
	if got := sampleIDs(pre); len(got) != 2 || got[0] != "S1" || got[1] != "S2" {
		t.Errorf("DrugA/Pre samples = %v, want [S1 S2]", got)
	}
	if pre.Count != 2 {
		t.Errorf("expected count 2, got %d", pre.Count)
	}

	post := findRow(rows, "DrugA", After)
	if post == nil {
		t.Fatal("expected DrugA/Post row")
	}
	if got := sampleIDs(post); len(got) != 2 || got[0] != "S3" || got[1] != "S4" {
		t.Errorf("DrugA/Post samples = %v, want [S3 S4]", got)
	}

	if r := findRow(rows, "DrugB", Before); r == nil || r.Count != 1 || r.Samples[0].SampleID != "S4" {
		t.Errorf("expected DrugB/Pre to contain only S4, got %+v", r)
	}
	if r := findRow(rows, "DrugB", After); r != nil {
		t.Errorf("expected no DrugB/Post row, got %+v", r)
	}
}

func TestService_GetSampleTreatmentRows_OnlyRequestedTimings(t *testing.T) {
	svc := NewService(newTestRepo())
	rows, err := svc.GetSampleTreatmentRows(context.Background(), []string{"DrugA"}, []TemporalRelation{After}, allScope())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Time != After {
		t.Errorf("expected single Post row, got %+v", rows)
	}
}

func TestService_GetSampleTreatmentRows_RespectsScope(t *testing.T) {
	svc := NewService(newTestRepo())
	scope := []SampleKey{{SampleID: "S1", StudyID: "ST_0"}}
	rows, err := svc.GetSampleTreatmentRows(context.Background(), []string{"DrugA"}, []TemporalRelation{Before, After}, scope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Count != 1 || rows[0].Samples[0].SampleID != "S1" {
		t.Errorf("expected only S1, got %+v", rows)
	}
}

func TestService_GetSampleTreatmentRows_EmptyInputsSkipRepository(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if rows, err := svc.GetSampleTreatmentRows(ctx, nil, []TemporalRelation{Before}, allScope()); err != nil || len(rows) != 0 {
		t.Errorf("expected empty rows for no treatments, got %v, %v", rows, err)
	}
	if rows, err := svc.GetSampleTreatmentRows(ctx, []string{"DrugA"}, []TemporalRelation{Before}, nil); err != nil || len(rows) != 0 {
		t.Errorf("expected empty rows for empty scope, got %v, %v", rows, err)
	}
	if repo.sampleCalls != 0 || repo.treatmentCalls != 0 {
		t.Errorf("expected no repository calls, got %d/%d", repo.sampleCalls, repo.treatmentCalls)
	}
}

func TestService_GetSampleTreatmentRows_QueriesScopeStudies(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	scope := []SampleKey{
		{SampleID: "S1", StudyID: "ST_0"},
		{SampleID: "X", StudyID: "ST_1"},
		{SampleID: "S2", StudyID: "ST_0"},
	}
	if _, err := svc.GetSampleTreatmentRows(context.Background(), []string{"DrugA", "DrugA"}, []TemporalRelation{Before}, scope); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.gotStudies) != 2 || repo.gotStudies[0] != "ST_0" || repo.gotStudies[1] != "ST_1" {
		t.Errorf("studies = %v, want [ST_0 ST_1]", repo.gotStudies)
	}
}

func TestService_GetSampleTreatmentRows_InvalidTiming(t *testing.T) {
	svc := NewService(newTestRepo())
	_, err := svc.GetSampleTreatmentRows(context.Background(), []string{"DrugA"}, []TemporalRelation{"During"}, allScope())
	if !errors.Is(err, ErrInvalidTemporalRelation) {
		t.Errorf("expected ErrInvalidTemporalRelation, got %v", err)
	}
}

func TestService_GetSampleTreatmentRows_RepositoryError(t *testing.T) {
	boom := errors.New("db down")
	repo := newTestRepo()
	repo.err = boom
	svc := NewService(repo)
	_, err := svc.GetSampleTreatmentRows(context.Background(), []string{"DrugA"}, []TemporalRelation{Before}, allScope())
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped repository error, got %v", err)
	}
}

func TestService_FeedsSampleFilter(t *testing.T) {
	svc := NewService(newTestRepo())
	f := NewSampleFilter(svc, testLogger())
	expr := mustAnded(t,
		[]FilterTerm{{"DrugA", Before}},
		[]FilterTerm{{"DrugB", Before}, {"DrugA", Before}},
	)
	got, err := f.Filter(context.Background(), allScope(), expr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].SampleID != "S1" || got[1].SampleID != "S2" {
		t.Errorf("expected [S1 S2], got %v", got)
	}
}

func TestService_GetTreatmentNames_RequiresStudy(t *testing.T) {
	svc := NewService(newTestRepo())
	if _, err := svc.GetTreatmentNames(context.Background(), nil); err == nil {
		t.Error("expected error for missing study ids")
	}
}

func TestService_GetSampleTreatmentRows_DuplicateTimings(t *testing.T) {
	svc := NewService(newTestRepo())
	scope := []SampleKey{{SampleID: "S1", StudyID: "ST_0"}, {SampleID: "S3", StudyID: "ST_0"}}
	rows, err := svc.GetSampleTreatmentRows(context.Background(), []string{"DrugA"}, []TemporalRelation{Before, Before, After}, scope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected one row per timing, got %d: %+v", len(rows), rows)
	}
	if rows[0].Time != Before || rows[0].Samples[0].SampleID != "S1" {
		t.Errorf("expected DrugA/Pre with S1 first, got %+v", rows[0])
	}
	if rows[1].Time != After || rows[1].Samples[0].SampleID != "S3" {
		t.Errorf("expected DrugA/Post with S3 second, got %+v", rows[1])
	}
}
