package treatment

import "context"

type TreatmentRepository interface {
	// ListTreatments returns treatment events for patients of the given studies.
	// A nil names slice returns every treatment.
	ListTreatments(ctx context.Context, studyIDs []string, names []string) ([]*Treatment, error)
	// ListSampleEvents returns the acquisition time of every sample in scope that has one.
	ListSampleEvents(ctx context.Context, scope []SampleKey) ([]*ClinicalEventSample, error)
	ListTreatmentNames(ctx context.Context, studyIDs []string) ([]string, error)
}
