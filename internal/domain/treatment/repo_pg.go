package treatment

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/portal/portal/internal/platform/db"
)

type treatmentRepoPG struct{ q db.Queryable }

func NewTreatmentRepoPG(q db.Queryable) TreatmentRepository {
	return &treatmentRepoPG{q: q}
}

const treatmentSQL = `
	SELECT p.stable_id, cs.cancer_study_identifier, ced.value, ce.start_date, ce.stop_date
	FROM clinical_event ce
	JOIN clinical_event_data ced ON ced.clinical_event_id = ce.clinical_event_id
	JOIN patient p ON p.internal_id = ce.patient_id
	JOIN cancer_study cs ON cs.cancer_study_id = p.cancer_study_id
	WHERE UPPER(ce.event_type) = 'TREATMENT'
		AND UPPER(ced.key) = 'AGENT'
		AND cs.cancer_study_identifier = ANY($1)
		AND ($2::text[] IS NULL OR ced.value = ANY($2))
	ORDER BY cs.cancer_study_identifier, p.stable_id, ce.start_date`

func (r *treatmentRepoPG) ListTreatments(ctx context.Context, studyIDs []string, names []string) ([]*Treatment, error) {
	rows, err := r.q.Query(ctx, treatmentSQL, studyIDs, names)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Treatment
	for rows.Next() {
		var t Treatment
		if err := rows.Scan(&t.PatientID, &t.StudyID, &t.Treatment, &t.Start, &t.Stop); err != nil {
			return nil, err
		}
		items = append(items, &t)
	}
	return items, rows.Err()
}

const sampleEventSQL = `
	SELECT p.stable_id, s.stable_id, cs.cancer_study_identifier, ce.start_date
	FROM clinical_event ce
	JOIN clinical_event_data ced ON ced.clinical_event_id = ce.clinical_event_id
	JOIN patient p ON p.internal_id = ce.patient_id
	JOIN sample s ON s.patient_id = p.internal_id AND s.stable_id = ced.value
	JOIN cancer_study cs ON cs.cancer_study_id = p.cancer_study_id
	JOIN unnest($1::text[], $2::text[]) AS scope(study_id, sample_id)
		ON scope.study_id = cs.cancer_study_identifier AND scope.sample_id = s.stable_id
	WHERE UPPER(ce.event_type) IN ('SPECIMEN', 'SAMPLE ACQUISITION')
		AND UPPER(ced.key) = 'SAMPLE_ID'`

func (r *treatmentRepoPG) ListSampleEvents(ctx context.Context, scope []SampleKey) ([]*ClinicalEventSample, error) {
	studies := make([]string, len(scope))
	samples := make([]string, len(scope))
	for i, k := range scope {
		studies[i] = k.StudyID
		samples[i] = k.SampleID
	}
	rows, err := r.q.Query(ctx, sampleEventSQL, studies, samples)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*ClinicalEventSample, error) {
		var s ClinicalEventSample
		err := row.Scan(&s.PatientID, &s.SampleID, &s.StudyID, &s.TimeTaken)
		return &s, err
	})
}

func (r *treatmentRepoPG) ListTreatmentNames(ctx context.Context, studyIDs []string) ([]string, error) {
	rows, err := r.q.Query(ctx, `
		SELECT DISTINCT ced.value
		FROM clinical_event ce
		JOIN clinical_event_data ced ON ced.clinical_event_id = ce.clinical_event_id
		JOIN patient p ON p.internal_id = ce.patient_id
		JOIN cancer_study cs ON cs.cancer_study_id = p.cancer_study_id
		WHERE UPPER(ce.event_type) = 'TREATMENT'
			AND UPPER(ced.key) = 'AGENT'
			AND cs.cancer_study_identifier = ANY($1)
		ORDER BY ced.value`, studyIDs)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}
