package molecularprofile

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/portal/portal/internal/platform/db"
)

type molecularProfileRepoPG struct{ q db.Queryable }

func NewMolecularProfileRepoPG(q db.Queryable) MolecularProfileRepository {
	return &molecularProfileRepoPG{q: q}
}

const mpCols = `gp.genetic_profile_id, gp.stable_id, cs.cancer_study_identifier, gp.genetic_alteration_type,
	gp.datatype, gp.name, gp.description, gp.show_profile_in_analysis_tab`

const mpFrom = ` FROM genetic_profile gp JOIN cancer_study cs ON cs.cancer_study_id = gp.cancer_study_id`

func (r *molecularProfileRepoPG) scanRow(row pgx.Row) (*MolecularProfile, error) {
	var m MolecularProfile
	err := row.Scan(&m.InternalID, &m.MolecularProfileID, &m.StudyID, &m.MolecularAlterationType,
		&m.Datatype, &m.Name, &m.Description, &m.ShowProfileInAnalysisTab)
	return &m, err
}

func (r *molecularProfileRepoPG) GetByStableID(ctx context.Context, molecularProfileID string) (*MolecularProfile, error) {
	m, err := r.scanRow(r.q.QueryRow(ctx, `SELECT `+mpCols+mpFrom+` WHERE gp.stable_id = $1`, molecularProfileID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMolecularProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *molecularProfileRepoPG) List(ctx context.Context, studyID string, limit, offset int) ([]*MolecularProfile, int, error) {
	where := ` WHERE ($1 = '' OR cs.cancer_study_identifier = $1)`
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+mpFrom+where, studyID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.q.Query(ctx, `SELECT `+mpCols+mpFrom+where+` ORDER BY gp.stable_id LIMIT $2 OFFSET $3`, studyID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*MolecularProfile
	for rows.Next() {
		m, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, rows.Err()
}
