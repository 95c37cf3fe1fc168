package moleculardata

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/portal/portal/internal/platform/db"
	"github.com/portal/portal/pkg/projection"
)

type molecularDataRepoPG struct{ q db.Queryable }

func NewMolecularDataRepoPG(q db.Queryable) MolecularDataRepository {
	return &molecularDataRepoPG{q: q}
}

func (r *molecularDataRepoPG) GetCommaSeparatedSampleIDsOfMolecularProfile(ctx context.Context, molecularProfileID string) (string, error) {
	var list string
	err := r.q.QueryRow(ctx, `
		SELECT gps.ordered_sample_list
		FROM genetic_profile_samples gps
		JOIN genetic_profile gp ON gp.genetic_profile_id = gps.genetic_profile_id
		WHERE gp.stable_id = $1`, molecularProfileID).Scan(&list)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return list, err
}

func (r *molecularDataRepoPG) GetSamplesByInternalIDs(ctx context.Context, internalIDs []int) ([]*Sample, error) {
	rows, err := r.q.Query(ctx, `
		SELECT s.internal_id, s.stable_id, p.stable_id AS patient_stable_id, cs.cancer_study_identifier
		FROM sample s
		JOIN patient p ON p.internal_id = s.patient_id
		JOIN cancer_study cs ON cs.cancer_study_id = p.cancer_study_id
		WHERE s.internal_id = ANY($1::integer[])`, internalIDs)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[Sample])
}

func (r *molecularDataRepoPG) GetSampleIDsInSampleList(ctx context.Context, sampleListID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `
		SELECT s.stable_id
		FROM sample_list_list sll
		JOIN sample_list sl ON sl.list_id = sll.list_id
		JOIN sample s ON s.internal_id = sll.sample_id
		WHERE sl.stable_id = $1
		ORDER BY s.internal_id`, sampleListID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (r *molecularDataRepoPG) GetGeneMolecularAlterations(ctx context.Context, molecularProfileID string, entrezGeneIDs []int, proj projection.Projection) ([]*GeneMolecularAlteration, error) {
	rows, err := r.q.Query(ctx, `
		SELECT ga.entrez_gene_id, ga."values", g.hugo_gene_symbol, g.type
		FROM genetic_alteration ga
		JOIN genetic_profile gp ON gp.genetic_profile_id = ga.genetic_profile_id
		JOIN gene g ON g.entrez_gene_id = ga.entrez_gene_id
		WHERE gp.stable_id = $1
			AND ($2::integer[] IS NULL OR ga.entrez_gene_id = ANY($2::integer[]))
		ORDER BY ga.entrez_gene_id`, molecularProfileID, entrezGeneIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*GeneMolecularAlteration
	for rows.Next() {
		var a GeneMolecularAlteration
		var g Gene
		var geneType *string
		if err := rows.Scan(&a.EntrezGeneID, &a.Values, &g.HugoGeneSymbol, &geneType); err != nil {
			return nil, err
		}
		if proj == projection.Detailed {
			g.EntrezGeneID = a.EntrezGeneID
			if geneType != nil {
				g.Type = *geneType
			}
			a.Gene = &g
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}
