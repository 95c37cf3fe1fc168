package copynumber

import (
	"context"
	"fmt"

	"github.com/portal/portal/internal/domain/moleculardata"
	"github.com/portal/portal/internal/platform/db"
	"github.com/portal/portal/pkg/projection"
)

type discreteCopyNumberRepoPG struct{ q db.Queryable }

func NewDiscreteCopyNumberRepoPG(q db.Queryable) DiscreteCopyNumberRepository {
	return &discreteCopyNumberRepoPG{q: q}
}

const cnaFrom = `
	FROM sample_cna_event sce
	JOIN cna_event ce ON ce.cna_event_id = sce.cna_event_id
	JOIN genetic_profile gp ON gp.genetic_profile_id = sce.genetic_profile_id
	JOIN sample s ON s.internal_id = sce.sample_id
	JOIN patient p ON p.internal_id = s.patient_id
	JOIN cancer_study cs ON cs.cancer_study_id = p.cancer_study_id
	JOIN gene g ON g.entrez_gene_id = ce.entrez_gene_id
	LEFT JOIN alteration_driver_annotation ada
		ON ada.alteration_event_id = sce.cna_event_id
		AND ada.genetic_profile_id = sce.genetic_profile_id
		AND ada.sample_id = sce.sample_id
	WHERE 1=1`

const cnaCols = `gp.stable_id, s.stable_id, p.stable_id, cs.cancer_study_identifier,
	ce.entrez_gene_id, ce.alteration,
	ada.driver_filter, ada.driver_filter_annotation, ada.driver_tiers_filter, ada.driver_tiers_filter_annotation,
	sce.annotation_json::text, g.hugo_gene_symbol, g.type`

// cnaQuery narrows the CNA event store. When pairProfiles is set,
// profileIDs[i] is matched with sampleIDs[i].
type cnaQuery struct {
	profileIDs   []string
	sampleIDs    []string
	pairProfiles bool
	sampleListID string
	geneIDs      []int
	alterations  []int
}

func (cq cnaQuery) where() (string, []interface{}) {
	clause := ""
	var args []interface{}
	idx := 1
	switch {
	case cq.pairProfiles:
		clause += fmt.Sprintf(` AND (gp.stable_id, s.stable_id) IN (SELECT * FROM unnest($%d::text[], $%d::text[]))`, idx, idx+1)
		args = append(args, cq.profileIDs, cq.sampleIDs)
		idx += 2
	default:
		clause += fmt.Sprintf(` AND gp.stable_id = ANY($%d::text[])`, idx)
		args = append(args, cq.profileIDs)
		idx++
		if cq.sampleIDs != nil {
			clause += fmt.Sprintf(` AND s.stable_id = ANY($%d::text[])`, idx)
			args = append(args, cq.sampleIDs)
			idx++
		}
	}
	if cq.sampleListID != "" {
		clause += fmt.Sprintf(` AND sce.sample_id IN (
			SELECT sll.sample_id FROM sample_list_list sll
			JOIN sample_list sl ON sl.list_id = sll.list_id
			WHERE sl.stable_id = $%d)`, idx)
		args = append(args, cq.sampleListID)
		idx++
	}
	if cq.geneIDs != nil {
		clause += fmt.Sprintf(` AND ce.entrez_gene_id = ANY($%d::integer[])`, idx)
		args = append(args, cq.geneIDs)
		idx++
	}
	if cq.alterations != nil {
		clause += fmt.Sprintf(` AND ce.alteration = ANY($%d::integer[])`, idx)
		args = append(args, cq.alterations)
	}
	return clause, args
}

func (r *discreteCopyNumberRepoPG) list(ctx context.Context, cq cnaQuery, proj projection.Projection) ([]*DiscreteCopyNumberData, error) {
	clause, args := cq.where()
	rows, err := r.q.Query(ctx, `SELECT `+cnaCols+cnaFrom+clause+` ORDER BY gp.stable_id, s.internal_id, ce.entrez_gene_id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*DiscreteCopyNumberData
	for rows.Next() {
		var d DiscreteCopyNumberData
		var g moleculardata.Gene
		var geneType *string
		if err := rows.Scan(&d.MolecularProfileID, &d.SampleID, &d.PatientID, &d.StudyID,
			&d.EntrezGeneID, &d.Alteration,
			&d.DriverFilter, &d.DriverFilterAnnotation, &d.DriverTiersFilter, &d.DriverTiersFilterAnnotation,
			&d.AnnotationJSON, &g.HugoGeneSymbol, &geneType); err != nil {
			return nil, err
		}
		if proj == projection.Detailed {
			g.EntrezGeneID = d.EntrezGeneID
			if geneType != nil {
				g.Type = *geneType
			}
			d.Gene = &g
		}
		items = append(items, &d)
	}
	return items, rows.Err()
}

func (r *discreteCopyNumberRepoPG) count(ctx context.Context, cq cnaQuery) (*BaseMeta, error) {
	clause, args := cq.where()
	var meta BaseMeta
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+cnaFrom+clause, args...).Scan(&meta.TotalCount); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (r *discreteCopyNumberRepoPG) GetDiscreteCopyNumbersInMolecularProfileBySampleListID(ctx context.Context, molecularProfileID, sampleListID string, entrezGeneIDs, alterations []int, proj projection.Projection) ([]*DiscreteCopyNumberData, error) {
	return r.list(ctx, cnaQuery{profileIDs: []string{molecularProfileID}, sampleListID: sampleListID, geneIDs: entrezGeneIDs, alterations: alterations}, proj)
}

func (r *discreteCopyNumberRepoPG) GetMetaDiscreteCopyNumbersInMolecularProfileBySampleListID(ctx context.Context, molecularProfileID, sampleListID string, entrezGeneIDs, alterations []int) (*BaseMeta, error) {
	return r.count(ctx, cnaQuery{profileIDs: []string{molecularProfileID}, sampleListID: sampleListID, geneIDs: entrezGeneIDs, alterations: alterations})
}

func (r *discreteCopyNumberRepoPG) FetchDiscreteCopyNumbersInMolecularProfile(ctx context.Context, molecularProfileID string, sampleIDs []string, entrezGeneIDs, alterations []int, proj projection.Projection) ([]*DiscreteCopyNumberData, error) {
	return r.list(ctx, cnaQuery{profileIDs: []string{molecularProfileID}, sampleIDs: sampleIDs, geneIDs: entrezGeneIDs, alterations: alterations}, proj)
}

func (r *discreteCopyNumberRepoPG) FetchMetaDiscreteCopyNumbersInMolecularProfile(ctx context.Context, molecularProfileID string, sampleIDs []string, entrezGeneIDs, alterations []int) (*BaseMeta, error) {
	return r.count(ctx, cnaQuery{profileIDs: []string{molecularProfileID}, sampleIDs: sampleIDs, geneIDs: entrezGeneIDs, alterations: alterations})
}

func (r *discreteCopyNumberRepoPG) GetDiscreteCopyNumbersInMultipleMolecularProfiles(ctx context.Context, molecularProfileIDs, sampleIDs []string, entrezGeneIDs, alterations []int, proj projection.Projection) ([]*DiscreteCopyNumberData, error) {
	return r.list(ctx, cnaQuery{profileIDs: molecularProfileIDs, sampleIDs: sampleIDs, pairProfiles: true, geneIDs: entrezGeneIDs, alterations: alterations}, proj)
}

// GetDiscreteCopyNumbersInMultipleMolecularProfilesByGeneQueries loads the
// union of the queried genes and alterations, then keeps the rows some query
// for that gene admits.
func (r *discreteCopyNumberRepoPG) GetDiscreteCopyNumbersInMultipleMolecularProfilesByGeneQueries(ctx context.Context, molecularProfileIDs, sampleIDs []string, queries []GeneFilterQuery, proj projection.Projection) ([]*DiscreteCopyNumberData, error) {
	geneIDs, alterations := queryUnion(queries)
	rows, err := r.list(ctx, cnaQuery{profileIDs: molecularProfileIDs, sampleIDs: sampleIDs, pairProfiles: true, geneIDs: geneIDs, alterations: alterations}, proj)
	if err != nil {
		return nil, err
	}
	byGene := queriesByGene(queries)
	var items []*DiscreteCopyNumberData
	for _, d := range rows {
		for _, q := range byGene[d.EntrezGeneID] {
			if q.hasAlteration(d.Alteration) && q.admitsDriver(d) {
				items = append(items, d)
				break
			}
		}
	}
	return items, nil
}
