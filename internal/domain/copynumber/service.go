package copynumber

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/portal/portal/internal/domain/moleculardata"
	"github.com/portal/portal/internal/domain/molecularprofile"
	"github.com/portal/portal/pkg/projection"
)

var ErrMolecularProfileNotAllowed = errors.New("molecular profile is not a discrete copy number profile")

// MolecularDataService supplies raw profile values for the alterations the
// CNA event store does not hold.
type MolecularDataService interface {
	GetMolecularData(ctx context.Context, molecularProfileID, sampleListID string, entrezGeneIDs []int, proj projection.Projection) ([]*moleculardata.GeneMolecularData, error)
	FetchMolecularData(ctx context.Context, molecularProfileID string, sampleIDs []string, entrezGeneIDs []int, proj projection.Projection) ([]*moleculardata.GeneMolecularData, error)
	GetMolecularDataInMultipleMolecularProfiles(ctx context.Context, molecularProfileIDs, sampleIDs []string, entrezGeneIDs []int, proj projection.Projection) ([]*moleculardata.GeneMolecularData, error)
}

type MolecularProfileService interface {
	GetMolecularProfile(ctx context.Context, molecularProfileID string) (*molecularprofile.MolecularProfile, error)
}

type Service struct {
	repo     DiscreteCopyNumberRepository
	data     MolecularDataService
	profiles MolecularProfileService
}

func NewService(repo DiscreteCopyNumberRepository, data MolecularDataService, profiles MolecularProfileService) *Service {
	return &Service{repo: repo, data: data, profiles: profiles}
}

func (s *Service) GetDiscreteCopyNumbersInMolecularProfileBySampleListID(ctx context.Context, molecularProfileID, sampleListID string, entrezGeneIDs, alterations []int, proj projection.Projection) ([]*DiscreteCopyNumberData, error) {
	if err := s.validateMolecularProfile(ctx, molecularProfileID); err != nil {
		return nil, err
	}
	if isHomdelOrAmpOnly(alterations) {
		return s.repo.GetDiscreteCopyNumbersInMolecularProfileBySampleListID(ctx, molecularProfileID, sampleListID, entrezGeneIDs, alterations, proj)
	}
	data, err := s.data.GetMolecularData(ctx, molecularProfileID, sampleListID, entrezGeneIDs, proj)
	if err != nil {
		return nil, err
	}
	return toDiscreteCopyNumbers(data, alterations), nil
}

func (s *Service) GetMetaDiscreteCopyNumbersInMolecularProfileBySampleListID(ctx context.Context, molecularProfileID, sampleListID string, entrezGeneIDs, alterations []int) (*BaseMeta, error) {
	if err := s.validateMolecularProfile(ctx, molecularProfileID); err != nil {
		return nil, err
	}
	if isHomdelOrAmpOnly(alterations) {
		return s.repo.GetMetaDiscreteCopyNumbersInMolecularProfileBySampleListID(ctx, molecularProfileID, sampleListID, entrezGeneIDs, alterations)
	}
	data, err := s.data.GetMolecularData(ctx, molecularProfileID, sampleListID, entrezGeneIDs, projection.ID)
	if err != nil {
		return nil, err
	}
	return &BaseMeta{TotalCount: len(toDiscreteCopyNumbers(data, alterations))}, nil
}

func (s *Service) FetchDiscreteCopyNumbersInMolecularProfile(ctx context.Context, molecularProfileID string, sampleIDs []string, entrezGeneIDs, alterations []int, proj projection.Projection) ([]*DiscreteCopyNumberData, error) {
	if err := s.validateMolecularProfile(ctx, molecularProfileID); err != nil {
		return nil, err
	}
	if isHomdelOrAmpOnly(alterations) {
		return s.repo.FetchDiscreteCopyNumbersInMolecularProfile(ctx, molecularProfileID, sampleIDs, entrezGeneIDs, alterations, proj)
	}
	data, err := s.data.FetchMolecularData(ctx, molecularProfileID, sampleIDs, entrezGeneIDs, proj)
	if err != nil {
		return nil, err
	}
	return toDiscreteCopyNumbers(data, alterations), nil
}

func (s *Service) FetchMetaDiscreteCopyNumbersInMolecularProfile(ctx context.Context, molecularProfileID string, sampleIDs []string, entrezGeneIDs, alterations []int) (*BaseMeta, error) {
	if err := s.validateMolecularProfile(ctx, molecularProfileID); err != nil {
		return nil, err
	}
	if isHomdelOrAmpOnly(alterations) {
		return s.repo.FetchMetaDiscreteCopyNumbersInMolecularProfile(ctx, molecularProfileID, sampleIDs, entrezGeneIDs, alterations)
	}
	data, err := s.data.FetchMolecularData(ctx, molecularProfileID, sampleIDs, entrezGeneIDs, projection.ID)
	if err != nil {
		return nil, err
	}
	return &BaseMeta{TotalCount: len(toDiscreteCopyNumbers(data, alterations))}, nil
}

// GetDiscreteCopyNumbersInMultipleMolecularProfiles reads the CNA event store
// directly. Annotation JSON is returned as stored. molecularProfileIDs[i]
// pairs with sampleIDs[i].
func (s *Service) GetDiscreteCopyNumbersInMultipleMolecularProfiles(ctx context.Context, molecularProfileIDs, sampleIDs []string, entrezGeneIDs, alterations []int, proj projection.Projection) ([]*DiscreteCopyNumberData, error) {
	if len(molecularProfileIDs) != len(sampleIDs) {
		return nil, moleculardata.ErrProfileSampleMismatch
	}
	return s.repo.GetDiscreteCopyNumbersInMultipleMolecularProfiles(ctx, molecularProfileIDs, sampleIDs, entrezGeneIDs, alterations, proj)
}

func (s *Service) GetDiscreteCopyNumbersInMultipleMolecularProfilesByGeneQueries(ctx context.Context, molecularProfileIDs, sampleIDs []string, queries []GeneFilterQuery, proj projection.Projection) ([]*DiscreteCopyNumberData, error) {
	if len(molecularProfileIDs) != len(sampleIDs) {
		return nil, moleculardata.ErrProfileSampleMismatch
	}
	geneIDs, alterations := queryUnion(queries)
	if len(alterations) == 0 {
		return []*DiscreteCopyNumberData{}, nil
	}
	if isHomdelOrAmpOnly(alterations) {
		return s.repo.GetDiscreteCopyNumbersInMultipleMolecularProfilesByGeneQueries(ctx, molecularProfileIDs, sampleIDs, queries, proj)
	}

	data, err := s.data.GetMolecularDataInMultipleMolecularProfiles(ctx, molecularProfileIDs, sampleIDs, geneIDs, proj)
	if err != nil {
		return nil, err
	}
	byGene := queriesByGene(queries)
	result := []*DiscreteCopyNumberData{}
	for _, d := range data {
		alteration, err := strconv.Atoi(d.Value)
		if err != nil {
			continue
		}
		for _, q := range byGene[d.EntrezGeneID] {
			if q.hasAlteration(alteration) {
				result = append(result, fromMolecularData(d, alteration))
				break
			}
		}
	}
	return result, nil
}

func (s *Service) validateMolecularProfile(ctx context.Context, molecularProfileID string) error {
	profile, err := s.profiles.GetMolecularProfile(ctx, molecularProfileID)
	if err != nil {
		return err
	}
	if !profile.IsDiscreteCopyNumber() {
		return fmt.Errorf("%w: %s", ErrMolecularProfileNotAllowed, molecularProfileID)
	}
	return nil
}

// toDiscreteCopyNumbers keeps the integer values whose alteration is
// requested. Values that are not integers (NA, blanks) are dropped.
func toDiscreteCopyNumbers(data []*moleculardata.GeneMolecularData, alterations []int) []*DiscreteCopyNumberData {
	wanted := make(map[int]struct{}, len(alterations))
	for _, a := range alterations {
		wanted[a] = struct{}{}
	}
	result := []*DiscreteCopyNumberData{}
	for _, d := range data {
		alteration, err := strconv.Atoi(d.Value)
		if err != nil {
			continue
		}
		if _, ok := wanted[alteration]; !ok {
			continue
		}
		result = append(result, fromMolecularData(d, alteration))
	}
	return result
}

func fromMolecularData(d *moleculardata.GeneMolecularData, alteration int) *DiscreteCopyNumberData {
	return &DiscreteCopyNumberData{
		MolecularProfileID: d.MolecularProfileID,
		SampleID:           d.SampleID,
		PatientID:          d.PatientID,
		StudyID:            d.StudyID,
		EntrezGeneID:       d.EntrezGeneID,
		Alteration:         alteration,
		Gene:               d.Gene,
	}
}

// queryUnion returns the distinct genes and alterations across queries in
// first-seen order.
func queryUnion(queries []GeneFilterQuery) ([]int, []int) {
	var geneIDs, alterations []int
	seenGene := make(map[int]bool)
	seenAlteration := make(map[int]bool)
	for _, q := range queries {
		if !seenGene[q.EntrezGeneID] {
			seenGene[q.EntrezGeneID] = true
			geneIDs = append(geneIDs, q.EntrezGeneID)
		}
		for _, a := range q.Alterations {
			if !seenAlteration[int(a)] {
				seenAlteration[int(a)] = true
				alterations = append(alterations, int(a))
			}
		}
	}
	return geneIDs, alterations
}

func queriesByGene(queries []GeneFilterQuery) map[int][]GeneFilterQuery {
	byGene := make(map[int][]GeneFilterQuery, len(queries))
	for _, q := range queries {
		byGene[q.EntrezGeneID] = append(byGene[q.EntrezGeneID], q)
	}
	return byGene
}
