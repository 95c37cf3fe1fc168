package moleculardata

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/portal/portal/pkg/projection"
)

const maxConcurrentProfiles = 4

var ErrProfileSampleMismatch = errors.New("molecular profile and sample id lists differ in length")

type Service struct {
	repo MolecularDataRepository
}

func NewService(repo MolecularDataRepository) *Service {
	return &Service{repo: repo}
}

// GetMolecularData returns the profile's values for the samples of a sample list.
func (s *Service) GetMolecularData(ctx context.Context, molecularProfileID, sampleListID string, entrezGeneIDs []int, proj projection.Projection) ([]*GeneMolecularData, error) {
	sampleIDs, err := s.repo.GetSampleIDsInSampleList(ctx, sampleListID)
	if err != nil {
		return nil, fmt.Errorf("get samples of list %s: %w", sampleListID, err)
	}
	if len(sampleIDs) == 0 {
		return []*GeneMolecularData{}, nil
	}
	return s.FetchMolecularData(ctx, molecularProfileID, sampleIDs, entrezGeneIDs, proj)
}

// FetchMolecularData returns one entry per (sample, gene) for the requested
// samples that belong to the profile. A nil sampleIDs selects every sample
// of the profile. Entries follow the profile's sample order, genes inner.
func (s *Service) FetchMolecularData(ctx context.Context, molecularProfileID string, sampleIDs []string, entrezGeneIDs []int, proj projection.Projection) ([]*GeneMolecularData, error) {
	list, err := s.repo.GetCommaSeparatedSampleIDsOfMolecularProfile(ctx, molecularProfileID)
	if err != nil {
		return nil, fmt.Errorf("get samples of profile %s: %w", molecularProfileID, err)
	}
	internalIDs, err := parseInternalIDs(list)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", molecularProfileID, err)
	}
	result := []*GeneMolecularData{}
	if len(internalIDs) == 0 {
		return result, nil
	}

	samples, err := s.repo.GetSamplesByInternalIDs(ctx, internalIDs)
	if err != nil {
		return nil, fmt.Errorf("get samples: %w", err)
	}
	byInternalID := make(map[int]*Sample, len(samples))
	for _, sm := range samples {
		byInternalID[sm.InternalID] = sm
	}

	var wanted map[string]struct{}
	if sampleIDs != nil {
		wanted = make(map[string]struct{}, len(sampleIDs))
		for _, id := range sampleIDs {
			wanted[id] = struct{}{}
		}
	}

	// Column index into the values of each alteration row.
	type column struct {
		index  int
		sample *Sample
	}
	var columns []column
	for i, id := range internalIDs {
		sm, ok := byInternalID[id]
		if !ok {
			continue
		}
		if wanted != nil {
			if _, ok := wanted[sm.SampleID]; !ok {
				continue
			}
		}
		columns = append(columns, column{index: i, sample: sm})
	}
	if len(columns) == 0 {
		return result, nil
	}

	alterations, err := s.repo.GetGeneMolecularAlterations(ctx, molecularProfileID, entrezGeneIDs, proj)
	if err != nil {
		return nil, fmt.Errorf("get alterations of profile %s: %w", molecularProfileID, err)
	}
	values := make([][]string, len(alterations))
	for i, a := range alterations {
		values[i] = strings.Split(a.Values, ",")
	}

	for _, col := range columns {
		for i, a := range alterations {
			if col.index >= len(values[i]) {
				continue
			}
			d := &GeneMolecularData{
				MolecularProfileID: molecularProfileID,
				SampleID:           col.sample.SampleID,
				PatientID:          col.sample.PatientID,
				StudyID:            col.sample.StudyID,
				EntrezGeneID:       a.EntrezGeneID,
				Value:              strings.TrimSpace(values[i][col.index]),
			}
			if proj != projection.ID {
				d.Gene = a.Gene
			}
			result = append(result, d)
		}
	}
	return result, nil
}

// GetMolecularDataInMultipleMolecularProfiles pairs molecularProfileIDs[i]
// with sampleIDs[i]. Each profile is fetched once, concurrently, and results
// are concatenated in first-seen profile order.
func (s *Service) GetMolecularDataInMultipleMolecularProfiles(ctx context.Context, molecularProfileIDs, sampleIDs []string, entrezGeneIDs []int, proj projection.Projection) ([]*GeneMolecularData, error) {
	if len(molecularProfileIDs) != len(sampleIDs) {
		return nil, ErrProfileSampleMismatch
	}
	var order []string
	grouped := make(map[string][]string)
	for i, profileID := range molecularProfileIDs {
		if _, ok := grouped[profileID]; !ok {
			order = append(order, profileID)
		}
		grouped[profileID] = append(grouped[profileID], sampleIDs[i])
	}

	perProfile := make([][]*GeneMolecularData, len(order))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentProfiles)
	for i, profileID := range order {
		i, profileID := i, profileID
		g.Go(func() error {
			data, err := s.FetchMolecularData(gctx, profileID, grouped[profileID], entrezGeneIDs, proj)
			if err != nil {
				return err
			}
			perProfile[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := []*GeneMolecularData{}
	for _, data := range perProfile {
		result = append(result, data...)
	}
	return result, nil
}

func parseInternalIDs(list string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid sample id %q in ordered sample list", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
