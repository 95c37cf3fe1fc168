package moleculardata

import (
	"context"

	"github.com/portal/portal/pkg/projection"
)

type MolecularDataRepository interface {
	// GetCommaSeparatedSampleIDsOfMolecularProfile returns "" when the profile has no samples.
	GetCommaSeparatedSampleIDsOfMolecularProfile(ctx context.Context, molecularProfileID string) (string, error)
	GetSamplesByInternalIDs(ctx context.Context, internalIDs []int) ([]*Sample, error)
	GetSampleIDsInSampleList(ctx context.Context, sampleListID string) ([]string, error)
	// GetGeneMolecularAlterations returns rows for every gene when entrezGeneIDs is nil.
	GetGeneMolecularAlterations(ctx context.Context, molecularProfileID string, entrezGeneIDs []int, proj projection.Projection) ([]*GeneMolecularAlteration, error)
}
