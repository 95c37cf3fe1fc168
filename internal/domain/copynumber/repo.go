package copynumber

import (
	"context"

	"github.com/portal/portal/pkg/projection"
)

// DiscreteCopyNumberRepository reads the CNA event store, which holds only
// HOMDEL and AMP events together with their driver annotations.
type DiscreteCopyNumberRepository interface {
	GetDiscreteCopyNumbersInMolecularProfileBySampleListID(ctx context.Context, molecularProfileID, sampleListID string, entrezGeneIDs, alterations []int, proj projection.Projection) ([]*DiscreteCopyNumberData, error)
	GetMetaDiscreteCopyNumbersInMolecularProfileBySampleListID(ctx context.Context, molecularProfileID, sampleListID string, entrezGeneIDs, alterations []int) (*BaseMeta, error)
	FetchDiscreteCopyNumbersInMolecularProfile(ctx context.Context, molecularProfileID string, sampleIDs []string, entrezGeneIDs, alterations []int, proj projection.Projection) ([]*DiscreteCopyNumberData, error)
	FetchMetaDiscreteCopyNumbersInMolecularProfile(ctx context.Context, molecularProfileID string, sampleIDs []string, entrezGeneIDs, alterations []int) (*BaseMeta, error)
	GetDiscreteCopyNumbersInMultipleMolecularProfiles(ctx context.Context, molecularProfileIDs, sampleIDs []string, entrezGeneIDs, alterations []int, proj projection.Projection) ([]*DiscreteCopyNumberData, error)
	GetDiscreteCopyNumbersInMultipleMolecularProfilesByGeneQueries(ctx context.Context, molecularProfileIDs, sampleIDs []string, queries []GeneFilterQuery, proj projection.Projection) ([]*DiscreteCopyNumberData, error)
}
