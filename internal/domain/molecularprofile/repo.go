package molecularprofile

import "context"

type MolecularProfileRepository interface {
	GetByStableID(ctx context.Context, molecularProfileID string) (*MolecularProfile, error)
	List(ctx context.Context, studyID string, limit, offset int) ([]*MolecularProfile, int, error)
}
