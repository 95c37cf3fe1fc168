package molecularprofile

import (
	"context"
	"errors"
	"fmt"
)

var ErrMolecularProfileNotFound = errors.New("molecular profile not found")

type Service struct {
	repo MolecularProfileRepository
}

func NewService(repo MolecularProfileRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetMolecularProfile(ctx context.Context, molecularProfileID string) (*MolecularProfile, error) {
	if molecularProfileID == "" {
		return nil, fmt.Errorf("%w: empty id", ErrMolecularProfileNotFound)
	}
	m, err := s.repo.GetByStableID(ctx, molecularProfileID)
	if err != nil {
		if errors.Is(err, ErrMolecularProfileNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrMolecularProfileNotFound, molecularProfileID)
		}
		return nil, err
	}
	return m, nil
}

func (s *Service) ListMolecularProfiles(ctx context.Context, studyID string, limit, offset int) ([]*MolecularProfile, int, error) {
	return s.repo.List(ctx, studyID, limit, offset)
}
