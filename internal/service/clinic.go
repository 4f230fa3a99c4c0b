package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"bitary-listing-service/internal/domain"
	"bitary-listing-service/internal/listing"
	"bitary-listing-service/internal/store"
)

// ClinicQuery carries the clinics listing controls.
type ClinicQuery struct {
	Search   string
	Location string
	Tag      string
	Sort     string
}

// ClinicPage is the clinics listing result.
type ClinicPage struct {
	Clinics []domain.Clinic
	Count   int
	Summary string
}

type ClinicService struct {
	clinics    store.ClinicStorer
	pipeline   *listing.Pipeline[domain.Clinic]
	activeOnly bool
	logger     *zap.Logger
}

func NewClinicService(clinics store.ClinicStorer, pipeline *listing.Pipeline[domain.Clinic], activeOnly bool, logger *zap.Logger) *ClinicService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClinicService{clinics: clinics, pipeline: pipeline, activeOnly: activeOnly, logger: logger}
}

// Browse returns the clinics matching q, ordered by its sort key.
func (s *ClinicService) Browse(ctx context.Context, q ClinicQuery) (*ClinicPage, error) {
	sortKey, err := s.pipeline.ParseSortKey(q.Sort)
	if err != nil {
		return nil, invalid(err)
	}
	tag, err := listing.ParseTag(q.Tag)
	if err != nil {
		return nil, invalid(err)
	}

	clinics, err := s.clinics.ListClinics(ctx, store.ListClinicsParams{ActiveOnly: s.activeOnly})
	if err != nil {
		s.logger.Error("clinics snapshot fetch failed", zap.Error(err))
		return nil, upstream("list clinics", err)
	}

	state := listing.NewViewState(s.pipeline, clinics)
	state.SetSearch(q.Search)
	state.SetLocation(q.Location)
	state.SetTag(tag)
	state.SetSortKey(sortKey)
	view := state.View()

	return &ClinicPage{
		Clinics: view.Items,
		Count:   view.Matched,
		Summary: listing.ClinicsFoundLabel(view.Matched),
	}, nil
}

func (s *ClinicService) GetClinic(ctx context.Context, id int64) (*domain.Clinic, error) {
	c, err := s.clinics.GetClinicByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrClinicNotFound) {
			return nil, errors.Join(ErrNotFound, err)
		}
		s.logger.Error("clinic fetch failed", zap.Int64("clinicID", id), zap.Error(err))
		return nil, upstream("get clinic", err)
	}
	return c, nil
}
