package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bitary-listing-service/internal/domain"
	"bitary-listing-service/internal/listing"
	"bitary-listing-service/internal/store"
)

func clinicSnapshot() []domain.Clinic {
	return []domain.Clinic{
		{ID: 1, Name: "Pet Care", Rating: 4.8, Address: domain.Address{City: "Cairo", Street: "Nile St"}, Status: domain.ClinicActive},
		{ID: 2, Name: "Vet Plus", Rating: 4.2, Address: domain.Address{City: "Alexandria", Street: "Corniche Rd"}, Status: domain.ClinicActive},
		{ID: 3, Name: "Animal Clinic", Rating: 4.9, Address: domain.Address{City: "Giza", Street: "Pyramids Rd"}, Status: domain.ClinicActive},
	}
}

func TestClinicService_Browse_PremiumByRating(t *testing.T) {
	clinics := new(MockClinicStorer)
	clinics.On("ListClinics", mock.Anything, store.ListClinicsParams{ActiveOnly: true}).Return(clinicSnapshot(), nil).Once()
	svc := NewClinicService(clinics, listing.NewClinicsPipeline(), true, nil)

	page, err := svc.Browse(context.Background(), ClinicQuery{Tag: "premium", Sort: "rating"})

	require.NoError(t, err)
	require.Len(t, page.Clinics, 2)
	assert.Equal(t, "Animal Clinic", page.Clinics[0].Name)
	assert.Equal(t, "Pet Care", page.Clinics[1].Name)
	assert.Equal(t, 2, page.Count)
	assert.Equal(t, "2 Clinics Found", page.Summary)

	clinics.AssertExpectations(t)
}

func TestClinicService_Browse_Location(t *testing.T) {
	clinics := new(MockClinicStorer)
	clinics.On("ListClinics", mock.Anything, store.ListClinicsParams{}).Return(clinicSnapshot(), nil).Once()
	svc := NewClinicService(clinics, listing.NewClinicsPipeline(), false, nil)

	page, err := svc.Browse(context.Background(), ClinicQuery{Location: " ALEX "})

	require.NoError(t, err)
	require.Len(t, page.Clinics, 1)
	assert.Equal(t, "Vet Plus", page.Clinics[0].Name)
}

func TestClinicService_Browse_InvalidTag(t *testing.T) {
	clinics := new(MockClinicStorer)
	svc := NewClinicService(clinics, listing.NewClinicsPipeline(), false, nil)

	_, err := svc.Browse(context.Background(), ClinicQuery{Tag: "gold"})

	assert.ErrorIs(t, err, ErrInvalidQuery)
	clinics.AssertNotCalled(t, "ListClinics", mock.Anything, mock.Anything)
}

func TestClinicService_Browse_SortKeys(t *testing.T) {
	clinics := new(MockClinicStorer)
	clinics.On("ListClinics", mock.Anything, mock.Anything).Return(clinicSnapshot(), nil)
	svc := NewClinicService(clinics, listing.NewClinicsPipeline(), false, nil)

	_, err := svc.Browse(context.Background(), ClinicQuery{Sort: "price-asc"})
	assert.ErrorIs(t, err, ErrInvalidQuery)

	page, err := svc.Browse(context.Background(), ClinicQuery{Sort: "relevance"})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, []int64{page.Clinics[0].ID, page.Clinics[1].ID, page.Clinics[2].ID})
}

func TestClinicService_Browse_UpstreamFailure(t *testing.T) {
	clinics := new(MockClinicStorer)
	clinics.On("ListClinics", mock.Anything, mock.Anything).Return(nil, errors.New("relation does not exist")).Once()
	svc := NewClinicService(clinics, listing.NewClinicsPipeline(), false, nil)

	_, err := svc.Browse(context.Background(), ClinicQuery{})

	assert.ErrorIs(t, err, ErrUpstream)
	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.False(t, upErr.Transient)
	assert.False(t, IsRetryable(err))
}

func TestClinicService_GetClinic(t *testing.T) {
	clinics := new(MockClinicStorer)
	clinics.On("GetClinicByID", mock.Anything, int64(1)).Return(&clinicSnapshot()[0], nil).Once()
	clinics.On("GetClinicByID", mock.Anything, int64(9)).Return(nil, store.ErrClinicNotFound).Once()
	svc := NewClinicService(clinics, listing.NewClinicsPipeline(), false, nil)

	c, err := svc.GetClinic(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Pet Care", c.Name)

	_, err = svc.GetClinic(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)

	clinics.AssertExpectations(t)
}
