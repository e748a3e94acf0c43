package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandoverts/brandoverts-api/internal/api/dto"
	apperrors "github.com/brandoverts/brandoverts-api/pkg/util"
)

func TestEnquiryCreateStoresSubmission(t *testing.T) {
	repo := &fakeEnquiryRepo{}
	svc := NewEnquiryService(repo)

	resp, err := svc.Create(context.Background(), dto.EnquiryRequest{
		Name:    "Jordan",
		Email:   "jordan@example.com",
		Service: "branding",
		Message: "Tell me more",
		Source:  "services",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "services", resp.Source)
	require.Len(t, repo.enquiries, 1)
}

func TestEnquiryCreateRejectsUnknownSource(t *testing.T) {
	svc := NewEnquiryService(&fakeEnquiryRepo{})

	_, err := svc.Create(context.Background(), dto.EnquiryRequest{
		Name:    "Jordan",
		Email:   "jordan@example.com",
		Message: "Tell me more",
		Source:  "checkout",
	})
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Equal(t, "Invalid enquiry source", domainErr.Message)
}
