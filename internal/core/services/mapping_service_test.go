package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/greenlinkgolf/cashbook_app/internal/apperrors"
	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
	portssvc "github.com/greenlinkgolf/cashbook_app/internal/core/ports/services"
	"github.com/greenlinkgolf/cashbook_app/internal/core/services"
	"github.com/greenlinkgolf/cashbook_app/internal/dto"
)

func strPtr(s string) *string { return &s }

type MappingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockMappingRepository
	service  portssvc.MappingSvcFacade
}

func (suite *MappingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockMappingRepository)
	suite.service = services.NewMappingService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *MappingServiceTestSuite) TestUpdateMapping_PartialUpdatePreservesRest() {
	ctx := context.Background()
	suite.mockRepo.On("GetMapping", ctx).Return(testMapping(), nil).Once()

	var saved domain.MappingConfiguration
	suite.mockRepo.On("SaveMapping", ctx, mock.AnythingOfType("domain.MappingConfiguration")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.MappingConfiguration) }).
		Return(nil).Once()

	updated, err := suite.service.UpdateMapping(ctx, dto.UpdateMappingRequest{
		DebitAccounts: map[string]string{"ONLINE": "8430000"},
	}, "user-1")

	suite.Require().NoError(err)
	suite.Equal("8430000", updated.DebitAccounts[domain.MethodOnline])
	// existing entries survive the partial PUT
	suite.Equal("8400000", updated.DebitAccounts[domain.MethodCash])
	suite.Equal("2150000", updated.VATAccount)
	suite.Equal("1090000", updated.DefaultRevenueAccount)
	suite.Equal(saved, *updated)
	suite.Equal("user-1", saved.LastUpdatedBy)
	suite.False(saved.LastUpdatedAt.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *MappingServiceTestSuite) TestUpdateMapping_SanitizesGLCodes() {
	ctx := context.Background()
	suite.mockRepo.On("GetMapping", ctx).Return(testMapping(), nil).Once()
	suite.mockRepo.On("SaveMapping", ctx, mock.Anything).Return(nil).Once()

	updated, err := suite.service.UpdateMapping(ctx, dto.UpdateMappingRequest{
		VATAccount:      strPtr("2150/000"),
		RevenueAccounts: map[string]string{"COMPETITION": "1020 000"},
	}, "user-1")

	suite.Require().NoError(err)
	suite.Equal("2150000", updated.VATAccount)
	suite.Equal("1020000", updated.RevenueAccounts[domain.FeeCompetition])
}

func (suite *MappingServiceTestSuite) TestUpdateMapping_FirstSaveSetsCreatedBy() {
	ctx := context.Background()
	suite.mockRepo.On("GetMapping", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveMapping", ctx, mock.Anything).Return(nil).Once()

	updated, err := suite.service.UpdateMapping(ctx, dto.UpdateMappingRequest{
		VATAccount: strPtr("2150000"),
		TaxCode:    strPtr("1"),
	}, "user-1")

	suite.Require().NoError(err)
	suite.Equal("user-1", updated.CreatedBy)
	suite.False(updated.CreatedAt.IsZero())
	suite.Equal("2150000", updated.VATAccount)
	suite.Equal("1", updated.TaxCode)
}

func (suite *MappingServiceTestSuite) TestUpdateMapping_SignOverride() {
	ctx := context.Background()
	suite.mockRepo.On("GetMapping", ctx).Return(testMapping(), nil).Once()
	suite.mockRepo.On("SaveMapping", ctx, mock.Anything).Return(nil).Once()

	updated, err := suite.service.UpdateMapping(ctx, dto.UpdateMappingRequest{
		SignOverride: strPtr("DEBIT_NEGATIVE"),
	}, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(updated.SignOverride)
	suite.Equal(domain.DebitNegative, *updated.SignOverride)
}

func (suite *MappingServiceTestSuite) TestUpdateMapping_SaveFailurePropagates() {
	ctx := context.Background()
	suite.mockRepo.On("GetMapping", ctx).Return(testMapping(), nil).Once()
	suite.mockRepo.On("SaveMapping", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.UpdateMapping(ctx, dto.UpdateMappingRequest{TaxCode: strPtr("3")}, "user-1")

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *MappingServiceTestSuite) TestGetMapping_PassesThrough() {
	ctx := context.Background()
	expected := testMapping()
	suite.mockRepo.On("GetMapping", ctx).Return(expected, nil).Once()

	mapping, err := suite.service.GetMapping(ctx)

	suite.Require().NoError(err)
	suite.Equal(expected, mapping)
}

func TestMappingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MappingServiceTestSuite))
}
