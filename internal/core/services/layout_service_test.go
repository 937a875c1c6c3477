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
)

// --- Mock LayoutRepository ---
type MockLayoutRepository struct {
	mock.Mock
}

func (m *MockLayoutRepository) SaveLayout(ctx context.Context, layout domain.LayoutDescriptor) error {
	args := m.Called(ctx, layout)
	return args.Error(0)
}

func (m *MockLayoutRepository) GetLayout(ctx context.Context) (*domain.LayoutDescriptor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LayoutDescriptor), args.Error(1)
}

// --- Test Suite ---
type LayoutServiceTestSuite struct {
	suite.Suite
	mockRepo *MockLayoutRepository
	service  portssvc.LayoutSvcFacade
}

func (suite *LayoutServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockLayoutRepository)
	suite.service = services.NewLayoutService(suite.mockRepo)
}

func (suite *LayoutServiceTestSuite) expectSave() {
	suite.mockRepo.On("SaveLayout", mock.Anything, mock.AnythingOfType("domain.LayoutDescriptor")).Return(nil).Once()
}

// --- Test Cases ---

func (suite *LayoutServiceTestSuite) TestInfer_HeaderedCommaSample() {
	sample := []byte("Date,Account,Reference,Description,Amount,Tax Type,Tax Amount\r\n" +
		"2025-05-15,8400000,CB20250515,CASH takings,250.00,0,0.00\r\n" +
		"2025-05-15,1000000,CB20250515,GOLF revenue,-217.39,1,-32.61\r\n")
	suite.expectSave()

	layout, err := suite.service.InferLayout(context.Background(), "sample.csv", sample, "user-1")

	suite.Require().NoError(err)
	suite.Equal(",", layout.Delimiter)
	suite.True(layout.HasHeader)
	suite.Equal([]string{"Date", "Account", "Reference", "Description", "Amount", "Tax Type", "Tax Amount"}, layout.Columns)
	suite.Equal(0, layout.Roles[domain.RoleDate])
	suite.Equal(1, layout.Roles[domain.RoleAccount])
	suite.Equal(2, layout.Roles[domain.RoleReference])
	suite.Equal(3, layout.Roles[domain.RoleDescription])
	suite.Equal(4, layout.Roles[domain.RoleAmount])
	suite.Equal(5, layout.Roles[domain.RoleTaxFlag])
	suite.Equal(6, layout.Roles[domain.RoleTaxAmount])
	suite.Equal("2006-01-02", layout.DateFormat)
	suite.True(layout.AccountDigitsOnly)
	suite.Equal("sample.csv", layout.SourceFilename)
	suite.Equal("user-1", layout.UploadedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LayoutServiceTestSuite) TestInfer_SignConventionFromTaxFlaggedRow() {
	// flagged row (tax type 1) carries a negative amount, so credits are
	// negative and the book is debit-positive
	sample := []byte("Date,Account,Reference,Description,Amount,Tax Type,Tax Amount\n" +
		"15/05/2025,8400000,CB,CASH takings,250.00,0,0.00\n" +
		"15/05/2025,1000000,CB,GOLF revenue,-217.39,1,-32.61\n")
	suite.expectSave()

	layout, err := suite.service.InferLayout(context.Background(), "s.csv", sample, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.DebitPositive, layout.Sign)
	suite.Equal("02/01/2006", layout.DateFormat)
}

func (suite *LayoutServiceTestSuite) TestInfer_DebitNegativeSample() {
	sample := []byte("Date,Account,Reference,Description,Amount,Tax Type,Tax Amount\n" +
		"15/05/2025,8400000,CB,CASH takings,-250.00,0,0.00\n" +
		"15/05/2025,1000000,CB,GOLF revenue,217.39,1,32.61\n")
	suite.expectSave()

	layout, err := suite.service.InferLayout(context.Background(), "s.csv", sample, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.DebitNegative, layout.Sign)
}

func (suite *LayoutServiceTestSuite) TestInfer_HeaderlessPipeSample() {
	// batch, date, journal, account, description, reference, amount
	sample := []byte("GLJ|15/05/2025|14|8400000|CASH takings|CB20250515|250.00\n" +
		"GLJ|15/05/2025|14|1000000|GOLF revenue|CB20250515|-217.39\n")
	suite.expectSave()

	layout, err := suite.service.InferLayout(context.Background(), "s.txt", sample, "user-1")

	suite.Require().NoError(err)
	suite.Equal("|", layout.Delimiter)
	suite.False(layout.HasHeader)
	suite.Equal([]string{"col_0", "col_1", "col_2", "col_3", "col_4", "col_5", "col_6"}, layout.Columns)
	suite.Equal(1, layout.Roles[domain.RoleDate])
	suite.Equal(3, layout.Roles[domain.RoleAccount])
	suite.Equal(6, layout.Roles[domain.RoleAmount])
	suite.Equal("02/01/2006", layout.DateFormat)
	suite.Equal([]string{"GLJ", "15/05/2025", "14", "8400000", "CASH takings", "CB20250515", "250.00"}, layout.TemplateRow)
}

func (suite *LayoutServiceTestSuite) TestInfer_SemicolonAndTwoDigitYear() {
	sample := []byte("GLJ;15/05/25;14;8400000;CASH takings;CB;250.00\n" +
		"GLJ;15/05/25;14;1000000;GOLF revenue;CB;-217.39\n")
	suite.expectSave()

	layout, err := suite.service.InferLayout(context.Background(), "s.csv", sample, "user-1")

	suite.Require().NoError(err)
	suite.Equal(";", layout.Delimiter)
	suite.Equal("02/01/06", layout.DateFormat)
}

func (suite *LayoutServiceTestSuite) TestInfer_EmptySampleRejected() {
	_, err := suite.service.InferLayout(context.Background(), "empty.csv", []byte("  \n\n"), "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveLayout")
}

func (suite *LayoutServiceTestSuite) TestInfer_UnusableSampleRejectedWithDiagnostics() {
	// delimited, but nothing date- or account-shaped anywhere
	sample := []byte("alpha,beta\ngamma,delta\n")

	_, err := suite.service.InferLayout(context.Background(), "bad.csv", sample, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveLayout")
}

func (suite *LayoutServiceTestSuite) TestGetLayout_PassesThrough() {
	expected := &domain.LayoutDescriptor{LayoutID: "l1"}
	suite.mockRepo.On("GetLayout", mock.Anything).Return(expected, nil).Once()

	layout, err := suite.service.GetLayout(context.Background())

	suite.Require().NoError(err)
	suite.Equal(expected, layout)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestLayoutServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LayoutServiceTestSuite))
}
