package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/greenlinkgolf/cashbook_app/internal/apperrors"
	"github.com/greenlinkgolf/cashbook_app/internal/core/domain"
	portssvc "github.com/greenlinkgolf/cashbook_app/internal/core/ports/services"
	"github.com/greenlinkgolf/cashbook_app/internal/core/services"
)

// --- Mock DayCloseRepository ---
type MockDayCloseRepository struct {
	mock.Mock
}

func (m *MockDayCloseRepository) AppendEvent(ctx context.Context, event domain.DayCloseEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockDayCloseRepository) ListEventsByDate(ctx context.Context, date time.Time) ([]domain.DayCloseEvent, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DayCloseEvent), args.Error(1)
}

// --- Test Suite ---
type DayCloseServiceTestSuite struct {
	suite.Suite
	mockRepo   *MockDayCloseRepository
	mockLedger *MockLedgerRepository
	service    portssvc.DayCloseSvcFacade
}

func (suite *DayCloseServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockDayCloseRepository)
	suite.mockLedger = new(MockLedgerRepository)
	suite.service = services.NewDayCloseService(suite.mockRepo, suite.mockLedger)
}

func closedEvent(at time.Time, actor string, autoPush bool) domain.DayCloseEvent {
	return domain.DayCloseEvent{
		EventID:    "ev-closed",
		CloseDate:  testDate,
		Action:     domain.ActionClosed,
		ActorID:    actor,
		OccurredAt: at,
		AutoPush:   autoPush,
	}
}

// --- Test Cases ---

func (suite *DayCloseServiceTestSuite) TestClose_OpenDayAppendsEvent() {
	ctx := context.Background()
	suite.mockRepo.On("ListEventsByDate", ctx, testDate).Return([]domain.DayCloseEvent{}, nil).Once()

	var appended domain.DayCloseEvent
	suite.mockRepo.On("AppendEvent", ctx, mock.AnythingOfType("domain.DayCloseEvent")).
		Run(func(args mock.Arguments) { appended = args.Get(1).(domain.DayCloseEvent) }).
		Return(nil).Once()
	suite.mockRepo.On("ListEventsByDate", ctx, testDate).
		Return([]domain.DayCloseEvent{closedEvent(time.Now().UTC(), "op-1", true)}, nil).Once()

	view, err := suite.service.Close(ctx, testDate, "op-1", true)

	suite.Require().NoError(err)
	suite.Equal(domain.ActionClosed, appended.Action)
	suite.Equal("op-1", appended.ActorID)
	suite.True(appended.AutoPush)
	suite.NotEmpty(appended.EventID)
	suite.Equal(domain.DayCloseClosed, view.Status)
	suite.Equal("op-1", view.ClosedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DayCloseServiceTestSuite) TestClose_AlreadyClosedConflicts() {
	ctx := context.Background()
	history := []domain.DayCloseEvent{
		closedEvent(testDate.Add(18*time.Hour), "op-1", false),
		{
			EventID: "ev-exported", CloseDate: testDate, Action: domain.ActionExported,
			ActorID: "op-1", OccurredAt: testDate.Add(19 * time.Hour),
			BatchRef: "GL-20250601-abcd1234", Filename: "PASTEL_JOURNAL_GLGC_20250601_abcd1234.csv",
		},
	}
	suite.mockRepo.On("ListEventsByDate", ctx, testDate).Return(history, nil).Once()

	_, err := suite.service.Close(ctx, testDate, "op-2", false)

	var conflictErr *apperrors.ConflictError
	suite.Require().ErrorAs(err, &conflictErr)
	suite.Equal("GL-20250601-abcd1234", conflictErr.BatchRef)
	suite.mockRepo.AssertNotCalled(suite.T(), "AppendEvent")
}

func (suite *DayCloseServiceTestSuite) TestReopen_ClearsExportFlagsAndAppends() {
	ctx := context.Background()
	suite.mockRepo.On("ListEventsByDate", ctx, testDate).
		Return([]domain.DayCloseEvent{closedEvent(testDate.Add(18*time.Hour), "op-1", false)}, nil).Once()
	suite.mockLedger.On("ClearExported", ctx, testDate).Return(int64(3), nil).Once()

	var appended domain.DayCloseEvent
	suite.mockRepo.On("AppendEvent", ctx, mock.AnythingOfType("domain.DayCloseEvent")).
		Run(func(args mock.Arguments) { appended = args.Get(1).(domain.DayCloseEvent) }).
		Return(nil).Once()
	suite.mockRepo.On("ListEventsByDate", ctx, testDate).Return([]domain.DayCloseEvent{
		closedEvent(testDate.Add(18*time.Hour), "op-1", false),
		{EventID: "ev-reopened", CloseDate: testDate, Action: domain.ActionReopened, ActorID: "op-2", OccurredAt: testDate.Add(20 * time.Hour)},
	}, nil).Once()

	view, err := suite.service.Reopen(ctx, testDate, "op-2")

	suite.Require().NoError(err)
	suite.Equal(domain.ActionReopened, appended.Action)
	suite.Equal(domain.DayCloseReopened, view.Status)
	suite.Equal("op-2", view.ReopenedBy)
	suite.mockLedger.AssertExpectations(suite.T())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DayCloseServiceTestSuite) TestReopen_OpenDayRejected() {
	ctx := context.Background()
	suite.mockRepo.On("ListEventsByDate", ctx, testDate).Return([]domain.DayCloseEvent{}, nil).Once()

	_, err := suite.service.Reopen(ctx, testDate, "op-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedger.AssertNotCalled(suite.T(), "ClearExported")
	suite.mockRepo.AssertNotCalled(suite.T(), "AppendEvent")
}

func (suite *DayCloseServiceTestSuite) TestStatus_FoldsFullHistory() {
	ctx := context.Background()
	history := []domain.DayCloseEvent{
		closedEvent(testDate.Add(18*time.Hour), "op-1", false),
		{EventID: "e2", CloseDate: testDate, Action: domain.ActionReopened, ActorID: "op-2", OccurredAt: testDate.Add(19 * time.Hour)},
		{EventID: "e3", CloseDate: testDate, Action: domain.ActionClosed, ActorID: "op-2", OccurredAt: testDate.Add(20 * time.Hour), AutoPush: true},
		{EventID: "e4", CloseDate: testDate, Action: domain.ActionExported, ActorID: "op-2", OccurredAt: testDate.Add(21 * time.Hour), BatchRef: "GL-20250601-deadbeef", Filename: "f.csv"},
	}
	suite.mockRepo.On("ListEventsByDate", ctx, testDate).Return(history, nil).Once()

	view, err := suite.service.Status(ctx, testDate)

	suite.Require().NoError(err)
	suite.Equal(domain.DayCloseClosed, view.Status, "the latest close wins over the earlier reopen")
	suite.Equal("op-2", view.ClosedBy)
	suite.True(view.AutoPush)
	suite.Equal("GL-20250601-deadbeef", view.ExportBatchRef)
	suite.Equal("f.csv", view.ExportFilename)
	suite.Len(view.Events, 4)
}

func (suite *DayCloseServiceTestSuite) TestRecordExport_AppendsExportedEvent() {
	ctx := context.Background()
	var appended domain.DayCloseEvent
	suite.mockRepo.On("AppendEvent", ctx, mock.AnythingOfType("domain.DayCloseEvent")).
		Run(func(args mock.Arguments) { appended = args.Get(1).(domain.DayCloseEvent) }).
		Return(nil).Once()

	err := suite.service.RecordExport(ctx, testDate, "op-1", "GL-20250601-abcd1234", "file.csv")

	suite.Require().NoError(err)
	suite.Equal(domain.ActionExported, appended.Action)
	suite.Equal("GL-20250601-abcd1234", appended.BatchRef)
	suite.Equal("file.csv", appended.Filename)
	suite.Equal(testDate, appended.CloseDate)
}

func TestDayCloseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DayCloseServiceTestSuite))
}
