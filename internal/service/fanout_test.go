package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"news_radar/internal/domain"
	"news_radar/internal/service/mocks"
)

type FanoutServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	configs    *mocks.MockSearchConfigStore
	ingest     *mocks.MockIngestor
	dispatcher *mocks.MockDispatcher

	service *FanoutService
}

func (s *FanoutServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.configs = mocks.NewMockSearchConfigStore(s.ctrl)
	s.ingest = mocks.NewMockIngestor(s.ctrl)
	s.dispatcher = mocks.NewMockDispatcher(s.ctrl)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.service = NewFanoutService(s.configs, s.ingest, s.dispatcher, logger)
}

func (s *FanoutServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestFanoutServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FanoutServiceTestSuite))
}

func (s *FanoutServiceTestSuite) TestScheduleAll_NoActiveConfigs() {
	ctx := context.Background()

	s.configs.EXPECT().ListActive(ctx).Return(nil, nil)

	summary, err := s.service.ScheduleAll(ctx, "")

	s.NoError(err)
	s.Equal(0, summary.Processed)
	s.Empty(summary.Scheduled)
}

func (s *FanoutServiceTestSuite) TestScheduleAll_SubmitsPerConfig() {
	ctx := context.Background()

	active := []domain.SearchConfig{
		{ID: 1, Name: "Tech US", IsActive: true},
		{ID: 2, Name: "Business UK", IsActive: true},
		{ID: 3, Name: "General CA", IsActive: true},
	}
	s.configs.EXPECT().ListActive(ctx).Return(active, nil)

	var jobs int
	s.dispatcher.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(name string, _ func(ctx context.Context)) (string, error) {
			jobs++
			s.Equal(fmt.Sprintf("ingest-config-%d", jobs), name)
			return fmt.Sprintf("job-%d", jobs), nil
		},
	).Times(3)

	summary, err := s.service.ScheduleAll(ctx, "")

	s.NoError(err)
	s.Equal(3, summary.Processed)
	s.Len(summary.Scheduled, 3)
	s.Equal(int64(2), summary.Scheduled[1].ConfigID)
	s.Equal("Business UK", summary.Scheduled[1].ConfigName)
	s.Equal("job-2", summary.Scheduled[1].JobID)
}

func (s *FanoutServiceTestSuite) TestScheduleAll_SubmittedTaskRunsIngestion() {
	ctx := context.Background()

	s.configs.EXPECT().ListActive(ctx).
		Return([]domain.SearchConfig{{ID: 7, Name: "Tech US", IsActive: true}}, nil)

	var task func(ctx context.Context)
	s.dispatcher.EXPECT().Submit("ingest-config-7", gomock.Any()).DoAndReturn(
		func(_ string, fn func(ctx context.Context)) (string, error) {
			task = fn
			return "job-1", nil
		},
	)

	_, err := s.service.ScheduleAll(ctx, "passed-key")
	s.NoError(err)
	s.Require().NotNil(task)

	s.ingest.EXPECT().Run(gomock.Any(), int64(7), "passed-key").
		Return(&domain.IngestReport{Status: domain.StatusSuccess}, nil)
	task(context.Background())
}

func (s *FanoutServiceTestSuite) TestScheduleAll_SkipsFailedSubmissions() {
	ctx := context.Background()

	active := []domain.SearchConfig{
		{ID: 1, Name: "First", IsActive: true},
		{ID: 2, Name: "Second", IsActive: true},
	}
	s.configs.EXPECT().ListActive(ctx).Return(active, nil)

	gomock.InOrder(
		s.dispatcher.EXPECT().Submit("ingest-config-1", gomock.Any()).
			Return("", errors.New("dispatch queue full")),
		s.dispatcher.EXPECT().Submit("ingest-config-2", gomock.Any()).
			Return("job-1", nil),
	)

	summary, err := s.service.ScheduleAll(ctx, "")

	s.NoError(err, "a full queue must not abort the sweep")
	s.Equal(1, summary.Processed)
	s.Require().Len(summary.Scheduled, 1)
	s.Equal(int64(2), summary.Scheduled[0].ConfigID)
}

func (s *FanoutServiceTestSuite) TestScheduleAll_ListFailure() {
	ctx := context.Background()

	s.configs.EXPECT().ListActive(ctx).Return(nil, errors.New("connection reset"))

	summary, err := s.service.ScheduleAll(ctx, "")

	s.Error(err)
	s.Nil(summary)
}
