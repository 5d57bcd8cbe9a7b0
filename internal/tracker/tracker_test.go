package tracker

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/evanchechak/basketball-injury-model/internal/config"
	"github.com/evanchechak/basketball-injury-model/internal/models"
)

type mockBetRepository struct {
	mock.Mock
}

func (m *mockBetRepository) Create(ctx context.Context, bet *models.TrackedBet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *mockBetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.TrackedBet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrackedBet), args.Error(1)
}

func (m *mockBetRepository) Update(ctx context.Context, bet *models.TrackedBet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *mockBetRepository) GetPendingBets(ctx context.Context) ([]*models.TrackedBet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TrackedBet), args.Error(1)
}

func (m *mockBetRepository) GetSettledBets(ctx context.Context, start, end time.Time) ([]*models.TrackedBet, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TrackedBet), args.Error(1)
}

func (m *mockBetRepository) GetByPlayer(ctx context.Context, playerName string) ([]*models.TrackedBet, error) {
	args := m.Called(ctx, playerName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TrackedBet), args.Error(1)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testTracker(repo *mockBetRepository) *Tracker {
	return NewTracker(repo, config.BettingConfig{
		PayoutOdds:       0.909,
		KellyMultiplier:  0.25,
		MaxStakeFraction: 0.05,
		MinEdge:          0.05,
	}, quietLogger())
}

func pendingBet(side models.BetSide, line float64) *models.TrackedBet {
	return &models.TrackedBet{
		ID:         uuid.New(),
		PlayerName: "Second Option",
		Stat:       models.StatPoints,
		Line:       line,
		Side:       side,
		Prediction: 29.2,
		Amount:     decimal.NewFromInt(100),
		Status:     models.BetStatusPending,
		PlacedAt:   time.Date(2024, 1, 20, 18, 0, 0, 0, time.UTC),
	}
}

func settledBet(result models.BetResult, profit decimal.Decimal) *models.TrackedBet {
	bet := pendingBet(models.BetSideOver, 25.5)
	settledAt := time.Date(2024, 1, 21, 4, 0, 0, 0, time.UTC)
	bet.Status = models.BetStatusSettled
	bet.Result = &result
	bet.Profit = &profit
	bet.SettledAt = &settledAt
	return bet
}

func TestRecord(t *testing.T) {
	repo := &mockBetRepository{}
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.TrackedBet")).Return(nil)

	tr := testTracker(repo)
	bet, err := tr.Record(context.Background(), RecordRequest{
		PlayerName:     "Second Option",
		Stat:           models.StatPoints,
		Line:           25.5,
		Side:           models.BetSideOver,
		Prediction:     29.2,
		Amount:         decimal.NewFromInt(50),
		EdgePercent:    8.2,
		WinProbability: 0.62,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, bet.ID)
	assert.Equal(t, models.BetStatusPending, bet.Status)
	assert.False(t, bet.PlacedAt.IsZero())
	assert.Nil(t, bet.Result)
	repo.AssertExpectations(t)
}

func TestRecordValidation(t *testing.T) {
	tests := []struct {
		name string
		req  RecordRequest
	}{
		{
			name: "missing player name",
			req: RecordRequest{
				Stat:   models.StatPoints,
				Side:   models.BetSideOver,
				Amount: decimal.NewFromInt(50),
			},
		},
		{
			name: "unknown stat",
			req: RecordRequest{
				PlayerName: "Second Option",
				Stat:       "BLK",
				Side:       models.BetSideOver,
				Amount:     decimal.NewFromInt(50),
			},
		},
		{
			name: "invalid side",
			req: RecordRequest{
				PlayerName: "Second Option",
				Stat:       models.StatPoints,
				Side:       "over",
				Amount:     decimal.NewFromInt(50),
			},
		},
		{
			name: "zero amount",
			req: RecordRequest{
				PlayerName: "Second Option",
				Stat:       models.StatPoints,
				Side:       models.BetSideOver,
				Amount:     decimal.Zero,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockBetRepository{}
			tr := testTracker(repo)

			_, err := tr.Record(context.Background(), tt.req)

			assert.Error(t, err)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestSettleWin(t *testing.T) {
	bet := pendingBet(models.BetSideOver, 25.5)
	repo := &mockBetRepository{}
	repo.On("GetByID", mock.Anything, bet.ID).Return(bet, nil)
	repo.On("Update", mock.Anything, bet).Return(nil)

	tr := testTracker(repo)
	settledAt := time.Date(2024, 1, 21, 4, 0, 0, 0, time.UTC)
	settled, err := tr.Settle(context.Background(), bet.ID, 31.0, settledAt)

	require.NoError(t, err)
	assert.Equal(t, models.BetStatusSettled, settled.Status)
	require.NotNil(t, settled.Result)
	assert.Equal(t, models.BetResultWin, *settled.Result)
	// 100 staked at 0.909 payout
	assert.True(t, settled.ProfitValue().Equal(decimal.NewFromFloat(90.9)),
		"profit = %s", settled.ProfitValue())
	require.NotNil(t, settled.Actual)
	assert.Equal(t, 31.0, *settled.Actual)
	assert.Equal(t, settledAt, *settled.SettledAt)
	repo.AssertExpectations(t)
}

func TestSettleLoss(t *testing.T) {
	bet := pendingBet(models.BetSideUnder, 25.5)
	repo := &mockBetRepository{}
	repo.On("GetByID", mock.Anything, bet.ID).Return(bet, nil)
	repo.On("Update", mock.Anything, bet).Return(nil)

	tr := testTracker(repo)
	settled, err := tr.Settle(context.Background(), bet.ID, 31.0, time.Now())

	require.NoError(t, err)
	assert.Equal(t, models.BetStatusSettled, settled.Status)
	require.NotNil(t, settled.Result)
	assert.Equal(t, models.BetResultLoss, *settled.Result)
	assert.True(t, settled.ProfitValue().Equal(decimal.NewFromInt(-100)))
}

func TestSettlePushRefundsStake(t *testing.T) {
	bet := pendingBet(models.BetSideOver, 25.5)
	repo := &mockBetRepository{}
	repo.On("GetByID", mock.Anything, bet.ID).Return(bet, nil)
	repo.On("Update", mock.Anything, bet).Return(nil)

	tr := testTracker(repo)
	settled, err := tr.Settle(context.Background(), bet.ID, 25.5, time.Now())

	require.NoError(t, err)
	assert.Equal(t, models.BetStatusPush, settled.Status)
	assert.Nil(t, settled.Result)
	assert.True(t, settled.ProfitValue().IsZero())
}

func TestSettleAlreadySettled(t *testing.T) {
	bet := settledBet(models.BetResultWin, decimal.NewFromFloat(90.9))
	repo := &mockBetRepository{}
	repo.On("GetByID", mock.Anything, bet.ID).Return(bet, nil)

	tr := testTracker(repo)
	_, err := tr.Settle(context.Background(), bet.ID, 28.0, time.Now())

	assert.ErrorIs(t, err, ErrAlreadySettled)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSettleNotFound(t *testing.T) {
	repo := &mockBetRepository{}
	repo.On("GetByID", mock.Anything, mock.Anything).Return(nil, models.ErrNotFound)

	tr := testTracker(repo)
	_, err := tr.Settle(context.Background(), uuid.New(), 28.0, time.Now())

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPending(t *testing.T) {
	bets := []*models.TrackedBet{
		pendingBet(models.BetSideOver, 25.5),
		pendingBet(models.BetSideUnder, 7.5),
	}
	repo := &mockBetRepository{}
	repo.On("GetPendingBets", mock.Anything).Return(bets, nil)

	tr := testTracker(repo)
	got, err := tr.Pending(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSummarize(t *testing.T) {
	win := decimal.NewFromFloat(90.9)
	loss := decimal.NewFromInt(-100)

	zero := decimal.Zero
	push := pendingBet(models.BetSideOver, 25.5)
	pushSettledAt := time.Date(2024, 1, 22, 4, 0, 0, 0, time.UTC)
	push.Status = models.BetStatusPush
	push.Profit = &zero
	push.SettledAt = &pushSettledAt

	bets := []*models.TrackedBet{
		settledBet(models.BetResultWin, win),
		settledBet(models.BetResultWin, win),
		settledBet(models.BetResultLoss, loss),
		push,
	}

	repo := &mockBetRepository{}
	repo.On("GetSettledBets", mock.Anything, mock.Anything, mock.Anything).Return(bets, nil)

	tr := testTracker(repo)
	summary, err := tr.Summarize(context.Background(),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, 4, summary.TotalBets)
	assert.Equal(t, 2, summary.Wins)
	assert.Equal(t, 1, summary.Losses)
	assert.Equal(t, 1, summary.Pushes)
	// Push stake is refunded, so 300 at risk
	assert.True(t, summary.TotalStaked.Equal(decimal.NewFromInt(300)),
		"staked = %s", summary.TotalStaked)
	assert.True(t, summary.TotalProfit.Equal(decimal.NewFromFloat(81.8)),
		"profit = %s", summary.TotalProfit)
	assert.InDelta(t, 2.0/3.0, summary.WinRate, 1e-9)
	assert.InDelta(t, 81.8/300*100, summary.ROIPercent, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	repo := &mockBetRepository{}
	repo.On("GetSettledBets", mock.Anything, mock.Anything, mock.Anything).
		Return([]*models.TrackedBet{}, nil)

	tr := testTracker(repo)
	summary, err := tr.Summarize(context.Background(), time.Time{}, time.Now())

	require.NoError(t, err)
	assert.Zero(t, summary.TotalBets)
	assert.Zero(t, summary.WinRate)
	assert.Zero(t, summary.ROIPercent)
}
