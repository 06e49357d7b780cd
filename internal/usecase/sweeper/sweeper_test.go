//go:build unit

package sweeper_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"auction-house/internal/domain/listing"
	"auction-house/internal/infra/memory"
	"auction-house/internal/pkg/clock"
	"auction-house/internal/pkg/errs"
	"auction-house/internal/pkg/keylock"
	"auction-house/internal/usecase/commands"
	"auction-house/internal/usecase/sweeper"
	"auction-house/tests/common/builder"
	commandsmock "auction-house/tests/mock/commands"
	sharedmock "auction-house/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

var opts = sweeper.Options{Interval: time.Minute, BatchSize: 50, ItemTimeout: time.Second, Workers: 4}

func TestTick_ExpiresOverdueListings(t *testing.T) {
	clk := clock.NewMockClock(now)
	store := memory.NewListingStore()
	delivery := memory.NewDelivery(36)
	txLog := memory.NewTransactionLog()
	cmds := commands.NewListingCommands(commands.Deps{
		Listings:       store,
		Log:            txLog,
		Funds:          memory.NewWallet("coins"),
		Goods:          delivery,
		Reconciliation: memory.NewReconciliationLog(discard()),
		Locks:          keylock.NewCoordinator(),
		Clock:          clk,
		Logger:         discard(),
	}, commands.DefaultPolicy())

	ctx := context.Background()
	var overdue []*listing.Listing
	for range 10 {
		l := builder.NewListingBuilder().MustBuild() // ends 2026-03-02 12:00
		require.NoError(t, store.Insert(ctx, l))
		overdue = append(overdue, l)
	}
	fresh := builder.NewListingBuilder().WithDuration(72 * time.Hour).MustBuild()
	require.NoError(t, store.Insert(ctx, fresh))

	report, err := sweeper.New(store, cmds, clk, opts, discard()).Tick(ctx)
	require.NoError(t, err)
	assert.Equal(t, sweeper.Report{Scanned: 10, Expired: 10}, report)

	for _, l := range overdue {
		got, err := store.FindByID(ctx, l.ID())
		require.NoError(t, err)
		assert.Equal(t, listing.StatusExpired, got.Status())
	}
	got, _ := store.FindByID(ctx, fresh.ID())
	assert.Equal(t, listing.StatusActive, got.Status())
	assert.Equal(t, 10, txLog.Len())
	assert.Equal(t, 10, delivery.Delivered())

	report, err = sweeper.New(store, cmds, clk, opts, discard()).Tick(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.Scanned, "second sweep finds nothing")
}

func TestTick_ClassifiesResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := sharedmock.NewMockListingStore(ctrl)
	cmds := commandsmock.NewMockListingCommands(ctrl)
	clk := clock.NewMockClock(now)

	b := builder.NewListingBuilder()
	expired, sold, raced, broken := b.MustBuild(), b.MustBuild(), b.MustBuild(), b.MustBuild()

	store.EXPECT().FindExpiredUpTo(gomock.Any(), now, opts.BatchSize).
		Return([]*listing.Listing{expired, sold, raced, broken}, nil)
	cmds.EXPECT().Expire(gomock.Any(), expired.ID()).Return(&commands.TransitionResult{Outcome: commands.OutcomeCommitted}, nil)
	cmds.EXPECT().Expire(gomock.Any(), sold.ID()).Return(nil, errs.ErrNotActive)
	cmds.EXPECT().Expire(gomock.Any(), raced.ID()).Return(&commands.TransitionResult{Outcome: commands.OutcomeVersionConflict}, nil)
	cmds.EXPECT().Expire(gomock.Any(), broken.ID()).Return(nil, errs.Mark(errors.New("db down"), errs.ErrPersistenceFailure))

	report, err := sweeper.New(store, cmds, clk, opts, discard()).Tick(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrPersistenceFailure)
	assert.Contains(t, err.Error(), broken.ID().String())
	assert.Equal(t, sweeper.Report{Scanned: 4, Expired: 1, Skipped: 2, Failed: 1}, report)
}

func TestTick_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := sharedmock.NewMockListingStore(ctrl)
	cmds := commandsmock.NewMockListingCommands(ctrl)

	store.EXPECT().FindExpiredUpTo(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

	_, err := sweeper.New(store, cmds, clock.NewMockClock(now), opts, discard()).Tick(context.Background())
	assert.ErrorIs(t, err, errs.ErrPersistenceFailure)
}

func TestTick_RespectsWorkerLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := sharedmock.NewMockListingStore(ctrl)
	cmds := commandsmock.NewMockListingCommands(ctrl)

	due := make([]*listing.Listing, 12)
	for i := range due {
		due[i] = builder.NewListingBuilder().MustBuild()
	}
	store.EXPECT().FindExpiredUpTo(gomock.Any(), gomock.Any(), gomock.Any()).Return(due, nil)

	var inFlight, peak atomic.Int32
	cmds.EXPECT().Expire(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, uuid.UUID) (*commands.TransitionResult, error) {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inFlight.Add(-1)
			return &commands.TransitionResult{Outcome: commands.OutcomeCommitted}, nil
		}).Times(len(due))

	o := opts
	o.Workers = 3
	report, err := sweeper.New(store, cmds, clock.NewMockClock(now), o, discard()).Tick(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, report.Expired)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestTick_ItemTimeoutApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := sharedmock.NewMockListingStore(ctrl)
	cmds := commandsmock.NewMockListingCommands(ctrl)

	l := builder.NewListingBuilder().MustBuild()
	store.EXPECT().FindExpiredUpTo(gomock.Any(), gomock.Any(), gomock.Any()).Return([]*listing.Listing{l}, nil)
	cmds.EXPECT().Expire(gomock.Any(), l.ID()).DoAndReturn(
		func(ctx context.Context, _ uuid.UUID) (*commands.TransitionResult, error) {
			_, ok := ctx.Deadline()
			assert.True(t, ok, "each item runs under its own deadline")
			return &commands.TransitionResult{Outcome: commands.OutcomeCommitted}, nil
		})

	_, err := sweeper.New(store, cmds, clock.NewMockClock(now), opts, discard()).Tick(context.Background())
	require.NoError(t, err)
}

func TestRun_TicksOnClockUntilCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := sharedmock.NewMockListingStore(ctrl)
	cmds := commandsmock.NewMockListingCommands(ctrl)
	clk := clock.NewMockClock(now)

	var ticks atomic.Int32
	store.EXPECT().FindExpiredUpTo(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, time.Time, int) ([]*listing.Listing, error) {
			ticks.Add(1)
			return nil, nil
		}).MinTimes(1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.New(store, cmds, clk, opts, discard()).Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		clk.Add(opts.Interval)
		return ticks.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
