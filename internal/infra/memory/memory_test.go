//go:build unit

package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"auction-house/internal/domain/listing"
	"auction-house/internal/domain/transaction"
	"auction-house/internal/infra"
	"auction-house/internal/infra/memory"
	"auction-house/internal/usecase/shared"
	"auction-house/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingStore_InsertAndFind(t *testing.T) {
	ctx := context.Background()
	s := memory.NewListingStore()
	l := builder.NewListingBuilder().MustBuild()

	require.NoError(t, s.Insert(ctx, l))
	err := s.Insert(ctx, l)
	assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))

	got, err := s.FindByID(ctx, l.ID())
	require.NoError(t, err)
	assert.Equal(t, l.ID(), got.ID())

	_, err = s.FindByID(ctx, uuid.New())
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestListingStore_CompareAndSwap(t *testing.T) {
	ctx := context.Background()
	s := memory.NewListingStore()
	l := builder.NewListingBuilder().MustBuild()
	require.NoError(t, s.Insert(ctx, l))
	at := l.CreatedAt().Add(time.Minute)

	sold, err := l.MarkSold(uuid.New(), at)
	require.NoError(t, err)
	cancelled, err := l.MarkCancelled(at)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wins := make([]bool, 2)
	for i, next := range []*listing.Listing{sold, cancelled} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.UpdateIfVersionMatches(ctx, next, l.Version())
			assert.NoError(t, err)
			wins[i] = ok
		}()
	}
	wg.Wait()
	assert.NotEqual(t, wins[0], wins[1], "exactly one writer wins")

	got, _ := s.FindByID(ctx, l.ID())
	assert.Equal(t, int64(2), got.Version())

	_, err = s.UpdateIfVersionMatches(ctx, l, l.Version())
	assert.True(t, infra.IsKind(err, infra.KindDBFailure), "version must advance by one")

	ok, err := s.UpdateIfVersionMatches(ctx, builder.NewListingBuilder().BuildInState(listing.StatusSold, 2), 1)
	require.NoError(t, err)
	assert.False(t, ok, "unknown listing is a mismatch")
}

func TestListingStore_TerminalListingRejectsWrites(t *testing.T) {
	ctx := context.Background()
	s := memory.NewListingStore()
	l := builder.NewListingBuilder().MustBuild()
	require.NoError(t, s.Insert(ctx, l))

	sold, err := l.MarkSold(uuid.New(), l.CreatedAt().Add(time.Minute))
	require.NoError(t, err)
	ok, err := s.UpdateIfVersionMatches(ctx, sold, l.Version())
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.UpdateIfVersionMatches(ctx, builder.Restate(sold, listing.StatusCancelled, 3), sold.Version())
	require.NoError(t, err)
	assert.False(t, ok, "matching version must not reopen a terminal listing")

	got, _ := s.FindByID(ctx, l.ID())
	assert.Equal(t, listing.StatusSold, got.Status())
	assert.Equal(t, int64(2), got.Version())
}

func TestListingStore_FindExpiredUpTo(t *testing.T) {
	ctx := context.Background()
	s := memory.NewListingStore()
	b := builder.NewListingBuilder()
	early := b.WithDuration(time.Hour).MustBuild()
	late := b.WithDuration(2 * time.Hour).MustBuild()
	future := b.WithDuration(48 * time.Hour).MustBuild()
	done := b.WithDuration(time.Hour).BuildInState(listing.StatusCancelled, 2)
	for _, l := range []*listing.Listing{late, future, early, done} {
		require.NoError(t, s.Insert(ctx, l))
	}

	now := early.CreatedAt().Add(3 * time.Hour)
	got, err := s.FindExpiredUpTo(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, early.ID(), got[0].ID())
	assert.Equal(t, late.ID(), got[1].ID())

	got, err = s.FindExpiredUpTo(ctx, now, 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = s.FindExpiredUpTo(ctx, early.EndAt(), 10)
	require.NoError(t, err)
	assert.Len(t, got, 1, "end time equal to now counts as expired")
}

func TestTransactionLog_RecordIsIdempotentPerListing(t *testing.T) {
	ctx := context.Background()
	log := memory.NewTransactionLog()
	l := builder.NewListingBuilder().MustBuild()
	cancelled, err := l.MarkCancelled(l.CreatedAt().Add(time.Minute))
	require.NoError(t, err)

	first, err := transaction.NewCancelledRecord(cancelled, "first")
	require.NoError(t, err)
	second, err := transaction.NewCancelledRecord(cancelled, "second")
	require.NoError(t, err)

	require.NoError(t, log.Record(ctx, first))
	require.NoError(t, log.Record(ctx, second))
	assert.Equal(t, 1, log.Len())
	got, ok := log.ForListing(l.ID())
	require.True(t, ok)
	assert.Equal(t, "first", got.Detail())
}

func TestWallet(t *testing.T) {
	ctx := context.Background()
	w := memory.NewWallet("coins")
	actor := uuid.New()
	w.Seed(actor, listing.NewMoney(1_000))

	ok, err := w.Withdraw(ctx, actor, listing.NewMoney(1_500))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = w.Withdraw(ctx, actor, listing.NewMoney(400))
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, w.Deposit(ctx, actor, listing.NewMoney(50)))
	bal, err := w.Balance(ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, int64(650), bal.Cents())
	assert.Equal(t, "6.50 coins", w.Format(bal))
	assert.Equal(t, "6.50", memory.NewWallet("").Format(bal))
}

func TestDelivery_DefersWhenFull(t *testing.T) {
	ctx := context.Background()
	d := memory.NewDelivery(1)
	actor := uuid.New()
	good, err := listing.NewGood("torch", 64, nil)
	require.NoError(t, err)

	mode, err := d.GiveOrDefer(ctx, actor, good, shared.ReasonExpired)
	require.NoError(t, err)
	assert.Equal(t, shared.DeliveryDirect, mode)

	mode, err = d.GiveOrDefer(ctx, actor, good, shared.ReasonExpired)
	require.NoError(t, err)
	assert.Equal(t, shared.DeliveryDeferred, mode)

	assert.Len(t, d.Inventory(actor), 1)
	assert.Equal(t, []memory.DeferredItem{{Good: good, Reason: shared.ReasonExpired}}, d.Mailbox(actor))
	assert.Equal(t, 2, d.Delivered())
}
