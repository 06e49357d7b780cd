package queries

//go:generate mockgen -source=account.go -destination=../../../tests/mock/queries/mock_account.go -package=queriesmock

import (
	"context"

	"auction-house/internal/pkg/errs"
	"auction-house/internal/usecase/shared"

	"github.com/google/uuid"
)

// AccountQueries answers questions about one actor: their trades and their money.
type AccountQueries interface {
	History(ctx context.Context, actor uuid.UUID, cursor *Cursor, limit int) ([]*RecordView, *Cursor, error)
	Balance(ctx context.Context, actor uuid.UUID) (*BalanceView, error)
}

type accountQueriesImpl struct {
	log   shared.TransactionLog
	funds shared.FundsProvider
}

func NewAccountQueries(log shared.TransactionLog, funds shared.FundsProvider) AccountQueries {
	return &accountQueriesImpl{log: log, funds: funds}
}

// History lists records where the actor was seller or buyer, newest first.
// A nil next cursor means there are no more pages.
func (q *accountQueriesImpl) History(ctx context.Context, actor uuid.UUID, cursor *Cursor, limit int) ([]*RecordView, *Cursor, error) {
	limit = ValidateLimit(limit)
	page := shared.HistoryPage{Limit: limit + 1}
	if cursor != nil && cursor.Before != "" {
		t, id, err := DecodeBeforeCursor(cursor.Before)
		if err != nil {
			return nil, nil, err
		}
		page.BeforeTime, page.BeforeID = t, id
	}

	records, err := q.log.History(ctx, actor, page)
	if err != nil {
		return nil, nil, errs.Mark(errs.Wrap(err, "load history"), errs.ErrPersistenceFailure)
	}

	var next *Cursor
	if len(records) > limit {
		records = records[:limit]
		last := records[len(records)-1]
		next = &Cursor{Before: EncodeBeforeCursor(last.Timestamp(), last.ID())}
	}

	views := make([]*RecordView, 0, len(records))
	for _, r := range records {
		views = append(views, NewRecordView(r))
	}
	return views, next, nil
}

func (q *accountQueriesImpl) Balance(ctx context.Context, actor uuid.UUID) (*BalanceView, error) {
	m, err := q.funds.Balance(ctx, actor)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "load balance"), errs.ErrPersistenceFailure)
	}
	return &BalanceView{ActorID: actor, BalanceCents: m.Cents(), Formatted: q.funds.Format(m)}, nil
}
