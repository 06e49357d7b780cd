//go:build unit

package pgconv_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"auction-house/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDConversions(t *testing.T) {
	id := uuid.New()
	assert.Nil(t, pgconv.UUIDPtrFromPgtype(pgtype.UUID{}))
	got := pgconv.UUIDPtrFromPgtype(pgconv.UUIDToPgtype(id))
	require.NotNil(t, got)
	assert.Equal(t, id, *got)
	assert.False(t, pgconv.UUIDPtrToPgtype(nil).Valid)
	assert.Equal(t, pgconv.UUIDToPgtype(id), pgconv.UUIDPtrToPgtype(&id))
}

func TestInt64Conversions(t *testing.T) {
	v := int64(42)
	assert.Nil(t, pgconv.Int64PtrFromPgtype(pgconv.Int64PtrToPgtype(nil)))
	got := pgconv.Int64PtrFromPgtype(pgconv.Int64PtrToPgtype(&v))
	require.NotNil(t, got)
	assert.Equal(t, v, *got)
}

func TestTimeFromPgtype_NormalizesToUTC(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	at := time.Date(2026, 3, 1, 21, 0, 0, 0, tokyo)
	got := pgconv.TimeFromPgtype(pgconv.TimeToPgtype(at))
	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, at.Equal(got))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, pgconv.IsNoRows(pgx.ErrNoRows))
	assert.True(t, pgconv.IsNoRows(fmt.Errorf("find: %w", pgx.ErrNoRows)))
	assert.False(t, pgconv.IsNoRows(errors.New("other")))
}
