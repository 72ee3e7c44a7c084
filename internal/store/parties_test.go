package store

import (
	"context"
	"errors"
	"testing"
	"time"

	commonerrors "thenetwork-workers/internal/common/errors"
	"thenetwork-workers/internal/common/logger"
	"thenetwork-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartyResolver_Resolve_CacheMiss(t *testing.T) {
	db, mock := newMockDB(t)
	rdb, redisMock := redismock.NewClientMock()

	redisMock.ExpectGet("party:slug:spring-fling").RedisNil()
	mock.ExpectQuery(partyBySlugQuery).WithArgs("spring-fling").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("party-1"))
	redisMock.ExpectSet("party:slug:spring-fling", "party-1", 5*time.Minute).SetVal("OK")

	r := NewPartyResolver(db, rdb, 5*time.Minute, logger.NewTestLogger(t))
	id, ok, err := r.Resolve(context.Background(), "spring-fling")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "party-1", id)

	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestPartyResolver_Resolve_CacheHit(t *testing.T) {
	db, mock := newMockDB(t)
	rdb, redisMock := redismock.NewClientMock()
	redisMock.ExpectGet("party:slug:spring-fling").SetVal("party-9")

	r := NewPartyResolver(db, rdb, time.Minute, logger.NewTestLogger(t))
	id, ok, err := r.Resolve(context.Background(), "Spring-Fling")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "party-9", id)

	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestPartyResolver_Resolve_Unknown(t *testing.T) {
	db, mock := newMockDB(t)
	rdb, redisMock := redismock.NewClientMock()

	redisMock.ExpectGet("party:slug:nope").RedisNil()
	mock.ExpectQuery(partyBySlugQuery).WithArgs("nope").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	id, ok, err := NewPartyResolver(db, rdb, time.Minute, logger.NewTestLogger(t)).Resolve(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, id)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestPartyResolver_Invalidate(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()
	redisMock.ExpectDel("party:slug:spring-fling").SetVal(1)

	r := NewPartyResolver(nil, rdb, time.Minute, logger.NewTestLogger(t))
	require.NoError(t, r.Invalidate(context.Background(), "spring-fling"))
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestPartyResolver_FriendsAttending(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(friendsAttendingQuery).WithArgs("u1", "party-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "school"}).
			AddRow("u2", "Ana Diaz", "UT").
			AddRow("u3", "Bo Chen", ""))

	friends, err := NewPartyResolver(db, nil, 0, logger.NewTestLogger(t)).FriendsAttending(context.Background(), "u1", "party-1")
	require.NoError(t, err)
	assert.Equal(t, []models.Friend{
		{ID: "u2", FullName: "Ana Diaz", School: "UT"},
		{ID: "u3", FullName: "Bo Chen"},
	}, friends)
}

func TestPartyResolver_FriendsAttending_Error(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(friendsAttendingQuery).WillReturnError(errors.New("timeout"))

	_, err := NewPartyResolver(db, nil, 0, logger.NewTestLogger(t)).FriendsAttending(context.Background(), "u1", "p")
	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeQueryExecutionFailed, commonerrors.AsStandardError(err).Code)
}
