package store

import (
	"context"
	"errors"
	"testing"

	commonerrors "thenetwork-workers/internal/common/errors"
	"thenetwork-workers/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanHistory_UsedVenueNames(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"venue_options", "selected_venue"}).
		AddRow(`[{"name":"Blue Bottle"},{"name":" Philz  "}]`, `{"name":"Sightglass"}`).
		AddRow(`["Ritual Coffee"]`, `"BLUE BOTTLE"`).
		AddRow(`not json`, nil).
		AddRow(nil, `{"rating": 4.5}`)
	mock.ExpectQuery(usedVenuesQuery).WithArgs("u1", "San Francisco", 30).WillReturnRows(rows)

	history := NewPlanHistory(db, logger.NewTestLogger(t))
	used, err := history.UsedVenueNames(context.Background(), "u1", "San Francisco", 0)
	require.NoError(t, err)

	assert.Equal(t, map[string]struct{}{
		"blue bottle":   {},
		"philz":         {},
		"sightglass":    {},
		"ritual coffee": {},
	}, used)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanHistory_NoPlans(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(usedVenuesQuery).WithArgs("u1", "Austin", 7).
		WillReturnRows(sqlmock.NewRows([]string{"venue_options", "selected_venue"}))

	used, err := NewPlanHistory(db, logger.NewTestLogger(t)).UsedVenueNames(context.Background(), "u1", "Austin", 7)
	require.NoError(t, err)
	assert.NotNil(t, used)
	assert.Empty(t, used)
}

func TestPlanHistory_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(usedVenuesQuery).WillReturnError(errors.New("relation does not exist"))

	_, err := NewPlanHistory(db, logger.NewTestLogger(t)).UsedVenueNames(context.Background(), "u1", "Austin", 30)
	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeQueryExecutionFailed, commonerrors.AsStandardError(err).Code)
}
