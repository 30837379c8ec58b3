package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCreateEvent(t *testing.T) {
	eventTime := time.Now().UTC().Add(48 * time.Hour)
	createdAt := time.Now().UTC()

	t.Run("seeds all current members as attending", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT name FROM group_chats WHERE id = $1").
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("hiking"))
		mock.ExpectQuery(
			"INSERT INTO events (group_id, title, description, event_time, created_at) " +
				"VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at").
			WithArgs(1, "summit day", "trailhead", eventTime, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(9, createdAt))
		mock.ExpectQuery("SELECT user_id FROM group_members WHERE group_id = $1").
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(1).AddRow(2).AddRow(3))
		for _, memberId := range []int{1, 2, 3} {
			mock.ExpectExec("INSERT INTO event_participants (event_id, user_id, status) VALUES ($1, $2, 'attending')").
				WithArgs(9, memberId).
				WillReturnResult(sqlmock.NewResult(0, 1))
		}
		mock.ExpectCommit()

		event, err := repo.CreateEvent(CreateEventParams{
			GroupId:     1,
			Title:       "summit day",
			Description: "trailhead",
			EventTime:   eventTime,
			CreatorId:   1,
		})

		assert.NoError(t, err)
		assert.Equal(t, 9, event.Id)
		assert.Equal(t, "hiking", event.GroupName)
		assert.Equal(t, "attending", event.UserStatus)
		assert.Equal(t, 3, event.AttendingCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the group does not exist", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT name FROM group_chats WHERE id = $1").
			WithArgs(99).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err := repo.CreateEvent(CreateEventParams{
			GroupId:   99,
			Title:     "summit day",
			EventTime: eventTime,
			CreatorId: 1,
		})

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateParticipantStatus(t *testing.T) {
	t.Run("updates an existing participant", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("UPDATE event_participants SET status = $3 WHERE event_id = $1 AND user_id = $2").
			WithArgs(9, 2, "not_attending").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateParticipantStatus(9, 2, "not_attending"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports missing participant as ErrNoRows", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("UPDATE event_participants SET status = $3 WHERE event_id = $1 AND user_id = $2").
			WithArgs(9, 2, "attending").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateParticipantStatus(9, 2, "attending")
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListGroupEvents(t *testing.T) {
	repo, mock := newMockRepo(t)

	eventTime := time.Now().UTC().Add(24 * time.Hour)
	createdAt := time.Now().UTC()
	mock.ExpectQuery(
		"SELECT e.id, e.group_id, e.title, e.description, e.event_time, e.created_at, "+
			"(SELECT status FROM event_participants WHERE event_id = e.id AND user_id = $1), "+
			attendingCountSubquery+" "+
			"FROM events e WHERE e.group_id = $2 "+
			"ORDER BY e.event_time ASC").
		WithArgs(2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "group_id", "title", "description", "event_time", "created_at", "status", "count"}).
			AddRow(9, 1, "summit day", "", eventTime, createdAt, "attending", 3).
			AddRow(10, 1, "planning call", "", eventTime, createdAt, nil, 1))

	events, err := repo.ListGroupEvents(1, 2)
	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, "attending", events[0].UserStatus)
	// a user with no participant row gets an empty status
	assert.Empty(t, events[1].UserStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteEvent(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM events WHERE id = $1").
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.DeleteEvent(9))
	assert.NoError(t, mock.ExpectationsWereMet())
}
