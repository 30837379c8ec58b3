package database

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func newMockRepo(t *testing.T) (*PgGroupSpaceRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDb.Close() })

	return &PgGroupSpaceRepository{conn: mockDb}, mock
}

func TestCreateGroup(t *testing.T) {
	createdAt := time.Now().UTC()

	t.Run("commits group, creator and member rows", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(
			"INSERT INTO group_chats (name, created_by, created_at) " +
				"VALUES ($1, $2, $3) RETURNING id, name, created_by, created_at").
			WithArgs("hiking", 1, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_by", "created_at"}).
				AddRow(7, "hiking", 1, createdAt))
		mock.ExpectExec(createMemberQuery).
			WithArgs(7, 1, true).
			WillReturnResult(sqlmock.NewResult(0, 1))
		// duplicate member id 2 and the creator are skipped
		mock.ExpectExec(createMemberQuery).
			WithArgs(7, 2, false).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(createMemberQuery).
			WithArgs(7, 3, false).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		group, err := repo.CreateGroup(CreateGroupParams{
			Name:      "hiking",
			CreatedBy: 1,
			MemberIds: []int{2, 2, 1, 3},
		})

		assert.NoError(t, err)
		assert.Equal(t, 7, group.Id)
		assert.Equal(t, "hiking", group.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when a member insert fails", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(
			"INSERT INTO group_chats (name, created_by, created_at) " +
				"VALUES ($1, $2, $3) RETURNING id, name, created_by, created_at").
			WithArgs("hiking", 1, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_by", "created_at"}).
				AddRow(7, "hiking", 1, createdAt))
		mock.ExpectExec(createMemberQuery).
			WithArgs(7, 1, true).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(createMemberQuery).
			WithArgs(7, 2, false).
			WillReturnError(errors.New("insert failed"))
		mock.ExpectRollback()

		_, err := repo.CreateGroup(CreateGroupParams{
			Name:      "hiking",
			CreatedBy: 1,
			MemberIds: []int{2},
		})

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIsGroupMember(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2 LIMIT 1").
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	assert.True(t, repo.IsGroupMember(1, 2))

	mock.ExpectQuery("SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2 LIMIT 1").
		WithArgs(1, 3).
		WillReturnError(sql.ErrNoRows)
	assert.False(t, repo.IsGroupMember(1, 3))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveGroupMember(t *testing.T) {
	t.Run("removes an existing member", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("DELETE FROM group_members WHERE group_id = $1 AND user_id = $2").
			WithArgs(1, 2).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.RemoveGroupMember(1, 2))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports missing membership as ErrNoRows", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("DELETE FROM group_members WHERE group_id = $1 AND user_id = $2").
			WithArgs(1, 2).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.RemoveGroupMember(1, 2)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListGroupsForUser(t *testing.T) {
	repo, mock := newMockRepo(t)

	createdAt := time.Now().UTC()
	mock.ExpectQuery(
		"SELECT g.id, g.name, g.created_by, g.created_at, u.name "+
			"FROM group_chats g "+
			"JOIN users u ON g.created_by = u.id "+
			"JOIN group_members m ON g.id = m.group_id "+
			"WHERE m.user_id = $1").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_by", "created_at", "name"}).
			AddRow(7, "hiking", 1, createdAt, "Alice"))

	groups, err := repo.ListGroupsForUser(1)
	assert.NoError(t, err)
	assert.Len(t, groups, 1)
	assert.Equal(t, "Alice", groups[0].CreatorName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
