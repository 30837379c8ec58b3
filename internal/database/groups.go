package database

import (
	"database/sql"
	"slices"
	"time"
)

const (
	createMemberQuery       = "INSERT INTO group_members (group_id, user_id, is_admin) VALUES ($1, $2, $3)"
	selectGroupMessageQuery = "SELECT m.id, m.group_id, m.sender_id, m.content, m.created_at, u.name " +
		"FROM group_messages m JOIN users u ON m.sender_id = u.id WHERE m.id = $1"
)

// CreateGroup inserts the group row, the creator's admin membership and a
// non-admin membership per member id in one transaction. Member ids are
// deduplicated and the creator is skipped, so the creator's row is the
// single admin row.
func (db *PgGroupSpaceRepository) CreateGroup(params CreateGroupParams) (Group, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return Group{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var group Group
	err = tx.QueryRow(
		"INSERT INTO group_chats (name, created_by, created_at) "+
			"VALUES ($1, $2, $3) RETURNING id, name, created_by, created_at",
		params.Name,
		params.CreatedBy,
		time.Now().UTC(),
	).Scan(
		&group.Id,
		&group.Name,
		&group.CreatedBy,
		&group.CreatedAt,
	)
	if err != nil {
		return Group{}, err
	}

	if _, err = tx.Exec(createMemberQuery, group.Id, params.CreatedBy, true); err != nil {
		return Group{}, err
	}

	var seen []int
	for _, memberId := range params.MemberIds {
		if memberId == params.CreatedBy || slices.Contains(seen, memberId) {
			continue
		}
		seen = append(seen, memberId)

		if _, err = tx.Exec(createMemberQuery, group.Id, memberId, false); err != nil {
			return Group{}, err
		}
	}

	if err = tx.Commit(); err != nil {
		return Group{}, err
	}

	return group, nil
}

func (db *PgGroupSpaceRepository) ListGroupsForUser(userId int) ([]Group, error) {
	rows, err := db.conn.Query(
		"SELECT g.id, g.name, g.created_by, g.created_at, u.name "+
			"FROM group_chats g "+
			"JOIN users u ON g.created_by = u.id "+
			"JOIN group_members m ON g.id = m.group_id "+
			"WHERE m.user_id = $1",
		userId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []Group
	for rows.Next() {
		var g Group
		if err = rows.Scan(&g.Id, &g.Name, &g.CreatedBy, &g.CreatedAt, &g.CreatorName); err != nil {
			return nil, err
		}

		groups = append(groups, g)
	}

	return groups, rows.Err()
}

func (db *PgGroupSpaceRepository) ListGroupMessages(groupId int) ([]GroupMessage, error) {
	rows, err := db.conn.Query(
		"SELECT m.id, m.group_id, m.sender_id, m.content, m.created_at, u.name "+
			"FROM group_messages m JOIN users u ON m.sender_id = u.id "+
			"WHERE m.group_id = $1 ORDER BY m.created_at ASC",
		groupId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []GroupMessage
	for rows.Next() {
		var msg GroupMessage
		if err = rows.Scan(&msg.Id, &msg.GroupId, &msg.SenderId, &msg.Content, &msg.CreatedAt, &msg.SenderName); err != nil {
			return nil, err
		}

		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

func (db *PgGroupSpaceRepository) CreateGroupMessage(groupId, senderId int, content string) (GroupMessage, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return GroupMessage{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var id int
	err = tx.QueryRow(
		"INSERT INTO group_messages (group_id, sender_id, content, created_at) "+
			"VALUES ($1, $2, $3, $4) RETURNING id",
		groupId,
		senderId,
		content,
		time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return GroupMessage{}, err
	}

	var msg GroupMessage
	err = tx.QueryRow(selectGroupMessageQuery, id).Scan(
		&msg.Id,
		&msg.GroupId,
		&msg.SenderId,
		&msg.Content,
		&msg.CreatedAt,
		&msg.SenderName,
	)
	if err != nil {
		return GroupMessage{}, err
	}

	if err = tx.Commit(); err != nil {
		return GroupMessage{}, err
	}

	return msg, nil
}

func (db *PgGroupSpaceRepository) ListGroupMembers(groupId int) ([]GroupMember, error) {
	rows, err := db.conn.Query(
		"SELECT u.id, u.name, u.email, m.is_admin "+
			"FROM users u JOIN group_members m ON u.id = m.user_id "+
			"WHERE m.group_id = $1 ORDER BY u.name ASC",
		groupId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []GroupMember
	for rows.Next() {
		var m GroupMember
		if err = rows.Scan(&m.Id, &m.Name, &m.EmailAddress, &m.Admin); err != nil {
			return nil, err
		}

		members = append(members, m)
	}

	return members, rows.Err()
}

func (db *PgGroupSpaceRepository) IsGroupMember(groupId, userId int) bool {
	res := db.conn.QueryRow(
		"SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2 LIMIT 1",
		groupId,
		userId,
	)

	var one int
	err := res.Scan(&one)

	return err == nil
}

func (db *PgGroupSpaceRepository) IsGroupAdmin(groupId, userId int) bool {
	res := db.conn.QueryRow(
		"SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2 AND is_admin LIMIT 1",
		groupId,
		userId,
	)

	var one int
	err := res.Scan(&one)

	return err == nil
}

func (db *PgGroupSpaceRepository) AddGroupMember(groupId, userId int) error {
	_, err := db.conn.Exec(createMemberQuery, groupId, userId, false)

	return err
}

// RemoveGroupMember deletes the membership row, returning sql.ErrNoRows if
// no such row existed.
func (db *PgGroupSpaceRepository) RemoveGroupMember(groupId, userId int) error {
	res, err := db.conn.Exec(
		"DELETE FROM group_members WHERE group_id = $1 AND user_id = $2",
		groupId,
		userId,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	return nil
}
