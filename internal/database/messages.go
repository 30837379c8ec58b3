package database

import (
	"time"
)

const selectMessageQuery = "SELECT m.id, m.sender_id, m.recipient_id, m.content, m.created_at, u.name " +
	"FROM messages m JOIN users u ON m.sender_id = u.id WHERE m.id = $1"

func (db *PgGroupSpaceRepository) ListConversation(userId, otherUserId int) ([]Message, error) {
	rows, err := db.conn.Query(
		"SELECT m.id, m.sender_id, m.recipient_id, m.content, m.created_at, u.name "+
			"FROM messages m JOIN users u ON m.sender_id = u.id "+
			"WHERE (m.sender_id = $1 AND m.recipient_id = $2) "+
			"OR (m.sender_id = $2 AND m.recipient_id = $1) "+
			"ORDER BY m.created_at ASC",
		userId,
		otherUserId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var msg Message
		if err = rows.Scan(&msg.Id, &msg.SenderId, &msg.RecipientId, &msg.Content, &msg.CreatedAt, &msg.SenderName); err != nil {
			return nil, err
		}

		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

// CreateMessage inserts the message and re-reads it joined with the sender
// name in a single transaction, so the returned record is exactly what a
// subsequent ListConversation would contain.
func (db *PgGroupSpaceRepository) CreateMessage(senderId, recipientId int, content string) (Message, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return Message{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var id int
	err = tx.QueryRow(
		"INSERT INTO messages (sender_id, recipient_id, content, created_at) "+
			"VALUES ($1, $2, $3, $4) RETURNING id",
		senderId,
		recipientId,
		content,
		time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return Message{}, err
	}

	var msg Message
	err = tx.QueryRow(selectMessageQuery, id).Scan(
		&msg.Id,
		&msg.SenderId,
		&msg.RecipientId,
		&msg.Content,
		&msg.CreatedAt,
		&msg.SenderName,
	)
	if err != nil {
		return Message{}, err
	}

	if err = tx.Commit(); err != nil {
		return Message{}, err
	}

	return msg, nil
}
