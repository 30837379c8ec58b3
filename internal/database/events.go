package database

import (
	"database/sql"
	"time"
)

const attendingCountSubquery = "(SELECT COUNT(*) FROM event_participants WHERE event_id = e.id AND status = 'attending')"

// CreateEvent inserts the event and seeds one participant row per current
// group member, all with status attending, in one transaction. The
// participant set is a snapshot: members who join the group later are not
// added retroactively.
func (db *PgGroupSpaceRepository) CreateEvent(params CreateEventParams) (Event, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return Event{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var groupName string
	err = tx.QueryRow("SELECT name FROM group_chats WHERE id = $1", params.GroupId).Scan(&groupName)
	if err != nil {
		return Event{}, err
	}

	event := Event{
		GroupId:     params.GroupId,
		Title:       params.Title,
		Description: params.Description,
		EventTime:   params.EventTime,
		GroupName:   groupName,
		UserStatus:  "attending",
	}
	err = tx.QueryRow(
		"INSERT INTO events (group_id, title, description, event_time, created_at) "+
			"VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at",
		params.GroupId,
		params.Title,
		params.Description,
		params.EventTime,
		time.Now().UTC(),
	).Scan(&event.Id, &event.CreatedAt)
	if err != nil {
		return Event{}, err
	}

	rows, err := tx.Query("SELECT user_id FROM group_members WHERE group_id = $1", params.GroupId)
	if err != nil {
		return Event{}, err
	}

	var memberIds []int
	for rows.Next() {
		var memberId int
		if err = rows.Scan(&memberId); err != nil {
			rows.Close()
			return Event{}, err
		}

		memberIds = append(memberIds, memberId)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return Event{}, err
	}
	rows.Close()

	for _, memberId := range memberIds {
		_, err = tx.Exec(
			"INSERT INTO event_participants (event_id, user_id, status) VALUES ($1, $2, 'attending')",
			event.Id,
			memberId,
		)
		if err != nil {
			return Event{}, err
		}
	}

	if err = tx.Commit(); err != nil {
		return Event{}, err
	}

	event.AttendingCount = len(memberIds)
	return event, nil
}

func (db *PgGroupSpaceRepository) GetEvent(eventId int) (Event, error) {
	row := db.conn.QueryRow(
		"SELECT id, group_id, title, description, event_time, created_at FROM events "+
			"WHERE id = $1 LIMIT 1",
		eventId,
	)

	var event Event
	err := row.Scan(
		&event.Id,
		&event.GroupId,
		&event.Title,
		&event.Description,
		&event.EventTime,
		&event.CreatedAt,
	)

	return event, err
}

func (db *PgGroupSpaceRepository) ListUserEvents(userId int) ([]Event, error) {
	rows, err := db.conn.Query(
		"SELECT e.id, e.group_id, e.title, e.description, e.event_time, e.created_at, "+
			"g.name, ep.status, "+attendingCountSubquery+" "+
			"FROM events e "+
			"JOIN group_chats g ON e.group_id = g.id "+
			"JOIN event_participants ep ON e.id = ep.event_id "+
			"WHERE ep.user_id = $1 "+
			"ORDER BY e.event_time ASC",
		userId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		err = rows.Scan(
			&e.Id,
			&e.GroupId,
			&e.Title,
			&e.Description,
			&e.EventTime,
			&e.CreatedAt,
			&e.GroupName,
			&e.UserStatus,
			&e.AttendingCount,
		)
		if err != nil {
			return nil, err
		}

		events = append(events, e)
	}

	return events, rows.Err()
}

func (db *PgGroupSpaceRepository) ListGroupEvents(groupId, userId int) ([]Event, error) {
	rows, err := db.conn.Query(
		"SELECT e.id, e.group_id, e.title, e.description, e.event_time, e.created_at, "+
			"(SELECT status FROM event_participants WHERE event_id = e.id AND user_id = $1), "+
			attendingCountSubquery+" "+
			"FROM events e WHERE e.group_id = $2 "+
			"ORDER BY e.event_time ASC",
		userId,
		groupId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var status sql.NullString
		err = rows.Scan(
			&e.Id,
			&e.GroupId,
			&e.Title,
			&e.Description,
			&e.EventTime,
			&e.CreatedAt,
			&status,
			&e.AttendingCount,
		)
		if err != nil {
			return nil, err
		}

		e.UserStatus = status.String
		events = append(events, e)
	}

	return events, rows.Err()
}

func (db *PgGroupSpaceRepository) ListEventParticipants(eventId int) ([]EventParticipant, error) {
	rows, err := db.conn.Query(
		"SELECT u.id, u.name, u.email, ep.status "+
			"FROM users u JOIN event_participants ep ON u.id = ep.user_id "+
			"WHERE ep.event_id = $1 ORDER BY u.name ASC",
		eventId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []EventParticipant
	for rows.Next() {
		var p EventParticipant
		if err = rows.Scan(&p.Id, &p.Name, &p.EmailAddress, &p.Status); err != nil {
			return nil, err
		}

		participants = append(participants, p)
	}

	return participants, rows.Err()
}

// UpdateParticipantStatus updates the row in place, returning sql.ErrNoRows
// if the user has no participant row for the event.
func (db *PgGroupSpaceRepository) UpdateParticipantStatus(eventId, userId int, status string) error {
	res, err := db.conn.Exec(
		"UPDATE event_participants SET status = $3 WHERE event_id = $1 AND user_id = $2",
		eventId,
		userId,
		status,
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

// DeleteEvent removes the event; participant rows are removed by the
// ON DELETE CASCADE constraint.
func (db *PgGroupSpaceRepository) DeleteEvent(eventId int) error {
	_, err := db.conn.Exec("DELETE FROM events WHERE id = $1", eventId)

	return err
}
