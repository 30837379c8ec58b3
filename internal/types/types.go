package types

import (
	"time"
)

// Attendance statuses for event participants.
const (
	StatusAttending    = "attending"
	StatusNotAttending = "not_attending"
)

type User struct {
	Id           int    `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	EmailAddress string `json:"email"`
	Password     string `json:"-"`
}

type Message struct {
	Id          int       `json:"id"`
	SenderId    int       `json:"sender_id"`
	RecipientId int       `json:"recipient_id"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	SenderName  string    `json:"sender_name"`
}

type Group struct {
	Id          int       `json:"id"`
	Name        string    `json:"name"`
	CreatedBy   int       `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	CreatorName string    `json:"creator_name,omitempty"`
}

type GroupMessage struct {
	Id         int       `json:"id"`
	GroupId    int       `json:"group_id"`
	SenderId   int       `json:"sender_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	SenderName string    `json:"sender_name"`
}

type GroupMember struct {
	Id           int    `json:"id"`
	Name         string `json:"name"`
	EmailAddress string `json:"email"`
	Admin        bool   `json:"admin"`
}

type Event struct {
	Id             int       `json:"id"`
	GroupId        int       `json:"group_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	EventTime      time.Time `json:"event_time"`
	CreatedAt      time.Time `json:"created_at"`
	GroupName      string    `json:"group_name,omitempty"`
	UserStatus     string    `json:"user_status,omitempty"`
	AttendingCount int       `json:"attending_count"`
}

type EventParticipant struct {
	Id           int    `json:"id"`
	Name         string `json:"name"`
	EmailAddress string `json:"email"`
	Status       string `json:"status"`
}
