package database

import "time"

type User struct {
	Id           int
	Name         string
	Username     string
	PasswordHash string
	EmailAddress string
}

type Message struct {
	Id          int
	SenderId    int
	RecipientId int
	Content     string
	CreatedAt   time.Time
	SenderName  string
}

type Group struct {
	Id          int
	Name        string
	CreatedBy   int
	CreatedAt   time.Time
	CreatorName string
}

type GroupMessage struct {
	Id         int
	GroupId    int
	SenderId   int
	Content    string
	CreatedAt  time.Time
	SenderName string
}

type GroupMember struct {
	Id           int
	Name         string
	EmailAddress string
	Admin        bool
}

type Event struct {
	Id             int
	GroupId        int
	Title          string
	Description    string
	EventTime      time.Time
	CreatedAt      time.Time
	GroupName      string
	UserStatus     string
	AttendingCount int
}

type EventParticipant struct {
	Id           int
	Name         string
	EmailAddress string
	Status       string
}

type CreateUserParams struct {
	Name         string
	Username     string
	PasswordHash string
	EmailAddress string
}

type UpdateUserParams struct {
	UserId       int
	Name         string
	EmailAddress string
}

type SearchUsersParams struct {
	Query         string
	ExcludeUserId int
	ShowAll       bool
}

type CreateGroupParams struct {
	Name      string
	CreatedBy int
	MemberIds []int
}

type CreateEventParams struct {
	GroupId     int
	Title       string
	Description string
	EventTime   time.Time
	CreatorId   int
}
