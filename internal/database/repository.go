package database

type GroupSpaceRepository interface {
	Ping() error
	ListUsers() ([]User, error)
	CreateUser(params CreateUserParams) (User, error)
	GetUserById(userId int) (User, error)
	GetUserByUsername(username string) (User, error)
	UpdateUser(params UpdateUserParams) error
	DeleteUser(userId int) error
	SearchUsers(params SearchUsersParams) ([]User, error)
	ListConversation(userId, otherUserId int) ([]Message, error)
	CreateMessage(senderId, recipientId int, content string) (Message, error)
	CreateGroup(params CreateGroupParams) (Group, error)
	ListGroupsForUser(userId int) ([]Group, error)
	ListGroupMessages(groupId int) ([]GroupMessage, error)
	CreateGroupMessage(groupId, senderId int, content string) (GroupMessage, error)
	ListGroupMembers(groupId int) ([]GroupMember, error)
	IsGroupMember(groupId, userId int) bool
	IsGroupAdmin(groupId, userId int) bool
	AddGroupMember(groupId, userId int) error
	RemoveGroupMember(groupId, userId int) error
	CreateEvent(params CreateEventParams) (Event, error)
	GetEvent(eventId int) (Event, error)
	ListUserEvents(userId int) ([]Event, error)
	ListGroupEvents(groupId, userId int) ([]Event, error)
	ListEventParticipants(eventId int) ([]EventParticipant, error)
	UpdateParticipantStatus(eventId, userId int, status string) error
	DeleteEvent(eventId int) error
}
