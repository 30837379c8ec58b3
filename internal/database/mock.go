package database

import (
	"github.com/stretchr/testify/mock"
)

type MockGroupSpaceRepository struct {
	mock.Mock
}

func (m *MockGroupSpaceRepository) Ping() error {
	args := m.Called()
	return args.Error(0)
}
func (m *MockGroupSpaceRepository) ListUsers() ([]User, error) {
	args := m.Called()
	return args.Get(0).([]User), args.Error(1)
}
func (m *MockGroupSpaceRepository) CreateUser(params CreateUserParams) (User, error) {
	args := m.Called(params)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockGroupSpaceRepository) GetUserById(userId int) (User, error) {
	args := m.Called(userId)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockGroupSpaceRepository) GetUserByUsername(username string) (User, error) {
	args := m.Called(username)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockGroupSpaceRepository) UpdateUser(params UpdateUserParams) error {
	args := m.Called(params)
	return args.Error(0)
}
func (m *MockGroupSpaceRepository) DeleteUser(userId int) error {
	args := m.Called(userId)
	return args.Error(0)
}
func (m *MockGroupSpaceRepository) SearchUsers(params SearchUsersParams) ([]User, error) {
	args := m.Called(params)
	return args.Get(0).([]User), args.Error(1)
}
func (m *MockGroupSpaceRepository) ListConversation(userId, otherUserId int) ([]Message, error) {
	args := m.Called(userId, otherUserId)
	return args.Get(0).([]Message), args.Error(1)
}
func (m *MockGroupSpaceRepository) CreateMessage(senderId, recipientId int, content string) (Message, error) {
	args := m.Called(senderId, recipientId, content)
	return args.Get(0).(Message), args.Error(1)
}
func (m *MockGroupSpaceRepository) CreateGroup(params CreateGroupParams) (Group, error) {
	args := m.Called(params)
	return args.Get(0).(Group), args.Error(1)
}
func (m *MockGroupSpaceRepository) ListGroupsForUser(userId int) ([]Group, error) {
	args := m.Called(userId)
	return args.Get(0).([]Group), args.Error(1)
}
func (m *MockGroupSpaceRepository) ListGroupMessages(groupId int) ([]GroupMessage, error) {
	args := m.Called(groupId)
	return args.Get(0).([]GroupMessage), args.Error(1)
}
func (m *MockGroupSpaceRepository) CreateGroupMessage(groupId, senderId int, content string) (GroupMessage, error) {
	args := m.Called(groupId, senderId, content)
	return args.Get(0).(GroupMessage), args.Error(1)
}
func (m *MockGroupSpaceRepository) ListGroupMembers(groupId int) ([]GroupMember, error) {
	args := m.Called(groupId)
	return args.Get(0).([]GroupMember), args.Error(1)
}
func (m *MockGroupSpaceRepository) IsGroupMember(groupId, userId int) bool {
	args := m.Called(groupId, userId)
	return args.Bool(0)
}
func (m *MockGroupSpaceRepository) IsGroupAdmin(groupId, userId int) bool {
	args := m.Called(groupId, userId)
	return args.Bool(0)
}
func (m *MockGroupSpaceRepository) AddGroupMember(groupId, userId int) error {
	args := m.Called(groupId, userId)
	return args.Error(0)
}
func (m *MockGroupSpaceRepository) RemoveGroupMember(groupId, userId int) error {
	args := m.Called(groupId, userId)
	return args.Error(0)
}
func (m *MockGroupSpaceRepository) CreateEvent(params CreateEventParams) (Event, error) {
	args := m.Called(params)
	return args.Get(0).(Event), args.Error(1)
}
func (m *MockGroupSpaceRepository) GetEvent(eventId int) (Event, error) {
	args := m.Called(eventId)
	return args.Get(0).(Event), args.Error(1)
}
func (m *MockGroupSpaceRepository) ListUserEvents(userId int) ([]Event, error) {
	args := m.Called(userId)
	return args.Get(0).([]Event), args.Error(1)
}
func (m *MockGroupSpaceRepository) ListGroupEvents(groupId, userId int) ([]Event, error) {
	args := m.Called(groupId, userId)
	return args.Get(0).([]Event), args.Error(1)
}
func (m *MockGroupSpaceRepository) ListEventParticipants(eventId int) ([]EventParticipant, error) {
	args := m.Called(eventId)
	return args.Get(0).([]EventParticipant), args.Error(1)
}
func (m *MockGroupSpaceRepository) UpdateParticipantStatus(eventId, userId int, status string) error {
	args := m.Called(eventId, userId, status)
	return args.Error(0)
}
func (m *MockGroupSpaceRepository) DeleteEvent(eventId int) error {
	args := m.Called(eventId)
	return args.Error(0)
}
