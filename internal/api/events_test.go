package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/groupspace/groupspace/internal/database"
	"github.com/groupspace/groupspace/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestCreateEventHandler(t *testing.T) {
	eventTime := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	mockEvent := database.Event{
		Id:             1,
		GroupId:        1,
		Title:          "summit day",
		Description:    "meet at the trailhead",
		EventTime:      eventTime,
		CreatedAt:      time.Now().UTC(),
		GroupName:      "hiking",
		UserStatus:     types.StatusAttending,
		AttendingCount: 3,
	}

	tcases := []struct {
		name         string
		body         CreateEventRequest
		isMember     *bool
		mockCall     bool
		mockErr      error
		expectedCode int
		expectedErr  string
	}{
		{
			name: "successful creation",
			body: CreateEventRequest{
				Title:       "summit day",
				Description: "meet at the trailhead",
				EventTime:   eventTime,
				CreatorId:   1,
			},
			isMember:     boolPtr(true),
			mockCall:     true,
			expectedCode: http.StatusCreated,
		},
		{
			name: "fails with missing title",
			body: CreateEventRequest{
				EventTime: eventTime,
				CreatorId: 1,
			},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "missing required fields",
		},
		{
			name: "fails with missing event time",
			body: CreateEventRequest{
				Title:     "summit day",
				CreatorId: 1,
			},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "missing required fields",
		},
		{
			name: "fails when creator is not a member",
			body: CreateEventRequest{
				Title:     "summit day",
				EventTime: eventTime,
				CreatorId: 5,
			},
			isMember:     boolPtr(false),
			expectedCode: http.StatusForbidden,
			expectedErr:  "user is not a member of this group",
		},
		{
			name: "fails with db error",
			body: CreateEventRequest{
				Title:     "summit day",
				EventTime: eventTime,
				CreatorId: 1,
			},
			isMember:     boolPtr(true),
			mockCall:     true,
			mockErr:      errors.New("db error"),
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &database.MockGroupSpaceRepository{}
			defer mockRepo.AssertExpectations(t)

			if tc.isMember != nil {
				mockRepo.On("IsGroupMember", 1, tc.body.CreatorId).Return(*tc.isMember).Once()
			}
			if tc.mockCall {
				params := database.CreateEventParams{
					GroupId:     1,
					Title:       tc.body.Title,
					Description: tc.body.Description,
					EventTime:   tc.body.EventTime,
					CreatorId:   tc.body.CreatorId,
				}
				var event database.Event
				if tc.mockErr == nil {
					event = mockEvent
				}
				mockRepo.On("CreateEvent", params).Return(event, tc.mockErr).Once()
			}

			app := newTestApp(t, mockRepo)

			body, err := json.Marshal(tc.body)
			assert.NoError(t, err)
			req := httptest.NewRequest(http.MethodPost, "/groups/1/events", bytes.NewBuffer(body))
			req.SetPathValue("id", "1")
			rr := httptest.NewRecorder()
			app.createEvent(rr, req)

			assert.Equal(t, tc.expectedCode, rr.Code)
			if tc.expectedCode == http.StatusCreated {
				var event types.Event
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&event))
				assert.Equal(t, mockEvent.Id, event.Id)
				assert.Equal(t, mockEvent.GroupName, event.GroupName)
				assert.Equal(t, types.StatusAttending, event.UserStatus)
				assert.Equal(t, mockEvent.AttendingCount, event.AttendingCount)
			} else if tc.expectedErr != "" {
				var apiErr ApiError
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&apiErr))
				assert.Equal(t, tc.expectedErr, apiErr.Message)
			}
		})
	}
}

func TestListUserEventsHandler(t *testing.T) {
	mockEvents := []database.Event{
		{Id: 1, GroupId: 1, Title: "summit day", GroupName: "hiking", UserStatus: types.StatusAttending, AttendingCount: 2},
	}

	tcases := []struct {
		name         string
		query        string
		mockCall     bool
		expectedCode int
		expectedErr  string
	}{
		{
			name:         "successful listing",
			query:        "?user_id=1",
			mockCall:     true,
			expectedCode: http.StatusOK,
		},
		{
			name:         "fails without user_id",
			query:        "",
			expectedCode: http.StatusBadRequest,
			expectedErr:  "missing user_id parameter",
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &database.MockGroupSpaceRepository{}
			defer mockRepo.AssertExpectations(t)

			if tc.mockCall {
				mockRepo.On("ListUserEvents", 1).Return(mockEvents, nil).Once()
			}

			app := newTestApp(t, mockRepo)

			req := httptest.NewRequest(http.MethodGet, "/events"+tc.query, nil)
			rr := httptest.NewRecorder()
			app.listUserEvents(rr, req)

			assert.Equal(t, tc.expectedCode, rr.Code)
			if tc.expectedCode == http.StatusOK {
				var events []types.Event
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&events))
				assert.Len(t, events, 1)
				assert.Equal(t, "hiking", events[0].GroupName)
			} else if tc.expectedErr != "" {
				var apiErr ApiError
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&apiErr))
				assert.Equal(t, tc.expectedErr, apiErr.Message)
			}
		})
	}
}

func TestListGroupEventsHandler(t *testing.T) {
	mockEvents := []database.Event{
		{Id: 1, GroupId: 1, Title: "summit day", UserStatus: types.StatusNotAttending, AttendingCount: 1},
	}

	tcases := []struct {
		name         string
		query        string
		isMember     *bool
		mockCall     bool
		expectedCode int
		expectedErr  string
	}{
		{
			name:         "successful listing",
			query:        "?user_id=1",
			isMember:     boolPtr(true),
			mockCall:     true,
			expectedCode: http.StatusOK,
		},
		{
			name:         "fails without user_id",
			query:        "",
			expectedCode: http.StatusBadRequest,
			expectedErr:  "missing user_id parameter",
		},
		{
			name:         "fails when user is not a member",
			query:        "?user_id=1",
			isMember:     boolPtr(false),
			expectedCode: http.StatusForbidden,
			expectedErr:  "user is not a member of this group",
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &database.MockGroupSpaceRepository{}
			defer mockRepo.AssertExpectations(t)

			if tc.isMember != nil {
				mockRepo.On("IsGroupMember", 1, 1).Return(*tc.isMember).Once()
			}
			if tc.mockCall {
				mockRepo.On("ListGroupEvents", 1, 1).Return(mockEvents, nil).Once()
			}

			app := newTestApp(t, mockRepo)

			req := httptest.NewRequest(http.MethodGet, "/groups/1/events"+tc.query, nil)
			req.SetPathValue("id", "1")
			rr := httptest.NewRecorder()
			app.listGroupEvents(rr, req)

			assert.Equal(t, tc.expectedCode, rr.Code)
			if tc.expectedCode == http.StatusOK {
				var events []types.Event
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&events))
				assert.Len(t, events, 1)
				assert.Equal(t, types.StatusNotAttending, events[0].UserStatus)
			} else if tc.expectedErr != "" {
				var apiErr ApiError
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&apiErr))
				assert.Equal(t, tc.expectedErr, apiErr.Message)
			}
		})
	}
}

func TestListEventParticipantsHandler(t *testing.T) {
	mockParticipants := []database.EventParticipant{
		{Id: 1, Name: "Alice", EmailAddress: "alice@example.com", Status: types.StatusAttending},
		{Id: 2, Name: "Bob", EmailAddress: "bob@example.com", Status: types.StatusNotAttending},
	}

	mockRepo := &database.MockGroupSpaceRepository{}
	defer mockRepo.AssertExpectations(t)
	mockRepo.On("ListEventParticipants", 1).Return(mockParticipants, nil).Once()

	app := newTestApp(t, mockRepo)

	req := httptest.NewRequest(http.MethodGet, "/events/1/participants", nil)
	req.SetPathValue("id", "1")
	rr := httptest.NewRecorder()
	app.listEventParticipants(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var participants []types.EventParticipant
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&participants))
	assert.Len(t, participants, 2)
	assert.Equal(t, types.StatusAttending, participants[0].Status)
	assert.Equal(t, types.StatusNotAttending, participants[1].Status)
}

func TestUpdateParticipantStatusHandler(t *testing.T) {
	tcases := []struct {
		name         string
		body         UpdateStatusRequest
		mockCall     bool
		mockErr      error
		expectedCode int
		expectedErr  string
	}{
		{
			name:         "successful update",
			body:         UpdateStatusRequest{UserId: 1, Status: types.StatusNotAttending},
			mockCall:     true,
			expectedCode: http.StatusOK,
		},
		{
			name:         "fails with missing fields",
			body:         UpdateStatusRequest{UserId: 1},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "missing required fields",
		},
		{
			name:         "fails with invalid status",
			body:         UpdateStatusRequest{UserId: 1, Status: "maybe"},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "invalid status value",
		},
		{
			name:         "fails when user is not a participant",
			body:         UpdateStatusRequest{UserId: 1, Status: types.StatusAttending},
			mockCall:     true,
			mockErr:      sql.ErrNoRows,
			expectedCode: http.StatusNotFound,
			expectedErr:  "participant not found for this event",
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &database.MockGroupSpaceRepository{}
			defer mockRepo.AssertExpectations(t)

			if tc.mockCall {
				mockRepo.On("UpdateParticipantStatus", 1, tc.body.UserId, tc.body.Status).Return(tc.mockErr).Once()
			}

			app := newTestApp(t, mockRepo)

			body, err := json.Marshal(tc.body)
			assert.NoError(t, err)
			req := httptest.NewRequest(http.MethodPut, "/events/1/status", bytes.NewBuffer(body))
			req.SetPathValue("id", "1")
			rr := httptest.NewRecorder()
			app.updateParticipantStatus(rr, req)

			assert.Equal(t, tc.expectedCode, rr.Code)
			if tc.expectedCode == http.StatusOK {
				assert.Contains(t, rr.Body.String(), "status updated successfully")
			} else if tc.expectedErr != "" {
				var apiErr ApiError
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&apiErr))
				assert.Equal(t, tc.expectedErr, apiErr.Message)
			}
		})
	}
}

func TestDeleteEventHandler(t *testing.T) {
	mockEvent := database.Event{Id: 1, GroupId: 7, Title: "summit day"}

	tcases := []struct {
		name         string
		query        string
		getEventErr  error
		isAdmin      *bool
		mockDelete   bool
		expectedCode int
		expectedErr  string
	}{
		{
			name:         "successful delete",
			query:        "?user_id=1",
			isAdmin:      boolPtr(true),
			mockDelete:   true,
			expectedCode: http.StatusOK,
		},
		{
			name:         "fails without user_id",
			query:        "",
			expectedCode: http.StatusBadRequest,
			expectedErr:  "missing user_id parameter",
		},
		{
			name:         "fails when event does not exist",
			query:        "?user_id=1",
			getEventErr:  sql.ErrNoRows,
			expectedCode: http.StatusNotFound,
			expectedErr:  "event not found",
		},
		{
			name:         "fails when requester is not an admin",
			query:        "?user_id=1",
			isAdmin:      boolPtr(false),
			expectedCode: http.StatusForbidden,
			expectedErr:  "only group admins can delete events",
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &database.MockGroupSpaceRepository{}
			defer mockRepo.AssertExpectations(t)

			if tc.getEventErr != nil {
				mockRepo.On("GetEvent", 1).Return(database.Event{}, tc.getEventErr).Once()
			} else if tc.isAdmin != nil {
				mockRepo.On("GetEvent", 1).Return(mockEvent, nil).Once()
				mockRepo.On("IsGroupAdmin", mockEvent.GroupId, 1).Return(*tc.isAdmin).Once()
			}
			if tc.mockDelete {
				mockRepo.On("DeleteEvent", 1).Return(nil).Once()
			}

			app := newTestApp(t, mockRepo)

			req := httptest.NewRequest(http.MethodDelete, "/events/1"+tc.query, nil)
			req.SetPathValue("id", "1")
			rr := httptest.NewRecorder()
			app.deleteEvent(rr, req)

			assert.Equal(t, tc.expectedCode, rr.Code)
			if tc.expectedCode == http.StatusOK {
				assert.Contains(t, rr.Body.String(), "event deleted successfully")
			} else if tc.expectedErr != "" {
				var apiErr ApiError
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&apiErr))
				assert.Equal(t, tc.expectedErr, apiErr.Message)
			}
		})
	}
}
