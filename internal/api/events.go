package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/groupspace/groupspace/internal/database"
	"github.com/groupspace/groupspace/internal/types"
)

type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventTime   time.Time `json:"event_time"`
	CreatorId   int       `json:"creator_id"`
}

type UpdateStatusRequest struct {
	UserId int    `json:"user_id"`
	Status string `json:"status"`
}

func eventResponse(e database.Event) types.Event {
	return types.Event{
		Id:             e.Id,
		GroupId:        e.GroupId,
		Title:          e.Title,
		Description:    e.Description,
		EventTime:      e.EventTime,
		CreatedAt:      e.CreatedAt,
		GroupName:      e.GroupName,
		UserStatus:     e.UserStatus,
		AttendingCount: e.AttendingCount,
	}
}

// createEvent schedules an event for a group. All current members are
// seeded as attending, a snapshot taken at creation time.
func (s *GroupSpaceApp) createEvent(w http.ResponseWriter, r *http.Request) {
	groupId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.Title == "" || req.EventTime.IsZero() || req.CreatorId == 0 {
		errResp := NewBadRequestError("missing required fields")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if !s.db.IsGroupMember(groupId, req.CreatorId) {
		errResp := NewForbiddenError("user is not a member of this group")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	params := database.CreateEventParams{
		GroupId:     groupId,
		Title:       req.Title,
		Description: req.Description,
		EventTime:   req.EventTime,
		CreatorId:   req.CreatorId,
	}

	newEvent, err := s.db.CreateEvent(params)
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusCreated, eventResponse(newEvent))
}

func (s *GroupSpaceApp) listUserEvents(w http.ResponseWriter, r *http.Request) {
	userIdStr := r.URL.Query().Get("user_id")
	if userIdStr == "" {
		errResp := NewBadRequestError("missing user_id parameter")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	userId, err := strconv.Atoi(userIdStr)
	if err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	dbEvents, err := s.db.ListUserEvents(userId)
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	events := make([]types.Event, 0, len(dbEvents))
	for _, e := range dbEvents {
		events = append(events, eventResponse(e))
	}

	s.writeJson(w, http.StatusOK, events)
}

func (s *GroupSpaceApp) listGroupEvents(w http.ResponseWriter, r *http.Request) {
	groupId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	userIdStr := r.URL.Query().Get("user_id")
	if userIdStr == "" {
		errResp := NewBadRequestError("missing user_id parameter")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	userId, err := strconv.Atoi(userIdStr)
	if err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if !s.db.IsGroupMember(groupId, userId) {
		errResp := NewForbiddenError("user is not a member of this group")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	dbEvents, err := s.db.ListGroupEvents(groupId, userId)
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	events := make([]types.Event, 0, len(dbEvents))
	for _, e := range dbEvents {
		events = append(events, eventResponse(e))
	}

	s.writeJson(w, http.StatusOK, events)
}

func (s *GroupSpaceApp) listEventParticipants(w http.ResponseWriter, r *http.Request) {
	eventId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	dbParticipants, err := s.db.ListEventParticipants(eventId)
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	participants := make([]types.EventParticipant, 0, len(dbParticipants))
	for _, p := range dbParticipants {
		participants = append(participants, types.EventParticipant{
			Id:           p.Id,
			Name:         p.Name,
			EmailAddress: p.EmailAddress,
			Status:       p.Status,
		})
	}

	s.writeJson(w, http.StatusOK, participants)
}

func (s *GroupSpaceApp) updateParticipantStatus(w http.ResponseWriter, r *http.Request) {
	eventId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.UserId == 0 || req.Status == "" {
		errResp := NewBadRequestError("missing required fields")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.Status != types.StatusAttending && req.Status != types.StatusNotAttending {
		errResp := NewBadRequestError("invalid status value")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if err := s.db.UpdateParticipantStatus(eventId, req.UserId, req.Status); err != nil {
		var errResp *ApiError
		if errors.Is(err, sql.ErrNoRows) {
			errResp = NewNotFoundError("participant not found for this event")
		} else {
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, statusMessage{Message: "status updated successfully"})
}

func (s *GroupSpaceApp) deleteEvent(w http.ResponseWriter, r *http.Request) {
	eventId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	userIdStr := r.URL.Query().Get("user_id")
	if userIdStr == "" {
		errResp := NewBadRequestError("missing user_id parameter")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	userId, err := strconv.Atoi(userIdStr)
	if err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	event, err := s.db.GetEvent(eventId)
	if err != nil {
		var errResp *ApiError
		if errors.Is(err, sql.ErrNoRows) {
			errResp = NewNotFoundError("event not found")
		} else {
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if !s.db.IsGroupAdmin(event.GroupId, userId) {
		errResp := NewForbiddenError("only group admins can delete events")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if err := s.db.DeleteEvent(eventId); err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, statusMessage{Message: "event deleted successfully"})
}
