package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/groupspace/groupspace/internal/types"
)

type SendMessageRequest struct {
	SenderId    int    `json:"sender_id"`
	RecipientId int    `json:"recipient_id"`
	Content     string `json:"content"`
}

func (s *GroupSpaceApp) listConversation(w http.ResponseWriter, r *http.Request) {
	userIdStr := r.URL.Query().Get("user_id")
	otherUserIdStr := r.URL.Query().Get("other_user_id")
	if userIdStr == "" || otherUserIdStr == "" {
		errResp := NewBadRequestError("missing user_id or other_user_id")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	userId, err := strconv.Atoi(userIdStr)
	if err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	otherUserId, err := strconv.Atoi(otherUserIdStr)
	if err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	dbMessages, err := s.db.ListConversation(userId, otherUserId)
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	messages := make([]types.Message, 0, len(dbMessages))
	for _, msg := range dbMessages {
		messages = append(messages, types.Message{
			Id:          msg.Id,
			SenderId:    msg.SenderId,
			RecipientId: msg.RecipientId,
			Content:     msg.Content,
			CreatedAt:   msg.CreatedAt,
			SenderName:  msg.SenderName,
		})
	}

	s.writeJson(w, http.StatusOK, messages)
}

// sendMessage persists a direct message. Recipient existence is not
// verified, nor is sender != recipient.
func (s *GroupSpaceApp) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError("no message data provided")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.SenderId == 0 || req.RecipientId == 0 || req.Content == "" {
		errResp := NewBadRequestError("missing required fields")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	msg, err := s.db.CreateMessage(req.SenderId, req.RecipientId, req.Content)
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusCreated, types.Message{
		Id:          msg.Id,
		SenderId:    msg.SenderId,
		RecipientId: msg.RecipientId,
		Content:     msg.Content,
		CreatedAt:   msg.CreatedAt,
		SenderName:  msg.SenderName,
	})
}
