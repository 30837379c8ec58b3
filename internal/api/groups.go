package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/groupspace/groupspace/internal/database"
	"github.com/groupspace/groupspace/internal/types"
)

type CreateGroupRequest struct {
	Name      string `json:"name"`
	CreatedBy int    `json:"created_by"`
	MemberIds []int  `json:"member_ids"`
}

type SendGroupMessageRequest struct {
	SenderId int    `json:"sender_id"`
	Content  string `json:"content"`
}

type AddGroupMemberRequest struct {
	UserId int `json:"user_id"`
}

func (s *GroupSpaceApp) listGroups(w http.ResponseWriter, r *http.Request) {
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

	dbGroups, err := s.db.ListGroupsForUser(userId)
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	groups := make([]types.Group, 0, len(dbGroups))
	for _, g := range dbGroups {
		groups = append(groups, types.Group{
			Id:          g.Id,
			Name:        g.Name,
			CreatedBy:   g.CreatedBy,
			CreatedAt:   g.CreatedAt,
			CreatorName: g.CreatorName,
		})
	}

	s.writeJson(w, http.StatusOK, groups)
}

func (s *GroupSpaceApp) createGroup(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.Name == "" || req.CreatedBy == 0 {
		errResp := NewBadRequestError("missing required fields")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	params := database.CreateGroupParams{
		Name:      req.Name,
		CreatedBy: req.CreatedBy,
		MemberIds: req.MemberIds,
	}

	newGroup, err := s.db.CreateGroup(params)
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusCreated, types.Group{
		Id:        newGroup.Id,
		Name:      newGroup.Name,
		CreatedBy: newGroup.CreatedBy,
		CreatedAt: newGroup.CreatedAt,
	})
}

// listGroupMessages returns the full history for a group. There is no
// membership check on the read side, only on send.
func (s *GroupSpaceApp) listGroupMessages(w http.ResponseWriter, r *http.Request) {
	groupId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	dbMessages, err := s.db.ListGroupMessages(groupId)
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	messages := make([]types.GroupMessage, 0, len(dbMessages))
	for _, msg := range dbMessages {
		messages = append(messages, types.GroupMessage{
			Id:         msg.Id,
			GroupId:    msg.GroupId,
			SenderId:   msg.SenderId,
			Content:    msg.Content,
			CreatedAt:  msg.CreatedAt,
			SenderName: msg.SenderName,
		})
	}

	s.writeJson(w, http.StatusOK, messages)
}

func (s *GroupSpaceApp) sendGroupMessage(w http.ResponseWriter, r *http.Request) {
	groupId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var req SendGroupMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.SenderId == 0 || req.Content == "" {
		errResp := NewBadRequestError("missing required fields")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if !s.db.IsGroupMember(groupId, req.SenderId) {
		errResp := NewForbiddenError("user is not a member of this group")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	msg, err := s.db.CreateGroupMessage(groupId, req.SenderId, req.Content)
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusCreated, types.GroupMessage{
		Id:         msg.Id,
		GroupId:    msg.GroupId,
		SenderId:   msg.SenderId,
		Content:    msg.Content,
		CreatedAt:  msg.CreatedAt,
		SenderName: msg.SenderName,
	})
}

func (s *GroupSpaceApp) listGroupMembers(w http.ResponseWriter, r *http.Request) {
	groupId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	dbMembers, err := s.db.ListGroupMembers(groupId)
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	members := make([]types.GroupMember, 0, len(dbMembers))
	for _, m := range dbMembers {
		members = append(members, types.GroupMember{
			Id:           m.Id,
			Name:         m.Name,
			EmailAddress: m.EmailAddress,
			Admin:        m.Admin,
		})
	}

	s.writeJson(w, http.StatusOK, members)
}

func (s *GroupSpaceApp) addGroupMember(w http.ResponseWriter, r *http.Request) {
	groupId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var req AddGroupMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.UserId == 0 {
		errResp := NewBadRequestError("missing user_id")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	// advisory pre-check; the composite primary key catches the race
	if s.db.IsGroupMember(groupId, req.UserId) {
		errResp := NewConflictError("user is already a member of this group")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if err := s.db.AddGroupMember(groupId, req.UserId); err != nil {
		var errResp *ApiError
		if database.IsUniqueViolation(err) {
			errResp = NewConflictError("user is already a member of this group")
		} else {
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusCreated, statusMessage{Message: "member added successfully"})
}

func (s *GroupSpaceApp) removeGroupMember(w http.ResponseWriter, r *http.Request) {
	groupId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	targetUserId, err := strconv.Atoi(r.PathValue("uid"))
	if err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	adminIdStr := r.URL.Query().Get("admin_id")
	if adminIdStr == "" {
		errResp := NewBadRequestError("missing admin_id parameter")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	adminId, err := strconv.Atoi(adminIdStr)
	if err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if !s.db.IsGroupAdmin(groupId, adminId) {
		errResp := NewForbiddenError("only group admins can remove members")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if err := s.db.RemoveGroupMember(groupId, targetUserId); err != nil {
		var errResp *ApiError
		if errors.Is(err, sql.ErrNoRows) {
			errResp = NewNotFoundError("member not found in group")
		} else {
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, statusMessage{Message: "member removed successfully"})
}
