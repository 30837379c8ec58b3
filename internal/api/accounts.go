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

type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateAccountRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type statusMessage struct {
	Message string `json:"message"`
}

func (s *GroupSpaceApp) listUsers(w http.ResponseWriter, _ *http.Request) {
	dbUsers, err := s.db.ListUsers()
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	users := make([]types.User, 0, len(dbUsers))
	for _, u := range dbUsers {
		users = append(users, types.User{
			Id:           u.Id,
			Name:         u.Name,
			Username:     u.Username,
			EmailAddress: u.EmailAddress,
		})
	}

	s.writeJson(w, http.StatusOK, users)
}

func (s *GroupSpaceApp) createUser(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.Name == "" || req.Username == "" || req.Password == "" || req.Email == "" {
		errResp := NewBadRequestError("missing required fields")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	pwdHash, err := hashPassword(req.Password)
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	params := database.CreateUserParams{
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: pwdHash,
		EmailAddress: req.Email,
	}

	newUser, err := s.db.CreateUser(params)
	if err != nil {
		var errResp *ApiError
		if database.IsUniqueViolation(err) {
			errResp = NewConflictError("username already exists")
		} else {
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusCreated, types.User{
		Id:           newUser.Id,
		Name:         newUser.Name,
		Username:     newUser.Username,
		EmailAddress: newUser.EmailAddress,
	})
}

func (s *GroupSpaceApp) login(w http.ResponseWriter, r *http.Request) {
	var lr LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&lr); err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if lr.Username == "" || lr.Password == "" {
		errResp := NewBadRequestError("missing required fields")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	dbUser, err := s.db.GetUserByUsername(lr.Username)
	if err != nil {
		var errResp *ApiError
		if errors.Is(err, sql.ErrNoRows) {
			errResp = NewNotFoundError("user not found")
		} else {
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if !verifyPassword(dbUser.PasswordHash, lr.Password) {
		errResp := NewUnauthorizedError("invalid password")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	u := types.User{
		Id:           dbUser.Id,
		Name:         dbUser.Name,
		Username:     dbUser.Username,
		EmailAddress: dbUser.EmailAddress,
	}

	token, err := s.createJwtForSession(u, defaultJwtExpiration)
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	http.SetCookie(w, createJwtCookie(token, defaultJwtExpiration))

	s.writeJson(w, http.StatusOK, u)
}

func (s *GroupSpaceApp) updateUser(w http.ResponseWriter, r *http.Request) {
	userId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var req UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	params := database.UpdateUserParams{
		UserId:       userId,
		Name:         req.Name,
		EmailAddress: req.Email,
	}

	if err := s.db.UpdateUser(params); err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, statusMessage{Message: "user updated successfully"})
}

func (s *GroupSpaceApp) deleteUser(w http.ResponseWriter, r *http.Request) {
	userId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if err := s.db.DeleteUser(userId); err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, statusMessage{Message: "user deleted successfully"})
}

func (s *GroupSpaceApp) searchUsers(w http.ResponseWriter, r *http.Request) {
	currentUserIdStr := r.URL.Query().Get("current_user_id")
	if currentUserIdStr == "" {
		errResp := NewBadRequestError("missing current_user_id parameter")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	currentUserId, err := strconv.Atoi(currentUserIdStr)
	if err != nil {
		errResp := NewBadRequestError("")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	params := database.SearchUsersParams{
		Query:         r.URL.Query().Get("query"),
		ExcludeUserId: currentUserId,
		ShowAll:       r.URL.Query().Get("show_all") == "true",
	}

	dbUsers, err := s.db.SearchUsers(params)
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	users := make([]types.User, 0, len(dbUsers))
	for _, u := range dbUsers {
		users = append(users, types.User{
			Id:           u.Id,
			Name:         u.Name,
			Username:     u.Username,
			EmailAddress: u.EmailAddress,
		})
	}

	s.writeJson(w, http.StatusOK, users)
}
