package rest

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"shopapi/pkg/domain/model"
	"shopapi/pkg/domain/service"
	"shopapi/pkg/validate"
)

type userHandler struct {
	users service.UserService
}

type userJSON struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toUserJSON(u *model.User) userJSON {
	return userJSON{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.UTC().Format(model.TimestampLayout),
		UpdatedAt: u.UpdatedAt.UTC().Format(model.TimestampLayout),
	}
}

type listUsersResponse struct {
	Users      []userJSON `json:"users"`
	TotalCount int        `json:"totalCount"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
}

func (h *userHandler) getUser(w http.ResponseWriter, r *http.Request) {
	id, violations := validate.EntityID(mux.Vars(r)["id"], validate.JSONNames)
	if len(violations) > 0 {
		respondWithViolations(w, "GetUser", violations)
		return
	}

	user, err := h.users.GetUser(id)
	if err != nil {
		handleServiceError(w, "GetUser", err)
		return
	}
	respondWithJSON(w, http.StatusOK, toUserJSON(user))
}

type createUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	FullName *string `json:"fullName"`
}

func (h *userHandler) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	in := validate.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
	}
	if violations := validate.CreateUser(in, validate.JSONNames); len(violations) > 0 {
		respondWithViolations(w, "CreateUser", violations)
		return
	}

	user, err := h.users.CreateUser(model.NewUser{
		Username: *req.Username,
		Email:    *req.Email,
		FullName: *req.FullName,
	})
	if err != nil {
		handleServiceError(w, "CreateUser", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, toUserJSON(user))
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	FullName *string `json:"fullName"`
	IsActive *bool   `json:"isActive"`
}

func (h *userHandler) updateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	in := validate.UpdateUserInput{
		ID: mux.Vars(r)["id"],
		Data: &validate.UpdateUserData{
			Username: req.Username,
			Email:    req.Email,
			FullName: req.FullName,
			IsActive: req.IsActive,
		},
	}
	id, violations := validate.UpdateUser(in, validate.JSONNames)
	if len(violations) > 0 {
		respondWithViolations(w, "UpdateUser", violations)
		return
	}

	user, err := h.users.UpdateUser(id, model.UserPatch{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		IsActive: req.IsActive,
	})
	if err != nil {
		handleServiceError(w, "UpdateUser", err)
		return
	}
	respondWithJSON(w, http.StatusOK, toUserJSON(user))
}

func (h *userHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, violations := validate.EntityID(mux.Vars(r)["id"], validate.JSONNames)
	if len(violations) > 0 {
		respondWithViolations(w, "DeleteUser", violations)
		return
	}

	ok, err := h.users.DeleteUser(id)
	if err != nil {
		handleServiceError(w, "DeleteUser", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]bool{"success": ok})
}

func (h *userHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var parseViolations validate.Violations
	page := queryInt(q, "page", &parseViolations)
	pageSize := queryInt(q, "pageSize", &parseViolations)

	in := validate.ListUsersInput{
		SortBy:   queryString(q, "sortBy"),
		Filter:   queryString(q, "filter"),
		Page:     page,
		PageSize: pageSize,
	}
	violations := mergeViolations(parseViolations, validate.ListUsers(in, validate.JSONNames))
	if len(violations) > 0 {
		respondWithViolations(w, "ListUsers", violations)
		return
	}

	result, err := h.users.ListUsers(service.ListUsersQuery{
		Filter:   q.Get("filter"),
		SortBy:   service.ParseUserSortField(q.Get("sortBy")),
		Page:     int(*page),
		PageSize: int(*pageSize),
	})
	if err != nil {
		handleServiceError(w, "ListUsers", err)
		return
	}

	users := make([]userJSON, len(result.Users))
	for i := range result.Users {
		users[i] = toUserJSON(&result.Users[i])
	}
	respondWithJSON(w, http.StatusOK, listUsersResponse{
		Users:      users,
		TotalCount: result.TotalCount,
		Page:       result.Page,
		PageSize:   result.PageSize,
	})
}

func queryString(q url.Values, name string) *string {
	if !q.Has(name) {
		return nil
	}
	v := q.Get(name)
	return &v
}

// queryInt returns nil for an absent parameter, leaving the required check to
// the validator; an unparsable value is recorded as its own violation.
func queryInt(q url.Values, name string, violations *validate.Violations) *int64 {
	if !q.Has(name) || q.Get(name) == "" {
		return nil
	}
	v, err := strconv.ParseInt(q.Get(name), 10, 64)
	if err != nil {
		*violations = append(*violations, validate.NotAnInteger(name))
		return nil
	}
	return &v
}

// mergeViolations keeps parse failures and drops the validator's findings for
// the same fields, so one bad value is reported once.
func mergeViolations(parse, checked validate.Violations) validate.Violations {
	if len(parse) == 0 {
		return checked
	}
	bad := make(map[string]bool, len(parse))
	for _, v := range parse {
		bad[v.Path] = true
	}
	out := parse
	for _, v := range checked {
		if !bad[v.Path] {
			out = append(out, v)
		}
	}
	return out
}
