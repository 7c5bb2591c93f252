package service

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"shopapi/pkg/domain/model"
	"shopapi/pkg/domain/store"
)

type Event interface {
	Type() string
}

type EventDispatcher interface {
	Dispatch(event Event) error
}

// UserSortField enumerates the fields ListUsers may sort by. Unrecognized
// sortBy values resolve to UserSortNone, which preserves insertion order.
type UserSortField int

const (
	UserSortNone UserSortField = iota
	UserSortUsername
	UserSortEmail
	UserSortFullName
)

func ParseUserSortField(s string) UserSortField {
	switch s {
	case "username":
		return UserSortUsername
	case "email":
		return UserSortEmail
	case "fullName":
		return UserSortFullName
	default:
		return UserSortNone
	}
}

type ListUsersQuery struct {
	Filter   string
	SortBy   UserSortField
	Page     int
	PageSize int
}

type UserPage struct {
	Users      []model.User
	TotalCount int
	Page       int
	PageSize   int
}

type UserService interface {
	CreateUser(data model.NewUser) (*model.User, error)
	GetUser(id uuid.UUID) (*model.User, error)
	UpdateUser(id uuid.UUID, patch model.UserPatch) (*model.User, error)
	DeleteUser(id uuid.UUID) (bool, error)
	ListUsers(q ListUsersQuery) (*UserPage, error)
}

func NewUserService(users *store.UserStore, dispatcher EventDispatcher) UserService {
	return &userService{
		users:      users,
		dispatcher: dispatcher,
	}
}

type userService struct {
	users      *store.UserStore
	dispatcher EventDispatcher
}

func (s *userService) CreateUser(data model.NewUser) (*model.User, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	user := model.User{
		ID:        uuid.New(),
		Username:  data.Username,
		Email:     data.Email,
		FullName:  data.FullName,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.users.Insert(user)

	_ = s.dispatcher.Dispatch(model.UserCreated{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})

	return &user, nil
}

func (s *userService) GetUser(id uuid.UUID) (*model.User, error) {
	user, ok := s.users.Get(id)
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return &user, nil
}

func (s *userService) UpdateUser(id uuid.UUID, patch model.UserPatch) (*model.User, error) {
	user, ok := s.users.Get(id)
	if !ok {
		return nil, model.ErrUserNotFound
	}

	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.FullName != nil {
		user.FullName = *patch.FullName
	}
	if patch.IsActive != nil {
		user.IsActive = *patch.IsActive
	}
	user.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	s.users.Put(user)

	_ = s.dispatcher.Dispatch(model.UserUpdated{UserID: id})
	return &user, nil
}

func (s *userService) DeleteUser(id uuid.UUID) (bool, error) {
	if _, ok := s.users.Get(id); !ok {
		return false, model.ErrUserNotFound
	}

	s.users.Delete(id)

	_ = s.dispatcher.Dispatch(model.UserDeleted{UserID: id})
	return true, nil
}

func (s *userService) ListUsers(q ListUsersQuery) (*UserPage, error) {
	all := s.users.All()

	filtered := all[:0:0]
	filter := strings.ToLower(q.Filter)
	for _, u := range all {
		if filter == "" || matchesUserFilter(u, filter) {
			filtered = append(filtered, u)
		}
	}

	if key := userSortKey(q.SortBy); key != nil {
		sort.SliceStable(filtered, func(i, j int) bool {
			return key(filtered[i]) < key(filtered[j])
		})
	}

	page := paginateUsers(filtered, q.Page, q.PageSize)
	return &UserPage{
		Users:      page,
		TotalCount: len(filtered),
		Page:       q.Page,
		PageSize:   q.PageSize,
	}, nil
}

func matchesUserFilter(u model.User, filter string) bool {
	return strings.Contains(strings.ToLower(u.Username), filter) ||
		strings.Contains(strings.ToLower(u.Email), filter) ||
		strings.Contains(strings.ToLower(u.FullName), filter)
}

func userSortKey(f UserSortField) func(model.User) string {
	switch f {
	case UserSortUsername:
		return func(u model.User) string { return u.Username }
	case UserSortEmail:
		return func(u model.User) string { return u.Email }
	case UserSortFullName:
		return func(u model.User) string { return u.FullName }
	default:
		return nil
	}
}

func paginateUsers(users []model.User, page, pageSize int) []model.User {
	start := (page - 1) * pageSize
	if start >= len(users) {
		return []model.User{}
	}
	end := start + pageSize
	if end > len(users) {
		end = len(users)
	}
	return users[start:end]
}
