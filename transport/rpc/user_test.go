package rpc

import (
	"context"
	"testing"

	"github.com/golang/protobuf/ptypes/wrappers"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"shopapi/pkg/domain/service"
	"shopapi/pkg/domain/store"
	"shopapi/transport/rpc/pb"
)

type noopDispatcher struct{}

func (noopDispatcher) Dispatch(service.Event) error { return nil }

func newUserServer() *UserServer {
	users := service.NewUserService(store.NewUserStore(), noopDispatcher{})
	return NewUserServer(users)
}

func mustCreateUser(t *testing.T, s *UserServer, username, email, fullName string) *pb.User {
	t.Helper()
	resp, err := s.CreateUser(context.Background(), &pb.CreateUserRequest{
		Username: username,
		Email:    email,
		FullName: fullName,
	})
	require.NoError(t, err)
	return resp.GetUser()
}

func requireStatus(t *testing.T, err error, code codes.Code) *status.Status {
	t.Helper()
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok)
	require.Equal(t, code, st.Code())
	return st
}

func TestUserServerCreateUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s := newUserServer()
		resp, err := s.CreateUser(context.Background(), &pb.CreateUserRequest{
			Username: "alice",
			Email:    "alice@example.com",
			FullName: "Alice Smith",
		})

		require.NoError(t, err)
		user := resp.GetUser()
		require.NotNil(t, user)
		require.NoError(t, uuid.Validate(user.GetId()))
		assert.Equal(t, "alice", user.GetUsername())
		assert.True(t, user.GetIsActive())
		assert.Equal(t, user.GetCreatedAt(), user.GetUpdatedAt())
	})

	tests := []struct {
		name   string
		req    *pb.CreateUserRequest
		detail string
	}{
		{
			name:   "empty username",
			req:    &pb.CreateUserRequest{Email: "a@example.com", FullName: "A"},
			detail: "Invalid request parameters: username: username is required",
		},
		{
			name:   "short username",
			req:    &pb.CreateUserRequest{Username: "ab", Email: "a@example.com", FullName: "A"},
			detail: "Invalid request parameters: username: username must be at least 3 characters",
		},
		{
			name:   "bad email",
			req:    &pb.CreateUserRequest{Username: "alice", Email: "nope", FullName: "A"},
			detail: "Invalid request parameters: email: email must be a valid email address",
		},
		{
			name: "everything missing",
			req:  &pb.CreateUserRequest{},
			detail: "Invalid request parameters: username: username is required, " +
				"email: email is required, full_name: full_name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newUserServer()
			_, err := s.CreateUser(context.Background(), tt.req)
			st := requireStatus(t, err, codes.InvalidArgument)
			assert.Equal(t, tt.detail, st.Message())
		})
	}
}

func TestUserServerGetUser(t *testing.T) {
	s := newUserServer()
	created := mustCreateUser(t, s, "alice", "alice@example.com", "Alice Smith")

	t.Run("success", func(t *testing.T) {
		resp, err := s.GetUser(context.Background(), &pb.GetUserRequest{Id: created.GetId()})
		require.NoError(t, err)
		assert.Equal(t, created.GetUsername(), resp.GetUser().GetUsername())
		assert.Equal(t, created.GetCreatedAt(), resp.GetUser().GetCreatedAt())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := s.GetUser(context.Background(), &pb.GetUserRequest{Id: uuid.NewString()})
		st := requireStatus(t, err, codes.NotFound)
		assert.Equal(t, "user not found", st.Message())
	})

	t.Run("bad id", func(t *testing.T) {
		_, err := s.GetUser(context.Background(), &pb.GetUserRequest{Id: "nope"})
		st := requireStatus(t, err, codes.InvalidArgument)
		assert.Equal(t, "Invalid request parameters: id: id must be a valid UUID v4", st.Message())
	})
}

func TestUserServerUpdateUser(t *testing.T) {
	t.Run("patches given fields only", func(t *testing.T) {
		s := newUserServer()
		created := mustCreateUser(t, s, "bob", "bob@example.com", "Bob Johnson")

		resp, err := s.UpdateUser(context.Background(), &pb.UpdateUserRequest{
			Id: created.GetId(),
			Data: &pb.UpdateUserData{
				Username: "bobby",
				IsActive: &wrappers.BoolValue{Value: false},
			},
		})

		require.NoError(t, err)
		user := resp.GetUser()
		assert.Equal(t, "bobby", user.GetUsername())
		assert.Equal(t, created.GetEmail(), user.GetEmail())
		assert.False(t, user.GetIsActive())
		assert.Equal(t, created.GetCreatedAt(), user.GetCreatedAt())
	})

	t.Run("missing data", func(t *testing.T) {
		s := newUserServer()
		created := mustCreateUser(t, s, "bob", "bob@example.com", "Bob Johnson")

		_, err := s.UpdateUser(context.Background(), &pb.UpdateUserRequest{Id: created.GetId()})
		st := requireStatus(t, err, codes.InvalidArgument)
		assert.Equal(t, "Invalid request parameters: data: data is required", st.Message())
	})

	t.Run("nested violations carry the data prefix", func(t *testing.T) {
		s := newUserServer()
		created := mustCreateUser(t, s, "bob", "bob@example.com", "Bob Johnson")

		_, err := s.UpdateUser(context.Background(), &pb.UpdateUserRequest{
			Id:   created.GetId(),
			Data: &pb.UpdateUserData{Username: "ab", Email: "nope"},
		})
		st := requireStatus(t, err, codes.InvalidArgument)
		assert.Equal(t, "Invalid request parameters: "+
			"data.username: username must be at least 3 characters, "+
			"data.email: email must be a valid email address", st.Message())
	})

	t.Run("not found", func(t *testing.T) {
		s := newUserServer()
		_, err := s.UpdateUser(context.Background(), &pb.UpdateUserRequest{
			Id:   uuid.NewString(),
			Data: &pb.UpdateUserData{Username: "nobody"},
		})
		requireStatus(t, err, codes.NotFound)
	})
}

func TestUserServerDeleteUser(t *testing.T) {
	s := newUserServer()
	created := mustCreateUser(t, s, "charlie", "charlie@example.com", "Charlie Brown")

	resp, err := s.DeleteUser(context.Background(), &pb.DeleteUserRequest{Id: created.GetId()})
	require.NoError(t, err)
	assert.True(t, resp.GetSuccess())

	_, err = s.GetUser(context.Background(), &pb.GetUserRequest{Id: created.GetId()})
	requireStatus(t, err, codes.NotFound)

	_, err = s.DeleteUser(context.Background(), &pb.DeleteUserRequest{Id: created.GetId()})
	requireStatus(t, err, codes.NotFound)
}

func TestUserServerListUsers(t *testing.T) {
	s := newUserServer()
	mustCreateUser(t, s, "alice", "alice@example.com", "Alice Smith")
	mustCreateUser(t, s, "bob", "bob@example.com", "Bob Johnson")
	mustCreateUser(t, s, "charlie", "charlie@example.com", "Charlie Brown")

	t.Run("insertion order by default", func(t *testing.T) {
		resp, err := s.ListUsers(context.Background(), &pb.ListUsersRequest{Page: 1, PageSize: 10})
		require.NoError(t, err)
		require.Len(t, resp.GetUsers(), 3)
		assert.Equal(t, int32(3), resp.GetTotalCount())
		assert.Equal(t, "alice", resp.GetUsers()[0].GetUsername())
	})

	t.Run("filter with sort and paging", func(t *testing.T) {
		resp, err := s.ListUsers(context.Background(), &pb.ListUsersRequest{
			Filter: "example.com", SortBy: "username", Page: 2, PageSize: 2,
		})
		require.NoError(t, err)
		require.Len(t, resp.GetUsers(), 1)
		assert.Equal(t, int32(3), resp.GetTotalCount())
		assert.Equal(t, "charlie", resp.GetUsers()[0].GetUsername())
	})

	t.Run("missing pagination is rejected", func(t *testing.T) {
		_, err := s.ListUsers(context.Background(), &pb.ListUsersRequest{})
		st := requireStatus(t, err, codes.InvalidArgument)
		assert.Equal(t, "Invalid request parameters: "+
			"page: page must be at least 1, page_size: page_size must be at least 1", st.Message())
	})
}
