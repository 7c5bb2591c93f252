package rpc

import (
	"context"

	"shopapi/pkg/domain/model"
	"shopapi/pkg/domain/service"
	"shopapi/pkg/validate"
	"shopapi/transport/rpc/pb"
)

type UserServer struct {
	pb.UnimplementedUserServiceServer
	users service.UserService
}

func NewUserServer(users service.UserService) *UserServer {
	return &UserServer{users: users}
}

func (s *UserServer) GetUser(ctx context.Context, req *pb.GetUserRequest) (*pb.GetUserResponse, error) {
	id, violations := validate.EntityID(req.GetId(), validate.ProtoNames)
	if len(violations) > 0 {
		return nil, invalidArgument("GetUser", violations)
	}

	user, err := s.users.GetUser(id)
	if err != nil {
		return nil, serviceError("GetUser", err)
	}
	return &pb.GetUserResponse{User: toPBUser(user)}, nil
}

func (s *UserServer) CreateUser(ctx context.Context, req *pb.CreateUserRequest) (*pb.CreateUserResponse, error) {
	in := validate.CreateUserInput{
		Username: optStr(req.GetUsername()),
		Email:    optStr(req.GetEmail()),
		FullName: optStr(req.GetFullName()),
	}
	if violations := validate.CreateUser(in, validate.ProtoNames); len(violations) > 0 {
		return nil, invalidArgument("CreateUser", violations)
	}

	user, err := s.users.CreateUser(model.NewUser{
		Username: req.GetUsername(),
		Email:    req.GetEmail(),
		FullName: req.GetFullName(),
	})
	if err != nil {
		return nil, serviceError("CreateUser", err)
	}
	return &pb.CreateUserResponse{User: toPBUser(user)}, nil
}

func (s *UserServer) UpdateUser(ctx context.Context, req *pb.UpdateUserRequest) (*pb.UpdateUserResponse, error) {
	in := validate.UpdateUserInput{ID: req.GetId()}
	if d := req.GetData(); d != nil {
		in.Data = &validate.UpdateUserData{
			Username: optStr(d.GetUsername()),
			Email:    optStr(d.GetEmail()),
			FullName: optStr(d.GetFullName()),
		}
		if d.GetIsActive() != nil {
			active := d.GetIsActive().GetValue()
			in.Data.IsActive = &active
		}
	}

	id, violations := validate.UpdateUser(in, validate.ProtoNames)
	if len(violations) > 0 {
		return nil, invalidArgument("UpdateUser", violations)
	}

	user, err := s.users.UpdateUser(id, model.UserPatch{
		Username: in.Data.Username,
		Email:    in.Data.Email,
		FullName: in.Data.FullName,
		IsActive: in.Data.IsActive,
	})
	if err != nil {
		return nil, serviceError("UpdateUser", err)
	}
	return &pb.UpdateUserResponse{User: toPBUser(user)}, nil
}

func (s *UserServer) DeleteUser(ctx context.Context, req *pb.DeleteUserRequest) (*pb.DeleteUserResponse, error) {
	id, violations := validate.EntityID(req.GetId(), validate.ProtoNames)
	if len(violations) > 0 {
		return nil, invalidArgument("DeleteUser", violations)
	}

	ok, err := s.users.DeleteUser(id)
	if err != nil {
		return nil, serviceError("DeleteUser", err)
	}
	return &pb.DeleteUserResponse{Success: ok}, nil
}

func (s *UserServer) ListUsers(ctx context.Context, req *pb.ListUsersRequest) (*pb.ListUsersResponse, error) {
	page := int64(req.GetPage())
	pageSize := int64(req.GetPageSize())
	in := validate.ListUsersInput{
		SortBy:   optStr(req.GetSortBy()),
		Filter:   optStr(req.GetFilter()),
		Page:     &page,
		PageSize: &pageSize,
	}
	if violations := validate.ListUsers(in, validate.ProtoNames); len(violations) > 0 {
		return nil, invalidArgument("ListUsers", violations)
	}

	result, err := s.users.ListUsers(service.ListUsersQuery{
		Filter:   req.GetFilter(),
		SortBy:   service.ParseUserSortField(req.GetSortBy()),
		Page:     int(req.GetPage()),
		PageSize: int(req.GetPageSize()),
	})
	if err != nil {
		return nil, serviceError("ListUsers", err)
	}

	users := make([]*pb.User, len(result.Users))
	for i := range result.Users {
		users[i] = toPBUser(&result.Users[i])
	}
	return &pb.ListUsersResponse{
		Users:      users,
		TotalCount: int32(result.TotalCount),
		Page:       int32(result.Page),
		PageSize:   int32(result.PageSize),
	}, nil
}
