package grpc

import (
	"context"

	"github.com/dmitrijs2005/guialocal/internal/api"
	"github.com/dmitrijs2005/guialocal/internal/roles"
	"github.com/dmitrijs2005/guialocal/internal/server/models"
	"github.com/dmitrijs2005/guialocal/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) SignUp(ctx context.Context, req *api.SignUpRequest) (*api.SignUpResponse, error) {
	identity, err := s.auth.SignUp(ctx, req.Email, req.Password, req.Metadata)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	s.logger.Info(ctx, "Registered", "user_id", identity.ID)
	return &api.SignUpResponse{User: toAPIUser(identity)}, nil
}

func (s *GRPCServer) SignIn(ctx context.Context, req *api.SignInRequest) (*api.SignInResponse, error) {
	res, err := s.auth.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.SignInResponse{Session: toAPISession(res)}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.RefreshTokenResponse, error) {
	res, err := s.auth.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.RefreshTokenResponse{Session: toAPISession(res)}, nil
}

func (s *GRPCServer) SignOut(ctx context.Context, req *api.SignOutRequest) (*api.SignOutResponse, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.auth.SignOut(ctx, claims.SessionID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.SignOutResponse{}, nil
}

func (s *GRPCServer) GetSession(ctx context.Context, req *api.GetSessionRequest) (*api.GetSessionResponse, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	res, err := s.auth.GetSession(ctx, claims)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.GetSessionResponse{Session: toAPISession(res)}, nil
}

func (s *GRPCServer) GetProfile(ctx context.Context, req *api.GetProfileRequest) (*api.ProfileResponse, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	userID := req.UserID
	if userID == "" {
		userID = claims.UserID
	}
	p, err := s.profiles.Get(ctx, claims.UserID, userID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.ProfileResponse{Profile: toAPIProfile(p)}, nil
}

func (s *GRPCServer) CreateProfile(ctx context.Context, req *api.CreateProfileRequest) (*api.ProfileResponse, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	in := req.Profile
	if in.UserID == "" {
		in.UserID = claims.UserID
	}
	p, err := s.profiles.CreateOwn(ctx, claims.UserID, &models.Profile{
		UserID:      in.UserID,
		DisplayName: in.DisplayName,
		Email:       in.Email,
		Phone:       in.Phone,
		AccountType: roles.Role(in.AccountType),
		CityID:      in.CityID,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.ProfileResponse{Profile: toAPIProfile(p)}, nil
}

func (s *GRPCServer) UpdateOwnProfile(ctx context.Context, req *api.UpdateOwnProfileRequest) (*api.ProfileResponse, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.profiles.UpdateOwn(ctx, claims.UserID, req.DisplayName, req.Phone, req.CityID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.ProfileResponse{Profile: toAPIProfile(p)}, nil
}

func (s *GRPCServer) SetAccountType(ctx context.Context, req *api.SetAccountTypeRequest) (*api.ProfileResponse, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	role, err := roles.Parse(req.AccountType)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	p, err := s.profiles.SetAccountType(ctx, claims.UserID, req.UserID, role)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	s.logger.Info(ctx, "Account type changed", "actor", claims.UserID, "target", req.UserID, "role", role.String())
	return &api.ProfileResponse{Profile: toAPIProfile(p)}, nil
}

func (s *GRPCServer) CreateUser(ctx context.Context, req *api.CreateUserRequest) (*api.ProfileResponse, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.profiles.CreateUser(ctx, claims.UserID, services.NewUser{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		AccountType: roles.Role(req.AccountType),
		CityID:      req.CityID,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.ProfileResponse{Profile: toAPIProfile(p)}, nil
}

func (s *GRPCServer) DeleteUser(ctx context.Context, req *api.DeleteUserRequest) (*api.DeleteUserResponse, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.profiles.Delete(ctx, claims.UserID, req.UserID); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	s.logger.Info(ctx, "User deleted", "actor", claims.UserID, "target", req.UserID)
	return &api.DeleteUserResponse{}, nil
}

func (s *GRPCServer) ListProfiles(ctx context.Context, req *api.ListProfilesRequest) (*api.ListProfilesResponse, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.profiles.List(ctx, claims.UserID, models.ProfileFilter{
		AccountType: roles.Role(req.AccountType),
		CityID:      req.CityID,
		Limit:       req.Limit,
		Offset:      req.Offset,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	out := make([]api.Profile, 0, len(list))
	for _, p := range list {
		out = append(out, toAPIProfile(p))
	}
	return &api.ListProfilesResponse{Profiles: out}, nil
}

func (s *GRPCServer) PresignAvatarUpload(ctx context.Context, req *api.PresignAvatarUploadRequest) (*api.PresignAvatarUploadResponse, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	url, key, err := s.avatars.PresignUpload(ctx, claims.UserID, req.ContentType)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.PresignAvatarUploadResponse{URL: url, Key: key}, nil
}
