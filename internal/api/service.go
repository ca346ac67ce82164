package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "guialocal.v1.DirectoryService"

const (
	DirectoryService_Ping_FullMethodName                = "/" + ServiceName + "/Ping"
	DirectoryService_SignUp_FullMethodName              = "/" + ServiceName + "/SignUp"
	DirectoryService_SignIn_FullMethodName              = "/" + ServiceName + "/SignIn"
	DirectoryService_SignOut_FullMethodName             = "/" + ServiceName + "/SignOut"
	DirectoryService_RefreshToken_FullMethodName        = "/" + ServiceName + "/RefreshToken"
	DirectoryService_GetSession_FullMethodName          = "/" + ServiceName + "/GetSession"
	DirectoryService_GetProfile_FullMethodName          = "/" + ServiceName + "/GetProfile"
	DirectoryService_CreateProfile_FullMethodName       = "/" + ServiceName + "/CreateProfile"
	DirectoryService_UpdateOwnProfile_FullMethodName    = "/" + ServiceName + "/UpdateOwnProfile"
	DirectoryService_SetAccountType_FullMethodName      = "/" + ServiceName + "/SetAccountType"
	DirectoryService_CreateUser_FullMethodName          = "/" + ServiceName + "/CreateUser"
	DirectoryService_DeleteUser_FullMethodName          = "/" + ServiceName + "/DeleteUser"
	DirectoryService_ListProfiles_FullMethodName        = "/" + ServiceName + "/ListProfiles"
	DirectoryService_PresignAvatarUpload_FullMethodName = "/" + ServiceName + "/PresignAvatarUpload"
)

// DirectoryServiceServer is implemented by the server.
type DirectoryServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	SignUp(context.Context, *SignUpRequest) (*SignUpResponse, error)
	SignIn(context.Context, *SignInRequest) (*SignInResponse, error)
	SignOut(context.Context, *SignOutRequest) (*SignOutResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	GetSession(context.Context, *GetSessionRequest) (*GetSessionResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*ProfileResponse, error)
	CreateProfile(context.Context, *CreateProfileRequest) (*ProfileResponse, error)
	UpdateOwnProfile(context.Context, *UpdateOwnProfileRequest) (*ProfileResponse, error)
	SetAccountType(context.Context, *SetAccountTypeRequest) (*ProfileResponse, error)
	CreateUser(context.Context, *CreateUserRequest) (*ProfileResponse, error)
	DeleteUser(context.Context, *DeleteUserRequest) (*DeleteUserResponse, error)
	ListProfiles(context.Context, *ListProfilesRequest) (*ListProfilesResponse, error)
	PresignAvatarUpload(context.Context, *PresignAvatarUploadRequest) (*PresignAvatarUploadResponse, error)
	mustEmbedUnimplementedDirectoryServiceServer()
}

// UnimplementedDirectoryServiceServer must be embedded by implementations.
type UnimplementedDirectoryServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedDirectoryServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, unimplemented("Ping")
}
func (UnimplementedDirectoryServiceServer) SignUp(context.Context, *SignUpRequest) (*SignUpResponse, error) {
	return nil, unimplemented("SignUp")
}
func (UnimplementedDirectoryServiceServer) SignIn(context.Context, *SignInRequest) (*SignInResponse, error) {
	return nil, unimplemented("SignIn")
}
func (UnimplementedDirectoryServiceServer) SignOut(context.Context, *SignOutRequest) (*SignOutResponse, error) {
	return nil, unimplemented("SignOut")
}
func (UnimplementedDirectoryServiceServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, unimplemented("RefreshToken")
}
func (UnimplementedDirectoryServiceServer) GetSession(context.Context, *GetSessionRequest) (*GetSessionResponse, error) {
	return nil, unimplemented("GetSession")
}
func (UnimplementedDirectoryServiceServer) GetProfile(context.Context, *GetProfileRequest) (*ProfileResponse, error) {
	return nil, unimplemented("GetProfile")
}
func (UnimplementedDirectoryServiceServer) CreateProfile(context.Context, *CreateProfileRequest) (*ProfileResponse, error) {
	return nil, unimplemented("CreateProfile")
}
func (UnimplementedDirectoryServiceServer) UpdateOwnProfile(context.Context, *UpdateOwnProfileRequest) (*ProfileResponse, error) {
	return nil, unimplemented("UpdateOwnProfile")
}
func (UnimplementedDirectoryServiceServer) SetAccountType(context.Context, *SetAccountTypeRequest) (*ProfileResponse, error) {
	return nil, unimplemented("SetAccountType")
}
func (UnimplementedDirectoryServiceServer) CreateUser(context.Context, *CreateUserRequest) (*ProfileResponse, error) {
	return nil, unimplemented("CreateUser")
}
func (UnimplementedDirectoryServiceServer) DeleteUser(context.Context, *DeleteUserRequest) (*DeleteUserResponse, error) {
	return nil, unimplemented("DeleteUser")
}
func (UnimplementedDirectoryServiceServer) ListProfiles(context.Context, *ListProfilesRequest) (*ListProfilesResponse, error) {
	return nil, unimplemented("ListProfiles")
}
func (UnimplementedDirectoryServiceServer) PresignAvatarUpload(context.Context, *PresignAvatarUploadRequest) (*PresignAvatarUploadResponse, error) {
	return nil, unimplemented("PresignAvatarUpload")
}
func (UnimplementedDirectoryServiceServer) mustEmbedUnimplementedDirectoryServiceServer() {}

// unaryHandler adapts a typed server method to a grpc.MethodHandler.
func unaryHandler[Req, Resp any](fullMethod string, call func(DirectoryServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DirectoryServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DirectoryServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func method[Req, Resp any](name, fullMethod string, call func(DirectoryServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{MethodName: name, Handler: unaryHandler(fullMethod, call)}
}

// DirectoryService_ServiceDesc describes the service for grpc.ServiceRegistrar.
var DirectoryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DirectoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		method("Ping", DirectoryService_Ping_FullMethodName, DirectoryServiceServer.Ping),
		method("SignUp", DirectoryService_SignUp_FullMethodName, DirectoryServiceServer.SignUp),
		method("SignIn", DirectoryService_SignIn_FullMethodName, DirectoryServiceServer.SignIn),
		method("SignOut", DirectoryService_SignOut_FullMethodName, DirectoryServiceServer.SignOut),
		method("RefreshToken", DirectoryService_RefreshToken_FullMethodName, DirectoryServiceServer.RefreshToken),
		method("GetSession", DirectoryService_GetSession_FullMethodName, DirectoryServiceServer.GetSession),
		method("GetProfile", DirectoryService_GetProfile_FullMethodName, DirectoryServiceServer.GetProfile),
		method("CreateProfile", DirectoryService_CreateProfile_FullMethodName, DirectoryServiceServer.CreateProfile),
		method("UpdateOwnProfile", DirectoryService_UpdateOwnProfile_FullMethodName, DirectoryServiceServer.UpdateOwnProfile),
		method("SetAccountType", DirectoryService_SetAccountType_FullMethodName, DirectoryServiceServer.SetAccountType),
		method("CreateUser", DirectoryService_CreateUser_FullMethodName, DirectoryServiceServer.CreateUser),
		method("DeleteUser", DirectoryService_DeleteUser_FullMethodName, DirectoryServiceServer.DeleteUser),
		method("ListProfiles", DirectoryService_ListProfiles_FullMethodName, DirectoryServiceServer.ListProfiles),
		method("PresignAvatarUpload", DirectoryService_PresignAvatarUpload_FullMethodName, DirectoryServiceServer.PresignAvatarUpload),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "guialocal/v1/directory",
}

func RegisterDirectoryServiceServer(s grpc.ServiceRegistrar, srv DirectoryServiceServer) {
	s.RegisterService(&DirectoryService_ServiceDesc, srv)
}
