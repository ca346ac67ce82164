package api

import (
	"context"

	"google.golang.org/grpc"
)

// DirectoryServiceClient is the client API for DirectoryService.
type DirectoryServiceClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*SignUpResponse, error)
	SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*SignInResponse, error)
	SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*SignOutResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	GetSession(ctx context.Context, in *GetSessionRequest, opts ...grpc.CallOption) (*GetSessionResponse, error)
	GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	CreateProfile(ctx context.Context, in *CreateProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	UpdateOwnProfile(ctx context.Context, in *UpdateOwnProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	SetAccountType(ctx context.Context, in *SetAccountTypeRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	CreateUser(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	DeleteUser(ctx context.Context, in *DeleteUserRequest, opts ...grpc.CallOption) (*DeleteUserResponse, error)
	ListProfiles(ctx context.Context, in *ListProfilesRequest, opts ...grpc.CallOption) (*ListProfilesResponse, error)
	PresignAvatarUpload(ctx context.Context, in *PresignAvatarUploadRequest, opts ...grpc.CallOption) (*PresignAvatarUploadResponse, error)
}

type directoryServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewDirectoryServiceClient builds a client over cc. Calls carry the JSON
// codec, so the connection needs no codec dial option.
func NewDirectoryServiceClient(cc grpc.ClientConnInterface) DirectoryServiceClient {
	return &directoryServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *directoryServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, DirectoryService_Ping_FullMethodName, in, opts)
}

func (c *directoryServiceClient) SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*SignUpResponse, error) {
	return invoke[SignUpResponse](ctx, c.cc, DirectoryService_SignUp_FullMethodName, in, opts)
}

func (c *directoryServiceClient) SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*SignInResponse, error) {
	return invoke[SignInResponse](ctx, c.cc, DirectoryService_SignIn_FullMethodName, in, opts)
}

func (c *directoryServiceClient) SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*SignOutResponse, error) {
	return invoke[SignOutResponse](ctx, c.cc, DirectoryService_SignOut_FullMethodName, in, opts)
}

func (c *directoryServiceClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, DirectoryService_RefreshToken_FullMethodName, in, opts)
}

func (c *directoryServiceClient) GetSession(ctx context.Context, in *GetSessionRequest, opts ...grpc.CallOption) (*GetSessionResponse, error) {
	return invoke[GetSessionResponse](ctx, c.cc, DirectoryService_GetSession_FullMethodName, in, opts)
}

func (c *directoryServiceClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, DirectoryService_GetProfile_FullMethodName, in, opts)
}

func (c *directoryServiceClient) CreateProfile(ctx context.Context, in *CreateProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, DirectoryService_CreateProfile_FullMethodName, in, opts)
}

func (c *directoryServiceClient) UpdateOwnProfile(ctx context.Context, in *UpdateOwnProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, DirectoryService_UpdateOwnProfile_FullMethodName, in, opts)
}

func (c *directoryServiceClient) SetAccountType(ctx context.Context, in *SetAccountTypeRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, DirectoryService_SetAccountType_FullMethodName, in, opts)
}

func (c *directoryServiceClient) CreateUser(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, DirectoryService_CreateUser_FullMethodName, in, opts)
}

func (c *directoryServiceClient) DeleteUser(ctx context.Context, in *DeleteUserRequest, opts ...grpc.CallOption) (*DeleteUserResponse, error) {
	return invoke[DeleteUserResponse](ctx, c.cc, DirectoryService_DeleteUser_FullMethodName, in, opts)
}

func (c *directoryServiceClient) ListProfiles(ctx context.Context, in *ListProfilesRequest, opts ...grpc.CallOption) (*ListProfilesResponse, error) {
	return invoke[ListProfilesResponse](ctx, c.cc, DirectoryService_ListProfiles_FullMethodName, in, opts)
}

func (c *directoryServiceClient) PresignAvatarUpload(ctx context.Context, in *PresignAvatarUploadRequest, opts ...grpc.CallOption) (*PresignAvatarUploadResponse, error) {
	return invoke[PresignAvatarUploadResponse](ctx, c.cc, DirectoryService_PresignAvatarUpload_FullMethodName, in, opts)
}
