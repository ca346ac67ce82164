// Package grpc exposes the server services as the DirectoryService gRPC API.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/guialocal/internal/api"
	"github.com/dmitrijs2005/guialocal/internal/logging"
	"github.com/dmitrijs2005/guialocal/internal/roles"
	"github.com/dmitrijs2005/guialocal/internal/server/auth"
	"github.com/dmitrijs2005/guialocal/internal/server/models"
	"github.com/dmitrijs2005/guialocal/internal/server/services"
	"google.golang.org/grpc"
)

// AuthService is the part of services.AuthService used by the handlers.
type AuthService interface {
	SignUp(ctx context.Context, email, password string, metadata map[string]any) (*models.Identity, error)
	SignIn(ctx context.Context, email, password string) (*services.AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.AuthResult, error)
	SignOut(ctx context.Context, sessionID string) error
	GetSession(ctx context.Context, claims *auth.Claims) (*services.AuthResult, error)
}

// ProfileService is the part of services.ProfileService used by the handlers.
type ProfileService interface {
	Get(ctx context.Context, actorID, userID string) (*models.Profile, error)
	CreateOwn(ctx context.Context, actorID string, p *models.Profile) (*models.Profile, error)
	UpdateOwn(ctx context.Context, actorID, displayName string, phone, cityID *string) (*models.Profile, error)
	SetAccountType(ctx context.Context, actorID, targetID string, role roles.Role) (*models.Profile, error)
	CreateUser(ctx context.Context, actorID string, in services.NewUser) (*models.Profile, error)
	Delete(ctx context.Context, actorID, targetID string) error
	List(ctx context.Context, actorID string, filter models.ProfileFilter) ([]*models.Profile, error)
}

type AvatarService interface {
	PresignUpload(ctx context.Context, userID, contentType string) (url, key string, err error)
}

type GRPCServer struct {
	api.UnimplementedDirectoryServiceServer
	address   string
	auth      AuthService
	profiles  ProfileService
	avatars   AvatarService
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, as AuthService, ps ProfileService, av AvatarService, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		auth:      as,
		profiles:  ps,
		avatars:   av,
		jwtSecret: []byte(secretKey),
	}
}

// newServer builds the grpc.Server with the JSON codec and interceptors.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.ForceServerCodec(api.Codec),
		grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor),
	)
	api.RegisterDirectoryServiceServer(srv, s)
	return srv
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	return srv.Serve(lis)
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}
