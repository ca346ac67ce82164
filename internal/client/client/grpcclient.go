package client

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/guialocal/internal/api"
	"github.com/dmitrijs2005/guialocal/internal/client/models"
	"github.com/dmitrijs2005/guialocal/internal/common"
	"github.com/dmitrijs2005/guialocal/internal/netx"
	"github.com/dmitrijs2005/guialocal/internal/roles"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const functionTimeout = 10 * time.Second

type GRPCClient struct {
	endpointURL  string
	functionsURL string
	apiKey       string

	conn       *grpc.ClientConn
	client     api.DirectoryServiceClient
	httpClient *http.Client

	mu      sync.RWMutex
	session *models.Session

	// refreshMu serialises token refreshes so a rotated refresh token is
	// never presented twice.
	refreshMu sync.Mutex
	listeners listeners
}

// NewGRPCClient dials the gRPC endpoint lazily; functionsURL is the base URL
// of the HTTP functions endpoint.
func NewGRPCClient(endpointURL, functionsURL, apiKey string) (*GRPCClient, error) {
	c := &GRPCClient{
		endpointURL:  endpointURL,
		functionsURL: strings.TrimRight(functionsURL, "/"),
		apiKey:       apiKey,
		httpClient:   &http.Client{Timeout: functionTimeout},
	}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewDirectoryServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}
	return metadata.NewOutgoingContext(ctx, md)
}

func isTokenExpired(err error) bool {
	st, ok := status.FromError(err)
	return ok && st.Code() == codes.Unauthenticated && st.Message() == common.ErrTokenExpired.Error()
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	token := s.accessToken()

	err := invoker(withAccessToken(ctx, token), method, req, reply, cc, opts...)
	if err == nil || !isTokenExpired(err) || method == api.DirectoryService_RefreshToken_FullMethodName {
		return err
	}

	if err := s.refresh(ctx, token, err); err != nil {
		return err
	}

	return invoker(withAccessToken(ctx, s.accessToken()), method, req, reply, cc, opts...)
}

// refresh exchanges the refresh token for a new pair. stale is the access
// token the failed call used; if another call already replaced it, nothing
// is exchanged.
func (s *GRPCClient) refresh(ctx context.Context, stale string, cause error) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	cur := s.Session()
	if cur == nil || cur.RefreshToken == "" {
		return cause
	}
	if cur.AccessToken != stale {
		return nil
	}

	resp, err := s.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: cur.RefreshToken})
	if err != nil {
		if status.Code(err) == codes.Unauthenticated {
			s.setSession(nil)
			s.listeners.notify(SignedOut, nil)
		}
		return err
	}

	sess := toSession(resp.Session)
	s.setSession(&sess)
	s.listeners.notify(TokenRefreshed, &sess)
	return nil
}

// Session returns a copy of the stored session, or nil.
func (s *GRPCClient) Session() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSession(s.session)
}

func (s *GRPCClient) setSession(sess *models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = cloneSession(sess)
}

func (s *GRPCClient) accessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.AccessToken
}

func (s *GRPCClient) OnAuthStateChange(fn AuthStateListener) func() {
	unsubscribe := s.listeners.add(fn)
	fn(InitialSession, s.Session())
	return unsubscribe
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) SignUpWithCredentials(ctx context.Context, email, password string, md map[string]any) error {
	_, err := s.client.SignUp(ctx, &api.SignUpRequest{Email: email, Password: password, Metadata: md})
	return mapError(err)
}

func (s *GRPCClient) SignInWithCredentials(ctx context.Context, email, password string) (*models.AuthResult, error) {
	resp, err := s.client.SignIn(ctx, &api.SignInRequest{Email: email, Password: password})
	if err != nil {
		return nil, mapError(err)
	}

	sess := toSession(resp.Session)
	s.setSession(&sess)
	s.listeners.notify(SignedIn, &sess)

	return &models.AuthResult{User: sess.User, Session: sess}, nil
}

// GetSession asks the server whether the stored session is still live.
// It answers nil, nil when nothing is stored.
func (s *GRPCClient) GetSession(ctx context.Context) (*models.Session, error) {
	if s.accessToken() == "" {
		return nil, nil
	}

	resp, err := s.client.GetSession(ctx, &api.GetSessionRequest{})
	if err != nil {
		return nil, mapError(err)
	}

	sess := s.Session()
	if sess == nil {
		return nil, nil
	}
	remote := toSession(resp.Session)
	sess.User = remote.User
	if !remote.ExpiresAt.IsZero() {
		sess.ExpiresAt = remote.ExpiresAt
	}
	return sess, nil
}

// SignOut revokes the session on the server and forgets it locally. A server
// that no longer knows the session counts as success.
func (s *GRPCClient) SignOut(ctx context.Context) error {
	if s.Session() == nil {
		return nil
	}

	if _, err := s.client.SignOut(ctx, &api.SignOutRequest{}); err != nil && status.Code(err) != codes.Unauthenticated {
		return mapError(err)
	}

	s.setSession(nil)
	s.listeners.notify(SignedOut, nil)
	return nil
}

func (s *GRPCClient) ReadProfile(ctx context.Context, userID string) (*models.Profile, error) {
	resp, err := s.client.GetProfile(ctx, &api.GetProfileRequest{UserID: userID})
	if err != nil {
		return nil, mapError(err)
	}
	return toProfile(resp.Profile), nil
}

func (s *GRPCClient) WriteProfile(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	resp, err := s.client.CreateProfile(ctx, &api.CreateProfileRequest{Profile: fromProfile(p)})
	if err != nil {
		return nil, mapError(err)
	}
	return toProfile(resp.Profile), nil
}

func (s *GRPCClient) UpdateOwnProfile(ctx context.Context, displayName string, phone, cityID *string) (*models.Profile, error) {
	resp, err := s.client.UpdateOwnProfile(ctx, &api.UpdateOwnProfileRequest{DisplayName: displayName, Phone: phone, CityID: cityID})
	if err != nil {
		return nil, mapError(err)
	}
	return toProfile(resp.Profile), nil
}

func (s *GRPCClient) SetAccountType(ctx context.Context, userID string, role roles.Role) (*models.Profile, error) {
	resp, err := s.client.SetAccountType(ctx, &api.SetAccountTypeRequest{UserID: userID, AccountType: role.String()})
	if err != nil {
		return nil, mapError(err)
	}
	return toProfile(resp.Profile), nil
}

func (s *GRPCClient) CreateUser(ctx context.Context, u models.NewUser) (*models.Profile, error) {
	resp, err := s.client.CreateUser(ctx, &api.CreateUserRequest{
		Email:       u.Email,
		Password:    u.Password,
		DisplayName: u.DisplayName,
		Phone:       u.Phone,
		AccountType: u.AccountType.String(),
		CityID:      u.CityID,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toProfile(resp.Profile), nil
}

func (s *GRPCClient) DeleteUser(ctx context.Context, userID string) error {
	_, err := s.client.DeleteUser(ctx, &api.DeleteUserRequest{UserID: userID})
	return mapError(err)
}

func (s *GRPCClient) ListProfiles(ctx context.Context, f models.ProfileFilter) ([]*models.Profile, error) {
	resp, err := s.client.ListProfiles(ctx, &api.ListProfilesRequest{
		AccountType: f.AccountType.String(),
		CityID:      f.CityID,
		Limit:       f.Limit,
		Offset:      f.Offset,
	})
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]*models.Profile, 0, len(resp.Profiles))
	for _, p := range resp.Profiles {
		out = append(out, toProfile(p))
	}
	return out, nil
}

func (s *GRPCClient) PresignAvatarUpload(ctx context.Context, contentType string) (string, string, error) {
	resp, err := s.client.PresignAvatarUpload(ctx, &api.PresignAvatarUploadRequest{ContentType: contentType})
	if err != nil {
		return "", "", mapError(err)
	}
	return resp.URL, resp.Key, nil
}

func (s *GRPCClient) UploadAvatar(ctx context.Context, url, contentType string, data []byte) error {
	return netx.PutPresigned(ctx, s.httpClient, url, contentType, data)
}

// InvokeFunction posts payload to /functions/v1/<name> with the public API
// key.
func (s *GRPCClient) InvokeFunction(ctx context.Context, name string, payload any) error {
	url := s.functionsURL + "/functions/v1/" + name
	return netx.PostJSON(ctx, s.httpClient, url, map[string]string{common.APIKeyHeaderName: s.apiKey}, payload)
}
