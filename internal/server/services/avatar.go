package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/guialocal/internal/common"
	sc "github.com/dmitrijs2005/guialocal/internal/server/config"
	"github.com/dmitrijs2005/guialocal/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// avatarURLValidity is how long a presigned upload URL stays usable.
const avatarURLValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// AvatarService hands out presigned S3 upload URLs for profile pictures.
type AvatarService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewAvatarService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *AvatarService {
	return &AvatarService{db: db, repomanager: m, config: cfg}
}

func avatarKey(userID string) string {
	return fmt.Sprintf("avatars/%s/%s", userID, uuid.New())
}

func (s *AvatarService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// PresignUpload returns a PUT URL for a new avatar of userID and records the
// object key on the profile.
func (s *AvatarService) PresignUpload(ctx context.Context, userID, contentType string) (url, key string, err error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", "", common.ErrorValidation
	}

	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return "", "", fmt.Errorf("s3 client: %w", err)
	}

	key = avatarKey(userID)
	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.S3Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(avatarURLValidity))
	if err != nil {
		return "", "", fmt.Errorf("presign put: %w", err)
	}

	if err := s.repomanager.Profiles(s.db).SetAvatarKey(ctx, userID, key); err != nil {
		return "", "", err
	}
	return req.URL, key, nil
}
