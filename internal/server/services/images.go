package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/gophgarage/internal/common"
	"github.com/dmitrijs2005/gophgarage/internal/models"
	sc "github.com/dmitrijs2005/gophgarage/internal/server/config"
	"github.com/dmitrijs2005/gophgarage/internal/server/repositories"
	"github.com/google/uuid"
)

// PresignExpiry bounds the lifetime of every presigned URL.
const PresignExpiry = 15 * time.Minute

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
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ImageService hands out presigned S3 URLs for vehicle photos. The photo
// bytes never pass through the server: clients PUT to the upload URL and
// then store the returned key in Vehicle.Image.
type ImageService struct {
	repomanager repositories.RepositoryManager
	config      *sc.Config
}

func NewImageService(m repositories.RepositoryManager, cfg *sc.Config) *ImageService {
	return &ImageService{repomanager: m, config: cfg}
}

// GetRandomStorageKey returns a fresh object key for a photo of vehicleID.
func GetRandomStorageKey(vehicleID models.ID) string {
	d := time.Now()
	return fmt.Sprintf("vehicles/%d/%d/%d/%s/%v", d.Year(), d.Month(), d.Day(), vehicleID, uuid.New())
}

func (s *ImageService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
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
		// MinIO and most S3-compatible stores expect path-style URLs.
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// UploadURL presigns a PUT for a new photo of the user's vehicle.
func (s *ImageService) UploadURL(ctx context.Context, userID, vehicleID models.ID) (*models.ImageUpload, error) {
	if _, err := s.repomanager.Vehicles().Get(ctx, userID, vehicleID); err != nil {
		return nil, fmt.Errorf("vehicle photo: %w", err)
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: s3 config: %v", common.ErrorInternal, err)
	}

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey(vehicleID)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return nil, fmt.Errorf("%w: presign put: %v", common.ErrorInternal, err)
	}

	return &models.ImageUpload{Key: key, URL: req.URL}, nil
}

// DownloadURL presigns a GET for the vehicle's current photo. A vehicle
// without a photo yields common.ErrorNotFound.
func (s *ImageService) DownloadURL(ctx context.Context, userID, vehicleID models.ID) (*models.ImageURL, error) {
	v, err := s.repomanager.Vehicles().Get(ctx, userID, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("vehicle photo: %w", err)
	}
	if v.Image == "" {
		return nil, fmt.Errorf("vehicle photo: %w", common.ErrorNotFound)
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: s3 config: %v", common.ErrorInternal, err)
	}

	bucket := s.config.S3Bucket
	key := v.Image

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return nil, fmt.Errorf("%w: presign get: %v", common.ErrorInternal, err)
	}

	return &models.ImageURL{URL: req.URL}, nil
}
