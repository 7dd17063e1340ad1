package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/nutrifast/backend/config"
)

// ImageService stores user-uploaded media (profile avatars, recipe photos)
// in S3-compatible storage.
type ImageService struct {
	s3Config *config.S3Config
}

// NewImageService creates a new ImageService instance
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// UploadAvatar stores an avatar image and returns its public URL.
func (s *ImageService) UploadAvatar(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.New(), extensionFor(contentType))
	return s.upload(ctx, key, data, contentType)
}

// UploadRecipeImage stores a recipe photo and returns its public URL.
func (s *ImageService) UploadRecipeImage(ctx context.Context, recipeID uuid.UUID, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("recipe-images/%s/%s%s", recipeID, uuid.New(), extensionFor(contentType))
	return s.upload(ctx, key, data, contentType)
}

// upload writes the object and returns the public URL.
func (s *ImageService) upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if s.s3Config == nil || s.s3Config.Client == nil {
		return "", fmt.Errorf("media storage is not configured")
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	log.Printf("[ImageService] Uploaded %s", publicURL)
	return publicURL, nil
}

func extensionFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
