package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/alex-pricope/contest-voting/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PhotoStorage issues upload URLs for participant photos and event logos and
// removes objects when their owner row is deleted or replaced.
type PhotoStorage interface {
	PresignUpload(ctx context.Context, key string, contentType string) (uploadURL string, publicURL string, err error)
	Delete(ctx context.Context, publicURL string) error
}

type S3PhotoStorage struct {
	Client  *s3.Client
	Presign *s3.PresignClient
	Bucket  string
}

func NewS3PhotoStorage(client *s3.Client, bucket string) *S3PhotoStorage {
	return &S3PhotoStorage{
		Client:  client,
		Presign: s3.NewPresignClient(client),
		Bucket:  bucket,
	}
}

func (s *S3PhotoStorage) PresignUpload(ctx context.Context, key string, contentType string) (string, string, error) {
	req, err := s.Presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		logging.Log.Errorf("PHOTO: failed to presign upload for %s: %v", key, err)
		return "", "", err
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.Bucket, key)
	return req.URL, publicURL, nil
}

func (s *S3PhotoStorage) Delete(ctx context.Context, publicURL string) error {
	key, err := s.keyFromURL(publicURL)
	if err != nil {
		return err
	}

	_, err = s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logging.Log.Errorf("PHOTO: failed to delete object %s: %v", key, err)
		return err
	}
	logging.Log.Infof("PHOTO: deleted object %s", key)
	return nil
}

func (s *S3PhotoStorage) keyFromURL(publicURL string) (string, error) {
	u, err := url.Parse(publicURL)
	if err != nil {
		logging.Log.Errorf("PHOTO: cannot parse object URL %s: %v", publicURL, err)
		return "", err
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", fmt.Errorf("no object key in URL %s", publicURL)
	}
	return key, nil
}
