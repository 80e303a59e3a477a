package proofstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

const s3Scheme = "s3://"

// Store проверяет, что фото подтверждения доставки загружено в бакет.
type Store struct {
	client client
	bucket string
}

func New(client client, bucket string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
	}
}

// Exists принимает ключ объекта в бакете по умолчанию или полный адрес s3://bucket/key.
func (s *Store) Exists(ctx context.Context, ref string) (bool, error) {
	bucket, key, err := s.locate(ref)
	if err != nil {
		return false, err
	}

	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, fmt.Errorf("head object %s/%s: %w", bucket, key, err)
}

func (s *Store) locate(ref string) (string, string, error) {
	ref = strings.TrimSpace(ref)
	if !strings.HasPrefix(ref, s3Scheme) {
		if ref == "" {
			return "", "", ErrInvalidRef
		}
		return s.bucket, strings.TrimPrefix(ref, "/"), nil
	}

	bucket, key, ok := strings.Cut(strings.TrimPrefix(ref, s3Scheme), "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("%q: %w", ref, ErrInvalidRef)
	}
	return bucket, key, nil
}

func isNotFound(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}

// Noop используется, когда проверка фото отключена: наличие ссылки считается достаточным.
type Noop struct{}

func (Noop) Exists(context.Context, string) (bool, error) {
	return true, nil
}
