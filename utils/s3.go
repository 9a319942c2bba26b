package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// MaxAvatarBytes bounds decoded avatar uploads.
const MaxAvatarBytes = 2 << 20

// AvatarStore persists profile pictures and returns their public URL.
type AvatarStore interface {
	PutAvatar(ctx context.Context, userID, dataURL string) (string, error)
}

// S3PutObjectAPI is the subset of *s3.Client the uploader needs.
type S3PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3AvatarStore struct {
	client    S3PutObjectAPI
	bucket    string
	publicURL string
	now       func() time.Time
}

func NewS3AvatarStore(client S3PutObjectAPI, bucket, publicURL string) *S3AvatarStore {
	return &S3AvatarStore{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		now:       time.Now,
	}
}

// DecodeImageDataURL splits "data:<mime>;base64,<data>" into content type,
// file extension and decoded bytes.
func DecodeImageDataURL(dataURL string) (contentType, ext string, data []byte, err error) {
	meta, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(meta, "data:") || !strings.HasSuffix(meta, ";base64") {
		return "", "", nil, fmt.Errorf("%w: malformed data url", ErrInvalidRequestPayload)
	}
	contentType = strings.TrimSuffix(strings.TrimPrefix(meta, "data:"), ";base64")
	if !strings.HasPrefix(contentType, "image/") {
		return "", "", nil, fmt.Errorf("%w: unsupported content type %q", ErrInvalidRequestPayload, contentType)
	}

	switch contentType {
	case "image/jpeg", "image/jpg":
		ext = ".jpg"
	default:
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			ext = exts[0]
		} else {
			ext = "." + strings.TrimPrefix(contentType, "image/")
		}
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", "", nil, fmt.Errorf("%w: decode image: %v", ErrInvalidRequestPayload, err)
	}
	if len(data) == 0 || len(data) > MaxAvatarBytes {
		return "", "", nil, fmt.Errorf("%w: image size %d out of range", ErrInvalidRequestPayload, len(data))
	}
	return contentType, ext, data, nil
}

func (s *S3AvatarStore) PutAvatar(ctx context.Context, userID, dataURL string) (string, error) {
	contentType, ext, data, err := DecodeImageDataURL(dataURL)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("avatars/%s-%d%s", userID, s.now().UnixNano(), ext)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("upload avatar to s3: %w", err)
	}
	return s.publicURL + "/" + key, nil
}
