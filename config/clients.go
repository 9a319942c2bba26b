package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/redis/go-redis/v9"

	"github.com/fitdiary/backend/utils"
)

func NewRedis(cfg *Config) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
}

func LoadAWS(ctx context.Context, cfg *Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return awsCfg, nil
}

// NewAvatarStore returns nil when no bucket is configured.
func NewAvatarStore(awsCfg aws.Config, cfg *Config) utils.AvatarStore {
	if cfg.S3Bucket == "" {
		return nil
	}
	publicURL := cfg.CloudFrontURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.AWSRegion)
	}
	return utils.NewS3AvatarStore(s3.NewFromConfig(awsCfg), cfg.S3Bucket, publicURL)
}

// NewMailer returns nil when no sender address is configured.
func NewMailer(awsCfg aws.Config, cfg *Config) utils.Mailer {
	if cfg.SESEmail == "" {
		return nil
	}
	return utils.NewSESMailer(ses.NewFromConfig(awsCfg), cfg.SESEmail)
}
