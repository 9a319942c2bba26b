package config

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, 15*time.Minute, cfg.VerificationTTL)
	assert.Equal(t, 10, cfg.LoginRateLimit)
	assert.False(t, cfg.IsProduction())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	t.Run("timezone", func(t *testing.T) {
		t.Setenv("TIMEZONE", "Mars/Olympus_Mons")
		_, err := Load()
		assert.ErrorContains(t, err, "TIMEZONE")
	})
	t.Run("cycle start", func(t *testing.T) {
		t.Setenv("WORKOUT_CYCLE_START", "monday")
		_, err := Load()
		assert.ErrorContains(t, err, "WORKOUT_CYCLE_START")
	})
	t.Run("duration", func(t *testing.T) {
		t.Setenv("JWT_TTL", "forever")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestDSNAndCycleStart(t *testing.T) {
	cfg := &Config{
		DBHost: "db", DBUser: "fit", DBPassword: "pw", DBName: "diary", DBPort: "5433", DBSSLMode: "require",
		Timezone: "Asia/Taipei", WorkoutCycleStart: "2024-02-05",
	}
	assert.Equal(t, "host=db user=fit password=pw dbname=diary port=5433 sslmode=require", cfg.DSN())

	start, err := cfg.CycleStart()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Taipei", start.Location().String())
	assert.Equal(t, 5, start.Day())
}

func TestNewLogger(t *testing.T) {
	log := NewLogger(&Config{LogFormat: "json", LogLevel: "debug"})
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
	assert.Equal(t, logrus.DebugLevel, log.Level)

	log = NewLogger(&Config{LogLevel: "loud"})
	assert.Equal(t, logrus.InfoLevel, log.Level)
}

func TestOptionalAWSClients(t *testing.T) {
	awsCfg := aws.Config{Region: "us-east-1"}
	assert.Nil(t, NewAvatarStore(awsCfg, &Config{}))
	assert.Nil(t, NewMailer(awsCfg, &Config{}))
	assert.NotNil(t, NewAvatarStore(awsCfg, &Config{S3Bucket: "avatars", AWSRegion: "us-east-1"}))
	assert.NotNil(t, NewMailer(awsCfg, &Config{SESEmail: "no-reply@example.com"}))
}
