package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func environment(overrides map[string]string) env.Options {
	e := map[string]string{
		"JWT_SECRET":    "secret",
		"MONGO_URI":     "mongodb://localhost:27017",
		"SMTP_USER":     "support@yeonghwa.test",
		"SMTP_PASSWORD": "app-password",
	}
	for k, v := range overrides {
		e[k] = v
	}
	return env.Options{Environment: e}
}

func TestLoadDefaults(t *testing.T) {
	c, err := load(environment(nil))

	require.Nil(t, err)
	assert.Equal(t, 5000, c.Port)
	assert.Equal(t, "secret", c.Secret)
	assert.Equal(t, time.Duration(0), c.SessionTokenTTL)
	assert.Equal(t, 10, c.BcryptHasherCost)
	assert.Equal(t, StorageMongo, c.Storage)
	assert.Equal(t, "yeonghwa", c.MongoDatabase)
	assert.Equal(t, EmailTransportSMTP, c.EmailTransport)
	assert.Equal(t, "smtp.gmail.com", c.SMTPHost)
	assert.Equal(t, 587, c.SMTPPort)
	assert.Equal(t, "support@yeonghwa.test", c.EmailSender)
	assert.Equal(t, 20*time.Second, c.ShutdownTimeout)
	resetURL := c.PasswordResetBaseURL()
	assert.Equal(t, "http://localhost:5173/reset-password", resetURL.String())
	assert.Equal(t, []string{"http://localhost:5173"}, c.CORSOrigins())
}

func TestLoadOverrides(t *testing.T) {
	c, err := load(environment(map[string]string{
		"PORT":              "8080",
		"SESSION_TOKEN_TTL": "24h",
		"CLIENT_URL":        "https://yeonghwa.app/",
		"ALLOWED_ORIGINS":   "https://admin.yeonghwa.app,https://yeonghwa.app",
		"STORAGE":           "postgres",
		"POSTGRESQL_URL":    "postgres://localhost:5432/yeonghwa",
		"EMAIL_TRANSPORT":   "ses",
		"EMAIL_SENDER":      "noreply@yeonghwa.app",
		"AWS_REGION":        "eu-central-1",
	}))

	require.Nil(t, err)
	assert.Equal(t, 8080, c.Port)
	assert.Equal(t, 24*time.Hour, c.SessionTokenTTL)
	assert.Equal(t, StoragePostgres, c.Storage)
	assert.Equal(t, EmailTransportSES, c.EmailTransport)
	assert.Equal(t, "noreply@yeonghwa.app", c.EmailSender)
	resetURL := c.PasswordResetBaseURL()
	assert.Equal(t, "https://yeonghwa.app/reset-password", resetURL.String())
	assert.Equal(
		t,
		[]string{"http://localhost:5173", "https://yeonghwa.app", "https://admin.yeonghwa.app"},
		c.CORSOrigins(),
	)
}

func TestLoadInvalid(t *testing.T) {
	cases := []struct {
		id        string
		overrides map[string]string
	}{
		{id: "no-secret", overrides: map[string]string{"JWT_SECRET": ""}},
		{id: "bad-port", overrides: map[string]string{"PORT": "abc"}},
		{id: "bcrypt-cost-too-low", overrides: map[string]string{"BCRYPT_HASHER_COST": "2"}},
		{id: "negative-ttl", overrides: map[string]string{"SESSION_TOKEN_TTL": "-1h"}},
		{id: "relative-client-url", overrides: map[string]string{"CLIENT_URL": "/app"}},
		{id: "unknown-storage", overrides: map[string]string{"STORAGE": "redis"}},
		{id: "mongo-without-uri", overrides: map[string]string{"MONGO_URI": ""}},
		{id: "postgres-without-url", overrides: map[string]string{"STORAGE": "postgres"}},
		{id: "unknown-transport", overrides: map[string]string{"EMAIL_TRANSPORT": "pigeon"}},
		{id: "smtp-without-password", overrides: map[string]string{"SMTP_PASSWORD": ""}},
		{id: "ses-without-region", overrides: map[string]string{"EMAIL_TRANSPORT": "ses"}},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			_, err := load(environment(testcase.overrides))

			assert.Error(t, err)
		})
	}
}
