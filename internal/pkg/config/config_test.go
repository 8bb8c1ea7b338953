// internal/pkg/config/config_test.go
package config

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := Load(discardLogger())
	require.NoError(t, err)

	assert.Equal(t, "aeroparts-api", cfg.App.Name)
	assert.Equal(t, "aeroparts_inventory", cfg.Database.Name)
	assert.Equal(t, int32(25), cfg.Database.MaxConnections)
	assert.Equal(t, 5*time.Second, cfg.Inventory.StatusStoreTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Inventory.StatusCacheTTL)
	assert.Equal(t, MaxBulkStatusLimit, cfg.Inventory.BulkStatusLimit)
	assert.Equal(t, 90, cfg.Inventory.ActivityLogRetention)
	assert.Equal(t, "localhost:6379", cfg.Asynq.RedisAddr)
	assert.Equal(t, map[string]int{"critical": 6, "default": 3, "low": 1}, cfg.Asynq.Queues)
	assert.Equal(t, []string{"*"}, cfg.Security.AllowedOrigins)
	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddress())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_MAX_CONNECTIONS", "40")
	t.Setenv("STATUS_STORE_TIMEOUT", "750ms")
	t.Setenv("BULK_STATUS_LIMIT", "50")
	t.Setenv("ALLOWED_ORIGINS", "https://ops.example.com, https://mro.example.com")
	t.Setenv("ASYNQ_QUEUES", "events:4,maintenance:1")

	cfg, err := Load(discardLogger())
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, int32(40), cfg.Database.MaxConnections)
	assert.Equal(t, 750*time.Millisecond, cfg.Inventory.StatusStoreTimeout)
	assert.Equal(t, 50, cfg.Inventory.BulkStatusLimit)
	assert.Equal(t, []string{"https://ops.example.com", "https://mro.example.com"}, cfg.Security.AllowedOrigins)
	assert.Equal(t, map[string]int{"events": 4, "maintenance": 1}, cfg.Asynq.Queues)
}

func TestLoad_RejectsBulkLimitAboveCeiling(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("BULK_STATUS_LIMIT", "101")

	_, err := Load(discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bulk status limit")
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:       AppConfig{Name: "aeroparts-api", Environment: "test"},
			Database:  DatabaseConfig{Host: "localhost", Port: "5432", User: "u", Name: "inv", MaxConnections: 10, MinConnections: 2},
			Redis:     RedisConfig{Host: "localhost", Port: "6379"},
			Inventory: InventoryConfig{BulkStatusLimit: 100, StatusStoreTimeout: time.Second},
			Security:  SecurityConfig{RateLimitRequests: 10, AllowedOrigins: []string{"*"}},
			Server:    ServerConfig{Port: "8080"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid_config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing_database_host",
			mutate:  func(c *Config) { c.Database.Host = "" },
			wantErr: "Database.Host",
		},
		{
			name:    "placeholder_redis_host",
			mutate:  func(c *Config) { c.Redis.Host = "MISSING_REDIS_HOST" },
			wantErr: "Redis.Host",
		},
		{
			name:    "connection_bounds_inverted",
			mutate:  func(c *Config) { c.Database.MinConnections = 20 },
			wantErr: "max connections must be >= min connections",
		},
		{
			name:    "zero_bulk_limit",
			mutate:  func(c *Config) { c.Inventory.BulkStatusLimit = 0 },
			wantErr: "bulk status limit",
		},
		{
			name:    "negative_store_timeout",
			mutate:  func(c *Config) { c.Inventory.StatusStoreTimeout = -time.Second },
			wantErr: "status store timeout cannot be negative",
		},
		{
			name: "production_rejects_wildcard_origin",
			mutate: func(c *Config) {
				c.App.Environment = "production"
				c.Database.Password = "s3cret"
				c.Database.SSLMode = "require"
				c.Security.SecureHeaders = true
			},
			wantErr: "wildcard origin",
		},
		{
			name: "production_requires_ssl",
			mutate: func(c *Config) {
				c.App.Environment = "production"
				c.Database.Password = "s3cret"
				c.Database.SSLMode = "disable"
			},
			wantErr: "database SSL must be enabled in production",
		},
		{
			name: "production_requires_password",
			mutate: func(c *Config) {
				c.App.Environment = "production"
			},
			wantErr: "database password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

type fakeSecretValueAPI struct {
	secret string
	err    error
	calls  int
}

func (f *fakeSecretValueAPI) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(f.secret)}, nil
}

func TestAWSSecretsManager_GetSecret(t *testing.T) {
	api := &fakeSecretValueAPI{secret: `{"DB_PASSWORD":"from-aws","OTHER":"x"}`}
	sm := newAWSSecretsManager(api, "aeroparts/prod", discardLogger())

	val, err := sm.GetSecret(context.Background(), "DB_PASSWORD")
	require.NoError(t, err)
	assert.Equal(t, "from-aws", val)

	// second lookup is served from cache
	val, err = sm.GetSecret(context.Background(), "OTHER")
	require.NoError(t, err)
	assert.Equal(t, "x", val)
	assert.Equal(t, 1, api.calls)

	_, err = sm.GetSecret(context.Background(), "MISSING")
	assert.Error(t, err)

	require.NoError(t, sm.RefreshSecrets(context.Background()))
	assert.Equal(t, 3, api.calls)
}

func TestAWSSecretsManager_Errors(t *testing.T) {
	api := &fakeSecretValueAPI{err: errors.New("access denied")}
	sm := newAWSSecretsManager(api, "aeroparts/prod", discardLogger())

	_, err := sm.GetSecret(context.Background(), "DB_PASSWORD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")

	api = &fakeSecretValueAPI{secret: "not json"}
	sm = newAWSSecretsManager(api, "aeroparts/prod", discardLogger())
	_, err = sm.GetSecret(context.Background(), "DB_PASSWORD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse secret JSON")
}

func TestLoadWithSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("AWS_SECRET_NAME", "aeroparts/test")
	t.Setenv("DB_PASSWORD", "from-env")

	api := &fakeSecretValueAPI{secret: `{"DB_PASSWORD":"rotated"}`}
	cfg, err := LoadWithSecrets(context.Background(), discardLogger(), newAWSSecretsManager(api, "aeroparts/test", discardLogger()))
	require.NoError(t, err)
	assert.Equal(t, "rotated", cfg.Database.Password)

	cfg, err = LoadWithSecrets(context.Background(), discardLogger(), NewEnvSecretsManager())
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Password)
}

func TestNewSecretsProvider(t *testing.T) {
	tests := []struct {
		name       string
		env        string
		secretName string
		wantAWS    bool
	}{
		{name: "development_reads_environment", env: "development", secretName: "aeroparts/prod"},
		{name: "production_without_secret_reads_environment", env: "production"},
		{name: "production_with_secret_uses_aws", env: "production", secretName: "aeroparts/prod", wantAWS: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", tt.env)
			t.Setenv("AWS_SECRET_NAME", tt.secretName)
			t.Setenv("AWS_REGION", "us-east-1")

			provider, err := NewSecretsProvider(context.Background(), discardLogger())
			require.NoError(t, err)

			_, isAWS := provider.(*AWSSecretsManager)
			assert.Equal(t, tt.wantAWS, isAWS)
		})
	}
}

func TestLoadFromEnvironment_OutsideProduction(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("AWS_SECRET_NAME", "aeroparts/test")
	t.Setenv("DB_PASSWORD", "from-env")

	cfg, err := LoadFromEnvironment(context.Background(), discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Password)
}
