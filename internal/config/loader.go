package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/docsync/backend/internal/domain"
	"github.com/spf13/viper"
)

type Config struct {
	Workfront  WorkfrontConfig
	Cloudinary CloudinaryConfig
	Status     StatusConfig
	Logger     LoggerConfig

	MaxTasksPerRun int
	HTTPTimeout    time.Duration
}

type WorkfrontConfig struct {
	BaseURL string
	APIKey  string
	OAuth   OAuthConfig
}

type OAuthConfig struct {
	Base         string
	ClientID     string
	ClientSecret string
	CustomerID   string
	UserID       string
	PrivateKey   string
	TokenURL     string
}

// ExchangeURL returns the OAuth JWT exchange endpoint, derived from the
// Workfront subdomain unless an explicit override is configured.
func (o OAuthConfig) ExchangeURL() string {
	if o.TokenURL != "" {
		return o.TokenURL
	}
	return fmt.Sprintf("https://%s.my.workfront.com/integrations/oauth2/api/v1/jwt/exchange", o.Base)
}

type CloudinaryConfig struct {
	CloudName   string
	APIKey      string
	APISecret   string
	AssetFolder string
}

type StatusConfig struct {
	Upload  string
	Success string
	Failure string
}

// Codes resolves the configured status strings into the typed closed set the
// rest of the pipeline works with.
func (s StatusConfig) Codes() domain.StatusCodes {
	return domain.StatusCodes{
		Upload:  domain.TaskStatus(s.Upload),
		Success: domain.TaskStatus(s.Success),
		Failure: domain.TaskStatus(s.Failure),
	}
}

type LoggerConfig struct {
	Level            string
	Encoding         string
	OutputPaths      []string
	ErrorOutputPaths []string
}

// ValidationError aggregates every missing required setting so a broken
// deployment is reported in one shot instead of one variable at a time.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Missing, ", "))
}

// Load reads the configuration from the environment and validates it.
// A *ValidationError is returned when any required setting is absent.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("CLOUDINARY_ASSET_FOLDER", "workfront")
	v.SetDefault("TASK_STATUS_UPLOAD", "UPL")
	v.SetDefault("TASK_COMPLETE", "CPL")
	v.SetDefault("TASK_ERROR", "ERR")
	v.SetDefault("MAX_TASKS_PER_RUN", 100)
	v.SetDefault("HTTP_TIMEOUT", "120s")
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Workfront: WorkfrontConfig{
			BaseURL: v.GetString("WORKFRONT_BASE_URL"),
			APIKey:  v.GetString("WORKFRONT_API_KEY"),
			OAuth: OAuthConfig{
				Base:         v.GetString("WORKFRONT_BASE"),
				ClientID:     v.GetString("WORKFRONT_CLIENT_ID"),
				ClientSecret: v.GetString("WORKFRONT_CLIENT_SECRET"),
				CustomerID:   v.GetString("WORKFRONT_CUSTOMER_ID"),
				UserID:       v.GetString("WORKFRONT_USER_ID"),
				PrivateKey:   v.GetString("WORKFRONT_PRIVATE_KEY"),
				TokenURL:     v.GetString("WORKFRONT_TOKEN_URL"),
			},
		},
		Cloudinary: CloudinaryConfig{
			CloudName:   v.GetString("CLOUDINARY_CLOUD_NAME"),
			APIKey:      v.GetString("CLOUDINARY_API_KEY"),
			APISecret:   v.GetString("CLOUDINARY_API_SECRET"),
			AssetFolder: v.GetString("CLOUDINARY_ASSET_FOLDER"),
		},
		Status: StatusConfig{
			Upload:  v.GetString("TASK_STATUS_UPLOAD"),
			Success: v.GetString("TASK_COMPLETE"),
			Failure: v.GetString("TASK_ERROR"),
		},
		Logger: LoggerConfig{
			Level:            v.GetString("LOG_LEVEL"),
			Encoding:         "console",
			OutputPaths:      []string{"stdout"},
			ErrorOutputPaths: []string{"stderr"},
		},
		MaxTasksPerRun: v.GetInt("MAX_TASKS_PER_RUN"),
		HTTPTimeout:    v.GetDuration("HTTP_TIMEOUT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every required setting and reports all gaps at once.
func (c *Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"WORKFRONT_BASE_URL", c.Workfront.BaseURL},
		{"WORKFRONT_API_KEY", c.Workfront.APIKey},
		{"WORKFRONT_BASE", c.Workfront.OAuth.Base},
		{"WORKFRONT_CLIENT_ID", c.Workfront.OAuth.ClientID},
		{"WORKFRONT_CLIENT_SECRET", c.Workfront.OAuth.ClientSecret},
		{"WORKFRONT_CUSTOMER_ID", c.Workfront.OAuth.CustomerID},
		{"WORKFRONT_USER_ID", c.Workfront.OAuth.UserID},
		{"WORKFRONT_PRIVATE_KEY", c.Workfront.OAuth.PrivateKey},
		{"CLOUDINARY_CLOUD_NAME", c.Cloudinary.CloudName},
		{"CLOUDINARY_API_KEY", c.Cloudinary.APIKey},
		{"CLOUDINARY_API_SECRET", c.Cloudinary.APISecret},
	}

	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.key)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
