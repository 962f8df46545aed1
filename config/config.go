package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values. It is loaded once at startup and
// treated as read-only afterwards.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Stripe.
	StripeSecretKey string `mapstructure:"STRIPE_SECRET_KEY"`
	Currency        string `mapstructure:"CURRENCY"`

	// Pricing.
	TaxRate            float64 `mapstructure:"TAX_RATE"`
	MaxDiscountPercent float64 `mapstructure:"MAX_DISCOUNT_PERCENT"`

	// CRM (LeadConnector / GoHighLevel).
	GHLAPIKey               string        `mapstructure:"GHL_API_KEY"`
	GHLLocationID           string        `mapstructure:"GHL_LOCATION_ID"`
	GHLBaseURL              string        `mapstructure:"GHL_BASE_URL"`
	GHLAPIVersion           string        `mapstructure:"GHL_API_VERSION"`
	GHLOnboardingPipelineID string        `mapstructure:"GHL_ONBOARDING_PIPELINE_ID"`
	GHLPaidInvoiceStageID   string        `mapstructure:"GHL_PAID_INVOICE_STAGE_ID"`
	GHLTimeout              time.Duration `mapstructure:"GHL_TIMEOUT"`

	// Notification targets and the business shown on invoices.
	SalesTeamEmail  string `mapstructure:"SALES_TEAM_EMAIL"`
	SalesTeamName   string `mapstructure:"SALES_TEAM_NAME"`
	BusinessName    string `mapstructure:"BUSINESS_NAME"`
	BusinessPhone   string `mapstructure:"BUSINESS_PHONE"`
	BusinessAddress string `mapstructure:"BUSINESS_ADDRESS"`
	BusinessWebsite string `mapstructure:"BUSINESS_WEBSITE"`

	// Redis configuration.
	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	RedisPassword  string        `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int           `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int           `mapstructure:"REDIS_QUEUE_DB"`
	SessionTTL     time.Duration `mapstructure:"SESSION_TTL"`

	// MongoDB checkout audit log.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Send notifications through the asynq worker instead of inline.
	NotifyAsync bool `mapstructure:"NOTIFY_ASYNC"`

	// Admin API.
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	AdminEmail        string `mapstructure:"ADMIN_EMAIL"`
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"`

	// Email copy generation.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	// Signature storage.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `mapstructure:"CLOUDINARY_FOLDER"`
}

// LoadConfig reads config.yaml (if any) and the environment into a Config.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Look for a config file named "config.yaml" in the current and "config" directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	// Automatically use environment variables where available.
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "3003")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)

	v.SetDefault("STRIPE_SECRET_KEY", "")
	v.SetDefault("CURRENCY", "usd")

	// Ohio sales tax.
	v.SetDefault("TAX_RATE", 0.0575)
	v.SetDefault("MAX_DISCOUNT_PERCENT", 30)

	v.SetDefault("GHL_API_KEY", "")
	v.SetDefault("GHL_LOCATION_ID", "")
	v.SetDefault("GHL_BASE_URL", "https://services.leadconnectorhq.com")
	v.SetDefault("GHL_API_VERSION", "2021-07-28")
	v.SetDefault("GHL_ONBOARDING_PIPELINE_ID", "lWqPrn6RK2eURjtOZWdN")
	v.SetDefault("GHL_PAID_INVOICE_STAGE_ID", "ec0de481-33e5-4c67-b47c-d4d0e5a5a730")
	v.SetDefault("GHL_TIMEOUT", 15*time.Second)

	v.SetDefault("SALES_TEAM_EMAIL", "opportunities@crossoveraix.com")
	v.SetDefault("SALES_TEAM_NAME", "Sales Team")
	v.SetDefault("BUSINESS_NAME", "Crossover AI")
	v.SetDefault("BUSINESS_PHONE", "+1-555-0100")
	v.SetDefault("BUSINESS_ADDRESS", "123 Business St")
	v.SetDefault("BUSINESS_WEBSITE", "https://crossoveraix.com")

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_SESSION_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)
	v.SetDefault("SESSION_TTL", 24*time.Hour)

	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "salesnav")

	v.SetDefault("NOTIFY_ASYNC", false)

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")

	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "models/gemini-1.5-flash")

	v.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	v.SetDefault("CLOUDINARY_API_KEY", "")
	v.SetDefault("CLOUDINARY_API_SECRET", "")
	v.SetDefault("CLOUDINARY_FOLDER", "salesnav/signatures")
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
