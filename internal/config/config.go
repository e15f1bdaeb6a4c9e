package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Shipping  ShippingConfig
	Mail      MailConfig
	Logging   LoggingConfig
	Server    ServerConfig
	CORS      CORSConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
	// BaseURL is the externally visible URL, used for OAuth redirect URIs
	BaseURL string
}

// DatabaseConfig holds database connection settings. Driver selects the
// backend: "sqlite" (default, single file) or "postgres".
type DatabaseConfig struct {
	Driver          string
	Path            string // sqlite file path
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
}

// AuthConfig holds session and password hashing settings
type AuthConfig struct {
	// JWTSecret signs session tokens. Must be set outside development.
	JWTSecret string
	// SessionTTL is the signed token lifetime in seconds. The cookie itself
	// is non-persistent, so the browser drops it when the session ends.
	SessionTTL int
	// BcryptCost is the password hashing cost factor
	BcryptCost int
}

// ShippingConfig holds freight estimation settings
type ShippingConfig struct {
	// GeocoderURL is the ZIP lookup service base URL
	GeocoderURL string
	// RoutingURL is the road routing service base URL
	RoutingURL string
	// RatePerMile is the default per-mile rate in dollars
	RatePerMile float64
	// MinimumCharge is the per-truck floor in dollars
	MinimumCharge float64
	// RequestTimeout is the per-call timeout for external lookups (seconds)
	RequestTimeout int
}

// MailConfig holds OAuth client settings for the mail integrations
type MailConfig struct {
	Outlook OAuthClientConfig
	Gmail   OAuthClientConfig
}

// OAuthClientConfig is one OAuth application registration
type OAuthClientConfig struct {
	ClientID     string
	ClientSecret string
	Scopes       []string
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int
	EnableSwagger  bool
}

// CORSConfig holds CORS configuration for the public lead endpoint
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// SecurityConfig holds security header configuration
type SecurityConfig struct {
	EnableHSTS            bool
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	ContentSecurityPolicy string
	FrameOptions          string
	ContentTypeNosniff    bool
	ReferrerPolicy        string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled bool
	// RequestsPerMinute is the per-IP limit for unauthenticated requests
	RequestsPerMinute int
	// RequestsPerMinuteAuth is the per-user limit for authenticated requests
	RequestsPerMinuteAuth int
	// LeadRequestsPerMinute is the per-IP limit on the public lead endpoint
	LeadRequestsPerMinute int
	WhitelistPaths        []string
}

// ConnectionString builds a PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// ConnMaxLifetimeDuration returns connection max lifetime as duration
func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// RequestTimeoutDuration returns request timeout as duration
func (s *ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// SessionTTLDuration returns the session token lifetime as duration
func (a *AuthConfig) SessionTTLDuration() time.Duration {
	return time.Duration(a.SessionTTL) * time.Second
}

// RequestTimeoutDuration returns the external lookup timeout as duration
func (s *ShippingConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Secrets only come from the environment, never the config file
	if secret := v.GetString("JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if id := v.GetString("OUTLOOK_CLIENT_ID"); id != "" {
		cfg.Mail.Outlook.ClientID = id
	}
	if secret := v.GetString("OUTLOOK_CLIENT_SECRET"); secret != "" {
		cfg.Mail.Outlook.ClientSecret = secret
	}
	if id := v.GetString("GMAIL_CLIENT_ID"); id != "" {
		cfg.Mail.Gmail.ClientID = id
	}
	if secret := v.GetString("GMAIL_CLIENT_SECRET"); secret != "" {
		cfg.Mail.Gmail.ClientSecret = secret
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.App.Environment != "development" && c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required outside development")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "SteelStack CRM API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.baseURL", "http://localhost:8080")

	// Database defaults (sqlite keeps the single-tenant install self-contained)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/crm.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "crm")
	v.SetDefault("database.user", "crm_user")
	v.SetDefault("database.password", "crm_password")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 300)

	// Auth defaults
	v.SetDefault("auth.jwtSecret", "")
	v.SetDefault("auth.sessionTTL", 43200) // 12 hours
	v.SetDefault("auth.bcryptCost", 12)

	// Shipping defaults
	v.SetDefault("shipping.geocoderURL", "https://api.zippopotam.us")
	v.SetDefault("shipping.routingURL", "https://router.project-osrm.org")
	v.SetDefault("shipping.ratePerMile", 3.85)
	v.SetDefault("shipping.minimumCharge", 1200)
	v.SetDefault("shipping.requestTimeout", 10)

	// Mail defaults
	v.SetDefault("mail.outlook.scopes", []string{"offline_access", "Mail.Read", "User.Read"})
	v.SetDefault("mail.gmail.scopes", []string{"https://www.googleapis.com/auth/gmail.readonly"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Server defaults
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 30)
	v.SetDefault("server.requestTimeout", 60)
	v.SetDefault("server.enableSwagger", true)

	// CORS defaults - restrictive by default, override for the public website
	v.SetDefault("cors.allowedOrigins", []string{})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"})
	v.SetDefault("cors.exposedHeaders", []string{"Location", "X-Request-ID"})
	v.SetDefault("cors.allowCredentials", true)
	v.SetDefault("cors.maxAge", 300)

	// Security header defaults
	v.SetDefault("security.enableHSTS", false)
	v.SetDefault("security.hstsMaxAge", 31536000)
	v.SetDefault("security.hstsIncludeSubdomains", true)
	v.SetDefault("security.contentSecurityPolicy", "default-src 'self'")
	v.SetDefault("security.frameOptions", "DENY")
	v.SetDefault("security.contentTypeNosniff", true)
	v.SetDefault("security.referrerPolicy", "strict-origin-when-cross-origin")

	// Rate limiting defaults
	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 60)
	v.SetDefault("rateLimit.requestsPerMinuteAuth", 120)
	v.SetDefault("rateLimit.leadRequestsPerMinute", 10)
	v.SetDefault("rateLimit.whitelistPaths", []string{"/health", "/health/db", "/health/ready"})
}
