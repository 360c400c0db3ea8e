package config

import "time"

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int      `yaml:"port"`
	Env            string   `yaml:"env"` // "development" | "production"
	DSN            string   `yaml:"dsn"` // MySQL DSN
	RedisURL       string   `yaml:"redis_url"`
	JWTSecret      string   `yaml:"jwt_secret"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	Timezone       string   `yaml:"timezone"`

	S3    S3Config    `yaml:"s3"`
	Mail  MailConfig  `yaml:"mail"`
	Cache CacheConfig `yaml:"cache"`
	Cron  CronConfig  `yaml:"cron"`
}

// S3Config configures the S3-compatible media store.
type S3Config struct {
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Endpoint        string `yaml:"endpoint"` // optional, for MinIO/R2 etc.
	UsePathStyle    bool   `yaml:"use_path_style"`
	CustomDomain    string `yaml:"custom_domain"` // optional CDN domain for public URLs
}

// MailConfig configures the SMTP sender used for OTP delivery.
type MailConfig struct {
	Enable bool   `yaml:"enable"`
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	User   string `yaml:"user"`
	Pass   string `yaml:"pass"`
	From   string `yaml:"from"`
}

// CacheConfig holds read-cache TTLs in seconds. Zero values fall back to
// the defaults (300s details, 600s approved sets). Disable keeps Redis
// connected for the middleware but turns query memoization off.
type CacheConfig struct {
	Disable            bool `yaml:"disable"`
	DetailTTLSeconds   int  `yaml:"detail_ttl_seconds"`
	ApprovedTTLSeconds int  `yaml:"approved_ttl_seconds"`
}

// CronConfig holds background maintenance settings.
type CronConfig struct {
	Disable             bool `yaml:"disable"`
	OrphanMaxAgeMinutes int  `yaml:"orphan_max_age_minutes"`
}

func (c CacheConfig) DetailTTL() time.Duration {
	return secondsOr(c.DetailTTLSeconds, 300*time.Second)
}

func (c CacheConfig) ApprovedTTL() time.Duration {
	return secondsOr(c.ApprovedTTLSeconds, 600*time.Second)
}

// OrphanMaxAge returns the age after which an unclaimed upload is swept.
func (c CronConfig) OrphanMaxAge() time.Duration {
	if c.OrphanMaxAgeMinutes <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.OrphanMaxAgeMinutes) * time.Minute
}

func secondsOr(n int, def time.Duration) time.Duration {
	if n <= 0 {
		return def
	}
	return time.Duration(n) * time.Second
}
