package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "SAFERAIL"

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // gin mode: debug | release | test
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"` // console | json
}

type JWTConfig struct {
	Secret    string        `mapstructure:"secret"`
	TTL       time.Duration `mapstructure:"ttl"`
	TicketTTL time.Duration `mapstructure:"ticket_ttl"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type VerificationConfig struct {
	Delay time.Duration `mapstructure:"delay"`
}

type RateLimitConfig struct {
	VerifyAttempts int           `mapstructure:"verify_attempts"`
	VerifyWindow   time.Duration `mapstructure:"verify_window"`
	LoginAttempts  int           `mapstructure:"login_attempts"`
	LoginWindow    time.Duration `mapstructure:"login_window"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MongoConfig struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

type TwilioConfig struct {
	AccountSID string `mapstructure:"account_sid"`
	AuthToken  string `mapstructure:"auth_token"`
	From       string `mapstructure:"from"`
}

type DatasetConfig struct {
	StationCSV string `mapstructure:"station_csv"`
}

type UploadsConfig struct {
	Dir     string `mapstructure:"dir"`
	MaxSize int64  `mapstructure:"max_size"`
}

type ReportsConfig struct {
	Dir  string        `mapstructure:"dir"`
	Tick time.Duration `mapstructure:"tick"`
}

type AlertsConfig struct {
	StreamLimit int `mapstructure:"stream_limit"`
}

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	DB           DBConfig           `mapstructure:"db"`
	Log          LogConfig          `mapstructure:"log"`
	JWT          JWTConfig          `mapstructure:"jwt"`
	CORS         CORSConfig         `mapstructure:"cors"`
	Verification VerificationConfig `mapstructure:"verification"`
	RateLimit    RateLimitConfig    `mapstructure:"ratelimit"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Mongo        MongoConfig        `mapstructure:"mongo"`
	Twilio       TwilioConfig       `mapstructure:"twilio"`
	Dataset      DatasetConfig      `mapstructure:"dataset"`
	Uploads      UploadsConfig      `mapstructure:"uploads"`
	Reports      ReportsConfig      `mapstructure:"reports"`
	Alerts       AlertsConfig       `mapstructure:"alerts"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("db.path", "saferail.db")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", 24*time.Hour)
	v.SetDefault("jwt.ticket_ttl", 15*time.Minute)

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("verification.delay", 1500*time.Millisecond)

	v.SetDefault("ratelimit.verify_attempts", 3)
	v.SetDefault("ratelimit.verify_window", time.Hour)
	v.SetDefault("ratelimit.login_attempts", 5)
	v.SetDefault("ratelimit.login_window", 15*time.Minute)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.database", "SafarGuardia")
	v.SetDefault("mongo.collection", "events")

	v.SetDefault("twilio.account_sid", "")
	v.SetDefault("twilio.auth_token", "")
	v.SetDefault("twilio.from", "")

	v.SetDefault("dataset.station_csv", "data/mumbai_local.csv")

	v.SetDefault("uploads.dir", "uploads")
	v.SetDefault("uploads.max_size", 8<<20)

	v.SetDefault("reports.dir", "reports")
	v.SetDefault("reports.tick", time.Minute)

	v.SetDefault("alerts.stream_limit", 20)
}

// Load reads .env (if any), then configs/config.yml (if any), then SAFERAIL_*
// environment overrides such as SAFERAIL_SERVER_PORT.
// An empty path searches ./configs and the working directory.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yml")
		v.AddConfigPath("configs")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret is required (set SAFERAIL_JWT_SECRET)")
	}
	if c.RateLimit.VerifyAttempts <= 0 || c.RateLimit.LoginAttempts <= 0 {
		return errors.New("ratelimit attempts must be positive")
	}
	return nil
}
