package config

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	HttpAddr        string        `yaml:"http_addr" validate:"required"`
	StorageDriver   string        `yaml:"storage_driver" validate:"required,oneof=postgres mongo"`
	JwtTTL          time.Duration `yaml:"jwt_ttl" validate:"required"` // seconds
	LogLevel        string        `yaml:"log_level"`
	LogJSON         bool          `yaml:"log_json"`
	SecureCookies   bool          `yaml:"secure_cookies"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	MaxTitleLen     int           `yaml:"max_title_len" validate:"required,gt=0"`
	MaxContentLen   int           `yaml:"max_content_len" validate:"required,gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // seconds
	WriteRps        float64       `yaml:"write_rps"`        // per user, 0 disables
}

type Private struct {
	Pg       Pg     `yaml:"pg"`
	MongoURI string `yaml:"mongo_uri"`
	MongoDB  string `yaml:"mongo_db"`
	JwtKey   string `yaml:"jwt_key" validate:"required"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL * time.Second
}

func (c *Config) ShutdownTimeout() time.Duration {
	if c.Public.ShutdownTimeout == 0 {
		return 10 * time.Second
	}
	return c.Public.ShutdownTimeout * time.Second
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic(fmt.Sprintf("can't unmarshal config file %s: %v", configPath, err))
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder, applies
// environment overrides (a .env file in the working directory is honoured)
// and validates the result.
func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	// missing .env is fine, real environment still applies
	_ = godotenv.Load()

	cfg := &Config{Public: public, Private: private}
	applyEnv(cfg)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		panic("invalid config: " + err.Error())
	}
	if cfg.Public.StorageDriver == DriverMongo && cfg.Private.MongoURI == "" {
		panic("invalid config: mongo_uri is required for mongo storage driver")
	}
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Public.HttpAddr = ":" + v
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		cfg.Public.StorageDriver = v
	}
	if v := os.Getenv("JWT_KEY"); v != "" {
		cfg.Private.JwtKey = v
	}
	if v := os.Getenv("MONGODB_URI"); v != "" {
		cfg.Private.MongoURI = v
	}
	if v := os.Getenv("PG_HOST"); v != "" {
		cfg.Private.Pg.Host = v
	}
	if v := os.Getenv("PG_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Private.Pg.Port = port
		}
	}
	if v := os.Getenv("PG_PASSWORD"); v != "" {
		cfg.Private.Pg.Password = v
	}
}
