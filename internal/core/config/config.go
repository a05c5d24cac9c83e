package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const DefaultPath = "./configs/config.local.yaml"

type HTTP struct {
	Host              string
	Port              int
	ReadTimeoutSec    int
	WriteTimeoutSec   int
	IdleTimeoutSec    int
	RequestTimeoutSec int
	MaxBodyBytes      int64
	MaxConcurrent     int64
	RateLimitRPS      float64
	RateLimitBurst    int
	PerIPRPS          float64
	PerIPBurst        int
}

type App struct {
	Name string
	Env  string
}

type Log struct {
	Level string
	JSON  bool
	// File enables rotation into the given path when set.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTLSec   int    `mapstructure:"ttlSec"`
}

type DB struct {
	Driver string
	// DSN wins over the discrete fields below when set.
	DSN                string
	Host               string
	Port               int
	Username           string
	Password           string
	Name               string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Config struct {
	App   App
	HTTP  HTTP
	Log   Log
	JWT   JWT
	DB    DB
	Redis Redis `mapstructure:"redis"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "construction-pm")
	v.SetDefault("app.env", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 5000)
	v.SetDefault("http.readTimeoutSec", 10)
	v.SetDefault("http.writeTimeoutSec", 15)
	v.SetDefault("http.idleTimeoutSec", 60)
	v.SetDefault("http.requestTimeoutSec", 10)
	v.SetDefault("http.maxBodyBytes", 1<<20)
	v.SetDefault("http.maxConcurrent", 300)
	v.SetDefault("http.rateLimitRPS", 200)
	v.SetDefault("http.rateLimitBurst", 400)
	v.SetDefault("http.perIPRPS", 20)
	v.SetDefault("http.perIPBurst", 40)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.maxSizeMB", 100)
	v.SetDefault("log.maxBackups", 7)
	v.SetDefault("log.maxAgeDays", 30)
	v.SetDefault("log.compress", true)

	// no default secret: Validate rejects an empty one
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "construction-pm")
	v.SetDefault("jwt.accessTokenTTLMin", 60)

	v.SetDefault("db.driver", "mysql")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.username", "root")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "constructionmanagement")
	v.SetDefault("db.maxOpenConns", 25)
	v.SetDefault("db.maxIdleConns", 10)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("db.autoMigrate", true)
	v.SetDefault("db.logLevel", "warn")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttlSec", 60)
}

// Load reads the YAML file at path (or $CONFIG_PATH, or DefaultPath) and
// overlays APP_* environment variables, e.g. APP_JWT_SECRET or APP_DB_HOST.
// A missing file is only an error when the path was given explicitly.
func Load(path string) (*Config, error) {
	c, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Read is Load without validation, for tools that need only part of the
// configuration.
func Read(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := true
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = DefaultPath
			explicit = false
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return errors.New("config: jwt.secret (APP_JWT_SECRET) is required")
	}
	return c.ValidateDB()
}

func (c *Config) ValidateDB() error {
	switch c.DB.Driver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("config: unsupported db.driver %q", c.DB.Driver)
	}
	if c.DB.DSN == "" && c.DB.Name == "" {
		return errors.New("config: db.dsn or db.name is required")
	}
	return nil
}
