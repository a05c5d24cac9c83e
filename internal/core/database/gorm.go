package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"construction-pm/internal/core/config"
	zlog "construction-pm/internal/core/logger"
	"construction-pm/internal/domain"
)

var ErrUnsupportedDriver = errors.New("database: unsupported driver")

type Opts struct {
	Driver             string
	DSN                string
	Host               string
	Port               int
	Username           string
	Password           string
	Name               string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
}

func OptsFromConfig(c config.DB) Opts {
	return Opts{
		Driver:             c.Driver,
		DSN:                c.DSN,
		Host:               c.Host,
		Port:               c.Port,
		Username:           c.Username,
		Password:           c.Password,
		Name:               c.Name,
		MaxOpenConns:       c.MaxOpenConns,
		MaxIdleConns:       c.MaxIdleConns,
		ConnMaxLifetimeMin: c.ConnMaxLifetimeMin,
		LogLevel:           c.LogLevel,
	}
}

func NewGorm(o Opts, l *zap.Logger) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch o.Driver {
	case "postgres":
		dial = postgres.Open(PostgresDSN(o))
	case "mysql":
		dsn, err := MySQLDSN(o)
		if err != nil {
			return nil, err
		}
		l.Info("mysql dsn", zap.String("dsn", maskDSN(dsn)))
		dial = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, o.Driver)
	}
	return Open(dial, o, l)
}

// Open configures gorm on top of an arbitrary dialector. Tests use it with
// an in-memory SQLite dialector.
func Open(dial gorm.Dialector, o Opts, l *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(dial, &gorm.Config{
		Logger:         newGormLogger(l, o.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if o.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	}
	if o.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	}
	if o.ConnMaxLifetimeMin > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(o.ConnMaxLifetimeMin) * time.Minute)
	}
	db = db.Session(&gorm.Session{
		PrepareStmt:            true,
		SkipDefaultTransaction: true, // explicit Transaction where needed
	})
	return db, nil
}

func newGormLogger(l *zap.Logger, level string) logger.Interface {
	lvl := logger.Warn
	switch level {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}
	w := log.New(zlog.ToWriter(l.Named("gorm"), zapcore.WarnLevel), "", 0)
	return logger.New(w, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
	})
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.User{}, &domain.Project{}, &domain.Task{})
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// MySQLDSN returns a go-sql-driver DSN. A configured DSN may be in driver
// form (user:pass@tcp(host)/db) or a mysql:// / jdbc:mysql:// URL; without
// one the DSN is assembled from host, port, user, password and name.
// ClientFoundRows is forced so UPDATE reports matched rather than changed
// rows.
func MySQLDSN(o Opts) (string, error) {
	var (
		cfg *mysqldrv.Config
		err error
	)
	in := strings.TrimPrefix(strings.TrimSpace(o.DSN), "jdbc:")
	switch {
	case in == "":
		cfg = mysqldrv.NewConfig()
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
		cfg.DBName = o.Name
	case strings.HasPrefix(in, "mysql://"):
		cfg, err = fromMySQLURL(in)
	default:
		cfg, err = mysqldrv.ParseDSN(in)
	}
	if err != nil {
		return "", fmt.Errorf("mysql dsn: %w", err)
	}
	if o.Username != "" {
		cfg.User = o.Username
	}
	if o.Password != "" {
		cfg.Passwd = o.Password
	}
	cfg.ParseTime = true
	cfg.ClientFoundRows = true
	return cfg.FormatDSN(), nil
}

func fromMySQLURL(raw string) (*mysqldrv.Config, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	var user, pass string
	if u.User != nil {
		user = u.User.Username()
		pass, _ = u.User.Password()
	}
	q := u.Query()
	if v := q.Get("user"); v != "" {
		user = v
	}
	if v := q.Get("password"); v != "" {
		pass = v
	}
	if v := q.Get("characterEncoding"); v != "" && q.Get("charset") == "" {
		q.Set("charset", v)
	}
	switch v := strings.ToLower(q.Get("useSSL")); v {
	case "":
	case "true", "1":
		q.Set("tls", "true")
	case "skip-verify", "preferred":
		q.Set("tls", v)
	default:
		q.Set("tls", "false")
	}
	if tz := q.Get("serverTimezone"); tz != "" {
		q.Set("loc", tz)
	}
	// JDBC-only knobs the Go driver does not understand.
	for _, k := range []string{"user", "password", "useUnicode", "zeroDateTimeBehavior", "characterEncoding", "useSSL", "serverTimezone"} {
		q.Del(k)
	}

	cred := user
	if pass != "" {
		cred += ":" + pass
	}
	if cred != "" {
		cred += "@"
	}
	dsn := fmt.Sprintf("%stcp(%s)/%s", cred, u.Host, strings.TrimPrefix(u.Path, "/"))
	if enc := q.Encode(); enc != "" {
		dsn += "?" + enc
	}
	return mysqldrv.ParseDSN(dsn)
}

func PostgresDSN(o Opts) string {
	if o.DSN != "" {
		return o.DSN
	}
	port := o.Port
	if port == 0 || port == 3306 {
		port = 5432
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		o.Host, port, o.Username, o.Password, o.Name)
}

func maskDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	if at <= 0 {
		return dsn
	}
	if colon := strings.Index(dsn[:at], ":"); colon > 0 {
		return dsn[:colon+1] + "****" + dsn[at:]
	}
	return dsn
}
