// Command admin runs maintenance tasks against the configured database.
//
//	admin migrate
//	admin create-user -name Ana -email ana@x.com -password pw -role manager
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"construction-pm/internal/core/config"
	"construction-pm/internal/core/database"
	"construction-pm/internal/core/logger"
	"construction-pm/internal/domain"
	"construction-pm/internal/repo"
	"construction-pm/internal/service"
)

const usage = `usage: admin [-config path] <command> [flags]

commands:
  migrate       create or update the schema
  create-user   register a user (-name -email -password -role)
`

func main() {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("admin", flag.ExitOnError)
	cfgPath := fs.String("config", "", "config file (defaults to $CONFIG_PATH)")
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	_ = fs.Parse(os.Args[1:])
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}

	cfg, err := config.Read(*cfgPath)
	if err == nil {
		err = cfg.ValidateDB()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, cleanup := logger.FromConfig(cfg.Log)
	defer cleanup()

	db, err := database.NewGorm(database.OptsFromConfig(cfg.DB), log)
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cmd, args := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "migrate":
		err = database.Migrate(db.WithContext(ctx))
	case "create-user":
		err = createUser(ctx, db, log, args)
	default:
		fs.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(cmd+" failed", zap.Error(err))
	}
	log.Info(cmd + " done")
}

// tokenless satisfies the issuer dependency; create-user never logs in.
type tokenless struct{}

func (tokenless) Issue(int64, string) (string, error) {
	return "", errors.New("token issuing is not available in admin")
}

func createUser(ctx context.Context, db *gorm.DB, log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "login email")
	password := fs.String("password", "", "initial password")
	role := fs.String("role", "admin", "role label")
	_ = fs.Parse(args)
	if *name == "" || *email == "" || *password == "" || *role == "" {
		return errors.New(domain.MsgFieldsRequired)
	}

	auth := service.NewAuthService(repo.NewUserRepo(db), tokenless{})
	u, err := auth.Register(ctx, *name, *email, *password, *role)
	if err != nil {
		return err
	}
	log.Info("user created", zap.Int64("user_id", u.ID), zap.String("email", u.Email))
	return nil
}
