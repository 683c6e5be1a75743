package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/badoux/checkmail"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	database "github.com/sebuszqo/ExpenseTracker/db"
	"github.com/sebuszqo/ExpenseTracker/internal/config"
	expenseErrors "github.com/sebuszqo/ExpenseTracker/internal/expenses/errors"
	"github.com/sebuszqo/ExpenseTracker/internal/user"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("registeruser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	name := fs.String("name", "", "Display name")
	email := fs.String("email", "", "Email address")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	envFile := fs.String("env", ".env", "Env file with the server settings (STORE_DRIVER, SQLITE_PATH, DB_CONNECTION_STRING, BCRYPT_COST)")
	driver := fs.String("driver", "", "Store driver: sqlite or postgres (defaults to STORE_DRIVER)")
	dsn := fs.String("db", "", "SQLite path or Postgres connection string (defaults to SQLITE_PATH / DB_CONNECTION_STRING)")
	cost := fs.Int("cost", 0, "bcrypt cost (defaults to BCRYPT_COST)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *name == "" || *email == "" {
		fmt.Fprintln(stdout, "Usage: registeruser -name <name> -email <email> [-password <password>] [-env <file>] [-driver sqlite|postgres] [-db <dsn>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: name, email")
	}
	if err := checkmail.ValidateFormat(*email); err != nil {
		return fmt.Errorf("invalid email %q: %w", *email, err)
	}

	cfg, err := storeConfig(*envFile, *driver, *dsn, *cost)
	if err != nil {
		return err
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}

	ctx := context.Background()
	dbService, err := openDatabase(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer dbService.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	service := user.NewUserService(user.NewUserRepository(dbService.DB))
	registered, err := service.Register(ctx, *name, *email, string(hash))
	if err != nil {
		if expenseErrors.IsConstraintViolation(err) {
			return fmt.Errorf("user %s already exists", *email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s created successfully with ID %d\n", registered.Email, registered.ID)
	return nil
}

// storeConfig resolves the store the same way the server does, with
// non-zero flag values taking precedence over the environment.
func storeConfig(envFile, driver, dsn string, cost int) (config.Config, error) {
	cfg, _, err := config.FromEnv(envFile)
	if err != nil {
		return cfg, err
	}
	if driver != "" {
		cfg.StoreDriver = strings.ToLower(driver)
	}
	if cost != 0 {
		cfg.BcryptCost = cost
	}

	switch cfg.StoreDriver {
	case config.DriverSQLite:
		if dsn != "" {
			cfg.SQLitePath = dsn
		}
	case config.DriverPostgres:
		if dsn != "" {
			cfg.DBConnectionString = dsn
		}
	case config.DriverMemory:
		return cfg, errors.New("the memory store cannot persist users, use sqlite or postgres")
	default:
		return cfg, fmt.Errorf("unsupported driver %q", cfg.StoreDriver)
	}
	return cfg, cfg.Validate()
}

func openDatabase(ctx context.Context, cfg config.Config) (*database.DBService, error) {
	if cfg.StoreDriver == config.DriverPostgres {
		return database.NewPostgresService(ctx, cfg.DBConnectionString, nil)
	}
	return database.NewSQLiteService(ctx, cfg.SQLitePath, nil)
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
