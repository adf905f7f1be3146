// Package db はGORMによるデータベース接続とマイグレーションを提供します。
package db

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"facets_backend/internal/feature/examples/domain/entity"
	"facets_backend/internal/platform/logger"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// DefaultSQLitePath はsqlite_path未指定時のデータベースファイルです。
const DefaultSQLitePath = "facets.db"

// retryInterval は接続リトライの間隔です。
var retryInterval = 3 * time.Second

// ErrUnsupportedDriver は未知のドライバー名が指定された場合に返されます。
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Config はデータベース接続設定です。
type Config struct {
	Driver   string
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	// InstanceName はCloud SQLのインスタンス接続名です。設定時はUnixソケット接続になります。
	InstanceName string
	SQLitePath   string
	SSLMode      string
}

// Opener はDSNからデータベース接続を開く関数です。テストで差し替えられます。
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN はドライバーに応じた接続文字列を組み立てます。
func BuildDSN(cfg Config) string {
	switch cfg.driver() {
	case DriverMySQL:
		return mysqlDSN(cfg)
	case DriverPostgres:
		return postgresDSN(cfg)
	default:
		return sqliteDSN(cfg)
	}
}

func (cfg Config) driver() string {
	if cfg.Driver == "" {
		return DriverSQLite
	}
	return strings.ToLower(cfg.Driver)
}

func mysqlDSN(cfg Config) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Params = map[string]string{"charset": "utf8mb4"}
	if cfg.InstanceName != "" {
		mc.Net = "unix"
		mc.Addr = "/cloudsql/" + cfg.InstanceName
	} else {
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
	}
	return mc.FormatDSN()
}

func postgresDSN(cfg Config) string {
	host := cfg.Host
	if cfg.InstanceName != "" {
		host = "/cloudsql/" + cfg.InstanceName
	}
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	parts := []string{
		"host=" + quoteParam(host),
		"user=" + quoteParam(cfg.User),
		"password=" + quoteParam(cfg.Password),
		"dbname=" + quoteParam(cfg.Name),
		"sslmode=" + sslmode,
		"TimeZone=UTC",
	}
	if cfg.Port != "" && cfg.InstanceName == "" {
		parts = append(parts, "port="+cfg.Port)
	}
	return strings.Join(parts, " ")
}

// quoteParam はlibpqのkey=value形式に合わせて値をクォートします。
func quoteParam(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}

func sqliteDSN(cfg Config) string {
	if cfg.SQLitePath == "" {
		return DefaultSQLitePath
	}
	return cfg.SQLitePath
}

// OpenerFor はドライバーに対応するOpenerを返します。
func OpenerFor(driver string) (Opener, error) {
	var dialect func(string) gorm.Dialector
	switch strings.ToLower(driver) {
	case DriverSQLite, "":
		dialect = sqlite.Open
	case DriverPostgres:
		dialect = postgres.Open
	case DriverMySQL:
		dialect = gmysql.Open
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
	return func(dsn string) (*gorm.DB, error) {
		return gorm.Open(dialect(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
			NowFunc: func() time.Time {
				return time.Now().UTC()
			},
		})
	}, nil
}

// ConnectWithRetry はtimeoutに達するまで一定間隔で接続を試みます。
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	return connectWithRetry(dsn, timeout, opener, nil)
}

func connectWithRetry(dsn string, timeout time.Duration, opener Opener, log logger.Logger) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for attempt := 1; ; attempt++ {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("db connect failed after %d attempts: %w", attempt, err)
		}
		if log != nil {
			log.Warn("db connect failed, retrying", logger.Int("attempt", attempt), logger.Error(err))
		}
		time.Sleep(min(retryInterval, remaining))
	}
}

// Open は設定に従って接続し、必要であればマイグレーションを実行します。
func Open(cfg Config, timeout time.Duration, runMigrations bool, log logger.Logger) (*gorm.DB, error) {
	opener, err := OpenerFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := connectWithRetry(BuildDSN(cfg), timeout, opener, log)
	if err != nil {
		return nil, err
	}

	if cfg.driver() == DriverSQLite {
		// SQLiteは書き込みが単一接続に直列化されます
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if runMigrations {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Info("database migrated", logger.String("driver", cfg.driver()))
	}
	return db, nil
}

// Migrate はアプリケーションのテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entity.Example{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Ping はデータベースへの疎通を確認します。
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// HasSchema はマイグレーション済みかどうかを返します。
func HasSchema(db *gorm.DB) bool {
	return db.Migrator().HasTable(&entity.Example{})
}
