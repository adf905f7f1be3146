package db

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"facets_backend/internal/platform/logger"
)

// TestBuildDSN_MySQLTCP はTCP接続用のDSNが正しく生成されることを検証します。
func TestBuildDSN_MySQLTCP(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Driver:   DriverMySQL,
		User:     "testuser",
		Password: "testpass",
		Name:     "testdb",
		Host:     "localhost",
		Port:     "3306",
	}

	dsn := BuildDSN(cfg)
	assert.Contains(t, dsn, "charset=utf8mb4")

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)

	assert.Equal(t, "testuser", parsed.User)
	assert.Equal(t, "testpass", parsed.Passwd)
	assert.Equal(t, "tcp", parsed.Net)
	assert.Equal(t, "localhost:3306", parsed.Addr)
	assert.Equal(t, "testdb", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.Equal(t, time.UTC, parsed.Loc)
}

// TestBuildDSN_MySQLCloudSQL はInstanceNameが設定されている場合にUnixソケット接続が優先されることを検証します。
func TestBuildDSN_MySQLCloudSQL(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Driver:       DriverMySQL,
		User:         "testuser",
		Password:     "testpass",
		Name:         "testdb",
		Host:         "localhost",
		Port:         "3306",
		InstanceName: "project:region:instance",
	}

	dsn := BuildDSN(cfg)
	assert.Contains(t, dsn, "@unix(/cloudsql/project:region:instance)/testdb")

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "unix", parsed.Net)
	assert.Equal(t, "/cloudsql/project:region:instance", parsed.Addr)
}

func TestBuildDSN_Postgres(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      Config
		contains []string
		excludes []string
	}{
		{
			name:     "tcp with defaults",
			cfg:      Config{Driver: DriverPostgres, User: "u", Password: "p", Name: "facets", Host: "db", Port: "5432"},
			contains: []string{"host=db", "port=5432", "user=u", "password=p", "dbname=facets", "sslmode=disable", "TimeZone=UTC"},
		},
		{
			name:     "explicit sslmode",
			cfg:      Config{Driver: DriverPostgres, Host: "db", SSLMode: "require"},
			contains: []string{"sslmode=require"},
		},
		{
			name:     "password with spaces is quoted",
			cfg:      Config{Driver: DriverPostgres, Host: "db", Password: "it's secret"},
			contains: []string{`password='it\'s secret'`},
		},
		{
			name:     "cloud sql socket",
			cfg:      Config{Driver: "POSTGRES", Host: "ignored", Port: "5432", InstanceName: "p:r:i"},
			contains: []string{"host=/cloudsql/p:r:i"},
			excludes: []string{"port=", "ignored"},
		},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dsn := BuildDSN(tt.cfg)
			for _, s := range tt.contains {
				assert.Contains(t, dsn, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, dsn, s)
			}
		})
	}
}

func TestBuildDSN_SQLite(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultSQLitePath, BuildDSN(Config{}))
	assert.Equal(t, ":memory:", BuildDSN(Config{Driver: DriverSQLite, SQLitePath: ":memory:"}))
}

func TestOpenerFor(t *testing.T) {
	t.Parallel()

	for _, d := range []string{"", DriverSQLite, DriverPostgres, DriverMySQL, "MySQL"} {
		opener, err := OpenerFor(d)
		require.NoError(t, err, d)
		assert.NotNil(t, opener, d)
	}

	_, err := OpenerFor("oracle")
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

// TestConnectWithRetry_SuccessOnFirstTry は初回接続成功時にリトライせずDBを返すことを検証します。
func TestConnectWithRetry_SuccessOnFirstTry(t *testing.T) {
	t.Parallel()

	mockDB := &gorm.DB{}
	attemptCount := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attemptCount++
		assert.Equal(t, "test-dsn", dsn)
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 5*time.Second, opener)

	require.NoError(t, err)
	assert.Same(t, mockDB, db)
	assert.Equal(t, 1, attemptCount)
}

// TestConnectWithRetry_RetriesOnFailure は接続失敗時にリトライして最終的に成功することを検証します。
func TestConnectWithRetry_RetriesOnFailure(t *testing.T) {
	// Not parallel because this test takes time due to retry sleeps

	mockDB := &gorm.DB{}
	attemptCount := 0

	opener := func(dsn string) (*gorm.DB, error) {
		attemptCount++
		if attemptCount < 3 {
			return nil, errors.New("connection refused")
		}
		return mockDB, nil
	}

	// Use a timeout that allows for 2 retries (retry interval is 3 seconds)
	db, err := ConnectWithRetry("test-dsn", 10*time.Second, opener)

	require.NoError(t, err)
	assert.Same(t, mockDB, db)
	assert.Equal(t, 3, attemptCount)
}

// TestConnectWithRetry_TimeoutAfterRetries はタイムアウト後に最後のエラーが返されることを検証します。
func TestConnectWithRetry_TimeoutAfterRetries(t *testing.T) {
	t.Parallel()

	refused := errors.New("connection refused")
	attemptCount := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attemptCount++
		return nil, refused
	}

	start := time.Now()
	_, err := ConnectWithRetry("test-dsn", 100*time.Millisecond, opener)

	require.Error(t, err)
	assert.ErrorIs(t, err, refused)
	assert.GreaterOrEqual(t, attemptCount, 1)
	assert.Less(t, time.Since(start), 2*time.Second, "must not sleep past the deadline")
}

// TestOpen_SQLiteMigrates はSQLiteで接続・マイグレーション・疎通確認ができることを検証します。
func TestOpen_SQLiteMigrates(t *testing.T) {
	t.Parallel()

	cfg := Config{Driver: DriverSQLite, SQLitePath: ":memory:"}
	db, err := Open(cfg, time.Second, true, logger.NewNop())
	require.NoError(t, err)

	assert.True(t, HasSchema(db))
	assert.NoError(t, Ping(context.Background(), db))

	var names []string
	require.NoError(t, db.Raw("SELECT name FROM sqlite_master WHERE type = 'index' AND tbl_name = 'examples'").Scan(&names).Error)
	joined := strings.Join(names, ",")
	assert.Contains(t, joined, "idx_examples_name")
	assert.Contains(t, joined, "idx_examples_active_created")
}

func TestOpen_WithoutMigrations(t *testing.T) {
	t.Parallel()

	db, err := Open(Config{SQLitePath: ":memory:"}, time.Second, false, logger.NewNop())
	require.NoError(t, err)
	assert.False(t, HasSchema(db))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	t.Parallel()

	_, err := Open(Config{Driver: "mssql"}, time.Second, false, logger.NewNop())
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}
