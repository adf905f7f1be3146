// Command facets is the operator CLI: version/config info, deployment
// validation and bearer-token minting.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/spf13/pflag"

	"facets_backend/internal/config"
	"facets_backend/internal/platform/db"
	jwtmw "facets_backend/internal/platform/jwt"
	"facets_backend/internal/platform/logger"
	"facets_backend/internal/version"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

const usage = `Usage: facets [--config FILE] <command> [flags]

Commands:
  info       print version and configuration summary
  validate   check configuration, database connectivity and schema
  token      mint a bearer token (--subject NAME [--ttl DURATION])
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("facets", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SetInterspersed(false)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	showVersion := fs.BoolP("version", "v", false, "print version and exit")
	configPath := fs.StringP("config", "c", "", "path to config.yaml")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if *showVersion {
		fmt.Fprintln(stdout, version.String())
		return exitOK
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "info":
		return runInfo(*configPath, stdout, stderr)
	case "validate":
		return runValidate(*configPath, rest, stdout, stderr)
	case "token":
		return runToken(*configPath, rest, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		fs.Usage()
		return exitUsage
	}
}

func runInfo(configPath string, stdout, stderr io.Writer) int {
	fmt.Fprintf(stdout, "package: %s\nversion: %s\n", version.Name, version.Version)

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(stderr, "config:", err)
		return exitFail
	}
	summary := cfg.Summary()
	keys := make([]string, 0, len(summary))
	for k := range summary {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(stdout, "%s: %s\n", k, summary[k])
	}
	return exitOK
}

// runValidate は設定・DB疎通・テーブル有無を順に確認します。最初の失敗で終了します。
func runValidate(configPath string, args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("validate", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	timeout := fs.Duration("timeout", 5*time.Second, "database connect timeout")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(stderr, "config: FAIL:", err)
		return exitFail
	}
	fmt.Fprintln(stdout, "config: ok")

	gdb, err := db.Open(cfg.Database.DB(), *timeout, false, logger.NewNop())
	if err != nil {
		fmt.Fprintln(stderr, "database: FAIL:", err)
		return exitFail
	}
	defer func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	if err := db.Ping(ctx, gdb); err != nil {
		fmt.Fprintln(stderr, "database: FAIL:", err)
		return exitFail
	}
	fmt.Fprintf(stdout, "database: ok (%s)\n", cfg.Database.Driver)

	if !db.HasSchema(gdb) {
		fmt.Fprintln(stderr, "schema: FAIL: examples table is missing (set database.run_migrations)")
		return exitFail
	}
	fmt.Fprintln(stdout, "schema: ok")
	return exitOK
}

func runToken(configPath string, args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("token", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	subject := fs.StringP("subject", "s", "", "token subject (required)")
	ttl := fs.Duration("ttl", 0, "token lifetime (defaults to auth.token_ttl)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *subject == "" {
		fmt.Fprintln(stderr, "--subject is required")
		return exitUsage
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(stderr, "config:", err)
		return exitFail
	}
	if cfg.Auth.JWTSecret == "" {
		fmt.Fprintln(stderr, "auth.jwt_secret is not set")
		return exitFail
	}
	lifetime := cfg.Auth.TokenTTL
	if *ttl > 0 {
		lifetime = *ttl
	}

	token, err := jwtmw.NewGenerator(cfg.Auth.JWTSecret, lifetime).GenerateToken(*subject)
	if err != nil {
		fmt.Fprintln(stderr, "token:", err)
		return exitFail
	}
	fmt.Fprintln(stdout, token)
	return exitOK
}
