/*
Phpsynd starts the phpsyn parse service and begins listening for HTTP
requests.

Usage:

	phpsynd [flags]
	phpsynd [flags] -l [[ADDRESS]:PORT]

Once started, phpsynd listens for HTTP requests and responds to them via
the REST API documented in SPEC_FULL.md's server section: POST /v1/parse,
GET /v1/history, and GET /healthz. By default it listens on localhost:8080;
this can be changed with the --listen/-l flag or the matching environment
variable.

If a token secret is not given, one is generated and seeded from a random
source. As a consequence, in this mode of operation all tokens become
invalid as soon as the server shuts down. This is suitable for local testing
but must be given via either the CLI flag or environment variable when
running in production.

The flags are:

	-v, --version
		Give the current version of phpsynd and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, defaults to the value of environment variable
		PHPSYND_LISTEN_ADDRESS, and if that is not given, defaults to
		localhost:8080.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing bearer tokens. If there are
		fewer than 32 bytes in the secret, it is repeated until it is. The
		maximum size is 64 bytes. If not given, defaults to the value of
		environment variable PHPSYND_TOKEN_SECRET. If no secret is specified
		or an empty one is given, a random secret is generated and the
		server will warn that all tokens become invalid at shutdown.

	--db DRIVER[:PARAMS]
		Use the given DB connection string. DRIVER must be one of the
		following: inmem, sqlite. inmem has no further params. sqlite needs
		the path to the data directory, e.g. sqlite:path/to/db_dir. If not
		given, defaults to the value of environment variable
		PHPSYND_DATABASE. If no DB driver is specified or an empty one is
		given, an in-memory database is automatically selected.

	--short-tags
		Accept a bare "<?" as an open tag instead of treating it as literal
		inline HTML, matching environment variable PHPSYND_SHORT_TAGS.
*/
package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/dekarrin/phpsyn/internal/config"
	"github.com/dekarrin/phpsyn/internal/plog"
	"github.com/dekarrin/phpsyn/internal/version"
	"github.com/dekarrin/phpsyn/server"
)

const (
	EnvListen    = "PHPSYND_LISTEN_ADDRESS"
	EnvSecret    = "PHPSYND_TOKEN_SECRET"
	EnvDB        = "PHPSYND_DATABASE"
	EnvShortTags = "PHPSYND_SHORT_TAGS"
)

var (
	flagVersion   = pflag.BoolP("version", "v", false, "Give the current version of phpsynd and then exit.")
	flagListen    = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret    = pflag.StringP("secret", "s", "", "Use the given secret for token signing.")
	flagDB        = pflag.String("db", "", "Use the given DB connection string.")
	flagShortTags = pflag.Bool("short-tags", false, "Accept a bare \"<?\" as an open tag.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("phpsynd %s\n", version.Current)
		return
	}

	if args := pflag.Args(); len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	cfg, err := buildConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err.Error())
		os.Exit(1)
	}

	log := plog.New(plog.LevelInfo)

	srv, err := server.New(cfg, log)
	if err != nil {
		log.Fatalf("could not start server: %s", err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Infof("shutting down")
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Errorf("error during shutdown: %s", err.Error())
		}
	}()

	log.Infof("starting phpsyn parse service %s", version.Current)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("server error: %s", err.Error())
	}
}

func buildConfig() (config.Config, error) {
	var cfg config.Config

	listenAddr := os.Getenv(EnvListen)
	if pflag.Lookup("listen").Changed {
		listenAddr = *flagListen
	}
	cfg.ListenAddress = listenAddr

	dbConnStr := os.Getenv(EnvDB)
	if pflag.Lookup("db").Changed {
		dbConnStr = *flagDB
	}
	if dbConnStr != "" {
		dbParts := strings.SplitN(dbConnStr, ":", 2)
		switch strings.ToLower(dbParts[0]) {
		case "inmem":
			cfg.DB = config.Database{Type: config.DatabaseInMemory}
		case "sqlite":
			if len(dbParts) != 2 || dbParts[1] == "" {
				return config.Config{}, fmt.Errorf("sqlite DB string must be sqlite:path/to/db_dir")
			}
			if err := os.MkdirAll(dbParts[1], 0770); err != nil {
				return config.Config{}, fmt.Errorf("could not build data directory: %w", err)
			}
			cfg.DB = config.Database{Type: config.DatabaseSQLite, DataDir: dbParts[1]}
		default:
			return config.Config{}, fmt.Errorf("unsupported DB engine: %q", dbParts[0])
		}
	}

	tokSecStr := os.Getenv(EnvSecret)
	if pflag.Lookup("secret").Changed {
		tokSecStr = *flagSecret
	}
	if tokSecStr != "" {
		secret := []byte(tokSecStr)
		for len(secret) < config.MinSecretSize {
			secret = append(secret, secret...)
		}
		if len(secret) > config.MaxSecretSize {
			return config.Config{}, fmt.Errorf("token secret is %d bytes, but must be <= %d bytes", len(secret), config.MaxSecretSize)
		}
		cfg.AuthSecret = secret
	} else {
		secret := make([]byte, config.MaxSecretSize)
		if _, err := rand.Read(secret); err != nil {
			return config.Config{}, fmt.Errorf("could not generate token secret: %w", err)
		}
		cfg.AuthSecret = secret
		fmt.Fprintf(os.Stderr, "WARN  Using generated token secret; all tokens issued will become invalid at shutdown\n")
	}

	shortTags := os.Getenv(EnvShortTags) != ""
	if pflag.Lookup("short-tags").Changed {
		shortTags = *flagShortTags
	}
	cfg.Dialect.ShortTagsEnabled = shortTags

	return cfg, nil
}
