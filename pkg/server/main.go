/* Copyright (C) 2024, 2025 Notepool contributors
 *
 * This file is part of Notepool.
 *
 * Notepool is free software: you can redistribute it and/or modify
 * it under the terms of the GNU Affero General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * Notepool is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU Affero General Public License for more details.
 *
 * You should have received a copy of the GNU Affero General Public License
 * along with Notepool.  If not, see <https://www.gnu.org/licenses/>.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/notepool/notepool/pkg/clock"
	"github.com/notepool/notepool/pkg/server/app"
	"github.com/notepool/notepool/pkg/server/blob"
	"github.com/notepool/notepool/pkg/server/buildinfo"
	"github.com/notepool/notepool/pkg/server/config"
	"github.com/notepool/notepool/pkg/server/controllers"
	"github.com/notepool/notepool/pkg/server/database"
	"github.com/notepool/notepool/pkg/server/log"
)

func initFiles(cfg config.Config) blob.Store {
	store, err := blob.NewMinioStore(blob.MinioConfig{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		panic(errors.Wrap(err, "initializing object storage"))
	}

	if err := store.EnsureBucket(context.Background()); err != nil {
		panic(errors.Wrap(err, "ensuring bucket"))
	}

	return store
}

func initApp(cfg config.Config) app.App {
	db := database.Open(cfg.DatabaseURL, cfg.DBPath)
	database.InitSchema(db)

	return app.App{
		DB:              db,
		Clock:           clock.New(),
		Files:           initFiles(cfg),
		AuthTokenSecret: cfg.AuthTokenSecret,
		AppEnv:          cfg.AppEnv,
		Port:            cfg.Port,
	}
}

func startCmd(args []string) {
	startFlags := flag.NewFlagSet("start", flag.ExitOnError)
	startFlags.Usage = func() {
		fmt.Printf(`Usage:
  notepool-server start [flags]

Flags:
`)
		startFlags.PrintDefaults()
	}

	appEnv := startFlags.String("appEnv", "", "Application environment (env: APP_ENV, default: PRODUCTION)")
	port := startFlags.String("port", "", "Server port (env: PORT, default: 3001)")
	databaseURL := startFlags.String("databaseUrl", "", "Postgres connection string (env: DATABASE_URL)")
	dbPath := startFlags.String("dbPath", "", "Path to SQLite database file (env: DB_PATH, default: data/notepool.db)")
	logLevel := startFlags.String("logLevel", "", "Log level: debug, info, warn, or error (env: LOG_LEVEL, default: info)")

	startFlags.Parse(args)

	// A missing .env file is fine; the environment may be set directly
	godotenv.Load()

	cfg, err := config.New(config.Params{
		AppEnv:      *appEnv,
		Port:        *port,
		DatabaseURL: *databaseURL,
		DBPath:      *dbPath,
		LogLevel:    *logLevel,
	})
	if err != nil {
		fmt.Printf("Error: %s\n\n", err)
		startFlags.Usage()
		os.Exit(1)
	}

	// Set log level
	log.SetLevel(cfg.LogLevel)

	app := initApp(cfg)
	defer func() {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}()

	ctl := controllers.New(&app)

	r, err := controllers.NewRouter(&app, controllers.NewAPIRoutes(&app, ctl))
	if err != nil {
		panic(errors.Wrap(err, "initializing router"))
	}

	log.WithFields(log.Fields{
		"version": buildinfo.Version,
		"port":    cfg.Port,
	}).Info("Notepool server starting")

	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.ErrorWrap(err, "server failed")
		os.Exit(1)
	}
}

func versionCmd() {
	fmt.Printf("notepool-server-%s\n", buildinfo.Version)
}

func rootCmd() {
	fmt.Printf(`Notepool server - a marketplace for course notes

Usage:
  notepool-server [command] [flags]

Available commands:
  start: Start the server (use 'notepool-server start --help' for flags)
  version: Print the version
`)
}

func main() {
	if len(os.Args) < 2 {
		rootCmd()
		return
	}

	cmd := os.Args[1]

	switch cmd {
	case "start":
		startCmd(os.Args[2:])
	case "version":
		versionCmd()
	default:
		fmt.Printf("Unknown command %s\n", cmd)
		rootCmd()
		os.Exit(1)
	}
}
