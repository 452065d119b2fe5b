package main

import (
	"flag"
	"os"

	"schoolnet/config"
	"schoolnet/internal/logs"
	"schoolnet/server"
)

func main() {
	cfgPath := flag.String("config", "", "path to config file (yaml)")
	migrateOnly := flag.Bool("migrate-only", false, "migrate the catalog schema and exit")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logs.Logger.Fatalf("config: %v", err)
	}
	if *migrateOnly {
		cfg.Database.AutoMigrate = true
	}

	var app server.App
	if err := app.Initialize(cfg); err != nil {
		logs.Logger.Fatalf("init: %v", err)
	}
	if *migrateOnly {
		logs.Logger.Info("schema migrated")
		app.Close()
		os.Exit(0)
	}
	if err := app.Run(); err != nil {
		logs.Logger.Fatalf("run: %v", err)
	}
}
