package main

import (
	"flag"
	"fmt"
	"os"

	"genovault/internal/auth"
	"genovault/internal/config"
	"genovault/internal/constants"
	"genovault/internal/database"
	"genovault/internal/logger"
	"genovault/internal/server"
	"genovault/internal/version"
)

func main() {
	// 0. Version flag
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()
	if *showVersion {
		fmt.Printf("%s %s\n", constants.AppDisplayName, version.Version)
		os.Exit(0)
	}

	// 1. Initialize debug logger
	log := logger.NewLogger(constants.DefaultLogLevel)
	log.Info("%s version %s starting", constants.AppDisplayName, version.Version)

	// 2. Load or create config
	log.Info("Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Error("Failed to load config: %v", err)
		os.Exit(1)
	}
	log.Debug("Config directory: %s", config.GetConfigDir())

	// 3. Secrets come from the environment, not the config file
	if err := cfg.LoadSecrets(); err != nil {
		log.Error("Failed to load secrets: %v", err)
		os.Exit(1)
	}

	if cfg.WorkingDirectory == "" {
		log.Error("working_directory is not set in %s", config.GetConfigPath())
		os.Exit(1)
	}

	// 4. Prepare the working directory layout
	log.Info("Initializing working directory: %s", cfg.WorkingDirectory)
	if err := config.InitializeWorkingDirectory(cfg.WorkingDirectory); err != nil {
		log.Error("Failed to initialize working directory: %v", err)
		os.Exit(1)
	}

	// Enable file logging now that workdir is available
	if err := log.SetWorkDir(cfg.WorkingDirectory); err != nil {
		log.Warn("Failed to enable file logging: %v", err)
	} else {
		log.Info("File logging enabled in %s", cfg.WorkingDirectory)
	}

	cfg.LogEffectiveValues(log)

	// 5. Open the store and apply the schema
	db, err := database.InitStore(config.StorePath(cfg.WorkingDirectory))
	if err != nil {
		log.Error("Failed to open database: %v", err)
		os.Exit(1)
	}

	// 6. Wire stores and services
	app, err := server.NewApp(cfg, log, db)
	if err != nil {
		log.Error("Failed to initialize application: %v", err)
		os.Exit(1)
	}

	// 7. Bootstrap auth: create admin user if no users exist
	bootstrapResult, err := auth.Bootstrap(app.Users, log)
	if err != nil {
		log.Error("Auth bootstrap failed: %v", err)
		os.Exit(1)
	}
	if bootstrapResult != nil {
		fmt.Println("╔══════════════════════════════════════════════════════════════╗")
		fmt.Println("║              INITIAL ADMIN CREDENTIALS                       ║")
		fmt.Println("║  Save these now — they will NOT be shown again.              ║")
		fmt.Println("╠══════════════════════════════════════════════════════════════╣")
		fmt.Printf("║  Email    : %-48s ║\n", bootstrapResult.Email)
		fmt.Printf("║  Password : %-48s ║\n", bootstrapResult.Password)
		fmt.Println("╚══════════════════════════════════════════════════════════════╝")
		log.Info("Auth: bootstrap complete, admin account created")
	}

	// 8. Start the server (blocks until shutdown)
	srv := server.NewServer(app)
	if err := srv.Start(); err != nil {
		log.Error("Server error: %v", err)
		os.Exit(1)
	}

	log.Close()
}
