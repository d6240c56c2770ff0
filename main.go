package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"github.com/ruachost/domainstack/config"
	"github.com/ruachost/domainstack/internal/database"
	"github.com/ruachost/domainstack/internal/enum"
	"github.com/ruachost/domainstack/internal/repository"
	"github.com/ruachost/domainstack/internal/utils"
	"github.com/ruachost/domainstack/server"
	"github.com/ruachost/domainstack/services/dnslookup"
	"github.com/ruachost/domainstack/services/domainconnection"
)

func usage() {
	fmt.Println("Usage: domainstack <command>")
	fmt.Println("Commands:")
	fmt.Println("  migrate          Run database migrations")
	fmt.Println("  server           Start the application server")
	fmt.Println("  watch <domain>   Poll a domain until its DNS points at the platform")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("Config initialization failed: %v", err)
	}
	if cfg == nil {
		log.Fatalf("config is empty")
	}

	switch os.Args[1] {
	case "migrate":

		storeDB, err := initStoreDatabase(cfg)
		if err != nil {
			log.Fatalf("Store database initialization failed: %v", err)
		}
		if err := repository.MigrateDB(storeDB); err != nil {
			log.Fatalf("Database migration failed: %v", err)
		}
		log.Println("Database migration completed successfully")

	case "server":

		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
		log.Println("DomainStack starting up...")

		storeDB, err := initStoreDatabase(cfg)
		if err != nil {
			log.Fatalf("Store database initialization failed: %v", err)
		}

		srv, err := server.NewServer(cfg, storeDB)
		if err != nil {
			log.Fatalf("Server setup failed: %v", err)
		}

		if err := srv.Run(); err != nil {
			log.Fatalf("Server startup failed: %v", err)
		}

		log.Println("Shutdown complete")

	case "watch":

		if len(os.Args) < 3 {
			fmt.Println("Usage: domainstack watch <domain>")
			os.Exit(1)
		}
		watchDomain(cfg, os.Args[2])

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func initStoreDatabase(cfg *config.Config) (*gorm.DB, error) {
	return database.InitStoreDatabase(&database.DatabaseConfig{
		DBName:          cfg.StoreDatabaseConfig.DBName,
		Host:            cfg.StoreDatabaseConfig.Host,
		Port:            cfg.StoreDatabaseConfig.Port,
		User:            cfg.StoreDatabaseConfig.User,
		Password:        cfg.StoreDatabaseConfig.Password,
		MaxConn:         cfg.StoreDatabaseConfig.MaxConn,
		MaxIdleConn:     cfg.StoreDatabaseConfig.MaxIdleConn,
		ConnMaxLifetime: cfg.StoreDatabaseConfig.ConnMaxLifetime,
		LogLevel:        cfg.StoreDatabaseConfig.LogLevel,
		SSLMode:         cfg.StoreDatabaseConfig.SSLMode,
	})
}

// watchDomain polls the live DNS state of a domain until it points at the
// platform or the poll ceiling is hit. Useful during customer onboarding.
func watchDomain(cfg *config.Config, rawDomain string) {
	domain := utils.NormalizeDomain(rawDomain)
	if !utils.IsValidDomain(domain) {
		log.Fatalf("Invalid domain name: %s", rawDomain)
	}

	dnsService := dnslookup.NewDNSLookupService(cfg.DNSConfig)
	connectionService := domainconnection.NewDomainConnectionService(cfg.PlatformConfig, dnsService)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	poller := domainconnection.NewPoller()
	poller.OnTick = func(status enum.VerificationStatus) {
		log.Printf("Domain %s status: %s", domain, status)
	}

	log.Printf("Watching %s (interval %s, ceiling %s)", domain, poller.Interval, poller.Timeout)
	status := poller.Poll(ctx, func(ctx context.Context) enum.VerificationStatus {
		current, _ := connectionService.Verify(ctx, domain)
		return current
	})

	switch status {
	case enum.VerificationStatusVerified:
		log.Printf("Domain %s is connected", domain)
	case enum.VerificationStatusFailed:
		log.Fatalf("Domain %s verification failed", domain)
	default:
		log.Fatalf("Domain %s is still pending, giving up", domain)
	}
}
