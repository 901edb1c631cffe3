package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/Andrew766938/DASHA-FINAL/internal/config"
	"github.com/Andrew766938/DASHA-FINAL/internal/database"
)

// One-shot maintenance sweep: releases expired seat holds, frees orphaned
// held seats, and deactivates departed trains. The server runs the same
// cleanup on a schedule; this command exists for operators who need it now.
func main() {
	var dbURLFlag string
	var holdExpiry time.Duration
	flag.StringVar(&dbURLFlag, "database-url", "", "PostgreSQL connection string (overrides DATABASE_URL)")
	flag.DurationVar(&holdExpiry, "hold-expiry", 15*time.Minute, "age after which a pending ticket is released")
	flag.Parse()

	// Try loading .env from current working directory (optional)
	_ = godotenv.Load()

	dbURL := dbURLFlag
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set and -database-url was not provided")
	}

	dbCfg := config.DatabaseConfig{
		URL:                dbURL,
		MaxConnections:     5,
		MaxIdleConnections: 2,
	}

	db, err := database.NewConnection(dbCfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ticketRepo := database.NewTicketRepository(db.DB)
	seatRepo := database.NewSeatRepository(db.DB)
	trainRepo := database.NewTrainRepository(db.DB)

	cutoff := time.Now().Add(-holdExpiry)
	stale, err := ticketRepo.GetExpiredPending(cutoff, 1000)
	if err != nil {
		log.Fatalf("failed to fetch expired pending tickets: %v", err)
	}

	released := 0
	for _, ticket := range stale {
		if _, err := ticketRepo.Release(ticket.ID); err != nil {
			fmt.Printf("skipping ticket %d: %v\n", ticket.ID, err)
			continue
		}
		released++
	}
	fmt.Printf("Released %d expired pending tickets (cutoff %s)\n", released, cutoff.Format(time.RFC3339))

	orphans, err := seatRepo.ReleaseOrphanHolds()
	if err != nil {
		log.Fatalf("failed to release orphan holds: %v", err)
	}
	fmt.Printf("Released %d orphaned seat holds\n", orphans)

	deactivated, err := trainRepo.DeactivateDeparted(time.Now())
	if err != nil {
		log.Fatalf("failed to deactivate departed trains: %v", err)
	}
	fmt.Printf("Deactivated %d departed trains\n", deactivated)
}
