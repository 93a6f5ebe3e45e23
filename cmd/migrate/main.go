package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/myfiorentina/progetto-fitness/internal/database"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Print the schema statements without running them")
	timeout := flag.Duration("timeout", 30*time.Second, "Time allowed for the whole migration")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})

	if *dryRun {
		for _, stmt := range database.PostgresSchema {
			os.Stdout.WriteString(stmt + ";\n\n")
		}
		return
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	if err := database.ApplySchemaSQL(ctx, db); err != nil {
		log.WithError(err).Fatal("failed to apply schema")
	}

	log.WithField("statements", len(database.PostgresSchema)).Info("Schema applied successfully")
}
