package main

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ccstudio/portfolio-backend/config"
	"github.com/ccstudio/portfolio-backend/internal/db"
	"github.com/ccstudio/portfolio-backend/internal/janitor"
	projrepo "github.com/ccstudio/portfolio-backend/internal/projects/repository"
	"github.com/ccstudio/portfolio-backend/internal/settings"
	"github.com/ccstudio/portfolio-backend/internal/storage/s3"
)

// The worker runs the storage janitor on a schedule: it removes bucket
// objects no project or setting references anymore, which is how
// deleted projects' images eventually get reclaimed.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()

	database, err := db.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	store, err := s3.New(ctx, s3.Options{
		Endpoint:  cfg.Storage.Endpoint,
		Region:    cfg.Storage.Region,
		Bucket:    cfg.Storage.Bucket,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
	})
	if err != nil {
		log.Fatalf("storage client: %v", err)
	}

	j := janitor.New(
		store,
		projrepo.New(database.Pool),
		settings.NewRepo(database.Pool),
		time.Duration(cfg.Worker.GraceHours)*time.Hour,
	)

	sweep := func() {
		sweepCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
		defer cancel()

		removed, err := j.Sweep(sweepCtx)
		if err != nil {
			log.Printf("[janitor] sweep failed: %v", err)
			return
		}
		log.Printf("[janitor] sweep done, removed=%d", removed)
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.Worker.SweepSchedule, sweep); err != nil {
		log.Fatalf("schedule %q: %v", cfg.Worker.SweepSchedule, err)
	}

	log.Printf("janitor scheduled: %s", cfg.Worker.SweepSchedule)
	c.Run()
}
