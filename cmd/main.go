package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nitrotools/team-widget/internal/cache"
	"github.com/nitrotools/team-widget/internal/dao"
	"github.com/nitrotools/team-widget/internal/fetcher"
	"github.com/nitrotools/team-widget/internal/jobs"
	"github.com/nitrotools/team-widget/internal/nitro"
	"github.com/nitrotools/team-widget/internal/page"
	"github.com/nitrotools/team-widget/internal/scheduler"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetLevel(logrus.InfoLevel)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	mode := flag.String("mode", "local", "DAO mode: local or r2")
	teamTag := flag.String("team", "", "Tag of the team page to decorate")
	cachePath := flag.String("cache", "data/cache/api.db", "Path of the BoltDB payload cache")
	watch := flag.String("watch", "", "Cron spec to re-run the update on; empty runs once")
	pageTimeout := flag.Duration("page-timeout", 2*time.Minute, "How long to wait for the team page anchors")
	flag.Parse()

	if *teamTag == "" {
		logrus.Fatal("A team tag is required (-team)")
	}

	// Load .env only for local dev
	_ = godotenv.Load()
	sessionTag := os.Getenv("NT_SESSION_TEAM_TAG")

	client := nitro.NewNitroTypeClient(nitro.BASE_URL_V2)

	store, err := cache.NewBoltStore(*cachePath)
	if err != nil {
		logrus.Fatal("Failed to open cache store: ", err)
	}
	defer store.Close()

	var publisher dao.DAO
	switch *mode {
	case "local":
		publisher = dao.NewLocalDAO("data", "pages", "requirements")
	case "r2":
		publisher = dao.NewR2DAO("nt-team-widget", "pages", "requirements")
	default:
		logrus.Fatalf("Unknown mode: %s", *mode)
	}

	src := fetcher.New(client, store)
	loader := page.NewLoader(page.BASE_PAGE_URL)
	cfg := jobs.Config{TeamTag: *teamTag, SessionTag: sessionTag}

	if *watch == "" {
		ctx, cancel := context.WithTimeout(context.Background(), *pageTimeout)
		defer cancel()
		if err := jobs.RunUpdate(ctx, src, loader, publisher, cfg); err != nil {
			logrus.Fatal("Job failed: ", err)
		}
		return
	}

	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), *pageTimeout)
		defer cancel()
		if err := jobs.RunUpdate(ctx, src, loader, publisher, cfg); err != nil {
			logrus.Error("Job failed: ", err)
		}
	}

	sched, err := scheduler.New(*watch, run)
	if err != nil {
		logrus.Fatal("Invalid cron spec: ", err)
	}
	sched.Start()
	defer sched.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logrus.Info("Shutting down")
}
