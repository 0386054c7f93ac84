package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/marquee/internal/config"
	"github.com/jask/marquee/internal/database"
	"github.com/jask/marquee/internal/database/repository"
	"github.com/jask/marquee/internal/demo"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logging := cfg.Log.File != ""
	if logging {
		f, err := tea.LogToFile(cfg.Log.File, "marquee")
		if err != nil {
			log.Fatalf("log file: %v", err)
		}
		defer f.Close()
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.SeedDemo(ctx, db); err != nil {
		log.Fatalf("seed demo: %v", err)
	}

	items, err := repository.NewContentRepo(db).List(ctx, cfg.Demo.Dataset)
	if err != nil {
		log.Fatalf("load %s: %v", cfg.Demo.Dataset, err)
	}
	// Hook logging would draw over the alt screen.
	if !logging {
		log.SetOutput(io.Discard)
	}
	log.Printf("loaded %d items from %s", len(items), cfg.Demo.Dataset)

	app := demo.New(cfg, items)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
