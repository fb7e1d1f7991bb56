package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"voiceclone-backend/internal/config"
	pg "voiceclone-backend/internal/infra/db/postgres"
	"voiceclone-backend/internal/infra/logging"
	"voiceclone-backend/internal/usecase"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logging.New(cfg.Log, true)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	planUC := usecase.NewPlanUseCase(pg.NewPlanRepo(pool), logger)

	// If plans already exist, do nothing
	plans, err := planUC.ListAll(ctx)
	if err != nil {
		log.Fatalf("list plans: %v", err)
	}
	if len(plans) > 0 {
		fmt.Printf("%d plans already present. No changes.\n", len(plans))
		return
	}

	seed := []struct {
		Name       string
		Credits    int64
		PriceCents int64
		CloneLim   int
		ExpireDays int
	}{
		{"Lite", 500_000, 15_00, 5, 30},
		{"Advance", 1_000_000, 25_00, 10, 30},
		{"Ultra", 3_000_000, 45_00, 15, 30},
		{"Premium", 5_000_000, 70_00, 20, 30},
	}

	for _, s := range seed {
		p, err := planUC.Create(ctx, s.Name, s.Credits, s.PriceCents, s.CloneLim, s.ExpireDays)
		if err != nil {
			log.Fatalf("create plan %q: %v", s.Name, err)
		}
		fmt.Printf("seeded: %s (id=%s, credits=%d, price=%d cents, clones=%d, days=%d)\n",
			p.Name, p.ID, p.Credits, p.PriceCents, p.VoiceCloneLim, p.ExpireDays)
	}

	fmt.Println("Seeding complete.")
}
