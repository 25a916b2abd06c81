package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/you/portfoliosvc/internal/config"
	"github.com/you/portfoliosvc/internal/infrastructure/auth"
	"github.com/you/portfoliosvc/internal/infrastructure/database"
	"github.com/you/portfoliosvc/internal/infrastructure/repositories"
	"github.com/you/portfoliosvc/internal/services"
	"gorm.io/gorm"
)

// dbcheck verifies that every store named in the config is reachable and
// migrated, then prints row counts.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	fmt.Println("Store check")
	fmt.Println("===========")

	projects, err := database.Open(cfg.DSN)
	if err != nil {
		log.Fatalf("project store: %v", err)
	}
	defer database.Close(projects)
	if err := database.MigrateProjects(projects); err != nil {
		log.Fatalf("project store migration: %v", err)
	}
	fmt.Println("✓ project store migrated")

	accounts := projects
	if cfg.AccountsDSN != cfg.DSN {
		if accounts, err = database.Open(cfg.AccountsDSN); err != nil {
			log.Fatalf("credential store: %v", err)
		}
		defer database.Close(accounts)
	}
	if err := database.MigrateAccounts(accounts); err != nil {
		log.Fatalf("credential store migration: %v", err)
	}
	fmt.Println("✓ credential store migrated")

	cas, err := auth.NewCasbinService(accounts)
	if err != nil {
		log.Fatalf("access policy: %v", err)
	}
	policies := services.NewPolicyService(cas.E).GetPolicies()
	fmt.Printf("✓ access policy loaded (%d rules)\n", len(policies))
	for _, rule := range policies {
		fmt.Printf("  - %s\n", strings.Join(rule, " "))
	}

	counts := []struct {
		label string
		count func() (int64, error)
	}{
		{"sectors", func() (int64, error) { return count(projects.Model(&repositories.DBSector{})) }},
		{"projects", func() (int64, error) { return count(projects.Model(&repositories.DBProject{})) }},
		{"users", func() (int64, error) { return count(accounts.Model(&repositories.DBUser{})) }},
		{"casbin_rule", func() (int64, error) { return count(accounts.Table("casbin_rule")) }},
	}
	for _, c := range counts {
		n, err := c.count()
		if err != nil {
			log.Fatalf("%s: %v", c.label, err)
		}
		fmt.Printf("✓ %s accessible (current count: %d)\n", c.label, n)
	}

	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer rdb.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx); err != nil {
		log.Fatalf("session store: %v", err)
	}
	fmt.Printf("✓ session store reachable at %s\n", cfg.RedisAddr)
}

func count(tx *gorm.DB) (int64, error) {
	var n int64
	err := tx.Count(&n).Error
	return n, err
}
