package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/khlab/cocktail-lab/config"
	"github.com/khlab/cocktail-lab/internal/apiclient"
	"github.com/khlab/cocktail-lab/internal/auth"
	"github.com/khlab/cocktail-lab/internal/models"
	"github.com/khlab/cocktail-lab/internal/persist"
	"github.com/khlab/cocktail-lab/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	adapter, err := newAdapter(cfg)
	if err != nil {
		log.Fatalf("Storage error: %v", err)
	}

	ctx := context.Background()

	if cfg.Mode == config.ModeRemote {
		runRemote(ctx, cfg, adapter)
		return
	}
	runLocal(ctx, adapter)
}

func newAdapter(cfg *config.Config) (persist.Adapter, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return persist.NewMemoryAdapter(), nil
	case config.StorageSQLite:
		return persist.NewSQLiteAdapter(cfg.SQLitePath)
	case config.StorageRedis:
		return persist.NewRedisAdapter(cfg)
	default:
		return persist.NewFileAdapter(filepath.Clean(cfg.DataDir))
	}
}

func runLocal(ctx context.Context, adapter persist.Adapter) {
	authStore, err := auth.NewLocalStore(adapter)
	if err != nil {
		log.Fatalf("Auth store error: %v", err)
	}
	cocktails, err := store.NewCocktailStore(adapter)
	if err != nil {
		log.Fatalf("Recipe store error: %v", err)
	}

	printBoard(cocktails.ListCocktails(), authStore)
	printRankings(cocktails.TopTotal(), cocktails.TopWeekly(time.Now()), cocktails.TopDaily(time.Now()))
}

func runRemote(ctx context.Context, cfg *config.Config, adapter persist.Adapter) {
	var authStore *auth.Store
	client := apiclient.NewClient(cfg.APIBaseURL, func() string {
		if authStore == nil {
			return ""
		}
		return authStore.MemberNo()
	})

	authStore, err := auth.NewRemoteStore(adapter, client)
	if err != nil {
		log.Fatalf("Auth store error: %v", err)
	}

	cocktails := store.NewRemoteCocktailStore(client)
	if err := cocktails.Refresh(ctx); err != nil {
		log.Fatalf("Failed to load the board: %v", err)
	}

	printBoard(cocktails.ListCocktails(), authStore)
}

func printBoard(cocktails []models.Cocktail, authStore *auth.Store) {
	if user := authStore.CurrentUser(); user != nil {
		fmt.Printf("Signed in as %s\n", user.Nickname)
	} else {
		fmt.Println("Browsing anonymously")
	}
	fmt.Printf("Cocktail Lab Board (%d cocktails)\n", len(cocktails))
	for _, c := range cocktails {
		fmt.Printf("  - %s: %s [%d ingredients]\n", c.Name, c.Description, len(c.Ingredients))
	}
}

func printRankings(total, weekly, daily []store.Ranked) {
	fmt.Println("Popular Custom Cocktails")
	printRanking("Total", total)
	printRanking("Weekly", weekly)
	printRanking("Daily", daily)
}

func printRanking(title string, ranked []store.Ranked) {
	fmt.Printf("  %s:\n", title)
	if len(ranked) == 0 {
		fmt.Println("    (no liked cocktails yet)")
		return
	}
	for i, r := range ranked {
		fmt.Printf("    %d. %s (%d likes)\n", i+1, r.Cocktail.Name, r.LikeCount)
	}
}
