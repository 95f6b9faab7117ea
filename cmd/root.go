package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wellswap/valuation-engine/internal/config"
	"github.com/wellswap/valuation-engine/internal/marketdata"
	"github.com/wellswap/valuation-engine/internal/ratings"
	"github.com/wellswap/valuation-engine/internal/store"
	"github.com/wellswap/valuation-engine/internal/valuation"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "wellswap-valuation",
	Short: "Insurance-asset valuation engine",
	Long:  "Values transferable insurance policies from policy facts, document extractions and market signals, producing a price recommendation with confidence and risk grade.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// appEnv bundles the wired engine and its collaborators for a command run.
type appEnv struct {
	engine *valuation.Engine
	store  store.Store
}

// initApp wires the engine from config: rating table, rate-limited HTTP
// market-data provider behind the snapshot cache, and the optional store.
func initApp(ctx context.Context) (*appEnv, error) {
	ratingProvider, err := ratings.LoadTableProvider(cfg.Ratings.Path)
	if err != nil {
		return nil, err
	}

	provider := marketdata.NewHTTPProvider(marketdata.HTTPOptions{
		BaseURL:    cfg.Market.BaseURL,
		Timeout:    cfg.Market.Timeout(),
		RatePerSec: cfg.Market.RatePerSec,
		RateBurst:  cfg.Market.RateBurst,
	})
	cache := marketdata.NewCache(provider, cfg.Market.CacheTTL())

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	return &appEnv{
		engine: valuation.NewEngine(cfg.Valuation, cache, ratingProvider),
		store:  st,
	}, nil
}

func (e *appEnv) Close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			zap.L().Warn("store close failed", zap.Error(err))
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
