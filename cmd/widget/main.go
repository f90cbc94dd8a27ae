// Command widget embeds the counter widget in a terminal session: it
// activates a controller for a page, lets the delayed auto-increment
// fire, and prints the rendered count. It shares config.yaml with the
// server, including the cache backend switch.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"

	"go.uber.org/zap"

	"pagehits/counthub/internal/config"
	"pagehits/counthub/pkg/client"
	"pagehits/counthub/pkg/widget"
)

type consoleRenderer struct{}

func (consoleRenderer) RenderPlaceholder() { fmt.Println("views: ...") }
func (consoleRenderer) RenderCount(count int64) {
	fmt.Printf("views: %d\n", count)
}
func (consoleRenderer) RenderError() { fmt.Println("views: –") }

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	page := flag.String("page", "/", "page path the widget is embedded on")
	name := flag.String("name", "", "explicit counter name (overrides -page)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logger *zap.Logger
	if cfg.Log.Format == "json" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	// Pick the cache backend: Redis shares snapshots and session flags
	// across processes, memory scopes them to this run.
	var values, session client.Store
	switch cfg.Cache.Backend {
	case "redis":
		redisClient, err := config.NewRedisClient(cfg.Database.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		values = client.NewRedisStore(redisClient)
		session = client.NewRedisStore(redisClient)
		logger.Info("using Redis cache store")
	case "memory":
		values = client.NewMemoryStore()
		session = client.NewMemoryStore()
		logger.Info("using in-memory cache store")
	default:
		logger.Fatal("unknown cache backend", zap.String("backend", cfg.Cache.Backend))
	}

	api := client.NewAPIClient(cfg.Widget.BaseURL, http.DefaultClient)
	cc := client.NewCachedClient(api, values, session, cfg.Cache.TTL, logger)

	counted := make(chan *client.Counter, 1)
	w := widget.NewController(cc, consoleRenderer{}, widget.Options{
		Name:            *name,
		Page:            *page,
		IncrementDelay:  cfg.Widget.IncrementDelay,
		OnAutoIncrement: func(c *client.Counter) { counted <- c },
		Logger:          logger,
	})
	defer w.Close()

	ctx := context.Background()
	w.Activate(ctx)
	if w.State() == widget.StateError {
		logger.Fatal("counter service unreachable", zap.String("base_url", cfg.Widget.BaseURL))
	}

	if cc.HasVisited(ctx, w.Name()) {
		logger.Info("page already counted this session", zap.String("name", w.Name()))
		return
	}
	if counter := <-counted; counter == nil {
		logger.Warn("visit was not counted; next run will retry", zap.String("name", w.Name()))
	}
}
