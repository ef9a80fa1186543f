package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Samod99/NourishFoods-sub000/internal/config"
	"github.com/Samod99/NourishFoods-sub000/pkg/idempotency"
	"github.com/Samod99/NourishFoods-sub000/pkg/logging"
	"github.com/Samod99/NourishFoods-sub000/pkg/shutdown"
	"github.com/Samod99/NourishFoods-sub000/pkg/tracing"

	cartapp "github.com/Samod99/NourishFoods-sub000/internal/cart/application"
	catalogmem "github.com/Samod99/NourishFoods-sub000/internal/catalog/infrastructure/memory"
	"github.com/Samod99/NourishFoods-sub000/internal/delivery"
	docpg "github.com/Samod99/NourishFoods-sub000/internal/docstore/postgres"
	healthapp "github.com/Samod99/NourishFoods-sub000/internal/health/application"
	"github.com/Samod99/NourishFoods-sub000/internal/identity"
	"github.com/Samod99/NourishFoods-sub000/internal/kvstore"
	kvredis "github.com/Samod99/NourishFoods-sub000/internal/kvstore/redis"
	"github.com/Samod99/NourishFoods-sub000/internal/notify"
	notifykafka "github.com/Samod99/NourishFoods-sub000/internal/notify/kafka"
	orderapp "github.com/Samod99/NourishFoods-sub000/internal/order/application"
	orderdoc "github.com/Samod99/NourishFoods-sub000/internal/order/infrastructure/doc"
	orderkv "github.com/Samod99/NourishFoods-sub000/internal/order/infrastructure/kv"
	"github.com/Samod99/NourishFoods-sub000/internal/server"
)

func main() {
	cf, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config load failed: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logging.New(cf.LogLevel)

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	tp, err := tracing.Init(ctx, "nourishd")
	if err != nil {
		log.Error("otel init failed", "err", err)
		os.Exit(1)
	}
	defer func() { _ = tp.Shutdown(ctx) }()

	loc, err := time.LoadLocation(cf.Timezone)
	if err != nil {
		log.Warn("invalid timezone, using local", "tz", cf.Timezone)
		loc = time.Local
	}

	// Key-value persistence: redis when reachable, local memory otherwise.
	var kv kvstore.Store = kvstore.NewMemory()
	rdb := goredis.NewClient(&goredis.Options{Addr: cf.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, using in-memory store", "addr", cf.RedisAddr, "err", err)
	} else {
		kv = kvredis.NewStore(rdb, 0)
		defer rdb.Close()
	}

	// Notification sink: kafka with in-app fallback.
	var sink notify.Sink = notify.NewInApp()
	if brokers := cf.Brokers(); len(brokers) > 0 {
		kafkaSink := notifykafka.NewSink(brokers, cf.NotificationTopic)
		defer kafkaSink.Close()
		inApp := notify.NewInApp()
		sink = notify.NewFallback(log, kafkaSink, func(title, body string) {
			_ = inApp.Notify(context.Background(), title, body)
		})
	}

	ident := identity.NewStatic("")
	catalog := catalogmem.NewStore()
	if err := catalogmem.SeedSample(catalog); err != nil {
		log.Warn("catalog seed failed", "err", err)
	}

	carts := cartapp.NewService(log, kv, ident, sink)
	if err := carts.Reload(ctx); err != nil {
		log.Warn("cart reload failed", "err", err)
	}

	// Orders: document store on the authenticated path when Postgres is
	// configured, recent-history KV slot otherwise.
	var orders orderapp.Store = orderkv.NewHistory(log, kv)
	if cf.PostgresURL != "" {
		pool, err := pgxpool.New(ctx, cf.PostgresURL)
		if err != nil {
			log.Error("pg connect failed", "err", err)
			os.Exit(1)
		}
		defer pool.Close()
		docs := docpg.NewStore(log, pool)
		if err := docs.Migrate(ctx); err != nil {
			log.Error("pg migrate failed", "err", err)
			os.Exit(1)
		}
		orders = orderdoc.NewStore(log, docs)
	}

	health := healthapp.NewEngine(log, kv, catalog, ident, sink, loc)
	if err := health.Load(ctx); err != nil {
		log.Warn("health state load failed", "err", err)
	}

	assembler := orderapp.NewAssembler(log, carts, catalog, orders, ident, sink)
	assembler.Subscribe(health)

	sim := delivery.NewSimulator(log)
	idem := idempotency.NewGuard(kv, 24*time.Hour)

	handler := server.NewHandler(log, catalog, carts, assembler, health, sim, idem)
	r := chi.NewRouter()
	r.Mount("/", handler.Routes())
	srv := &http.Server{
		Addr:         cf.HTTPAddr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("http listening", "addr", cf.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	log.Info("nourishd shutdown complete")
}
