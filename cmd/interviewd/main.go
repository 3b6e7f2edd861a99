// Command interviewd serves spoken-interview sessions over WebSocket.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/CandorLabs/InterviewKit/archive"
	"github.com/CandorLabs/InterviewKit/config"
	"github.com/CandorLabs/InterviewKit/logger"
	"github.com/CandorLabs/InterviewKit/profile"
	"github.com/CandorLabs/InterviewKit/providers"
	_ "github.com/CandorLabs/InterviewKit/providers/mock"
	"github.com/CandorLabs/InterviewKit/questionbank"
	"github.com/CandorLabs/InterviewKit/session"
	"github.com/CandorLabs/InterviewKit/transport"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "interviewd.yaml", "path to the configuration file")
	flag.Parse()

	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("configuration load failed", "path", *configPath, "error", err)
		os.Exit(1)
	}

	bank, err := questionbank.LoadFile(cfg.BankPath)
	if err != nil {
		logger.Error("question bank load failed", "path", cfg.BankPath, "error", err)
		os.Exit(1)
	}
	logger.Info("question bank loaded", "path", cfg.BankPath, "questions", len(bank))

	provider, err := providers.CreateFromSpec(cfg.Provider)
	if err != nil {
		logger.Error("provider setup failed", "type", cfg.Provider.Type, "error", err)
		os.Exit(1)
	}
	defer func() { _ = provider.Close() }()

	var (
		profiles *profile.Gateway
		sinks    []archive.Sink
	)
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = client.Close() }()

		var cacheOpts []profile.RedisOption
		if ttl := cfg.ProfileTTL(); ttl > 0 {
			cacheOpts = append(cacheOpts, profile.WithTTL(ttl))
		}
		cache := profile.NewRedisCache(client, cacheOpts...)
		profiles = profile.NewGateway(cache, cache)

		var sinkOpts []archive.RedisOption
		if ttl := cfg.ArchiveTTL(); ttl > 0 {
			sinkOpts = append(sinkOpts, archive.WithTTL(ttl))
		}
		sinks = append(sinks, archive.NewRedisSink(client, sinkOpts...))
	}
	if cfg.ArchiveDir != "" {
		fileSink, err := archive.NewFileSink(cfg.ArchiveDir)
		if err != nil {
			logger.Error("archive directory setup failed", "dir", cfg.ArchiveDir, "error", err)
			os.Exit(1)
		}
		sinks = append(sinks, fileSink)
	}
	var sink archive.Sink
	if len(sinks) > 0 {
		sink = archive.Multi(sinks...)
	}

	factory := func(ctx context.Context, candidateID string) (*session.Session, error) {
		return session.New(ctx, session.Config{
			CandidateID:       candidateID,
			Provider:          provider,
			Profiles:          profiles,
			Bank:              bank,
			Counts:            cfg.QuestionCounts(),
			Interview:         cfg.InterviewSettings(),
			Sink:              sink,
			GenerationTimeout: cfg.GenerationTimeout(),
		})
	}

	mux := http.NewServeMux()
	mux.Handle("/interview", transport.NewServer(factory))
	srv := &http.Server{Addr: cfg.ListenAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{Addr: cfg.MetricsAddr, Handler: metricsMux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			logger.Info("metrics endpoint listening", "addr", cfg.MetricsAddr)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	go func() {
		logger.Info("interviewd listening", "addr", cfg.ListenAddr, "provider", cfg.Provider.Type)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("server shutdown incomplete", "error", err)
	}
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(ctx)
	}
}
