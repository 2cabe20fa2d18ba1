package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asanbekov/book-catalog/books/config"
	"github.com/asanbekov/book-catalog/books/internal/handler"
	"github.com/asanbekov/book-catalog/books/internal/repository"
	"github.com/asanbekov/book-catalog/books/internal/server"
	"github.com/asanbekov/book-catalog/books/internal/service"
	"github.com/asanbekov/book-catalog/books/migrations"
	"github.com/asanbekov/book-catalog/pkg/auth"
	"github.com/asanbekov/book-catalog/pkg/kafka"
	"github.com/asanbekov/book-catalog/pkg/logger"
	"github.com/asanbekov/book-catalog/pkg/postgres"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "books")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}

	var events service.EventPublisher
	var publisher *kafka.Publisher
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
		publisher = kafka.NewPublisher(producer, cfg.Kafka.Topic, log)
		events = publisher
	}

	tokens := auth.NewTokenManager(cfg.Auth)
	bookSvc := service.NewBookService(repo, events, log)
	authSvc, err := service.NewAuthService(repo, tokens, log)
	if err != nil {
		log.Fatal("auth service", zap.Error(err))
	}

	h := handler.New(bookSvc, authSvc, tokens, log, !cfg.Production())
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		return srv.Run()
	})
	g.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		select {
		case termSig := <-sig:
			log.Debug("Graceful shutdown", zap.Any("signal", termSig))
		case <-ctx.Done():
		}

		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		return srv.Stop(closeCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server run", zap.Error(err))
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Error("kafka close", zap.Error(err))
		}
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}
