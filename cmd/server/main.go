package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gocache "github.com/patrickmn/go-cache"

	"github.com/uday8116/swift-basket/internal/config"
	"github.com/uday8116/swift-basket/internal/es"
	"github.com/uday8116/swift-basket/internal/handlers"
	"github.com/uday8116/swift-basket/internal/logging"
	"github.com/uday8116/swift-basket/internal/mailer"
	"github.com/uday8116/swift-basket/internal/mykafka"
	"github.com/uday8116/swift-basket/internal/service/search"
	httpserver "github.com/uday8116/swift-basket/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	slog.SetDefault(logging.New(configuration.LOG_LEVEL))

	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	if len(jwtSecret) == 0 {
		log.Fatal("JWT_SECRET is not set")
	}

	var producer handlers.Publisher
	var kafkaProducer *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		topics := []string{mykafka.TopicProductEvents, mykafka.TopicOrderEvents, mykafka.TopicUserEvents}
		kafkaProducer, err = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS}, topics)
		if err != nil {
			log.Fatal(err)
		}
		producer = kafkaProducer
	} else {
		slog.Warn("KAFKA_ADDRESS not set, event publishing disabled")
	}

	var index handlers.ProductIndex
	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatal(err)
		}
		index = search.NewClient(esClient, "products")
	} else {
		slog.Warn("ES_URL not set, product search disabled")
	}

	if err := os.MkdirAll(configuration.UPLOAD_DIR, 0o755); err != nil {
		log.Fatalf("upload dir error: %v", err)
	}

	filtersCache := gocache.New(10*time.Minute, 15*time.Minute)

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())

	deps := httpserver.Deps{
		DB:        db,
		JWTSecret: jwtSecret,
		ProductHandler: &handlers.ProductHandler{
			DB:       db,
			Producer: producer,
			Index:    index,
			Cache:    filtersCache,
		},
		OrderHandler: &handlers.OrderHandler{
			DB:       db,
			Producer: producer,
			Mailer:   mailer.New(configuration),
		},
		UserHandler: &handlers.UserHandler{
			DB:        db,
			JWTSecret: jwtSecret,
			Producer:  producer,
		},
		HomeContentHandler: &handlers.HomeContentHandler{DB: db},
		UploadHandler:      &handlers.UploadHandler{Dir: configuration.UPLOAD_DIR},
		PaymentHandler:     &handlers.PaymentHandler{},
		SearchHandler:      &handlers.SearchHandler{Index: index},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if kafkaProducer != nil {
		if err := kafkaProducer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
