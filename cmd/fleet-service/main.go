package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/nurpe/fleet-logistics/internal/config"
	"github.com/nurpe/fleet-logistics/internal/db"
	"github.com/nurpe/fleet-logistics/internal/excel"
	httphandler "github.com/nurpe/fleet-logistics/internal/http"
	"github.com/nurpe/fleet-logistics/internal/kafka"
	"github.com/nurpe/fleet-logistics/internal/logger"
	"github.com/nurpe/fleet-logistics/internal/notify"
	"github.com/nurpe/fleet-logistics/internal/pdf"
	"github.com/nurpe/fleet-logistics/internal/repository"
	"github.com/nurpe/fleet-logistics/internal/routing"
	"github.com/nurpe/fleet-logistics/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment, cfg.LogLevel)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	tx := repository.NewTransactor(database)
	trucks := repository.NewTruckRepository(database)
	drivers := repository.NewDriverRepository(database)
	boxes := repository.NewBoxRepository(database)
	clients := repository.NewClientRepository(database)
	carriers := repository.NewCarrierRepository(database)
	shipments := repository.NewShipmentRepository(database)
	trips := repository.NewTripRepository(database)
	maintenance := repository.NewMaintenanceRepository(database)
	evaluations := repository.NewEvaluationRepository(database)
	notifications := repository.NewNotificationRepository(database)

	routes := routing.NewClient(cfg.Routing, log)
	pricing := service.NewPricing(routes, cfg.Pricing, log)

	handler := httphandler.NewHandler(httphandler.Services{
		Fleet:       service.NewFleetService(trucks, drivers, boxes, clients, carriers),
		Shipments:   service.NewShipmentService(tx, shipments, boxes, clients, carriers, trips, pricing, log),
		Trips:       service.NewTripService(tx, trips, trucks, drivers, shipments, log),
		Planner:     service.NewPlanner(shipments, trucks, cfg.Planning.CubicFactor),
		Tracking:    service.NewTrackingService(tx, drivers, trips, shipments, clients, notifications, log),
		Maintenance: service.NewMaintenanceService(trucks, maintenance, cfg.Maintenance),
		Evaluations: service.NewEvaluationService(tx, evaluations, shipments, carriers),
		Manifests:   service.NewManifestService(trips, trucks, drivers, excel.NewGenerator(), pdf.NewGenerator()),
	}, log)

	var publisher notify.Publisher = notify.NewLogPublisher(log)
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafka.NewSaramaProducer(cfg.Kafka.Brokers, log)
		if err != nil {
			log.Fatal().Err(err).Strs("brokers", cfg.Kafka.Brokers).Msg("failed to init kafka producer")
		}
		defer producer.Close()
		publisher = producer
	} else {
		log.Warn().Msg("no kafka brokers configured, notifications go to the log")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := cron.New()
	dispatcher := notify.NewDispatcher(tx, notifications, publisher, cfg.Kafka.NotificationsTopic, cfg.Notify, log)
	if _, err := dispatcher.Schedule(ctx, scheduler, cfg.Notify.Schedule); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.Notify.Schedule).Msg("invalid notification schedule")
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := httphandler.NewRouter(handler, cfg.HTTP, cfg.Environment, log)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting fleet service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
