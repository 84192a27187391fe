package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"atolonline/internal/config"
	"atolonline/internal/domain/ports"
	"atolonline/internal/infrastructure/logger"
	"atolonline/internal/infrastructure/storage"
	"atolonline/internal/service/fiscal"
	"atolonline/pkg/atol"
)

// App связывает конфигурацию, клиент АТОЛ Онлайн, журнал и сервис.
type App struct {
	Config   *config.Config
	Logger   ports.Logger
	Service  *fiscal.Service
	Registry *prometheus.Registry

	client atol.Client
}

// Options — параметры запуска, заданные флагами
type Options struct {
	ConfigPath string
	Verbose    bool
}

// NewApp создает экземпляр приложения.
func NewApp(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		cfg.Log.Level = "debug"
	}

	log, err := logger.NewZapLogger(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	metrics, err := atol.NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	journal, err := storage.NewFileJournalRepository(cfg.Journal)
	if err != nil {
		return nil, err
	}

	client := atol.New(atol.Config{
		BaseURL:  cfg.API.BaseURL,
		Login:    cfg.API.Login,
		Password: cfg.API.Password,
		Timeout:  cfg.API.Timeout,
		Logger:   logger.SDKHook(log.With("component", "atol")),
		Metrics:  metrics,
	})

	return newApp(cfg, log, registry, client, journal), nil
}

func newApp(cfg *config.Config, log ports.Logger, registry *prometheus.Registry, client atol.Client, journal ports.JournalRepository) *App {
	svc := fiscal.NewService(client, journal, log, fiscal.Settings{
		GroupCode: cfg.Group,
		Info:      atol.NewInfo(cfg.Service.INN, cfg.Service.PaymentAddress, cfg.Service.CallbackURL),
	})

	return &App{
		Config:   cfg,
		Logger:   log,
		Service:  svc,
		Registry: registry,
		client:   client,
	}
}

// Close закрывает клиент и сбрасывает лог.
func (a *App) Close() error {
	err := a.client.Close()
	a.Logger.Sync()
	return err
}
