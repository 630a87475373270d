package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type PricingConfig struct {
	RatePerKm   float64
	RatePerBox  float64
	RatePerKg   float64
	CubicFactor float64
	TollCap     float64
}

type PlanningConfig struct {
	CubicFactor float64
}

type RoutingConfig struct {
	APIKey       string
	BaseURL      string
	Timeout      time.Duration
	FallbackKm   float64
	FallbackToll float64
	TollPerKm    float64
}

type KafkaConfig struct {
	Brokers            []string
	NotificationsTopic string
}

type NotifyConfig struct {
	Schedule    string
	BatchSize   int
	MaxAttempts int
	RetryDelay  time.Duration
}

type MaintenanceConfig struct {
	OilIntervalKm  float64
	TyreIntervalKm float64
}

type Config struct {
	Environment string
	LogLevel    string
	HTTP        HTTPConfig
	DB          DBConfig
	Pricing     PricingConfig
	Planning    PlanningConfig
	Routing     RoutingConfig
	Kafka       KafkaConfig
	Notify      NotifyConfig
	Maintenance MaintenanceConfig
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AutomaticEnv()
	setDefaults(v)

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		HTTP: HTTPConfig{
			Host:           v.GetString("HTTP_HOST"),
			Port:           v.GetInt("HTTP_PORT"),
			AllowedOrigins: parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Pricing: PricingConfig{
			RatePerKm:   v.GetFloat64("PRICING_RATE_PER_KM"),
			RatePerBox:  v.GetFloat64("PRICING_RATE_PER_BOX"),
			RatePerKg:   v.GetFloat64("PRICING_RATE_PER_KG"),
			CubicFactor: v.GetFloat64("PRICING_CUBIC_FACTOR"),
			TollCap:     v.GetFloat64("PRICING_TOLL_CAP"),
		},
		Planning: PlanningConfig{
			CubicFactor: v.GetFloat64("PLANNING_CUBIC_FACTOR"),
		},
		Routing: RoutingConfig{
			APIKey:       v.GetString("ROUTING_API_KEY"),
			BaseURL:      v.GetString("ROUTING_BASE_URL"),
			Timeout:      v.GetDuration("ROUTING_TIMEOUT"),
			FallbackKm:   v.GetFloat64("ROUTING_FALLBACK_KM"),
			FallbackToll: v.GetFloat64("ROUTING_FALLBACK_TOLL"),
			TollPerKm:    v.GetFloat64("ROUTING_TOLL_PER_KM"),
		},
		Kafka: KafkaConfig{
			Brokers:            parseList(v.GetString("KAFKA_BROKERS")),
			NotificationsTopic: v.GetString("KAFKA_NOTIFICATIONS_TOPIC"),
		},
		Notify: NotifyConfig{
			Schedule:    v.GetString("NOTIFY_SCHEDULE"),
			BatchSize:   v.GetInt("NOTIFY_BATCH_SIZE"),
			MaxAttempts: v.GetInt("NOTIFY_MAX_ATTEMPTS"),
			RetryDelay:  v.GetDuration("NOTIFY_RETRY_DELAY"),
		},
		Maintenance: MaintenanceConfig{
			OilIntervalKm:  v.GetFloat64("MAINTENANCE_OIL_INTERVAL_KM"),
			TyreIntervalKm: v.GetFloat64("MAINTENANCE_TYRE_INTERVAL_KM"),
		},
	}

	if len(cfg.HTTP.AllowedOrigins) == 0 {
		cfg.HTTP.AllowedOrigins = []string{"*"}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 7090)
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")

	v.SetDefault("PRICING_RATE_PER_KM", 5.0)
	v.SetDefault("PRICING_RATE_PER_BOX", 10.0)
	v.SetDefault("PRICING_RATE_PER_KG", 1.0)
	v.SetDefault("PRICING_CUBIC_FACTOR", 0.3)
	v.SetDefault("PRICING_TOLL_CAP", 100.0)
	v.SetDefault("PLANNING_CUBIC_FACTOR", 300.0)

	v.SetDefault("ROUTING_BASE_URL", "")
	v.SetDefault("ROUTING_TIMEOUT", "5s")
	v.SetDefault("ROUTING_FALLBACK_KM", 50.0)
	v.SetDefault("ROUTING_FALLBACK_TOLL", 10.0)
	v.SetDefault("ROUTING_TOLL_PER_KM", 0.20)

	v.SetDefault("KAFKA_NOTIFICATIONS_TOPIC", "shipment-notifications")
	v.SetDefault("NOTIFY_SCHEDULE", "@every 30s")
	v.SetDefault("NOTIFY_BATCH_SIZE", 50)
	v.SetDefault("NOTIFY_MAX_ATTEMPTS", 3)
	v.SetDefault("NOTIFY_RETRY_DELAY", "1m")

	v.SetDefault("MAINTENANCE_OIL_INTERVAL_KM", 10000.0)
	v.SetDefault("MAINTENANCE_TYRE_INTERVAL_KM", 70000.0)
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Pricing.TollCap < 0 {
		return fmt.Errorf("PRICING_TOLL_CAP must not be negative")
	}
	if cfg.Pricing.CubicFactor <= 0 || cfg.Planning.CubicFactor <= 0 {
		return fmt.Errorf("cubic factors must be positive")
	}
	if cfg.Routing.Timeout <= 0 {
		return fmt.Errorf("ROUTING_TIMEOUT must be positive")
	}
	if cfg.Notify.MaxAttempts <= 0 {
		return fmt.Errorf("NOTIFY_MAX_ATTEMPTS must be positive")
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
