package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type (
	Tasks struct {
		DriverDayCounterResetInterval time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware rate limiter capacity
		RateLimiterBurst int           // middleware rate limiter burst/refill
		PprofEnabled     bool
		PprofPort        string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	// Services holds base URLs of the HTTP collaborators. In a single-process
	// deployment they may all point back at this service.
	Services struct {
		OrderBaseURL     string
		DeliveryBaseURL  string
		NotifyBaseURL    string
		DirectoryBaseURL string
	}

	Email struct {
		Enabled  bool
		Host     string
		Port     string
		From     string
		Username string
		Password string
	}

	Kafka struct {
		PortHealthcheck string
		Brokers         string
		Exchange        string
		ConsumerGroup   string
		Sarama          Sarama
		Handlers        KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		NotificationFanout NotificationFanout
		Choreography       Choreography
	}

	NotificationFanout struct {
		ProcessTimeout time.Duration
	}

	Choreography struct {
		ProcessTimeout time.Duration
	}

	Config struct {
		Tasks    Tasks
		Server   HTTPServer
		Database Database
		Services Services
		Email    Email
		Kafka    Kafka
	}
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	dayCounterResetInterval, err := osGetEnvDuration("BACKGROUND_DRIVER_DAY_COUNTER_RESET_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	fanoutTimeout, err := osGetEnvDuration("KAFKA_HANDLER_NOTIFICATION_FANOUT_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	choreographyTimeout, err := osGetEnvDuration("KAFKA_HANDLER_CHOREOGRAPHY_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	emailEnabled, err := osGetBool("EMAIL_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Tasks: Tasks{
			DriverDayCounterResetInterval: dayCounterResetInterval,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Database: Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		},
		Services: Services{
			OrderBaseURL:     os.Getenv("ORDER_SERVICE_URL"),
			DeliveryBaseURL:  os.Getenv("DELIVERY_SERVICE_URL"),
			NotifyBaseURL:    os.Getenv("NOTIFY_SERVICE_URL"),
			DirectoryBaseURL: os.Getenv("DIRECTORY_SERVICE_URL"),
		},
		Email: Email{
			Enabled:  emailEnabled,
			Host:     os.Getenv("EMAIL_SMTP_HOST"),
			Port:     os.Getenv("EMAIL_SMTP_PORT"),
			From:     os.Getenv("EMAIL_FROM"),
			Username: os.Getenv("EMAIL_SMTP_USERNAME"),
			Password: os.Getenv("EMAIL_SMTP_PASSWORD"),
		},
		Kafka: Kafka{
			Brokers:         os.Getenv("KAFKA_BROKERS"),
			Exchange:        os.Getenv("KAFKA_EXCHANGE"),
			ConsumerGroup:   os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck: os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				NotificationFanout: NotificationFanout{
					ProcessTimeout: fanoutTimeout,
				},
				Choreography: Choreography{
					ProcessTimeout: choreographyTimeout,
				},
			},
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Database.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Database.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if cfg.Database.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.Database.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}

	if cfg.Tasks.DriverDayCounterResetInterval == time.Duration(0) {
		return errors.New("BACKGROUND_DRIVER_DAY_COUNTER_RESET_INTERVAL is required")
	}

	if cfg.Services.OrderBaseURL == "" {
		return errors.New("ORDER_SERVICE_URL is required")
	}
	if cfg.Services.DeliveryBaseURL == "" {
		return errors.New("DELIVERY_SERVICE_URL is required")
	}
	if cfg.Services.NotifyBaseURL == "" {
		return errors.New("NOTIFY_SERVICE_URL is required")
	}
	if cfg.Services.DirectoryBaseURL == "" {
		return errors.New("DIRECTORY_SERVICE_URL is required")
	}

	if cfg.Email.Enabled {
		if cfg.Email.Host == "" {
			return errors.New("EMAIL_SMTP_HOST is required")
		}
		if cfg.Email.Port == "" {
			return errors.New("EMAIL_SMTP_PORT is required")
		}
		if cfg.Email.From == "" {
			return errors.New("EMAIL_FROM is required")
		}
	}

	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.Exchange == "" {
		return errors.New("KAFKA_EXCHANGE is required")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}

	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	if cfg.Kafka.Handlers.NotificationFanout.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_NOTIFICATION_FANOUT_PROCESS_TIMEOUT is required")
	}
	if cfg.Kafka.Handlers.Choreography.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_CHOREOGRAPHY_PROCESS_TIMEOUT is required")
	}

	return nil
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
