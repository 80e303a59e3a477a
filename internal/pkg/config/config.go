package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"dispatch/internal/entities"
	"github.com/shopspring/decimal"
)

type (
	Tasks struct {
		DispatchSweepInterval  time.Duration
		SettingsReloadInterval time.Duration
	}

	HTTPServer struct {
		Port               string
		RequestTimeout     time.Duration // middleware timeout
		RateLimiterQPS     int           // middleware rate limiter capacity
		RateLimiterBurst   int           // middleware rate limiter burst/refill
		RateLimiterIdleTTL time.Duration // сколько хранить бакет неактивного клиента
		PprofEnabled       bool
		PprofPort          string
	}

	GRPCServer struct {
		Port string
	}

	Database struct {
		Host           string
		Port           string
		User           string
		Password       string
		DBName         string
		SSLMode        string
		MaxConns       int32
		MinConns       int32
		MigrateOnStart bool
	}

	Dispatch struct {
		Weights             entities.DispatchWeights
		DeliveryFee         decimal.Decimal
		LocationFreshness   time.Duration
		MaxRadiusKm         float64
		MaxConcurrentOrders int64
		MaxResponseSeconds  float64
		SweepBatchSize      uint64
		OfferWindow         time.Duration
	}

	ProofStore struct {
		Verify   bool
		Region   string
		Bucket   string
		Endpoint string // пустой для AWS, адрес MinIO/localstack для остальных окружений
	}

	Kafka struct {
		PortHealthcheck string
		Brokers         string
		Sarama          Sarama
		Handlers        KafkaHandlers
		Producer        KafkaProducer
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		OrderCreated  KafkaConsumer
		CourierAction KafkaConsumer
	}

	KafkaConsumer struct {
		Topic          string
		ConsumerGroup  string
		ProcessTimeout time.Duration
	}

	KafkaProducer struct {
		CourierNotificationsTopic  string
		CustomerNotificationsTopic string
	}

	Config struct {
		Tasks      Tasks
		Server     HTTPServer
		GRPC       GRPCServer
		Database   Database
		Dispatch   Dispatch
		ProofStore ProofStore
		Kafka      Kafka
	}
)

var DefaultWeights = entities.DispatchWeights{
	Distance: 0.4,
	Rating:   0.25,
	Workload: 0.2,
	Response: 0.15,
}

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
	sweepInterval, err := osGetEnvDuration("BACKGROUND_DISPATCH_SWEEP_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	settingsInterval, err := osGetEnvDuration("BACKGROUND_SETTINGS_RELOAD_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	orderCreatedTimeout, err := osGetEnvDuration("KAFKA_HANDLER_ORDER_CREATED_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	courierActionTimeout, err := osGetEnvDuration("KAFKA_HANDLER_COURIER_ACTION_PROCESS_TIMEOUT")
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

	rateLimiterIdleTTL, err := osGetEnvDuration("MIDDLEWARE_RATE_LIMIT_IDLE_TTL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	maxConns, err := osGetInt("POSTGRES_MAX_CONNS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	minConns, err := osGetInt("POSTGRES_MIN_CONNS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	migrateOnStart, err := osGetBool("POSTGRES_MIGRATE_ON_START")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	dispatch, err := loadDispatch()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	proofVerify, err := osGetBool("PROOF_STORE_VERIFY")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Tasks: Tasks{
			DispatchSweepInterval:  sweepInterval,
			SettingsReloadInterval: settingsInterval,
		},
		Server: HTTPServer{
			Port:               os.Getenv("PORT"),
			RequestTimeout:     requestTimeout,
			RateLimiterQPS:     rateLimiterQPS,
			RateLimiterBurst:   rateLimiterBurst,
			RateLimiterIdleTTL: rateLimiterIdleTTL,
			PprofEnabled:       pprofEnabled,
			PprofPort:          os.Getenv("PPROF_PORT"),
		},
		GRPC: GRPCServer{
			Port: os.Getenv("GRPC_PORT"),
		},
		Database: Database{
			Host:           os.Getenv("POSTGRES_HOST"),
			Port:           os.Getenv("POSTGRES_PORT"),
			User:           os.Getenv("POSTGRES_USER"),
			Password:       os.Getenv("POSTGRES_PASSWORD"),
			DBName:         os.Getenv("POSTGRES_DB"),
			SSLMode:        os.Getenv("POSTGRES_SSLMODE"),
			MaxConns:       int32(maxConns),
			MinConns:       int32(minConns),
			MigrateOnStart: migrateOnStart,
		},
		Dispatch: *dispatch,
		ProofStore: ProofStore{
			Verify:   proofVerify,
			Region:   os.Getenv("PROOF_STORE_REGION"),
			Bucket:   os.Getenv("PROOF_STORE_BUCKET"),
			Endpoint: os.Getenv("PROOF_STORE_ENDPOINT"),
		},
		Kafka: Kafka{
			Brokers:         os.Getenv("KAFKA_BROKERS"),
			PortHealthcheck: os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				OrderCreated: KafkaConsumer{
					Topic:          os.Getenv("KAFKA_ORDER_CREATED_TOPIC"),
					ConsumerGroup:  os.Getenv("KAFKA_ORDER_CREATED_CONSUMER_GROUP"),
					ProcessTimeout: orderCreatedTimeout,
				},
				CourierAction: KafkaConsumer{
					Topic:          os.Getenv("KAFKA_COURIER_ACTION_TOPIC"),
					ConsumerGroup:  os.Getenv("KAFKA_COURIER_ACTION_CONSUMER_GROUP"),
					ProcessTimeout: courierActionTimeout,
				},
			},
			Producer: KafkaProducer{
				CourierNotificationsTopic:  os.Getenv("KAFKA_COURIER_NOTIFICATIONS_TOPIC"),
				CustomerNotificationsTopic: os.Getenv("KAFKA_CUSTOMER_NOTIFICATIONS_TOPIC"),
			},
		},
	}, nil
}

// loadDispatch незаданные веса берутся из DefaultWeights,
// тариф за доставку обязателен.
func loadDispatch() (*Dispatch, error) {
	weights := DefaultWeights
	weightVars := []struct {
		env    string
		target *float64
	}{
		{"DISPATCH_WEIGHT_DISTANCE", &weights.Distance},
		{"DISPATCH_WEIGHT_RATING", &weights.Rating},
		{"DISPATCH_WEIGHT_WORKLOAD", &weights.Workload},
		{"DISPATCH_WEIGHT_RESPONSE", &weights.Response},
	}
	for _, v := range weightVars {
		if os.Getenv(v.env) == "" {
			continue
		}
		value, err := osGetFloat(v.env)
		if err != nil {
			return nil, err
		}
		*v.target = value
	}

	var deliveryFee decimal.Decimal
	if raw := strings.TrimSpace(os.Getenv("DISPATCH_DELIVERY_FEE")); raw != "" {
		fee, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid decimal format for DISPATCH_DELIVERY_FEE=%q: %w", raw, err)
		}
		deliveryFee = fee
	} else {
		deliveryFee = decimal.NewFromInt(-1)
	}

	freshness, err := osGetEnvDuration("DISPATCH_LOCATION_FRESHNESS")
	if err != nil {
		return nil, err
	}

	maxRadius, err := osGetFloat("DISPATCH_MAX_RADIUS_KM")
	if err != nil {
		return nil, err
	}

	maxConcurrent, err := osGetInt("DISPATCH_MAX_CONCURRENT_ORDERS")
	if err != nil {
		return nil, err
	}

	maxResponse, err := osGetFloat("DISPATCH_MAX_RESPONSE_SECONDS")
	if err != nil {
		return nil, err
	}

	batchSize, err := osGetInt("DISPATCH_SWEEP_BATCH_SIZE")
	if err != nil {
		return nil, err
	}

	offerWindow, err := osGetEnvDuration("DISPATCH_OFFER_WINDOW")
	if err != nil {
		return nil, err
	}

	return &Dispatch{
		Weights:             weights,
		DeliveryFee:         deliveryFee,
		LocationFreshness:   freshness,
		MaxRadiusKm:         maxRadius,
		MaxConcurrentOrders: int64(maxConcurrent),
		MaxResponseSeconds:  maxResponse,
		SweepBatchSize:      uint64(max(batchSize, 0)),
		OfferWindow:         offerWindow,
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
	if cfg.GRPC.Port == "" {
		return errors.New("GRPC_PORT is required")
	}

	if err := validateDatabase(&cfg.Database); err != nil {
		return err
	}

	if cfg.Tasks.DispatchSweepInterval == time.Duration(0) {
		return errors.New("BACKGROUND_DISPATCH_SWEEP_INTERVAL is required")
	}
	if cfg.Tasks.SettingsReloadInterval == time.Duration(0) {
		return errors.New("BACKGROUND_SETTINGS_RELOAD_INTERVAL is required")
	}

	if cfg.Dispatch.DeliveryFee.IsNegative() {
		return errors.New("DISPATCH_DELIVERY_FEE is required and must be non-negative")
	}
	if err := cfg.Dispatch.Weights.Validate(); err != nil {
		return fmt.Errorf("DISPATCH_WEIGHT_*: %w", err)
	}
	if cfg.Dispatch.MaxRadiusKm < 0 || cfg.Dispatch.MaxConcurrentOrders < 0 || cfg.Dispatch.MaxResponseSeconds < 0 {
		return errors.New("DISPATCH_MAX_* must be non-negative")
	}

	if cfg.ProofStore.Verify && cfg.ProofStore.Bucket == "" {
		return errors.New("PROOF_STORE_BUCKET is required when PROOF_STORE_VERIFY is set")
	}

	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.Producer.CourierNotificationsTopic == "" {
		return errors.New("KAFKA_COURIER_NOTIFICATIONS_TOPIC is required")
	}
	if cfg.Kafka.Producer.CustomerNotificationsTopic == "" {
		return errors.New("KAFKA_CUSTOMER_NOTIFICATIONS_TOPIC is required")
	}
	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	return nil
}

// ValidateWorker дополнительные проверки для воркера с консьюмерами.
func ValidateWorker(cfg *Config) error {
	if cfg.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}

	consumers := []struct {
		name     string
		consumer KafkaConsumer
	}{
		{"ORDER_CREATED", cfg.Kafka.Handlers.OrderCreated},
		{"COURIER_ACTION", cfg.Kafka.Handlers.CourierAction},
	}
	for _, c := range consumers {
		if c.consumer.Topic == "" {
			return fmt.Errorf("KAFKA_%s_TOPIC is required", c.name)
		}
		if c.consumer.ConsumerGroup == "" {
			return fmt.Errorf("KAFKA_%s_CONSUMER_GROUP is required", c.name)
		}
		if c.consumer.ProcessTimeout == time.Duration(0) {
			return fmt.Errorf("KAFKA_HANDLER_%s_PROCESS_TIMEOUT is required", c.name)
		}
	}
	return nil
}

func validateDatabase(db *Database) error {
	if db.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if db.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if db.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if db.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if db.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if db.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}
	if db.MaxConns < 0 || db.MinConns < 0 || (db.MaxConns > 0 && db.MinConns > db.MaxConns) {
		return errors.New("POSTGRES_MIN_CONNS must not exceed POSTGRES_MAX_CONNS")
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

func osGetFloat(s string) (float64, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float format for %s=%q: %w", s, val, err)
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
