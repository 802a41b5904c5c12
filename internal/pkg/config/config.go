package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"route-engine/internal/entities"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type (
	Tasks struct {
		RouteBuildingInterval time.Duration
		ClaimReaperInterval   time.Duration
	}

	HTTPServer struct {
		Port             string
		GRPCPort         string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // пополнение бакета клиента, токенов в секунду
		RateLimiterBurst int           // емкость бакета клиента
		CORSOrigins      string
		PprofEnabled     bool
		PprofPort        string
	}

	Storage struct {
		Driver string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
		MaxConns int32
		MinConns int32
		Migrate  bool
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
		CacheTTL time.Duration
	}

	Distance struct {
		Timeout      time.Duration
		DefaultMiles float64
		RoadFactor   float64
	}

	Windows struct {
		Slots         string
		TimeZone      string
		IntakeCutoff  time.Duration
		CellPrecision uint
	}

	Builder struct {
		MaxStops      int
		MaxOpenRoutes int
		RadiusMiles   float64
	}

	Ledger struct {
		ClaimGracePeriod    time.Duration
		ClaimDeadlineOffset time.Duration
	}

	Kafka struct {
		PortHealthcheck    string
		Brokers            string
		Topic              string
		NotificationsTopic string
		ConsumerGroup      string
		Sarama             Sarama
		Handlers           KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		OrderEvents OrderEvents
	}

	OrderEvents struct {
		ProcessTimeout time.Duration
	}

	Config struct {
		Tasks    Tasks
		Server   HTTPServer
		Storage  Storage
		Database Database
		Redis    Redis
		Distance Distance
		Windows  Windows
		Builder  Builder
		Ledger   Ledger
		Kafka    Kafka
		Tariff   entities.Tariff
	}
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	cfg.Tariff, err = LoadTariff(os.Getenv("TARIFF_FILE"))
	if err != nil {
		return nil, fmt.Errorf("tariff loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

// ValidateWorker проверяет настройки, нужные воркеру событий заказов.
func (c *Config) ValidateWorker() error {
	if c.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if c.Kafka.Topic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	if c.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if c.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}
	if c.Kafka.Handlers.OrderEvents.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_ORDER_EVENTS_PROCESS_TIMEOUT is required")
	}
	return nil
}

func loadFromEnv() (*Config, error) {
	var (
		l   loader
		cfg Config
	)

	cfg.Tasks = Tasks{
		RouteBuildingInterval: l.duration("BACKGROUND_ROUTE_BUILDING_INTERVAL", time.Minute),
		ClaimReaperInterval:   l.duration("BACKGROUND_CLAIM_REAPER_INTERVAL", 30*time.Second),
	}
	cfg.Server = HTTPServer{
		Port:             os.Getenv("PORT"),
		GRPCPort:         os.Getenv("GRPC_PORT"),
		RequestTimeout:   l.duration("MIDDLEWARE_REQUEST_TIMEOUT", 0),
		RateLimiterQPS:   l.int("MIDDLEWARE_RATE_LIMIT_QPS", 0),
		RateLimiterBurst: l.int("MIDDLEWARE_RATE_LIMIT_BURST", 0),
		CORSOrigins:      os.Getenv("MIDDLEWARE_CORS_ORIGINS"),
		PprofEnabled:     l.bool("PPROF_ENABLED", false),
		PprofPort:        os.Getenv("PPROF_PORT"),
	}
	cfg.Storage = Storage{
		Driver: stringOr("STORAGE_DRIVER", StoragePostgres),
	}
	cfg.Database = Database{
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		DBName:   os.Getenv("POSTGRES_DB"),
		SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		MaxConns: int32(l.int("POSTGRES_MAX_CONNS", 10)),
		MinConns: int32(l.int("POSTGRES_MIN_CONNS", 2)),
		Migrate:  l.bool("POSTGRES_MIGRATE", true),
	}
	cfg.Redis = Redis{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       l.int("REDIS_DB", 0),
		CacheTTL: l.duration("REDIS_DISTANCE_CACHE_TTL", 24*time.Hour),
	}
	cfg.Distance = Distance{
		Timeout:      l.duration("DISTANCE_TIMEOUT", 300*time.Millisecond),
		DefaultMiles: l.float("DISTANCE_DEFAULT_MILES", 2),
		RoadFactor:   l.float("DISTANCE_ROAD_FACTOR", 1.3),
	}
	cfg.Windows = Windows{
		Slots:         stringOr("DELIVERY_SLOTS", "09:00-12:00,12:00-15:00,15:00-18:00,18:00-21:00"),
		TimeZone:      stringOr("DELIVERY_TIMEZONE", "UTC"),
		IntakeCutoff:  l.duration("INTAKE_CUTOFF", 20*time.Minute),
		CellPrecision: uint(l.int("GEO_CELL_PRECISION", 5)),
	}
	cfg.Builder = Builder{
		MaxStops:      l.int("BUILDER_MAX_STOPS", 12),
		MaxOpenRoutes: l.int("BUILDER_MAX_OPEN_ROUTES", 2),
		RadiusMiles:   l.float("BUILDER_RADIUS_MILES", 3),
	}
	cfg.Ledger = Ledger{
		ClaimGracePeriod:    l.duration("CLAIM_GRACE_PERIOD", 15*time.Minute),
		ClaimDeadlineOffset: l.duration("CLAIM_DEADLINE_OFFSET", 30*time.Minute),
	}
	cfg.Kafka = Kafka{
		Brokers:            os.Getenv("KAFKA_BROKERS"),
		Topic:              os.Getenv("KAFKA_TOPIC"),
		NotificationsTopic: os.Getenv("KAFKA_NOTIFICATIONS_TOPIC"),
		ConsumerGroup:      os.Getenv("KAFKA_CONSUMER_GROUP"),
		PortHealthcheck:    os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
		Sarama: Sarama{
			Version:                   stringOr("KAFKA_SARAMA_VERSION", "3.6.0"),
			ConsumerOffsetsAutocommit: l.bool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT", true),
		},
		Handlers: KafkaHandlers{
			OrderEvents: OrderEvents{
				ProcessTimeout: l.duration("KAFKA_HANDLER_ORDER_EVENTS_PROCESS_TIMEOUT", 10*time.Second),
			},
		},
	}

	if l.err != nil {
		return nil, fmt.Errorf("loading config: %w", l.err)
	}
	return &cfg, nil
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

	switch cfg.Storage.Driver {
	case StorageMemory:
	case StoragePostgres:
		if err := validateDatabase(cfg.Database); err != nil {
			return err
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageMemory, StoragePostgres, cfg.Storage.Driver)
	}

	if cfg.Tasks.RouteBuildingInterval <= 0 {
		return errors.New("BACKGROUND_ROUTE_BUILDING_INTERVAL must be positive")
	}
	if cfg.Tasks.ClaimReaperInterval <= 0 {
		return errors.New("BACKGROUND_CLAIM_REAPER_INTERVAL must be positive")
	}

	if cfg.Distance.DefaultMiles <= 0 {
		return errors.New("DISTANCE_DEFAULT_MILES must be positive")
	}
	if cfg.Distance.RoadFactor < 1 {
		return errors.New("DISTANCE_ROAD_FACTOR must be at least 1")
	}
	if cfg.Windows.CellPrecision == 0 || cfg.Windows.CellPrecision > 12 {
		return errors.New("GEO_CELL_PRECISION must be in 1..12")
	}
	if _, err := time.LoadLocation(cfg.Windows.TimeZone); err != nil {
		return fmt.Errorf("DELIVERY_TIMEZONE: %w", err)
	}

	if cfg.Kafka.NotificationsTopic != "" && cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required when KAFKA_NOTIFICATIONS_TOPIC is set")
	}
	return nil
}

func validateDatabase(db Database) error {
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
	if db.MaxConns <= 0 || db.MinConns < 0 || db.MinConns > db.MaxConns {
		return errors.New("POSTGRES_MIN_CONNS must be in 0..POSTGRES_MAX_CONNS")
	}
	return nil
}

// loader читает переменные окружения, запоминая первую ошибку формата.
type loader struct {
	err error
}

func (l *loader) int(key string, def int) int {
	val := os.Getenv(key)
	if val == "" || l.err != nil {
		return def
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		l.err = fmt.Errorf("invalid int format for %s=%q: %w", key, val, err)
		return def
	}
	return res
}

func (l *loader) float(key string, def float64) float64 {
	val := os.Getenv(key)
	if val == "" || l.err != nil {
		return def
	}

	res, err := strconv.ParseFloat(val, 64)
	if err != nil {
		l.err = fmt.Errorf("invalid float format for %s=%q: %w", key, val, err)
		return def
	}
	return res
}

func (l *loader) duration(key string, def time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" || l.err != nil {
		return def
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		l.err = fmt.Errorf("invalid duration format for %s=%q: %w", key, val, err)
		return def
	}
	return res
}

func (l *loader) bool(key string, def bool) bool {
	val := os.Getenv(key)
	if val == "" || l.err != nil {
		return def
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		l.err = fmt.Errorf("invalid bool format for %s=%q: %w", key, val, err)
		return def
	}
	return res
}

func stringOr(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}
