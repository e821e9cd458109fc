package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	APIVersion     string
	APIPrefix      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int

	// Database configuration
	Database DatabaseConfig

	// Redis configuration
	Redis RedisConfig

	// Kafka configuration
	Kafka KafkaConfig

	// JWT configuration
	JWT JWTConfig

	// Rate limiting
	RateLimit RateLimitConfig

	// Reservation engine settings
	Reservation ReservationConfig

	// Logging
	LogLevel string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	DSN      string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string

	// TTL values for cached reads
	SeatMapTTL  time.Duration
	CacheTTL    time.Duration
	TempDataTTL time.Duration
}

// KafkaConfig holds Kafka producer configuration
type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret       string
	JWTExpiresIn time.Duration
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled          bool          `json:"enabled"`
	WindowDuration   time.Duration `json:"window_duration"`
	DefaultRequests  int           `json:"default_requests"`
	PublicRequests   int           `json:"public_requests"`
	PurchaseRequests int           `json:"purchase_requests"`
	AdminRequests    int           `json:"admin_requests"`
	HealthRequests   int           `json:"health_requests"`
}

// ReservationConfig carries every tunable the reservation engine reads.
// It is loaded once and passed by value into the services; nothing in the
// engine reads environment state directly.
type ReservationConfig struct {
	// Seat holds
	HoldDuration      time.Duration
	HoldSweepInterval time.Duration

	// Overbooking ceiling, as a fraction (0.05 = 5%)
	OverbookingMaxPercentage float64

	// Pricing
	TicketBasePrice        string
	PeakHoursMultiplier    float64
	HighDemandMultiplier   float64
	MediumDemandMultiplier float64
	HighDemandThreshold    int
	MediumDemandThreshold  int
	DemandWindow           time.Duration
	PeakWindows            []PeakWindow
	DiscountPercentages    map[string]int

	// Refund percentage per time-to-departure tier
	Refund RefundConfig
}

// PeakWindow is a daily [Start, End) window in minutes since midnight,
// evaluated against the trip's departure timestamp.
type PeakWindow struct {
	StartMinute int
	EndMinute   int
}

// RefundConfig maps cancellation tiers to integer refund percentages.
type RefundConfig struct {
	Before48h  int
	Before24h  int
	Before12h  int
	Before6h   int
	LessThan6h int
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server configuration
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIVersion:     getEnv("API_VERSION", "v1"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB

		// Database configuration
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "movibus_db"),
			User:     getEnv("DB_USER", "movibus_user"),
			Password: getEnv("DB_PASSWORD", "movibus_password"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		// Redis configuration
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),

			SeatMapTTL:  getDurationEnv("REDIS_SEAT_MAP_TTL", 30*time.Second),
			CacheTTL:    getDurationEnv("REDIS_CACHE_TTL", 1*time.Hour),
			TempDataTTL: getDurationEnv("REDIS_TEMP_DATA_TTL", 5*time.Minute),
		},

		// Kafka configuration
		Kafka: KafkaConfig{
			Enabled: getBoolEnv("KAFKA_ENABLED", false),
			Brokers: getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   getEnv("KAFKA_RESERVATION_TOPIC", "reservation-events"),
		},

		// JWT configuration
		JWT: JWTConfig{
			Secret:       getEnv("JWT_SECRET", "your-super-secret-jwt-key"),
			JWTExpiresIn: getDurationEnvSeconds("JWT_EXPIRES_IN", 15*time.Minute),
		},

		// Rate limiting
		RateLimit: RateLimitConfig{
			Enabled:          getBoolEnv("RATE_LIMIT_ENABLED", true),
			WindowDuration:   getDurationEnv("RATE_LIMIT_WINDOW_DURATION", 60*time.Second),
			DefaultRequests:  getIntEnv("RATE_LIMIT_DEFAULT_REQUESTS", 60),
			PublicRequests:   getIntEnv("RATE_LIMIT_PUBLIC_REQUESTS", 100),
			PurchaseRequests: getIntEnv("RATE_LIMIT_PURCHASE_REQUESTS", 20),
			AdminRequests:    getIntEnv("RATE_LIMIT_ADMIN_REQUESTS", 200),
			HealthRequests:   getIntEnv("RATE_LIMIT_HEALTH_REQUESTS", 300),
		},

		// Reservation engine
		Reservation: ReservationConfig{
			HoldDuration:      getDurationEnv("HOLD_DURATION", 10*time.Minute),
			HoldSweepInterval: getDurationEnv("HOLD_SWEEP_INTERVAL", 1*time.Minute),

			OverbookingMaxPercentage: getFloatEnv("OVERBOOKING_MAX_PERCENTAGE", 0.05),

			TicketBasePrice:        getEnv("TICKET_BASE_PRICE", "100000"),
			PeakHoursMultiplier:    getFloatEnv("TICKET_PRICE_MULTIPLIER_PEAK_HOURS", 1.10),
			HighDemandMultiplier:   getFloatEnv("TICKET_PRICE_MULTIPLIER_HIGH_DEMAND", 1.25),
			MediumDemandMultiplier: getFloatEnv("TICKET_PRICE_MULTIPLIER_MEDIUM_DEMAND", 1.10),
			HighDemandThreshold:    getIntEnv("HIGH_DEMAND_THRESHOLD", 30),
			MediumDemandThreshold:  getIntEnv("MEDIUM_DEMAND_THRESHOLD", 15),
			DemandWindow:           getDurationEnv("DEMAND_WINDOW", 24*time.Hour),
			PeakWindows:            getPeakWindowsEnv("PEAK_HOUR_WINDOWS", "06:00-09:00,16:00-19:00"),
			DiscountPercentages: map[string]int{
				"STUDENT": getIntEnv("DISCOUNT_STUDENT", 25),
				"SENIOR":  getIntEnv("DISCOUNT_SENIOR", 20),
				"CHILD":   getIntEnv("DISCOUNT_CHILD", 50),
			},

			Refund: RefundConfig{
				Before48h:  getIntEnv("REFUND_PERCENTAGE_48H", 90),
				Before24h:  getIntEnv("REFUND_PERCENTAGE_24H", 70),
				Before12h:  getIntEnv("REFUND_PERCENTAGE_12H", 50),
				Before6h:   getIntEnv("REFUND_PERCENTAGE_6H", 30),
				LessThan6h: getIntEnv("REFUND_PERCENTAGE_LESS_6H", 0),
			},
		},

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}

	// Build composite values
	cfg.Database.DSN = buildDatabaseDSN(cfg.Database)
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg
}

// buildDatabaseDSN builds the database connection string
func buildDatabaseDSN(db DatabaseConfig) string {
	return "host=" + db.Host +
		" port=" + db.Port +
		" user=" + db.User +
		" password=" + db.Password +
		" dbname=" + db.Name +
		" sslmode=" + db.SSLMode
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getFloatEnv gets a float environment variable with a fallback value
func getFloatEnv(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getDurationEnvSeconds gets an environment variable as seconds (int) and converts to time.Duration
func getDurationEnvSeconds(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getStringSliceEnv gets a comma-separated string environment variable as a slice
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		var result []string
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// getPeakWindowsEnv parses daily peak windows like "06:00-09:00,16:00-19:00".
// Malformed entries are skipped.
func getPeakWindowsEnv(key, fallback string) []PeakWindow {
	raw := getEnv(key, fallback)
	var windows []PeakWindow
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		bounds := strings.SplitN(entry, "-", 2)
		if len(bounds) != 2 {
			continue
		}
		start, okStart := parseClock(bounds[0])
		end, okEnd := parseClock(bounds[1])
		if !okStart || !okEnd || start >= end {
			continue
		}
		windows = append(windows, PeakWindow{StartMinute: start, EndMinute: end})
	}
	return windows
}

// parseClock converts "HH:MM" into minutes since midnight.
func parseClock(s string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// Contains reports whether t falls inside the daily window.
func (w PeakWindow) Contains(t time.Time) bool {
	minute := t.Hour()*60 + t.Minute()
	return minute >= w.StartMinute && minute < w.EndMinute
}

// DiscountPercent returns the configured discount for a passenger category,
// or 0 for an unmapped category.
func (rc ReservationConfig) DiscountPercent(category string) int {
	return rc.DiscountPercentages[category]
}

// IsPeakHour reports whether the departure time falls inside any configured
// peak window.
func (rc ReservationConfig) IsPeakHour(departure time.Time) bool {
	for _, w := range rc.PeakWindows {
		if w.Contains(departure) {
			return true
		}
	}
	return false
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}
