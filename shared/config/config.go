package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Problem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Config struct {
	Env              string
	ServiceName      string
	HTTPPort         int
	LogLevel         string
	ConfigPath       string
	RequestTimeoutMS int
	RequestTimeout   time.Duration

	AuthTokenSecret   string
	AuthTokenTTLHours int
	OIDCIssuer        string
	OIDCAudience      string
	OIDCJWKSURL       string
	JWKSTTLSeconds    int
	JWTClockSkewSec   int

	DatabaseURL      string
	DBMaxConns       int
	DBMinConns       int
	DBConnMaxIdleSec int
	DBConnMaxLifeSec int

	AuditEnabled bool

	KafkaBrokers  []string
	KafkaClientID string
	KafkaGroupID  string
	KafkaRetryMax int
	KafkaWriteMS  int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AsynqRedisAddr   string
	AsynqRedisPass   string
	AsynqRedisDB     int
	AsynqQueue       string
	AsynqConcurrency int

	OutboxScanSec     int
	OutboxBatchSize   int
	OutboxMaxAttempts int

	InfluxURL       string
	InfluxToken     string
	InfluxOrg       string
	InfluxBucket    string
	InfluxTimeoutMS int

	WeatherCacheTTLSec    int
	WateringScanSec       int
	WateringCooldownHours int

	RateLimitRPS       float64
	RateLimitBurst     int
	CORSAllowedOrigins []string

	OtelEnabled     bool
	OtelEndpoint    string
	OtelInsecure    bool
	OtelSampleRatio float64
}

func Load(serviceNameDefault string, httpPortDefault int) (Config, []Problem) {
	envRaw := strings.TrimSpace(os.Getenv("ENV"))
	cfg := Config{
		Env:                   envRaw,
		ServiceName:           serviceNameDefault,
		HTTPPort:              httpPortDefault,
		LogLevel:              "info",
		ConfigPath:            strings.TrimSpace(os.Getenv("CONFIG_PATH")),
		RequestTimeoutMS:      30000,
		AuthTokenSecret:       strings.TrimSpace(os.Getenv("AUTH_TOKEN_SECRET")),
		AuthTokenTTLHours:     168,
		OIDCIssuer:            strings.TrimSpace(os.Getenv("OIDC_ISSUER")),
		OIDCAudience:          strings.TrimSpace(os.Getenv("OIDC_AUDIENCE")),
		OIDCJWKSURL:           strings.TrimSpace(os.Getenv("OIDC_JWKS_URL")),
		JWKSTTLSeconds:        300,
		JWTClockSkewSec:       60,
		DatabaseURL:           strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:            10,
		DBMinConns:            1,
		DBConnMaxIdleSec:      300,
		DBConnMaxLifeSec:      1800,
		KafkaRetryMax:         5,
		KafkaWriteMS:          5000,
		AsynqQueue:            "default",
		AsynqConcurrency:      10,
		OutboxScanSec:         5,
		OutboxBatchSize:       50,
		OutboxMaxAttempts:     20,
		InfluxTimeoutMS:       5000,
		WeatherCacheTTLSec:    600,
		WateringScanSec:       3600,
		WateringCooldownHours: 24,
		RateLimitRPS:          10,
		RateLimitBurst:        20,
		OtelInsecure:          true,
		OtelSampleRatio:       1.0,
	}

	problems := make([]Problem, 0, 4)
	envProvided := envRaw != ""

	if repoRoot, ok := findRepoRoot(); ok && cfg.Env != "" && cfg.ConfigPath == "" {
		cfg.ConfigPath = filepath.Join(repoRoot, "configs", cfg.Env+".json")
	}

	if fileData, fileProblems, ok := loadConfigFile(cfg.ConfigPath, strings.TrimSpace(os.Getenv("CONFIG_PATH")) != ""); ok {
		problems = append(problems, fileProblems...)
		if fileEnv, ok := readStringKey(fileData, "ENV"); ok && strings.TrimSpace(fileEnv) != "" {
			envProvided = true
		}
		applyConfigMap(&cfg, fileData, &problems)
	} else {
		problems = append(problems, fileProblems...)
	}

	applyEnv(&cfg, &problems)

	if cfg.OIDCIssuer != "" && strings.TrimSpace(cfg.OIDCJWKSURL) == "" {
		cfg.OIDCJWKSURL = strings.TrimRight(cfg.OIDCIssuer, "/") + "/.well-known/jwks.json"
	}

	if cfg.Env == "" {
		cfg.Env = "dev"
	}
	if !envProvided {
		problems = append(problems, Problem{Field: "ENV", Message: "ENV is required"})
	}
	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		problems = append(problems, Problem{Field: "HTTP_PORT", Message: "HTTP_PORT must be 1-65535"})
		cfg.HTTPPort = httpPortDefault
	}
	if cfg.RequestTimeoutMS <= 0 {
		problems = append(problems, Problem{Field: "REQUEST_TIMEOUT_MS", Message: "REQUEST_TIMEOUT_MS must be > 0"})
		cfg.RequestTimeoutMS = 30000
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutMS) * time.Millisecond
	if cfg.AuthTokenTTLHours <= 0 {
		problems = append(problems, Problem{Field: "AUTH_TOKEN_TTL_HOURS", Message: "AUTH_TOKEN_TTL_HOURS must be > 0"})
		cfg.AuthTokenTTLHours = 168
	}
	if cfg.JWKSTTLSeconds <= 0 {
		problems = append(problems, Problem{Field: "JWKS_CACHE_TTL_SECONDS", Message: "JWKS_CACHE_TTL_SECONDS must be > 0"})
		cfg.JWKSTTLSeconds = 300
	}
	if cfg.JWTClockSkewSec < 0 {
		problems = append(problems, Problem{Field: "JWT_CLOCK_SKEW_SECONDS", Message: "JWT_CLOCK_SKEW_SECONDS must be >= 0"})
		cfg.JWTClockSkewSec = 60
	}
	if cfg.DBMaxConns <= 0 {
		problems = append(problems, Problem{Field: "DB_MAX_CONNS", Message: "DB_MAX_CONNS must be > 0"})
		cfg.DBMaxConns = 10
	}
	if cfg.DBMinConns < 0 {
		problems = append(problems, Problem{Field: "DB_MIN_CONNS", Message: "DB_MIN_CONNS must be >= 0"})
		cfg.DBMinConns = 1
	}
	if cfg.DBMinConns > cfg.DBMaxConns {
		problems = append(problems, Problem{Field: "DB_MIN_CONNS", Message: "DB_MIN_CONNS must be <= DB_MAX_CONNS"})
		cfg.DBMinConns = cfg.DBMaxConns
	}
	if cfg.DBConnMaxIdleSec <= 0 {
		problems = append(problems, Problem{Field: "DB_CONN_MAX_IDLE_SECONDS", Message: "DB_CONN_MAX_IDLE_SECONDS must be > 0"})
		cfg.DBConnMaxIdleSec = 300
	}
	if cfg.DBConnMaxLifeSec <= 0 {
		problems = append(problems, Problem{Field: "DB_CONN_MAX_LIFETIME_SECONDS", Message: "DB_CONN_MAX_LIFETIME_SECONDS must be > 0"})
		cfg.DBConnMaxLifeSec = 1800
	}
	if cfg.KafkaRetryMax < 0 {
		problems = append(problems, Problem{Field: "KAFKA_RETRY_MAX", Message: "KAFKA_RETRY_MAX must be >= 0"})
		cfg.KafkaRetryMax = 5
	}
	if cfg.KafkaWriteMS <= 0 {
		problems = append(problems, Problem{Field: "KAFKA_WRITE_TIMEOUT_MS", Message: "KAFKA_WRITE_TIMEOUT_MS must be > 0"})
		cfg.KafkaWriteMS = 5000
	}
	if cfg.RedisDB < 0 {
		problems = append(problems, Problem{Field: "REDIS_DB", Message: "REDIS_DB must be >= 0"})
		cfg.RedisDB = 0
	}
	if cfg.AsynqRedisDB < 0 {
		problems = append(problems, Problem{Field: "ASYNQ_REDIS_DB", Message: "ASYNQ_REDIS_DB must be >= 0"})
		cfg.AsynqRedisDB = 0
	}
	if cfg.AsynqConcurrency <= 0 {
		problems = append(problems, Problem{Field: "ASYNQ_CONCURRENCY", Message: "ASYNQ_CONCURRENCY must be > 0"})
		cfg.AsynqConcurrency = 10
	}
	if cfg.OutboxScanSec <= 0 {
		problems = append(problems, Problem{Field: "OUTBOX_SCAN_INTERVAL_SECONDS", Message: "OUTBOX_SCAN_INTERVAL_SECONDS must be > 0"})
		cfg.OutboxScanSec = 5
	}
	if cfg.OutboxBatchSize <= 0 {
		problems = append(problems, Problem{Field: "OUTBOX_BATCH_SIZE", Message: "OUTBOX_BATCH_SIZE must be > 0"})
		cfg.OutboxBatchSize = 50
	}
	if cfg.OutboxMaxAttempts <= 0 {
		problems = append(problems, Problem{Field: "OUTBOX_MAX_ATTEMPTS", Message: "OUTBOX_MAX_ATTEMPTS must be > 0"})
		cfg.OutboxMaxAttempts = 20
	}
	if cfg.InfluxTimeoutMS <= 0 {
		problems = append(problems, Problem{Field: "INFLUX_TIMEOUT_MS", Message: "INFLUX_TIMEOUT_MS must be > 0"})
		cfg.InfluxTimeoutMS = 5000
	}
	if cfg.WeatherCacheTTLSec <= 0 {
		problems = append(problems, Problem{Field: "WEATHER_CACHE_TTL_SECONDS", Message: "WEATHER_CACHE_TTL_SECONDS must be > 0"})
		cfg.WeatherCacheTTLSec = 600
	}
	if cfg.WateringScanSec <= 0 {
		problems = append(problems, Problem{Field: "WATERING_SCAN_INTERVAL_SECONDS", Message: "WATERING_SCAN_INTERVAL_SECONDS must be > 0"})
		cfg.WateringScanSec = 3600
	}
	if cfg.WateringCooldownHours <= 0 {
		problems = append(problems, Problem{Field: "WATERING_ALERT_COOLDOWN_HOURS", Message: "WATERING_ALERT_COOLDOWN_HOURS must be > 0"})
		cfg.WateringCooldownHours = 24
	}
	if cfg.RateLimitRPS <= 0 {
		problems = append(problems, Problem{Field: "RATE_LIMIT_RPS", Message: "RATE_LIMIT_RPS must be > 0"})
		cfg.RateLimitRPS = 10
	}
	if cfg.RateLimitBurst <= 0 {
		problems = append(problems, Problem{Field: "RATE_LIMIT_BURST", Message: "RATE_LIMIT_BURST must be > 0"})
		cfg.RateLimitBurst = 20
	}
	if cfg.OtelSampleRatio < 0 || cfg.OtelSampleRatio > 1 {
		problems = append(problems, Problem{Field: "OTEL_SAMPLE_RATIO", Message: "OTEL_SAMPLE_RATIO must be 0-1"})
		cfg.OtelSampleRatio = 1.0
	}

	return cfg, problems
}

func findRepoRoot() (string, bool) {
	start, err := os.Getwd()
	if err != nil {
		return "", false
	}
	dir := start
	for i := 0; i < 8; i++ {
		candidate := filepath.Join(dir, "configs")
		if fi, err := os.Stat(candidate); err == nil && fi.IsDir() {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false
}

func loadConfigFile(path string, explicit bool) (map[string]any, []Problem, bool) {
	if strings.TrimSpace(path) == "" {
		return nil, nil, false
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if explicit && !errors.Is(err, os.ErrNotExist) {
			return nil, []Problem{{Field: "CONFIG_PATH", Message: fmt.Sprintf("failed to read config file: %v", err)}}, false
		}
		if explicit && errors.Is(err, os.ErrNotExist) {
			return nil, []Problem{{Field: "CONFIG_PATH", Message: "config file not found"}}, false
		}
		return nil, nil, false
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, []Problem{{Field: "CONFIG_PATH", Message: fmt.Sprintf("invalid json: %v", err)}}, false
	}
	return raw, nil, true
}

func applyEnv(cfg *Config, problems *[]Problem) {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				*problems = append(*problems, Problem{Field: key, Message: key + " must be an integer"})
				return
			}
			*dst = n
		}
	}
	setFloat := func(key string, dst *float64) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				*problems = append(*problems, Problem{Field: key, Message: key + " must be a number"})
				return
			}
			*dst = f
		}
	}
	setBool := func(key string, dst *bool) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			b, ok := asBool(v)
			if !ok {
				*problems = append(*problems, Problem{Field: key, Message: key + " must be a boolean"})
				return
			}
			*dst = b
		}
	}

	setString("SERVICE_NAME", &cfg.ServiceName)

	portRaw := strings.TrimSpace(os.Getenv("HTTP_PORT"))
	if portRaw == "" {
		portRaw = strings.TrimSpace(os.Getenv("PORT"))
	}
	if portRaw != "" {
		if p, err := strconv.Atoi(portRaw); err != nil || p <= 0 || p > 65535 {
			*problems = append(*problems, Problem{Field: "HTTP_PORT", Message: "HTTP_PORT must be 1-65535"})
		} else {
			cfg.HTTPPort = p
		}
	}

	setString("LOG_LEVEL", &cfg.LogLevel)
	setInt("REQUEST_TIMEOUT_MS", &cfg.RequestTimeoutMS)

	setString("AUTH_TOKEN_SECRET", &cfg.AuthTokenSecret)
	setInt("AUTH_TOKEN_TTL_HOURS", &cfg.AuthTokenTTLHours)
	setString("OIDC_ISSUER", &cfg.OIDCIssuer)
	setString("OIDC_AUDIENCE", &cfg.OIDCAudience)
	setString("OIDC_JWKS_URL", &cfg.OIDCJWKSURL)
	setInt("JWKS_CACHE_TTL_SECONDS", &cfg.JWKSTTLSeconds)
	setInt("JWT_CLOCK_SKEW_SECONDS", &cfg.JWTClockSkewSec)

	setString("DATABASE_URL", &cfg.DatabaseURL)
	setInt("DB_MAX_CONNS", &cfg.DBMaxConns)
	setInt("DB_MIN_CONNS", &cfg.DBMinConns)
	setInt("DB_CONN_MAX_IDLE_SECONDS", &cfg.DBConnMaxIdleSec)
	setInt("DB_CONN_MAX_LIFETIME_SECONDS", &cfg.DBConnMaxLifeSec)

	setBool("AUDIT_ENABLED", &cfg.AuditEnabled)

	if v := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); v != "" {
		cfg.KafkaBrokers = parseCSV(v)
	}
	setString("KAFKA_CLIENT_ID", &cfg.KafkaClientID)
	setString("KAFKA_CONSUMER_GROUP", &cfg.KafkaGroupID)
	setInt("KAFKA_RETRY_MAX", &cfg.KafkaRetryMax)
	setInt("KAFKA_WRITE_TIMEOUT_MS", &cfg.KafkaWriteMS)

	setString("REDIS_ADDR", &cfg.RedisAddr)
	setString("REDIS_PASSWORD", &cfg.RedisPassword)
	setInt("REDIS_DB", &cfg.RedisDB)

	setString("ASYNQ_REDIS_ADDR", &cfg.AsynqRedisAddr)
	setString("ASYNQ_REDIS_PASSWORD", &cfg.AsynqRedisPass)
	setInt("ASYNQ_REDIS_DB", &cfg.AsynqRedisDB)
	setString("ASYNQ_QUEUE", &cfg.AsynqQueue)
	setInt("ASYNQ_CONCURRENCY", &cfg.AsynqConcurrency)

	setInt("OUTBOX_SCAN_INTERVAL_SECONDS", &cfg.OutboxScanSec)
	setInt("OUTBOX_BATCH_SIZE", &cfg.OutboxBatchSize)
	setInt("OUTBOX_MAX_ATTEMPTS", &cfg.OutboxMaxAttempts)

	setString("INFLUX_URL", &cfg.InfluxURL)
	setString("INFLUX_TOKEN", &cfg.InfluxToken)
	setString("INFLUX_ORG", &cfg.InfluxOrg)
	setString("INFLUX_BUCKET", &cfg.InfluxBucket)
	setInt("INFLUX_TIMEOUT_MS", &cfg.InfluxTimeoutMS)

	setInt("WEATHER_CACHE_TTL_SECONDS", &cfg.WeatherCacheTTLSec)
	setInt("WATERING_SCAN_INTERVAL_SECONDS", &cfg.WateringScanSec)
	setInt("WATERING_ALERT_COOLDOWN_HOURS", &cfg.WateringCooldownHours)

	setFloat("RATE_LIMIT_RPS", &cfg.RateLimitRPS)
	setInt("RATE_LIMIT_BURST", &cfg.RateLimitBurst)
	if v := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); v != "" {
		cfg.CORSAllowedOrigins = parseCSV(v)
	}

	setBool("OTEL_ENABLED", &cfg.OtelEnabled)
	setString("OTEL_EXPORTER_OTLP_ENDPOINT", &cfg.OtelEndpoint)
	setBool("OTEL_EXPORTER_OTLP_INSECURE", &cfg.OtelInsecure)
	setFloat("OTEL_SAMPLE_RATIO", &cfg.OtelSampleRatio)
}

func applyConfigMap(cfg *Config, raw map[string]any, problems *[]Problem) {
	setString := func(key string, v any, dst *string) {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			*dst = strings.TrimSpace(s)
		}
	}
	setInt := func(key string, v any, dst *int) {
		if n, ok := asInt(v); ok {
			*dst = n
		} else {
			*problems = append(*problems, Problem{Field: key, Message: key + " must be an integer"})
		}
	}
	setFloat := func(key string, v any, dst *float64) {
		if f, ok := asFloat(v); ok {
			*dst = f
		} else {
			*problems = append(*problems, Problem{Field: key, Message: key + " must be a number"})
		}
	}
	setBool := func(key string, v any, dst *bool) {
		switch t := v.(type) {
		case bool:
			*dst = t
		case string:
			if b, ok := asBool(t); ok {
				*dst = b
			} else {
				*problems = append(*problems, Problem{Field: key, Message: key + " must be a boolean"})
			}
		default:
			*problems = append(*problems, Problem{Field: key, Message: key + " must be a boolean"})
		}
	}

	for k, v := range raw {
		key := strings.ToUpper(strings.TrimSpace(k))
		switch key {
		case "ENV":
			if s, ok := v.(string); ok {
				cfg.Env = strings.TrimSpace(s)
			}
		case "SERVICE_NAME":
			setString(key, v, &cfg.ServiceName)
		case "HTTP_PORT":
			p, ok := asInt(v)
			if !ok || p <= 0 || p > 65535 {
				*problems = append(*problems, Problem{Field: key, Message: "HTTP_PORT must be 1-65535"})
			} else {
				cfg.HTTPPort = p
			}
		case "LOG_LEVEL":
			setString(key, v, &cfg.LogLevel)
		case "REQUEST_TIMEOUT_MS":
			setInt(key, v, &cfg.RequestTimeoutMS)
		case "AUTH_TOKEN_SECRET":
			setString(key, v, &cfg.AuthTokenSecret)
		case "AUTH_TOKEN_TTL_HOURS":
			setInt(key, v, &cfg.AuthTokenTTLHours)
		case "OIDC_ISSUER":
			setString(key, v, &cfg.OIDCIssuer)
		case "OIDC_AUDIENCE":
			setString(key, v, &cfg.OIDCAudience)
		case "OIDC_JWKS_URL":
			setString(key, v, &cfg.OIDCJWKSURL)
		case "JWKS_CACHE_TTL_SECONDS":
			setInt(key, v, &cfg.JWKSTTLSeconds)
		case "JWT_CLOCK_SKEW_SECONDS":
			setInt(key, v, &cfg.JWTClockSkewSec)
		case "DATABASE_URL":
			setString(key, v, &cfg.DatabaseURL)
		case "DB_MAX_CONNS":
			setInt(key, v, &cfg.DBMaxConns)
		case "DB_MIN_CONNS":
			setInt(key, v, &cfg.DBMinConns)
		case "DB_CONN_MAX_IDLE_SECONDS":
			setInt(key, v, &cfg.DBConnMaxIdleSec)
		case "DB_CONN_MAX_LIFETIME_SECONDS":
			setInt(key, v, &cfg.DBConnMaxLifeSec)
		case "AUDIT_ENABLED":
			setBool(key, v, &cfg.AuditEnabled)
		case "KAFKA_BROKERS":
			if s, ok := v.(string); ok {
				cfg.KafkaBrokers = parseCSV(s)
			} else if arr, ok := v.([]any); ok {
				cfg.KafkaBrokers = parseAnyCSV(arr)
			}
		case "KAFKA_CLIENT_ID":
			setString(key, v, &cfg.KafkaClientID)
		case "KAFKA_CONSUMER_GROUP":
			setString(key, v, &cfg.KafkaGroupID)
		case "KAFKA_RETRY_MAX":
			setInt(key, v, &cfg.KafkaRetryMax)
		case "KAFKA_WRITE_TIMEOUT_MS":
			setInt(key, v, &cfg.KafkaWriteMS)
		case "REDIS_ADDR":
			setString(key, v, &cfg.RedisAddr)
		case "REDIS_PASSWORD":
			if s, ok := v.(string); ok {
				cfg.RedisPassword = s
			}
		case "REDIS_DB":
			setInt(key, v, &cfg.RedisDB)
		case "ASYNQ_REDIS_ADDR":
			setString(key, v, &cfg.AsynqRedisAddr)
		case "ASYNQ_REDIS_PASSWORD":
			if s, ok := v.(string); ok {
				cfg.AsynqRedisPass = s
			}
		case "ASYNQ_REDIS_DB":
			setInt(key, v, &cfg.AsynqRedisDB)
		case "ASYNQ_QUEUE":
			setString(key, v, &cfg.AsynqQueue)
		case "ASYNQ_CONCURRENCY":
			setInt(key, v, &cfg.AsynqConcurrency)
		case "OUTBOX_SCAN_INTERVAL_SECONDS":
			setInt(key, v, &cfg.OutboxScanSec)
		case "OUTBOX_BATCH_SIZE":
			setInt(key, v, &cfg.OutboxBatchSize)
		case "OUTBOX_MAX_ATTEMPTS":
			setInt(key, v, &cfg.OutboxMaxAttempts)
		case "INFLUX_URL":
			setString(key, v, &cfg.InfluxURL)
		case "INFLUX_TOKEN":
			if s, ok := v.(string); ok {
				cfg.InfluxToken = s
			}
		case "INFLUX_ORG":
			setString(key, v, &cfg.InfluxOrg)
		case "INFLUX_BUCKET":
			setString(key, v, &cfg.InfluxBucket)
		case "INFLUX_TIMEOUT_MS":
			setInt(key, v, &cfg.InfluxTimeoutMS)
		case "WEATHER_CACHE_TTL_SECONDS":
			setInt(key, v, &cfg.WeatherCacheTTLSec)
		case "WATERING_SCAN_INTERVAL_SECONDS":
			setInt(key, v, &cfg.WateringScanSec)
		case "WATERING_ALERT_COOLDOWN_HOURS":
			setInt(key, v, &cfg.WateringCooldownHours)
		case "RATE_LIMIT_RPS":
			setFloat(key, v, &cfg.RateLimitRPS)
		case "RATE_LIMIT_BURST":
			setInt(key, v, &cfg.RateLimitBurst)
		case "CORS_ALLOWED_ORIGINS":
			if s, ok := v.(string); ok {
				cfg.CORSAllowedOrigins = parseCSV(s)
			} else if arr, ok := v.([]any); ok {
				cfg.CORSAllowedOrigins = parseAnyCSV(arr)
			}
		case "OTEL_ENABLED":
			setBool(key, v, &cfg.OtelEnabled)
		case "OTEL_EXPORTER_OTLP_ENDPOINT":
			setString(key, v, &cfg.OtelEndpoint)
		case "OTEL_EXPORTER_OTLP_INSECURE":
			setBool(key, v, &cfg.OtelInsecure)
		case "OTEL_SAMPLE_RATIO":
			setFloat(key, v, &cfg.OtelSampleRatio)
		}
	}
}

func readStringKey(raw map[string]any, key string) (string, bool) {
	for k, v := range raw {
		if strings.EqualFold(strings.TrimSpace(k), key) {
			s, ok := v.(string)
			return s, ok
		}
	}
	return "", false
}

func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case json.Number:
		i, err := t.Int64()
		return int(i), err == nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(t))
		return i, err == nil
	default:
		return 0, false
	}
}

func asBool(v string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "y":
		return true, true
	case "false", "0", "no", "n":
		return false, true
	default:
		return false, false
	}
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func parseCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseAnyCSV(raw []any) []string {
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			s = strings.TrimSpace(s)
			if s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
