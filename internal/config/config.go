package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/transmovil-cr/service-routes/internal/directions"
	"github.com/transmovil-cr/service-routes/internal/domain/route"
)

// KafkaConfig configures result publishing. Empty Brokers disables it.
type KafkaConfig struct {
	Brokers []string `validate:"omitempty,dive,hostname_port"`
	Topic   string   `validate:"required_with=Brokers"`
}

// Enabled reports whether any broker is configured.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// FetcherConfig holds all configuration for the route fetcher.
type FetcherConfig struct {
	AppEnv        string        `validate:"required"`
	GoogleAPIKey  string        `validate:"required"`
	DirectionsURL string        `validate:"required,url"`
	OutputPath    string        `validate:"required"`
	PairsFile     string
	PaceDelay     time.Duration `validate:"gte=0"`
	HTTPTimeout   time.Duration `validate:"gte=0"`
	Kafka         KafkaConfig
}

// DashboardConfig holds all configuration for the dashboard server.
type DashboardConfig struct {
	AppEnv      string `validate:"required"`
	Port        string `validate:"required"`
	RoutesPath  string `validate:"required"`
	CORSOrigins []string
}

// PairList is the YAML document listing the pairs to query.
type PairList struct {
	Pairs []route.Pair `yaml:"pairs" validate:"required,min=1,dive"`
}

var validate = validator.New()

// LoadFetcher reads the fetcher configuration from the environment and the given .env files.
func LoadFetcher(envFiles ...string) (*FetcherConfig, error) {
	v, err := load(envFiles...)
	if err != nil {
		return nil, err
	}

	cfg := &FetcherConfig{
		AppEnv:        v.GetString("APP_ENV"),
		GoogleAPIKey:  v.GetString("GOOGLE_API_KEY"),
		DirectionsURL: v.GetString("DIRECTIONS_URL"),
		OutputPath:    v.GetString("FETCHER_OUTPUT_PATH"),
		PairsFile:     v.GetString("FETCHER_PAIRS_FILE"),
		PaceDelay:     v.GetDuration("FETCHER_PACE_DELAY"),
		HTTPTimeout:   v.GetDuration("FETCHER_HTTP_TIMEOUT"),
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid fetcher config: %w", err)
	}
	return cfg, nil
}

// LoadDashboard reads the dashboard configuration from the environment and the given .env files.
func LoadDashboard(envFiles ...string) (*DashboardConfig, error) {
	v, err := load(envFiles...)
	if err != nil {
		return nil, err
	}

	cfg := &DashboardConfig{
		AppEnv:      v.GetString("APP_ENV"),
		Port:        normalizePort(v.GetString("DASHBOARD_PORT")),
		RoutesPath:  v.GetString("DASHBOARD_ROUTES_PATH"),
		CORSOrigins: splitList(v.GetString("DASHBOARD_CORS_ORIGINS")),
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid dashboard config: %w", err)
	}
	return cfg, nil
}

// Pairs returns the pairs from PairsFile, or the built-in list when unset.
func (c *FetcherConfig) Pairs() ([]route.Pair, error) {
	if c.PairsFile == "" {
		return route.DefaultPairs(), nil
	}
	return LoadPairs(c.PairsFile)
}

// LoadPairs reads and validates a YAML pair file.
func LoadPairs(path string) ([]route.Pair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pairs file: %w", err)
	}

	var file PairList
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse pairs file %s: %w", path, err)
	}
	if err := validate.Struct(file); err != nil {
		return nil, fmt.Errorf("invalid pairs file %s: %w", path, err)
	}
	return file.Pairs, nil
}

func load(envFiles ...string) (*viper.Viper, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// existing environment variables win over the file
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DIRECTIONS_URL", directions.DefaultBaseURL)
	v.SetDefault("FETCHER_OUTPUT_PATH", "datos/rutas_api.xlsx")
	v.SetDefault("FETCHER_PAIRS_FILE", "")
	v.SetDefault("FETCHER_PACE_DELAY", "1s")
	v.SetDefault("FETCHER_HTTP_TIMEOUT", "0s")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "route.results")
	v.SetDefault("DASHBOARD_PORT", ":8501")
	v.SetDefault("DASHBOARD_ROUTES_PATH", "datos/rutas.xlsx")
	v.SetDefault("DASHBOARD_CORS_ORIGINS", "*")

	return v, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func normalizePort(port string) string {
	if port != "" && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
