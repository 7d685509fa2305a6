package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (MZ_ prefix), flags, or YAML config files.
type Config struct {
	Addr        string `default:"127.0.0.1:8080" usage:"API server listen address"`
	DataDir     string `default:"data" usage:"Directory for device-local state (cart, deal deadline)" flag:"data-dir"`
	CatalogPath string `usage:"Path to a catalog file (.json or .json.gz); empty uses the embedded catalog" flag:"catalog"`
	PageSize    int    `default:"8" usage:"Products per listing page" flag:"page-size"`
	Cart        CartConfig
	RateLimit   RateLimitConfig
	CORS        CORSConfig
	Graceful    GracefulConfig
}

// CartConfig controls cart total derivation.
type CartConfig struct {
	FreeShippingMin int64 `default:"499" usage:"Subtotal at which delivery becomes free" flag:"free-shipping-min"`
	DeliveryFee     int64 `default:"49" usage:"Delivery fee below the free shipping threshold" flag:"delivery-fee"`
}

// RateLimitConfig controls the per-client sliding window rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins []string `default:"*" usage:"Allowed CORS origins"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "MZ",
		Files:     []string{"config.yaml", "/etc/mobile-zone/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.PageSize <= 0 {
		return nil, errors.New("page size must be positive")
	}

	return &cfg, nil
}

// applyPlatformDefaults maps the standard PORT environment variable onto the
// listen address when the address was left at its default.
func (c *Config) applyPlatformDefaults() {
	if port := os.Getenv("PORT"); port != "" && c.Addr == "127.0.0.1:8080" {
		c.Addr = "127.0.0.1:" + port
	}
}
