package application

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/eugenenazirov/webui-harness/internal/config"
)

// ServerConfig holds the inspection API settings read from the registry.
type ServerConfig struct {
	Port                string
	RateLimit           int
	RateBurst           int
	RequestLogging      bool
	ShutdownGracePeriod time.Duration
	ReadHeaderTimeout   time.Duration
	WriteTimeout        time.Duration
	IdleTimeout         time.Duration
}

// DefaultServerConfig returns the settings used for absent properties.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:                "8080",
		RateLimit:           25,
		RateBurst:           50,
		RequestLogging:      true,
		ShutdownGracePeriod: 10 * time.Second,
		ReadHeaderTimeout:   5 * time.Second,
		WriteTimeout:        15 * time.Second,
		IdleTimeout:         60 * time.Second,
	}
}

// LoadServerConfig reads the harness.api.* and harness.shutdown.seconds
// properties on top of DefaultServerConfig.
func LoadServerConfig(reg *config.Registry) (ServerConfig, error) {
	cfg := DefaultServerConfig()

	if p := reg.Property(config.KeyAPIPort); p.HasValue() {
		port, err := p.Int()
		if err != nil {
			return ServerConfig{}, err
		}
		cfg.Port = strconv.Itoa(port)
	}

	var err error
	if cfg.RateLimit, err = intOr(reg.Property(config.KeyAPIRateLimit), cfg.RateLimit); err != nil {
		return ServerConfig{}, err
	}
	if cfg.RateBurst, err = intOr(reg.Property(config.KeyAPIRateBurst), cfg.RateBurst); err != nil {
		return ServerConfig{}, err
	}

	grace, err := intOr(reg.Property(config.KeyShutdownSeconds), int(cfg.ShutdownGracePeriod/time.Second))
	if err != nil {
		return ServerConfig{}, err
	}
	cfg.ShutdownGracePeriod = time.Duration(grace) * time.Second

	if p := reg.Property(config.KeyAPIRequestLogging); p.HasValue() {
		cfg.RequestLogging = p.Bool()
	}

	return cfg, nil
}

func intOr(p *config.Property, def int) (int, error) {
	if !p.HasValue() {
		return def, nil
	}
	return p.Int()
}

// NewServer creates an HTTP server for handler from cfg.
func NewServer(cfg ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}
