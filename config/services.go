package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ServiceMode represents the available service modes.
type ServiceMode string

const (
	// ServiceModeHTTP runs the HTTP server.
	ServiceModeHTTP ServiceMode = "http"
	// ServiceModeReaper runs the background staleness reaper.
	ServiceModeReaper ServiceMode = "reaper"
)

// ValidServiceModes returns all valid service mode names.
func ValidServiceModes() []ServiceMode {
	return []ServiceMode{ServiceModeHTTP, ServiceModeReaper}
}

// ParseServices parses a comma-delimited string of service names and returns the enabled services.
// It validates that all service names are valid and returns an error if any are invalid.
func ParseServices(servicesStr string) (map[ServiceMode]bool, error) {
	services := make(map[ServiceMode]bool)

	if servicesStr == "" {
		return services, errors.New("at least one service must be specified")
	}

	parts := strings.Split(servicesStr, ",")
	for _, part := range parts {
		serviceName := strings.TrimSpace(part)
		if serviceName == "" {
			continue
		}

		mode := ServiceMode(serviceName)
		switch mode {
		case ServiceModeHTTP, ServiceModeReaper:
			services[mode] = true
		default:
			return nil, fmt.Errorf("invalid service name: %q (valid options: http, reaper)", serviceName)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("at least one valid service must be specified")
	}

	return services, nil
}

// DownloadConfig contains download registry configuration.
type DownloadConfig struct {
	// TTL is the maximum age of a download record before the staleness
	// sweep evicts it together with its temp storage.
	TTL time.Duration `env:"DOWNLOAD_TTL" envDefault:"1h"`

	// BaseDir is the parent directory for per-download temp directories.
	// Empty means the system temp directory, preferring /dev/shm when it
	// exists so artifacts stay in memory-backed storage.
	BaseDir string `env:"DOWNLOAD_DIR" envDefault:""`
}

// Sanitize applies guardrails to download configuration values.
func (d *DownloadConfig) Sanitize() {
	if d.TTL < time.Minute {
		d.TTL = time.Minute
	}
}

// ReaperConfig contains background staleness reaper configuration.
// The sweep also runs opportunistically on every status poll; the reaper only
// bounds how long temp directories of never-polled jobs can linger.
type ReaperConfig struct {
	// Interval is the reaper tick interval.
	Interval time.Duration `env:"REAPER_INTERVAL" envDefault:"5m"`
}

// Sanitize applies guardrails to reaper configuration values.
func (r *ReaperConfig) Sanitize() {
	if r.Interval < 30*time.Second {
		r.Interval = 30 * time.Second
	}
}
