package services

import (
	"log/slog"
	"net"
	"os"
	"sync"

	"github.com/shujie1st/tinyapp/internal/config"

	"github.com/oschwald/geoip2-golang"
)

// GeoIPService resolves visitor IPs to a country name for visit analytics.
// Lookups degrade to "Unknown" when no database is available.
type GeoIPService struct {
	cfg       config.Config
	logger    *slog.Logger
	geoReader *geoip2.Reader
	geoLock   sync.RWMutex
}

func NewGeoIPService(cfg config.Config, logger *slog.Logger) *GeoIPService {
	return &GeoIPService{
		cfg:    cfg,
		logger: logger,
	}
}

// Init opens the mmdb file at GEOIP_DB_PATH if one is present.
func (s *GeoIPService) Init() {
	dbPath := s.cfg.GeoIPDBPath
	if dbPath == "" {
		return
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		s.logger.Warn("GeoIP: database not found, lookups disabled", "path", dbPath)
		return
	}

	reader, err := geoip2.Open(dbPath)
	if err != nil {
		s.logger.Error("GeoIP: failed to open database", "path", dbPath, "error", err)
		return
	}

	s.geoLock.Lock()
	s.geoReader = reader
	s.geoLock.Unlock()

	s.logger.Info("GeoIP: database loaded", "path", dbPath)
}

func (s *GeoIPService) Country(ipStr string) string {
	s.geoLock.RLock()
	reader := s.geoReader
	s.geoLock.RUnlock()

	if reader == nil {
		return "Unknown"
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return "Unknown"
	}

	record, err := reader.Country(ip)
	if err != nil || record.Country.Names["en"] == "" {
		return "Unknown"
	}

	return record.Country.Names["en"]
}

func (s *GeoIPService) Close() {
	s.geoLock.Lock()
	defer s.geoLock.Unlock()
	if s.geoReader != nil {
		s.geoReader.Close()
		s.geoReader = nil
	}
}
