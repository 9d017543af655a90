package services

import (
	"errors"
	"log/slog"
	"time"

	"github.com/shujie1st/tinyapp/internal/models"

	"github.com/mssola/user_agent"
	"gorm.io/gorm"
)

type StatsService struct {
	db           *gorm.DB
	logger       *slog.Logger
	geoIPService *GeoIPService
}

func NewStatsService(db *gorm.DB, logger *slog.Logger, geoIPService *GeoIPService) *StatsService {
	return &StatsService{
		db:           db,
		logger:       logger,
		geoIPService: geoIPService,
	}
}

// RecordVisit appends one Visit to the entry behind code. Any visitor may
// trigger this by following the short link; there is no ownership check.
func (s *StatsService) RecordVisit(code, visitorID, userAgent, referrer, ipAddress string) (*models.Visit, error) {
	var urlEntry models.URL
	if err := s.db.Where("short_code = ?", code).First(&urlEntry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	visit := models.Visit{
		URLID:     urlEntry.ID,
		VisitorID: visitorID,
		Timestamp: time.Now(),
		Referrer:  referrer,
	}
	s.enrichVisit(&visit, userAgent, ipAddress)

	if err := s.db.Create(&visit).Error; err != nil {
		return nil, err
	}

	return &visit, nil
}

// VisitsFor returns the visit sequence of a URL in traversal order.
func (s *StatsService) VisitsFor(urlID uint) ([]models.Visit, error) {
	var visits []models.Visit
	if err := s.db.Where("url_id = ?", urlID).Order("timestamp asc").Find(&visits).Error; err != nil {
		return nil, err
	}
	return visits, nil
}

// UniqueVisitorCount counts distinct visitor ids across a visit sequence.
func UniqueVisitorCount(visits []models.Visit) int {
	seen := make(map[string]struct{}, len(visits))
	for _, v := range visits {
		seen[v.VisitorID] = struct{}{}
	}
	return len(seen)
}

func (s *StatsService) enrichVisit(visit *models.Visit, userAgent, ipAddress string) {
	ua := user_agent.New(userAgent)
	browserName, browserVer := ua.Browser()
	visit.Browser = browserName + " " + browserVer
	visit.OS = ua.OS()

	if ua.Mobile() {
		visit.DeviceType = "Mobile"
	} else if ua.Bot() {
		visit.DeviceType = "Bot"
	} else {
		visit.DeviceType = "Desktop"
	}

	visit.Country = s.geoIPService.Country(ipAddress)

	if visit.Referrer == "" {
		visit.Referrer = "Direct"
	}
}
