package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/shujie1st/tinyapp/internal/models"
	"github.com/shujie1st/tinyapp/pkg/utils"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const cacheTTL = 10 * time.Minute

type ShortenerService struct {
	db            *gorm.DB
	rdb           *redis.Client // optional; nil disables the redirect cache
	auditService  *AuditService
	codeGenerator func(int) string
	codeLength    int
}

func NewShortenerService(db *gorm.DB, rdb *redis.Client, auditService *AuditService, codeLength int) *ShortenerService {
	return &ShortenerService{
		db:            db,
		rdb:           rdb,
		auditService:  auditService,
		codeGenerator: utils.RandomString,
		codeLength:    codeLength,
	}
}

// Create stores a new short URL owned by ownerID with an empty visit history.
// The unique index on short_code is the arbiter: a code claimed by a
// concurrent create fails the insert and a fresh code is generated, so an
// existing entry is never silently overwritten.
func (s *ShortenerService) Create(longURL, ownerID, ipAddress string) (*models.URL, error) {
	var newURL models.URL
	for {
		newURL = models.URL{
			UserID:    ownerID,
			ShortCode: s.codeGenerator(s.codeLength),
			LongURL:   longURL,
			CreatedAt: time.Now(),
		}

		err := s.db.Create(&newURL).Error
		if err == nil {
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return nil, err
	}

	s.auditService.LogAction(&ownerID, "CREATE_LINK", newURL.ShortCode, map[string]interface{}{
		"long_url": longURL,
	}, ipAddress)

	return &newURL, nil
}

// Get looks up a short code, consulting the redis cache first when configured.
func (s *ShortenerService) Get(code string) (*models.URL, error) {
	ctx := context.Background()

	if s.rdb != nil {
		val, err := s.rdb.Get(ctx, "url:"+code).Result()
		if err == nil {
			var cached models.URL
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	var urlEntry models.URL
	if err := s.db.Where("short_code = ?", code).First(&urlEntry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(urlEntry); err == nil {
			s.rdb.Set(ctx, "url:"+code, data, cacheTTL)
		}
	}

	return &urlEntry, nil
}

// Update replaces the long URL of an entry owned by requesterID, leaving the
// visit history and creation time untouched.
func (s *ShortenerService) Update(code, newLongURL, requesterID, ipAddress string) (*models.URL, error) {
	urlEntry, err := s.getForOwnerCheck(code, requesterID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(urlEntry).Update("long_url", newLongURL).Error; err != nil {
		return nil, err
	}
	urlEntry.LongURL = newLongURL

	s.invalidateCache(code)

	s.auditService.LogAction(&requesterID, "UPDATE_LINK", code, map[string]interface{}{
		"long_url": newLongURL,
	}, ipAddress)

	return urlEntry, nil
}

// Delete removes an entry owned by requesterID together with its visits.
func (s *ShortenerService) Delete(code, requesterID, ipAddress string) error {
	urlEntry, err := s.getForOwnerCheck(code, requesterID)
	if err != nil {
		return err
	}

	if err := s.db.Where("url_id = ?", urlEntry.ID).Delete(&models.Visit{}).Error; err != nil {
		return err
	}
	if err := s.db.Delete(urlEntry).Error; err != nil {
		return err
	}

	s.invalidateCache(code)

	s.auditService.LogAction(&requesterID, "DELETE_LINK", code, nil, ipAddress)

	return nil
}

// ListForOwner returns every entry owned by ownerID, newest first.
func (s *ShortenerService) ListForOwner(ownerID string) ([]models.URL, error) {
	var urls []models.URL
	if err := s.db.Where("user_id = ?", ownerID).Order("created_at desc").Find(&urls).Error; err != nil {
		return nil, err
	}
	return urls, nil
}

// getForOwnerCheck applies the access checks in order: existence first, then
// ownership.
func (s *ShortenerService) getForOwnerCheck(code, requesterID string) (*models.URL, error) {
	var urlEntry models.URL
	if err := s.db.Where("short_code = ?", code).First(&urlEntry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if urlEntry.UserID != requesterID {
		return nil, ErrForbidden
	}

	return &urlEntry, nil
}

func (s *ShortenerService) invalidateCache(code string) {
	if s.rdb != nil {
		s.rdb.Del(context.Background(), "url:"+code)
	}
}
