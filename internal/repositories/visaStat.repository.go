package repositories

import (
	"context"
	"fmt"
	"time"

	"server/internal/apperrors"
	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"

	"gorm.io/gorm"
)

const (
	visaStatsCacheKey    = "visa_stats:all"
	VISA_STATS_CACHE_TTL = 1 * time.Hour
)

// VisaStatRepository is the record store. Records are created once via
// submission (or per row during bulk import) and never updated or deleted
// through this interface; ReplaceAll is the only deletion pathway.
type VisaStatRepository interface {
	Create(ctx context.Context, stat *VisaStat) error
	GetAll(ctx context.Context) ([]VisaStat, error)
	ReplaceAll(ctx context.Context, stats []VisaStat) error
}

type visaStatRepository struct {
	db  database.DB
	log logger.Logger
}

func New(db database.DB) VisaStatRepository {
	return &visaStatRepository{
		db:  db,
		log: logger.New("visaStatRepository"),
	}
}

func (r *visaStatRepository) Create(ctx context.Context, stat *VisaStat) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(stat).Error; err != nil {
		log.Er("failed to create visa stat", err)
		return fmt.Errorf("%w: insert visa stat: %v", apperrors.ErrStorage, err)
	}

	r.invalidateCache(ctx)
	return nil
}

func (r *visaStatRepository) GetAll(ctx context.Context) ([]VisaStat, error) {
	log := r.log.Function("GetAll")

	var stats []VisaStat
	if found := r.getCachedAll(ctx, &stats); found {
		return stats, nil
	}

	if err := r.db.SQLWithContext(ctx).Order("id ASC").Find(&stats).Error; err != nil {
		log.Er("failed to get visa stats", err)
		return nil, fmt.Errorf("%w: select visa stats: %v", apperrors.ErrStorage, err)
	}

	if err := database.NewCacheBuilder(r.db.Cache.VisaStats, visaStatsCacheKey).
		WithStruct(stats).
		WithTTL(VISA_STATS_CACHE_TTL).
		WithContext(ctx).
		Set(); err != nil {
		log.Warn("failed to cache visa stats", "error", err)
	}

	return stats, nil
}

// ReplaceAll clears the table and inserts every record in one transaction.
// Used only by the bulk importer; readers never observe a half-replaced table.
func (r *visaStatRepository) ReplaceAll(ctx context.Context, stats []VisaStat) error {
	log := r.log.Function("ReplaceAll")

	err := r.db.SQLWithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&VisaStat{}).Error; err != nil {
			return err
		}
		if len(stats) == 0 {
			return nil
		}
		return tx.Create(&stats).Error
	})
	if err != nil {
		log.Er("failed to replace visa stats", err, "count", len(stats))
		return fmt.Errorf("%w: replace visa stats: %v", apperrors.ErrStorage, err)
	}

	r.invalidateCache(ctx)
	log.Info("replaced visa stats", "count", len(stats))
	return nil
}

func (r *visaStatRepository) getCachedAll(ctx context.Context, stats *[]VisaStat) bool {
	found, err := database.NewCacheBuilder(r.db.Cache.VisaStats, visaStatsCacheKey).
		WithContext(ctx).
		Get(stats)
	if err != nil {
		r.log.Function("getCachedAll").Warn("failed to read visa stats from cache", "error", err)
		return false
	}
	return found
}

func (r *visaStatRepository) invalidateCache(ctx context.Context) {
	if err := database.NewCacheBuilder(r.db.Cache.VisaStats, visaStatsCacheKey).
		WithContext(ctx).
		Delete(); err != nil {
		r.log.Function("invalidateCache").Warn("failed to invalidate visa stats cache", "error", err)
	}
}
