package store

import (
	"context"
	"errors"

	"github.com/bingLAN/chart_driver/common"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps records in the chart_options table.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the option table and returns the store.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&common.OptionTable{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (g *GormStore) Get(ctx context.Context, key string, out interface{}) error {
	var row common.OptionTable
	err := g.db.WithContext(ctx).Where("option_name = ?", key).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return decode([]byte(row.OptionValue), out)
}

func (g *GormStore) Set(ctx context.Context, key string, value interface{}) error {
	if key == "" {
		return ErrInvalidKey
	}
	data, err := encode(value)
	if err != nil {
		return err
	}
	row := common.OptionTable{OptionName: key, OptionValue: string(data)}
	// upsert
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "option_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"option_value", "update_time"}),
	}).Create(&row).Error
}
