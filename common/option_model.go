package common

import (
	"time"

	uuid "github.com/satori/go.uuid"
)

// Option keys used by this module.
const (
	OptionCommonSetting = "graphina_common_setting"
	OptionDatabase      = "graphina_mysql_database_setting"
)

// OptionTable is the key-value option record persisted by the gorm store.
type OptionTable struct {
	OptionName  string    `gorm:"primaryKey;column:option_name;size:191" db:"option_name" json:"option_name"`
	OptionValue string    `gorm:"column:option_value;type:longtext" db:"option_value" json:"option_value"`
	UpdateTime  time.Time `gorm:"column:update_time;autoUpdateTime" db:"update_time" json:"update_time"`
}

func (OptionTable) TableName() string {
	return "chart_options"
}

// CommonSetting is the site wide settings record.
type CommonSetting map[string]interface{}

// Str returns the string value of key, or def when absent.
func (s CommonSetting) Str(key, def string) string {
	if v, ok := s[key].(string); ok && v != "" {
		return v
	}
	return def
}

func GetUUID() string {
	return uuid.NewV4().String()
}
