package common

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// DatabaseConnection is one external database stored by the connection
// settings page. ConName is the unique key.
type DatabaseConnection struct {
	ConName  string `json:"con_name" form:"con_name"`
	Vendor   string `json:"vendor" form:"vendor"`
	Host     string `json:"host" form:"host"`
	Port     string `json:"port,omitempty" form:"port"`
	DBName   string `json:"db_name" form:"db_name"`
	UserName string `json:"user_name" form:"user_name"`
	Pass     string `json:"pass" form:"pass"`
}

// Complete reports whether every field the connection test needs is set.
func (c DatabaseConnection) Complete() bool {
	return c.ConName != "" && c.Host != "" && c.DBName != "" && c.UserName != "" && c.Pass != ""
}

// Configuration holds the pool settings applied to live connections.
type Configuration struct {
	ExtraParams    string `json:"extraParams" yaml:"extra_params"`
	MaxPoolSize    uint   `json:"maxPoolSize" yaml:"max_pool_size"`
	MaxIdleConns   uint   `json:"maxIdleConns" yaml:"max_idle_conns"`
	ConnectTimeout uint   `json:"connectTimeout" yaml:"connect_timeout"`
	QueryTimeout   uint   `json:"queryTimeout" yaml:"query_timeout"`
}

// DefaultConfiguration returns the pool settings used when none are configured.
func DefaultConfiguration() Configuration {
	return Configuration{MaxPoolSize: 10, MaxIdleConns: 2, ConnectTimeout: 5, QueryTimeout: 30}
}

// Connections is the persisted connection map keyed by ConName.
type Connections map[string]DatabaseConnection

func (c Connections) Value() (driver.Value, error) {
	marshal, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(marshal), nil
}

func (c *Connections) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		*c = Connections{}
		return nil
	default:
		return errors.New("unsupported connections value")
	}
	return json.Unmarshal(raw, c)
}
