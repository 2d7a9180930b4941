package config

import "fmt"

const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

type Storage struct {
	Backend     string `env:"SNAPSHOT_BACKEND" envDefault:"file" json:"backend"`
	HistoryPath string `env:"HISTORY_PATH" envDefault:"data/history.json" json:"historyPath"`
	Redis       Redis  `json:"redis"`
}

type Redis struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379" json:"addr"`
	Username string `env:"REDIS_USERNAME" json:"username"`
	Password string `env:"REDIS_PASSWORD" json:"password"`
	DB       int    `env:"REDIS_DB" envDefault:"0" json:"db"`
	Key      string `env:"REDIS_KEY" envDefault:"gifts_buyer:history" json:"key"`
}

func (s Storage) validate() error {
	switch s.Backend {
	case BackendFile:
		if s.HistoryPath == "" {
			return fmt.Errorf("Storage > HISTORY_PATH: required for %q backend", BackendFile)
		}
	case BackendRedis:
		if s.Redis.Addr == "" || s.Redis.Key == "" {
			return fmt.Errorf("Storage > REDIS_ADDR, REDIS_KEY: required for %q backend", BackendRedis)
		}
	default:
		return fmt.Errorf("Storage > SNAPSHOT_BACKEND: unknown backend %q", s.Backend)
	}

	return nil
}
