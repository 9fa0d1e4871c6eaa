package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN string `mapstructure:"dsn"`
}

type Storage struct {
	Bucket        string `mapstructure:"bucket"`
	Region        string `mapstructure:"region"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

type Logo struct {
	Token string `mapstructure:"token"`
}

type Recommend struct {
	Alpha float64 `mapstructure:"alpha"`
	Beta  float64 `mapstructure:"beta"`
	Limit int     `mapstructure:"limit"`
}

type Jobs struct {
	Workers    int `mapstructure:"workers"`
	Buffer     int `mapstructure:"buffer"`
	ArtWorkers int `mapstructure:"art_workers"`
}

type Config struct {
	Server    Server    `mapstructure:"server"`
	Database  Database  `mapstructure:"database"`
	Storage   Storage   `mapstructure:"storage"`
	Logo      Logo      `mapstructure:"logo"`
	Recommend Recommend `mapstructure:"recommend"`
	Jobs      Jobs      `mapstructure:"jobs"`
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8000")
	v.SetDefault("recommend.alpha", 0.0)
	v.SetDefault("recommend.beta", 1.0)
	v.SetDefault("recommend.limit", 3)
	v.SetDefault("jobs.workers", 2)
	v.SetDefault("jobs.buffer", 64)
	v.SetDefault("jobs.art_workers", 3)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
