package config

import "github.com/spf13/viper"

type Config struct {
	ServerPort      string `mapstructure:"SERVER_PORT"`
	StoreBackend    string `mapstructure:"STORE_BACKEND"`
	BadgerPath      string `mapstructure:"BADGER_PATH"`
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	WebDir          string `mapstructure:"WEB_DIR"`
	TileURL         string `mapstructure:"TILE_URL"`
	TileAttribution string `mapstructure:"TILE_ATTRIBUTION"`
	MapZoom         int    `mapstructure:"MAP_ZOOM"`
	FocusZoom       int    `mapstructure:"FOCUS_ZOOM"`
}

func Load() Config {
	viper.AutomaticEnv()
	viper.SetDefault("SERVER_PORT", ":8080")
	viper.SetDefault("STORE_BACKEND", "badger")
	viper.SetDefault("BADGER_PATH", "./data/workouts")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("WEB_DIR", "./web")
	viper.SetDefault("TILE_URL", "https://tile.openstreetmap.org/{z}/{x}/{y}.png")
	viper.SetDefault("TILE_ATTRIBUTION", `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`)
	viper.SetDefault("MAP_ZOOM", 13)
	viper.SetDefault("FOCUS_ZOOM", 15)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
