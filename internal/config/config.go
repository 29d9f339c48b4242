package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Game     GameConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
	// Transport-level per-IP rate limit for the public play endpoint,
	// requests per second with a burst allowance.
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int // seconds
}

// GameConfig holds play-fairness and draw configuration
type GameConfig struct {
	MaxPlaysPerEmail   int
	MaxPlaysPerPhone   int
	IPVelocityLimit    int
	IPVelocityWindow   int // minutes
	RewardValidityDays int
	CodeRetryLimit     int
	PlanLimits         map[string]int
}

// PlanLimit returns the monthly non-test play cap for a plan. Unknown plans
// fall back to the free tier; a cap <= 0 means unbounded.
func (g GameConfig) PlanLimit(plan string) int {
	if limit, ok := g.PlanLimits[plan]; ok {
		return limit
	}
	return g.PlanLimits["free"]
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("Server.RateLimitPerSecond", 5.0)
	viper.SetDefault("Server.RateLimitBurst", 10)
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "wheelplay")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("LogLevel", "info")
	viper.SetDefault("Game.MaxPlaysPerEmail", 2)
	viper.SetDefault("Game.MaxPlaysPerPhone", 2)
	viper.SetDefault("Game.IPVelocityLimit", 10)
	viper.SetDefault("Game.IPVelocityWindow", 60)
	viper.SetDefault("Game.RewardValidityDays", 30)
	viper.SetDefault("Game.CodeRetryLimit", 5)
	viper.SetDefault("Game.PlanLimits", map[string]int{
		"free":     500,
		"pro":      10000,
		"business": 0, // unbounded
	})
}
