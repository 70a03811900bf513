package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `yaml:"app" mapstructure:"app"`
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	Redis    RedisConfig    `yaml:"redis" mapstructure:"redis"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Mail     MailConfig     `yaml:"mail" mapstructure:"mail"`
	Sources  SourcesConfig  `yaml:"sources" mapstructure:"sources"`
}

type AppConfig struct {
	Environment string `yaml:"environment" mapstructure:"environment"`
	LogLevel    string `yaml:"log_level" mapstructure:"log_level"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     string `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"db_name" mapstructure:"db_name"`
	SSLMode  string `yaml:"ssl_mode" mapstructure:"ssl_mode"`
	MaxConns int    `yaml:"max_conns" mapstructure:"max_conns"`
}

type RedisConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     string `yaml:"port" mapstructure:"port"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
}

type ServerConfig struct {
	Host           string   `yaml:"host" mapstructure:"host"`
	Port           int      `yaml:"port" mapstructure:"port"`
	JWTSecret      string   `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	RateLimit      int      `yaml:"rate_limit" mapstructure:"rate_limit"` // requests per minute
}

type MailConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
	From     string `yaml:"from" mapstructure:"from"`
}

type SourcesConfig struct {
	CodeforcesURL  string `yaml:"codeforces_url" mapstructure:"codeforces_url"`
	CodechefURL    string `yaml:"codechef_url" mapstructure:"codechef_url"`
	CodechefMirror string `yaml:"codechef_mirror" mapstructure:"codechef_mirror"`
	LeetcodeURL    string `yaml:"leetcode_url" mapstructure:"leetcode_url"`
	LeetcodeAPIKey string `yaml:"leetcode_api_key" mapstructure:"leetcode_api_key"`
	LookbackDays   int    `yaml:"lookback_days" mapstructure:"lookback_days"`
	HorizonDays    int    `yaml:"horizon_days" mapstructure:"horizon_days"`
}

func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.Database.User = getEnv("DB_USER", config.Database.User)
	config.Database.Password = getEnv("DB_PASSWORD", config.Database.Password)
	config.Database.DBName = getEnv("DB_NAME", config.Database.DBName)
	config.Database.Port = getEnv("DB_PORT", config.Database.Port)
	config.Redis.Password = getEnv("REDIS_PASSWORD", config.Redis.Password)
	config.Server.JWTSecret = getEnv("JWT_SECRET", config.Server.JWTSecret)
	config.Mail.Username = getEnv("MAIL_USERNAME", config.Mail.Username)
	config.Mail.Password = getEnv("MAIL_PASSWORD", config.Mail.Password)
	config.Sources.LeetcodeAPIKey = getEnv("LEETCODE_API_KEY", config.Sources.LeetcodeAPIKey)

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Sources.CodeforcesURL == "" {
		c.Sources.CodeforcesURL = "https://codeforces.com/api/contest.list"
	}
	if c.Sources.CodechefURL == "" {
		c.Sources.CodechefURL = "https://www.codechef.com/api/list/contests/all"
	}
	if c.Sources.CodechefMirror == "" {
		c.Sources.CodechefMirror = "https://kontests.net/api/v1/code_chef"
	}
	if c.Sources.LeetcodeURL == "" {
		c.Sources.LeetcodeURL = "https://leetcode.com/graphql"
	}
	if c.Sources.LookbackDays == 0 {
		c.Sources.LookbackDays = 7
	}
	if c.Sources.HorizonDays == 0 {
		c.Sources.HorizonDays = 90
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.RateLimit == 0 {
		c.Server.RateLimit = 60
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = 25
	}
	if c.Mail.Port == 0 {
		c.Mail.Port = 587
	}
}

func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}

	if c.Database.Port == "" {
		return fmt.Errorf("database.port is required")
	}

	if c.Database.DBName == "" {
		return fmt.Errorf("database.db_name is required")
	}

	if c.Database.Password == "" {
		return fmt.Errorf("database.password is required")
	}

	if c.Server.JWTSecret == "" {
		return fmt.Errorf("server.jwt_secret is required")
	}

	// Mail credentials are only enforced in production; in development the
	// scheduler logs sends it cannot perform instead of failing startup.
	if c.App.Environment == "production" {
		if c.Mail.Host == "" {
			return fmt.Errorf("mail.host is required for production")
		}

		if c.Mail.From == "" {
			return fmt.Errorf("mail.from is required for production")
		}
	}

	return nil
}

func (c *Config) SafeString() string {
	return fmt.Sprintf(`Config:
		Environment: %s
		Log Level: %s

		Database:
			Host: %s:%s
			User: %s
			Database: %s
			SSL Mode: %s
			Max Connections: %d

		Redis:
			Host: %s:%s
			Database: %d

		Server:
			Listen: %s:%d
			JWT Secret: %s
			Rate Limit: %d req/min

		Mail:
			Host: %s:%d
			From: %s
			Password: %s

		Sources:
			Codeforces: %s
			CodeChef: %s (mirror: %s)
			LeetCode: %s
			LeetCode API Key: %s
			Lookback: %d days
			Horizon: %d days
		`,
		c.App.Environment,
		c.App.LogLevel,
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.DBName,
		c.Database.SSLMode,
		c.Database.MaxConns,
		c.Redis.Host,
		c.Redis.Port,
		c.Redis.DB,
		c.Server.Host,
		c.Server.Port,
		maskSecret(c.Server.JWTSecret),
		c.Server.RateLimit,
		c.Mail.Host,
		c.Mail.Port,
		c.Mail.From,
		maskSecret(c.Mail.Password),
		c.Sources.CodeforcesURL,
		c.Sources.CodechefURL,
		c.Sources.CodechefMirror,
		c.Sources.LeetcodeURL,
		maskSecret(c.Sources.LeetcodeAPIKey),
		c.Sources.LookbackDays,
		c.Sources.HorizonDays,
	)
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	return value
}

func maskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}

	if len(s) <= 8 {
		return strings.Repeat("*", len(s))
	}

	return s[:4] + "..." + s[len(s)-4:]
}
