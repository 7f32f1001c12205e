package config

import (
    "strings"
    "time"

    "github.com/spf13/viper"
)

// Config 应用配置，从 config.yaml + SHOP_* 环境变量加载
type Config struct {
    Server    ServerConfig    `mapstructure:"server"`
    Database  DatabaseConfig  `mapstructure:"database"`
    Redis     RedisConfig     `mapstructure:"redis"`
    JWT       JWTConfig       `mapstructure:"jwt"`
    Sentry    SentryConfig    `mapstructure:"sentry"`
    Otel      OtelConfig      `mapstructure:"otel"`
    RateLimit RateLimitConfig `mapstructure:"ratelimit"`
    Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
    Addr string `mapstructure:"addr"`
    Mode string `mapstructure:"mode"` // debug / release
}

type DatabaseConfig struct {
    Driver string `mapstructure:"driver"` // sqlite / postgres
    DSN    string `mapstructure:"dsn"`
}

type RedisConfig struct {
    Addr     string `mapstructure:"addr"`
    Password string `mapstructure:"password"`
    DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
    Secret string        `mapstructure:"secret"`
    TTL    time.Duration `mapstructure:"ttl"`
}

type SentryConfig struct {
    DSN string `mapstructure:"dsn"`
}

type OtelConfig struct {
    Endpoint string `mapstructure:"endpoint"` // OTLP HTTP，空则不上报
}

type RateLimitConfig struct {
    RPS   float64 `mapstructure:"rps"`
    Burst int     `mapstructure:"burst"`
}

type LogConfig struct {
    Level string `mapstructure:"level"`
    JSON  bool   `mapstructure:"json"`
}

// Load 读取配置；path 为空时在工作目录查找 config.yaml
func Load(path string) (*Config, error) {
    v := viper.New()
    if path != "" {
        v.SetConfigFile(path)
    } else {
        v.SetConfigName("config")
        v.SetConfigType("yaml")
        v.AddConfigPath(".")
    }
    v.SetEnvPrefix("SHOP")
    v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
    v.AutomaticEnv()

    v.SetDefault("server.addr", ":8080")
    v.SetDefault("server.mode", "release")
    v.SetDefault("database.driver", "sqlite")
    v.SetDefault("database.dsn", "shop.db")
    v.SetDefault("redis.addr", "")
    v.SetDefault("jwt.secret", "")
    v.SetDefault("jwt.ttl", 24*time.Hour)
    v.SetDefault("ratelimit.rps", 50)
    v.SetDefault("ratelimit.burst", 100)
    v.SetDefault("log.level", "info")
    v.SetDefault("log.json", true)

    if err := v.ReadInConfig(); err != nil {
        // 配置文件缺失时走默认值 + 环境变量
        if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
            return nil, err
        }
    }
    var cfg Config
    if err := v.Unmarshal(&cfg); err != nil {
        return nil, err
    }
    return &cfg, nil
}
