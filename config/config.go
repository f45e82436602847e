package config

import (
    "errors"
    "strings"

    "github.com/spf13/viper"
)

type Config struct {
    Server struct {
        Port int    `mapstructure:"port"`
        Mode string `mapstructure:"mode"`
    } `mapstructure:"server"`
    Database struct {
        Driver string `mapstructure:"driver"`
        DSN    string `mapstructure:"dsn"`
    } `mapstructure:"database"`
    Redis struct {
        Addr       string `mapstructure:"addr"`
        Password   string `mapstructure:"password"`
        DB         int    `mapstructure:"db"`
        TTLSeconds int    `mapstructure:"ttl_seconds"`
    } `mapstructure:"redis"`
    Log struct {
        Level string `mapstructure:"level"`
    } `mapstructure:"log"`
    Sentry struct {
        DSN string `mapstructure:"dsn"`
    } `mapstructure:"sentry"`
    Trace struct {
        Enabled  bool   `mapstructure:"enabled"`
        Endpoint string `mapstructure:"endpoint"`
    } `mapstructure:"trace"`
}

// Load 读取 config.yaml（当前目录或 ./config），环境变量 GM_* 覆盖；
// 没有配置文件时全用默认值
func Load() (*Config, error) {
    v := viper.New()
    v.SetConfigName("config")
    v.SetConfigType("yaml")
    v.AddConfigPath(".")
    v.AddConfigPath("./config")

    v.SetEnvPrefix("GM")
    v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
    v.AutomaticEnv()

    v.SetDefault("server.port", 8080)
    v.SetDefault("server.mode", "release")
    v.SetDefault("database.driver", "sqlite")
    v.SetDefault("database.dsn", "group_messaging.db")
    v.SetDefault("redis.ttl_seconds", 30)
    v.SetDefault("log.level", "info")
    v.SetDefault("trace.endpoint", "localhost:4318")

    if err := v.ReadInConfig(); err != nil {
        var notFound viper.ConfigFileNotFoundError
        if !errors.As(err, &notFound) {
            return nil, err
        }
    }

    var cfg Config
    if err := v.Unmarshal(&cfg); err != nil {
        return nil, err
    }
    return &cfg, nil
}
