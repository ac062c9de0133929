package config

import (
	"strings"
	"time"

	"github.com/Reyy01/Connectly/internal/config/hook"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Storage struct {
		PostgresDSN string
	}

	Feed struct {
		PageSize      int
		SweepInterval time.Duration
	}

	Logging struct {
		Level zapcore.Level
	}

	Api struct {
		Port uint16
	}
}

func Read() (*Config, error) {
	v := viper.New()
	configureEnv(v)
	configureLocation(v)
	configureDefaults(v)
	return readUnmarshalConfig(v)
}

func configureEnv(v *viper.Viper) {
	v.AutomaticEnv()
	v.SetEnvPrefix("conf")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func configureLocation(v *viper.Viper) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
}

func configureDefaults(v *viper.Viper) {
	v.SetDefault("feed.pagesize", 10)
	v.SetDefault("feed.sweepinterval", "10m")
	v.SetDefault("api.port", 8080)
}

func readUnmarshalConfig(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	c := &Config{}
	if err := v.Unmarshal(c, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		hook.Level(), mapstructure.StringToTimeDurationHookFunc(),
	))); err != nil {
		return nil, err
	}
	return c, nil
}
