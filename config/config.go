package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	Api            Api         `mapstructure:"api"`
	Log            Log         `mapstructure:"log"`
	ChainSupported []Chain     `mapstructure:"chain_supported"`
	Memory         Memory      `mapstructure:"memory"`
	SbtContract    SbtContract `mapstructure:"sbt_contract"`
	RateLimit      RateLimit   `mapstructure:"rate_limit"`
	DB             DB          `mapstructure:"db"`
	Allowlist      []Snapshot  `mapstructure:"allowlist"`
}

type Api struct {
	Port string `mapstructure:"port"`
}

type Log struct {
	Level string `mapstructure:"level"`
}

type Chain struct {
	ChainID int    `mapstructure:"chain_id"`
	Name    string `mapstructure:"name"`
}

// Memory Protocol身份聚合服务配置
type Memory struct {
	BaseURL  string        `mapstructure:"base_url"`
	ApiKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type SbtContract struct {
	ContractAddress string `mapstructure:"contract_address"`
	RPCEndpoint     string `mapstructure:"rpc_endpoint"`
	// 可选的外部ABI文件，不配置时使用内置ABI
	AbiPath string `mapstructure:"abi_path"`
}

type RateLimit struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	Window      time.Duration `mapstructure:"window"`
}

// DB 领取记录库，DSN为空时不启用
type DB struct {
	DSN string `mapstructure:"dsn"`
}

// Snapshot 某个徽章的白名单快照，默认部署不配置（开放领取）
type Snapshot struct {
	TokenID   int64    `mapstructure:"token_id"`
	Addresses []string `mapstructure:"addresses"`
}

func UnmarshalConfig(configFilePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configFilePath)
	v.SetConfigType("toml")

	v.SetDefault("api.port", ":9100")
	v.SetDefault("log.level", "info")
	v.SetDefault("memory.timeout", 10*time.Second)
	v.SetDefault("memory.cache_ttl", 5*time.Minute)
	v.SetDefault("rate_limit.max_attempts", 5)
	v.SetDefault("rate_limit.window", time.Hour)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "failed on read config file")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "failed on unmarshal config")
	}

	return &c, nil
}
