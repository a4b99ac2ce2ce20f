package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix 是环境变量前缀，例如 MEDREPORT_UPSTREAM_BASE_URL。
const EnvPrefix = "MEDREPORT"

// Config 是服务与命令行共用的配置。
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Report   ReportConfig   `mapstructure:"report"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// UpstreamConfig 配置 AI 叙述服务。BaseURL 为空时不调用上游，直接使用兜底叙述。
type UpstreamConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Attempts   uint          `mapstructure:"attempts"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
	RPS        float64       `mapstructure:"rps"`
	Burst      int           `mapstructure:"burst"`
}

type ReportConfig struct {
	Theme  string `mapstructure:"theme"`
	Title  string `mapstructure:"title"`
	Author string `mapstructure:"author"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Default 返回默认配置。
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080", ShutdownTimeout: 10 * time.Second},
		Upstream: UpstreamConfig{
			Timeout:    30 * time.Second,
			Attempts:   3,
			RetryDelay: 500 * time.Millisecond,
			RPS:        5,
			Burst:      1,
		},
		Report: ReportConfig{Title: "Comprehensive Medical Narrative", Author: "medreport"},
		Log:    LogConfig{Level: "info"},
	}
}

// Load 依次叠加默认值、配置文件与 MEDREPORT_* 环境变量。
// path 为空时在当前目录查找 medreport.yaml，找不到不算错误；显式指定的文件必须存在。
func Load(path string) (*Config, error) {
	v := viper.New()
	d := Default()
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("upstream.base_url", d.Upstream.BaseURL)
	v.SetDefault("upstream.timeout", d.Upstream.Timeout)
	v.SetDefault("upstream.attempts", d.Upstream.Attempts)
	v.SetDefault("upstream.retry_delay", d.Upstream.RetryDelay)
	v.SetDefault("upstream.rps", d.Upstream.RPS)
	v.SetDefault("upstream.burst", d.Upstream.Burst)
	v.SetDefault("report.theme", d.Report.Theme)
	v.SetDefault("report.title", d.Report.Title)
	v.SetDefault("report.author", d.Report.Author)
	v.SetDefault("log.level", d.Log.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("medreport")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 检查配置取值。
func (c *Config) Validate() error {
	if c.Upstream.Attempts == 0 {
		return fmt.Errorf("upstream.attempts 必须大于 0")
	}
	if c.Upstream.RPS < 0 {
		return fmt.Errorf("upstream.rps 不能为负数")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr 不能为空")
	}
	return nil
}
