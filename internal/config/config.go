package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Redis     RedisConfig     `yaml:"redis"`
	DashScope DashScopeConfig `yaml:"dashscope"`
	Model     ModelConfig     `yaml:"model"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `yaml:"port"`
	Name string `yaml:"name"`
}

// RedisConfig Redis 配置（Enabled=false 时使用内存历史存储）
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// DashScopeConfig 通义千问配置（APIKey 为空时仅使用本地规则库）
type DashScopeConfig struct {
	APIKey         string `yaml:"apiKey"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// ModelConfig AHD 风险模型配置
type ModelConfig struct {
	ManifestPath string `yaml:"manifestPath"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// LoadConfig 加载配置文件（.env 与环境变量可覆盖敏感项）
func LoadConfig(path string) (*Config, error) {
	// .env 不存在时忽略错误
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	if key := os.Getenv("DASHSCOPE_API_KEY"); key != "" {
		cfg.DashScope.APIKey = key
	}
	if pwd := os.Getenv("REDIS_PASSWORD"); pwd != "" {
		cfg.Redis.Password = pwd
	}

	if cfg.DashScope.TimeoutSeconds <= 0 {
		cfg.DashScope.TimeoutSeconds = 15
	}

	return &cfg, nil
}
