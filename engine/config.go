package engine

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/rushteam/unlox/artifact"
	"github.com/rushteam/unlox/core"
	"github.com/rushteam/unlox/filter"
	"github.com/rushteam/unlox/pipeline"
	"github.com/rushteam/unlox/rank"
	"github.com/rushteam/unlox/store"
)

// 产物来源
const (
	SourceCSV   = "csv"   // 启动时直接从目录 CSV 拟合
	SourceFile  = "file"  // 从 FileStore 目录加载离线产物
	SourceRedis = "redis" // 从 Redis 加载离线产物
)

// Config 是引擎的 YAML 配置。
//
//	strategy: cosine
//	top_k: 5
//	min_score: 0.1
//	rule: 'service.location != "mumbai"'
//	artifacts:
//	  source: file
//	  dir: ./artifacts
type Config struct {
	Strategy  string                `yaml:"strategy"`
	TopK      int                   `yaml:"top_k"`
	MinScore  *float64              `yaml:"min_score"`
	Rule      string                `yaml:"rule"`
	Artifacts ArtifactConfig        `yaml:"artifacts"`
	Pipeline  []pipeline.NodeConfig `yaml:"pipeline"`
}

// ArtifactConfig 描述离线产物的位置。
type ArtifactConfig struct {
	Source  string      `yaml:"source"`
	Catalog string      `yaml:"catalog"`
	Dir     string      `yaml:"dir"`
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig 是 Redis 产物存储的连接参数。
type RedisConfig struct {
	Addr   string `yaml:"addr"`
	DB     int    `yaml:"db"`
	Prefix string `yaml:"prefix"`
}

// DefaultConfig 返回默认配置：余弦策略，从 ./artifacts 目录加载。
func DefaultConfig() *Config {
	return &Config{
		Strategy: rank.StrategyCosine,
		TopK:     core.DefaultTopK,
		Artifacts: ArtifactConfig{
			Source: SourceFile,
			Dir:    "artifacts",
			Redis:  RedisConfig{Addr: "localhost:6379", Prefix: "unlox:"},
		},
	}
}

// LoadConfig 读取 YAML 配置，未写的字段保留默认值。
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig 解析 YAML 配置。
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Options 把配置转换为引擎选项。
func (c *Config) Options() ([]Option, error) {
	strategy, err := rank.ParseStrategy(c.Strategy)
	if err != nil {
		return nil, err
	}
	opts := []Option{WithStrategy(strategy), WithTopK(c.TopK)}
	if c.MinScore != nil {
		opts = append(opts, WithMinScore(*c.MinScore))
	}
	if strings.TrimSpace(c.Rule) != "" {
		rule, err := filter.NewExprFilter(c.Rule)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithRule(rule))
	}
	if len(c.Pipeline) > 0 {
		opts = append(opts, WithPipeline(c.Pipeline))
	}
	return opts, nil
}

// OpenStore 打开配置的产物存储；csv 来源没有存储。
func (c *ArtifactConfig) OpenStore() (core.Store, error) {
	switch c.Source {
	case SourceFile:
		return store.NewFileStore(c.Dir)
	case SourceRedis:
		return store.NewRedisStore(c.Redis.Addr, c.Redis.DB, c.Redis.Prefix)
	default:
		return nil, core.NewDomainError(core.ModuleArtifact, core.ErrorCodeNotSupported, "artifact source has no store: "+c.Source)
	}
}

// LoadBundle 按配置加载产物。
func (c *ArtifactConfig) LoadBundle(ctx context.Context, logger *log.Logger) (*artifact.Bundle, error) {
	if c.Source == SourceCSV {
		catalog, err := artifact.ReadCatalogCSV(c.Catalog)
		if err != nil {
			return nil, err
		}
		return artifact.Build(catalog), nil
	}
	s, err := c.OpenStore()
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return artifact.Load(ctx, s, logger)
}

// NewFromConfig 加载产物并构建引擎。
func NewFromConfig(ctx context.Context, cfg *Config, logger *log.Logger) (*Engine, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	bundle, err := cfg.Artifacts.LoadBundle(ctx, logger)
	if err != nil {
		return nil, err
	}
	return New(bundle, append(opts, WithLogger(logger))...)
}
