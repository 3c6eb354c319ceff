package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/rushteam/unlox/artifact"
	"github.com/rushteam/unlox/core"
	"github.com/rushteam/unlox/engine"
)

// SourceFlags 选择产物来源；指定 --config 时以配置文件为准，其余 flag 覆盖其中的同名项。
type SourceFlags struct {
	Config    string `help:"Engine YAML config" type:"existingfile" env:"UNLOX_CONFIG"`
	Catalog   string `help:"Fit on the fly from this catalog CSV instead of loading stored artifacts" type:"existingfile"`
	Dir       string `help:"Artifact directory" env:"UNLOX_ARTIFACT_DIR"`
	RedisAddr string `help:"Load artifacts from Redis at this address" env:"UNLOX_REDIS_ADDR"`
}

func (s *SourceFlags) engineConfig() (*engine.Config, error) {
	cfg := engine.DefaultConfig()
	if s.Config != "" {
		var err error
		if cfg, err = engine.LoadConfig(s.Config); err != nil {
			return nil, err
		}
	}
	switch {
	case s.Catalog != "":
		cfg.Artifacts.Source = engine.SourceCSV
		cfg.Artifacts.Catalog = s.Catalog
	case s.RedisAddr != "":
		cfg.Artifacts.Source = engine.SourceRedis
		cfg.Artifacts.Redis.Addr = s.RedisAddr
	case s.Dir != "":
		cfg.Artifacts.Source = engine.SourceFile
		cfg.Artifacts.Dir = s.Dir
	}
	return cfg, nil
}

// PreferenceFlags 描述用户偏好。
type PreferenceFlags struct {
	BusinessType string   `help:"Target business type, e.g. E-commerce"`
	Price        string   `help:"Budget tier (low, medium, high, premium)"`
	Language     []string `help:"Preferred languages (english, hindi, regional, both)"`
	Location     string   `help:"City or 'remote'"`
	Description  string   `help:"Free-text description of what you are looking for" short:"d"`
}

func (p *PreferenceFlags) preference() *core.UserPreference {
	return &core.UserPreference{
		BusinessType: p.BusinessType,
		PriceTier:    core.PriceTier(p.Price),
		Languages:    p.Language,
		Location:     p.Location,
		Description:  p.Description,
	}
}

type FitCmd struct {
	Catalog   string `arg:"" help:"Catalog CSV" type:"existingfile"`
	Dir       string `help:"Artifact directory" default:"artifacts" env:"UNLOX_ARTIFACT_DIR"`
	RedisAddr string `help:"Store artifacts in Redis at this address instead of a directory" env:"UNLOX_REDIS_ADDR"`
	RedisDB   int    `help:"Redis database" default:"0"`
	Prefix    string `help:"Redis key prefix" default:"unlox:"`
}

func (c *FitCmd) Run(logger *log.Logger) error {
	ctx := context.Background()
	catalog, err := artifact.ReadCatalogCSV(c.Catalog)
	if err != nil {
		return err
	}
	bundle := artifact.Build(catalog)

	src := engine.ArtifactConfig{Source: engine.SourceFile, Dir: c.Dir}
	if c.RedisAddr != "" {
		src = engine.ArtifactConfig{
			Source: engine.SourceRedis,
			Redis:  engine.RedisConfig{Addr: c.RedisAddr, DB: c.RedisDB, Prefix: c.Prefix},
		}
	}
	s, err := src.OpenStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := artifact.Save(ctx, s, bundle); err != nil {
		return err
	}
	logger.Info("Artifacts saved",
		"store", s.Name(),
		"services", len(catalog),
		"width", bundle.Encoders.Width(),
		"vocabulary", bundle.Encoders.Text.Width(),
		"fingerprint", bundle.Matrix.Fingerprint[:12])
	return nil
}

type RecommendCmd struct {
	SourceFlags
	PreferenceFlags

	Strategy string `help:"Ranking strategy (cosine, knn); overrides the config"`
	TopK     int    `help:"Number of recommendations" short:"k" default:"0"`
	Relaxed  bool   `help:"Request relaxed filtering (currently applied strictly)"`
	JSON     bool   `help:"Print results as JSON"`
}

func (c *RecommendCmd) Run(logger *log.Logger) error {
	ctx := context.Background()
	cfg, err := c.engineConfig()
	if err != nil {
		return err
	}
	if c.Strategy != "" {
		cfg.Strategy = c.Strategy
	}
	e, err := engine.NewFromConfig(ctx, cfg, logger)
	if err != nil {
		return err
	}

	recs, err := e.Recommend(ctx, c.preference(), c.TopK, !c.Relaxed)
	if err != nil {
		return err
	}
	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}
	if len(recs) == 0 {
		fmt.Println("No matching services.")
		return nil
	}
	for i, r := range recs {
		fmt.Printf("%d. %s (%s) %.2f%%\n", i+1, r.Name, r.ServiceID, r.MatchScore)
		fmt.Printf("   %s | %s | %s\n", r.BusinessType, r.PriceTier, r.Location)
		fmt.Printf("   %s\n", strings.Join(r.Explanations, " "))
	}
	return nil
}

type CompareCmd struct {
	SourceFlags
	PreferenceFlags

	TopK int `help:"Number of results per strategy" short:"k" default:"5"`
}

func (c *CompareCmd) Run(logger *log.Logger) error {
	ctx := context.Background()
	cfg, err := c.engineConfig()
	if err != nil {
		return err
	}
	e, err := engine.NewFromConfig(ctx, cfg, logger)
	if err != nil {
		return err
	}

	cmp, err := e.Compare(ctx, c.preference(), c.TopK)
	if err != nil {
		return err
	}
	catalog := e.Catalog()
	fmt.Printf("%-4s %-32s %8s   %-32s %8s\n", "#", "cosine", "score", "knn", "score")
	for i := 0; i < max(len(cmp.Cosine), len(cmp.Neighbors)); i++ {
		left, ls, right, rs := "", "", "", ""
		if i < len(cmp.Cosine) {
			left = catalog[cmp.Cosine[i].Index].Name
			ls = fmt.Sprintf("%.4f", cmp.Cosine[i].Score)
		}
		if i < len(cmp.Neighbors) {
			right = catalog[cmp.Neighbors[i].Index].Name
			rs = fmt.Sprintf("%.4f", cmp.Neighbors[i].Score)
		}
		fmt.Printf("%-4d %-32s %8s   %-32s %8s\n", i+1, left, ls, right, rs)
	}
	fmt.Printf("\noverlap: %d, jaccard: %.2f\n", len(cmp.Overlap), cmp.Jaccard())
	return nil
}
