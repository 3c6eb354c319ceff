// Package artifact 管理离线产物：服务目录、拟合好的编码器与目录特征矩阵。
//
// 离线任务（Build + Save）与在线服务（Load）通过 core.Store 交接，
// 三个产物以 JSON 存放在带版本号的 key 下。
package artifact

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/unlox/core"
	"github.com/rushteam/unlox/feature"
)

// 产物 key。
var (
	KeyCatalog  = "unlox/" + feature.SchemaVersion + "/catalog"
	KeyEncoders = "unlox/" + feature.SchemaVersion + "/encoders"
	KeyMatrix   = "unlox/" + feature.SchemaVersion + "/matrix"
)

// Bundle 是在线推荐所需的全部产物。
type Bundle struct {
	Catalog  []core.ServiceRecord
	Encoders *feature.Encoders
	Matrix   *feature.Matrix
}

// Build 在目录上拟合编码器并生成特征矩阵。
func Build(catalog []core.ServiceRecord) *Bundle {
	enc, m := feature.Fit(catalog)
	return &Bundle{Catalog: catalog, Encoders: enc, Matrix: m}
}

// Validate 检查产物齐全且彼此一致。
func (b *Bundle) Validate() error {
	if b == nil {
		return core.NewDomainError(core.ModuleArtifact, core.ErrorCodeMissingArtifact, "artifact bundle is missing")
	}
	if b.Catalog == nil {
		return core.NewDomainError(core.ModuleArtifact, core.ErrorCodeMissingArtifact, "catalog artifact is missing")
	}
	if b.Encoders == nil {
		return core.NewDomainError(core.ModuleArtifact, core.ErrorCodeMissingArtifact, "encoders artifact is missing")
	}
	if err := b.Encoders.Validate(); err != nil {
		return err
	}
	return b.Matrix.Validate(b.Encoders.Schema(), len(b.Catalog))
}

// Save 把产物写入 store。
func Save(ctx context.Context, s core.Store, b *Bundle) error {
	if err := b.Validate(); err != nil {
		return err
	}
	kvs := make(map[string][]byte, 3)
	for key, v := range map[string]any{
		KeyCatalog:  b.Catalog,
		KeyEncoders: b.Encoders,
		KeyMatrix:   b.Matrix,
	} {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		kvs[key] = data
	}
	if err := s.BatchSet(ctx, kvs); err != nil {
		return fmt.Errorf("save artifacts to %s: %w", s.Name(), err)
	}
	return nil
}

// Load 并发读取三个产物并校验一致性。
// 任一 key 缺失返回 MISSING_ARTIFACT，布局不一致返回 SCHEMA_MISMATCH。
func Load(ctx context.Context, s core.Store, logger *log.Logger) (*Bundle, error) {
	b := &Bundle{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return fetch(gctx, s, KeyCatalog, &b.Catalog) })
	g.Go(func() error {
		b.Encoders = &feature.Encoders{}
		return fetch(gctx, s, KeyEncoders, b.Encoders)
	})
	g.Go(func() error {
		b.Matrix = &feature.Matrix{}
		return fetch(gctx, s, KeyMatrix, b.Matrix)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Info("artifacts loaded",
			"store", s.Name(),
			"services", len(b.Catalog),
			"width", b.Encoders.Width(),
			"vocabulary", b.Encoders.Text.Width())
	}
	return b, nil
}

func fetch(ctx context.Context, s core.Store, key string, dst any) error {
	data, err := s.Get(ctx, key)
	if core.IsStoreNotFound(err) {
		return core.WrapDomainError(core.ModuleArtifact, core.ErrorCodeMissingArtifact, "missing artifact "+key, err)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return core.WrapDomainError(core.ModuleArtifact, core.ErrorCodeSchemaMismatch, "corrupt artifact "+key, err)
	}
	return nil
}
