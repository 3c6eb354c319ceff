// Package unlox 是一个面向小型服务目录的商业服务推荐器。
//
// 设计要点：
//   - Pipeline-first: 推荐逻辑通过 Node 串联（Filter → Rank → ReRank → PostProcess）
//   - Artifacts-first: 编码器与目录特征矩阵离线拟合，在线只编码用户偏好
//   - Labels-first: labels 全链路透传，便于观测每个服务在哪一步被剔除
//
// 入口见 engine.New 与 cmd/unlox。
package unlox

import (
	"github.com/rushteam/unlox/core"
	"github.com/rushteam/unlox/pipeline"
)

// 轻量 facade：便于直接 import "unlox" 使用核心抽象。
type (
	Pipeline       = pipeline.Pipeline
	Node           = pipeline.Node
	Kind           = pipeline.Kind
	ServiceRecord  = core.ServiceRecord
	UserPreference = core.UserPreference
)

const (
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
