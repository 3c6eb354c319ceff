package filter

import (
	"context"

	"github.com/rushteam/unlox/core"
	"github.com/rushteam/unlox/pkg/dsl"
)

// ExprFilter 用 CEL 表达式描述运营规则：表达式为 true 的服务保留，false 的剔除。
//
//	f, err := filter.NewExprFilter(`service.location != "mumbai"`)
type ExprFilter struct {
	program *dsl.Program
}

// NewExprFilter 编译规则表达式。
func NewExprFilter(expr string) (*ExprFilter, error) {
	p, err := dsl.Compile(expr)
	if err != nil {
		return nil, core.WrapDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput, "invalid filter rule", err)
	}
	return &ExprFilter{program: p}, nil
}

func (f *ExprFilter) Name() string { return "filter.expr" }

// Expr 返回原始表达式。
func (f *ExprFilter) Expr() string { return f.program.String() }

func (f *ExprFilter) ShouldFilter(_ context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error) {
	keep, err := f.program.Evaluate(item.Service, rctx)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
