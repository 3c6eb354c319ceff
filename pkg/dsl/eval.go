// Package dsl 提供基于 CEL (Common Expression Language) 的规则表达式，用于运营侧的附加过滤规则。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/unlox/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("service", cel.MapType(cel.StringType, cel.DynType)),
			cel.Variable("pref", cel.MapType(cel.StringType, cel.DynType)),
			cel.Variable("params", cel.MapType(cel.StringType, cel.DynType)),
		)
	})
	return celEnv, celEnvErr
}

// Program 是编译好的规则表达式，可被并发请求复用。
//
// 可用变量：
//   - service：service_id, service_name, description, business_type, price_tier,
//     price_ordinal, location, language_support, is_remote
//   - pref：business_type, price_tier, price_ordinal, languages, location, description
//   - params：请求级参数
//
// 示例：
//   - `service.location != "mumbai"`
//   - `service.price_ordinal <= pref.price_ordinal && !service.is_remote`
//   - `"hindi" in pref.languages`
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译表达式；表达式必须返回 bool。
func Compile(expr string) (*Program, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}
	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("expression must return bool, got %s", ast.OutputType())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// String 返回原始表达式。
func (p *Program) String() string { return p.expr }

// Evaluate 对一条服务执行表达式。
func (p *Program) Evaluate(svc *core.ServiceRecord, rctx *core.RecommendContext) (bool, error) {
	var params map[string]any
	if rctx != nil {
		params = rctx.Params
	}
	if params == nil {
		params = map[string]any{}
	}
	out, _, err := p.prg.Eval(map[string]any{
		"service": ServiceVars(svc),
		"pref":    PreferenceVars(rctx.Pref()),
		"params":  params,
	})
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// ServiceVars 把服务转换为表达式变量。
func ServiceVars(svc *core.ServiceRecord) map[string]any {
	return map[string]any{
		"service_id":       svc.ServiceID,
		"service_name":     svc.Name,
		"description":      svc.Description,
		"business_type":    svc.BusinessType,
		"price_tier":       string(svc.PriceTier),
		"price_ordinal":    int64(core.ParsePriceTier(string(svc.PriceTier)).Ordinal()),
		"location":         svc.Location,
		"language_support": svc.Language,
		"is_remote":        svc.IsRemote(),
	}
}

// PreferenceVars 把用户偏好转换为表达式变量，字符串统一小写。
func PreferenceVars(pref *core.UserPreference) map[string]any {
	langs := make([]string, 0, len(pref.Languages))
	for l := range pref.LanguageSet() {
		langs = append(langs, l)
	}
	return map[string]any{
		"business_type": pref.NormalizedBusinessType(),
		"price_tier":    string(pref.BudgetTier()),
		"price_ordinal": int64(pref.BudgetTier().Ordinal()),
		"languages":     langs,
		"location":      pref.NormalizedLocation(),
		"description":   pref.Description,
	}
}
