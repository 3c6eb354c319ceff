package core

import "errors"

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - 产物错误：MISSING_ARTIFACT, SCHEMA_MISMATCH（启动期致命）
//   - 请求错误：INVALID_INPUT（用户偏好结构不合法）
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "MISSING_ARTIFACT"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "artifact", "engine"）
	Err     error  // 底层错误（可选）
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap 返回底层错误，便于 errors.Is / errors.As 穿透。
func (e *DomainError) Unwrap() error {
	return e.Err
}

// IsDomainError 检查错误链中是否包含 DomainError
func IsDomainError(err error) bool {
	return GetDomainError(err) != nil
}

// GetDomainError 获取错误链中的 DomainError，如果不存在则返回 nil
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// WrapDomainError 创建携带底层错误的领域错误
func WrapDomainError(module, code, message string, err error) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound        = "NOT_FOUND"        // 资源不存在
	ErrorCodeNotSupported    = "NOT_SUPPORTED"    // 操作不支持
	ErrorCodeUnavailable     = "UNAVAILABLE"      // 服务不可用
	ErrorCodeInvalidInput    = "INVALID_INPUT"    // 输入无效（MalformedUserRecord）
	ErrorCodeInternalError   = "INTERNAL_ERROR"   // 内部错误
	ErrorCodeMissingArtifact = "MISSING_ARTIFACT" // 启动产物缺失（编码器/特征矩阵/目录）
	ErrorCodeSchemaMismatch  = "SCHEMA_MISMATCH"  // 特征矩阵与编码器契约不一致
)

// 模块名称常量
const (
	ModuleStore    = "store"    // 存储模块
	ModuleFeature  = "feature"  // 特征模块
	ModuleArtifact = "artifact" // 离线产物模块
	ModuleEngine   = "engine"   // 推荐编排模块
	ModuleInput    = "input"    // 用户输入解析
)

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool {
	return hasCode(err, ErrorCodeNotFound)
}

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool {
	return hasCode(err, ErrorCodeNotSupported)
}

// IsInvalidInput 检查错误是否为 INVALID_INPUT（用户偏好结构不合法）
func IsInvalidInput(err error) bool {
	return hasCode(err, ErrorCodeInvalidInput)
}

// IsMissingArtifact 检查错误是否为 MISSING_ARTIFACT
func IsMissingArtifact(err error) bool {
	return hasCode(err, ErrorCodeMissingArtifact)
}

// IsSchemaMismatch 检查错误是否为 SCHEMA_MISMATCH
func IsSchemaMismatch(err error) bool {
	return hasCode(err, ErrorCodeSchemaMismatch)
}
