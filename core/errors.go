package core

import "errors"

// DomainError 是领域层的统一错误类型。
//
// 使用场景：
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
//   - 向量计算：DIMENSION_MISMATCH
//   - 聚类训练：EMPTY_INPUT
//   - 引擎入参：INVALID_INPUT
//
// 注意：查询实体不存在、目录为空、模型未训练都属于正常契约，返回空结果而不是错误。
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "DIMENSION_MISMATCH"）
	Message string // 错误消息
	Module  string // 模块名称（如 "store", "similarity", "cluster"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is 按 Module + Code 判等，便于 errors.Is 穿透 fmt.Errorf("%w") 包装。
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Module == t.Module && e.Code == t.Code
}

// GetDomainError 获取错误链中的 DomainError，如果没有则返回 nil
func GetDomainError(err error) *DomainError {
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

// 错误代码常量
const (
	ErrorCodeNotFound          = "NOT_FOUND"
	ErrorCodeNotSupported      = "NOT_SUPPORTED"
	ErrorCodeInvalidInput      = "INVALID_INPUT"
	ErrorCodeDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorCodeEmptyInput        = "EMPTY_INPUT"
)

// 模块名称常量
const (
	ModuleStore      = "store"
	ModuleFeature    = "feature"
	ModuleSimilarity = "similarity"
	ModuleCluster    = "cluster"
	ModuleEngine     = "engine"
	ModuleLoader     = "loader"
)

var (
	// ErrDimensionMismatch 表示两个向量长度不一致
	ErrDimensionMismatch = NewDomainError(ModuleSimilarity, ErrorCodeDimensionMismatch, "similarity: vector dimensions differ")

	// ErrEmptyTrainingSet 表示训练数据为空
	ErrEmptyTrainingSet = NewDomainError(ModuleCluster, ErrorCodeEmptyInput, "cluster: empty training set")
)

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool { return hasCode(err, ErrorCodeNotFound) }

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool { return hasCode(err, ErrorCodeNotSupported) }

// IsInvalidInput 检查错误是否为 INVALID_INPUT
func IsInvalidInput(err error) bool { return hasCode(err, ErrorCodeInvalidInput) }

// IsDimensionMismatch 检查错误是否为 DIMENSION_MISMATCH
func IsDimensionMismatch(err error) bool { return hasCode(err, ErrorCodeDimensionMismatch) }
