package core

import "context"

// Store 是存储的领域接口，定义在 core，由 store 包实现（memory / redis）。
//
// 推荐核心本身不读写存储；Store 只服务于边界层的目录快照（loader.Repository）。
type Store interface {
	// Name 返回存储后端名称（用于日志）
	Name() string

	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	// Close 关闭连接/释放资源
	Close() error
}

// HashStore 在 Store 之上增加 Hash 操作，一个目录对应一个 Hash：field 为实体 id。
type HashStore interface {
	Store

	HSet(ctx context.Context, key string, fields map[string][]byte) error
	HGetAll(ctx context.Context, key string) (map[string][]byte, error)
}

// Store 错误定义（使用统一的 DomainError）
var (
	// ErrStoreNotFound 表示 key 不存在
	ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: key not found")

	// ErrStoreNotSupported 表示操作不支持
	ErrStoreNotSupported = NewDomainError(ModuleStore, ErrorCodeNotSupported, "store: operation not supported")
)

// IsStoreNotFound 检查错误是否为 key 不存在
func IsStoreNotFound(err error) bool {
	domainErr := GetDomainError(err)
	return domainErr != nil && domainErr.Module == ModuleStore && domainErr.Code == ErrorCodeNotFound
}
