package core

import (
	"context"
	"errors"
)

// Store 是离线产物存储的领域接口。
//
// 定义在领域层（core），由基础设施层（store）实现，领域层不依赖具体后端。
// 目录、编码器与特征矩阵以 JSON blob 形式按版本化 key 存取。
//
// 实现：
//   - store.MemoryStore：测试与单进程场景
//   - store.FileStore：本地目录，每个 key 一个文件
//   - store.RedisStore：多实例共享部署
type Store interface {
	// Name 返回存储后端名称（用于日志）
	Name() string

	// Get 读取单个 key 的值；key 不存在时返回 ErrStoreNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set 写入单个 key-value，ttl 单位为秒，缺省为永不过期
	Set(ctx context.Context, key string, value []byte, ttl ...int) error

	// Delete 删除单个 key
	Delete(ctx context.Context, key string) error

	// BatchGet 批量读取，不存在的 key 不出现在结果中
	BatchGet(ctx context.Context, keys []string) (map[string][]byte, error)

	// BatchSet 批量写入
	BatchSet(ctx context.Context, kvs map[string][]byte, ttl ...int) error

	// Close 关闭连接/释放资源
	Close() error
}

// Store 错误定义（使用统一的 DomainError）
var (
	// ErrStoreNotFound 表示 key 不存在
	ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: key not found")

	// ErrStoreNotSupported 表示操作不支持
	ErrStoreNotSupported = NewDomainError(ModuleStore, ErrorCodeNotSupported, "store: operation not supported")
)

// IsStoreNotFound 检查错误链中是否有存储层的 key 不存在（可被其他领域错误包裹）
func IsStoreNotFound(err error) bool {
	if errors.Is(err, ErrStoreNotFound) {
		return true
	}
	domainErr := GetDomainError(err)
	return domainErr != nil && domainErr.Module == ModuleStore && domainErr.Code == ErrorCodeNotFound
}
