package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/rushteam/unlox/core"
)

// FileStore 把每个 key 存为目录下的一个文件，供离线 fit 与在线服务之间交接产物。
// 不支持 TTL；写入先落临时文件再 rename，读者不会看到半个文件。
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore 创建（必要时新建目录）文件存储。
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "file store: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) Name() string { return "file" }

// Dir 返回存储目录。
func (f *FileStore) Dir() string { return f.dir }

// key 中的 '/' 等字符经 PathEscape 转义，保证一个 key 对应目录下的一个文件。
func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key))
}

func (f *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, core.ErrStoreNotFound
	}
	return data, err
}

func (f *FileStore) Set(_ context.Context, key string, value []byte, _ ...int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(key, value)
}

func (f *FileStore) write(key string, value []byte) error {
	tmp, err := os.CreateTemp(f.dir, ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.path(key))
}

func (f *FileStore) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (f *FileStore) BatchGet(ctx context.Context, keys []string) (map[string][]byte, error) {
	result := make(map[string][]byte, len(keys))
	for _, k := range keys {
		v, err := f.Get(ctx, k)
		if core.IsStoreNotFound(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", k, err)
		}
		result[k] = v
	}
	return result, nil
}

func (f *FileStore) BatchSet(_ context.Context, kvs map[string][]byte, _ ...int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, v := range kvs {
		if err := f.write(k, v); err != nil {
			return fmt.Errorf("write %s: %w", k, err)
		}
	}
	return nil
}

func (f *FileStore) Close() error { return nil }

var _ core.Store = (*FileStore)(nil)
