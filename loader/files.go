package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/muserec/core"
)

// LoadFile 按扩展名加载单个目录文件：.json 为完整文档，.csv 按表头判断是艺人还是歌曲。
func LoadFile(path string) (*Catalog, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(path)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open csv: %w", err)
		}
		defer f.Close()
		return ReadCSV(f)
	default:
		return nil, core.NewDomainError(core.ModuleLoader, core.ErrorCodeNotSupported,
			fmt.Sprintf("loader: unsupported file type %q", path))
	}
}

// LoadFiles 并发加载多个目录文件，按参数顺序合并（后面的文件覆盖前面的同 id 条目）。
// 任一文件失败即返回错误，错误带上文件路径。
func LoadFiles(ctx context.Context, paths ...string) (*Catalog, error) {
	parts := make([]*Catalog, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cat, err := LoadFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			parts[i] = cat
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := NewCatalog()
	for _, p := range parts {
		out.Merge(p)
	}
	return out, nil
}
