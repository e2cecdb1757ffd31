package scraper

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"

	"github.com/yeisme/busvault/pkg/internal/types"
	nlog "github.com/yeisme/busvault/pkg/log"
)

// dumpSource 回放 dump 目录中的 JSON 批次文件.
// 文件内容为 RawBus 数组，键名与各站点 dump 保持一致，可直接把历史
// 抓取结果重新灌入管道，也是联调与测试的入口.
type dumpSource struct {
	dir string
}

func init() {
	RegisterSourceFactory("dump", func(deps Deps) (Source, error) {
		if deps.DumpDir == "" {
			return nil, fmt.Errorf("dump source requires a dump directory")
		}

		return &dumpSource{dir: deps.DumpDir}, nil
	})
}

func (s *dumpSource) Name() string { return "dump" }

// Scrape 读取目录下全部 *.json 文件并拼接为一个批次.
// 单个文件解析失败只跳过该文件，不中断其余文件.
func (s *dumpSource) Scrape(ctx context.Context) ([]*types.RawBus, error) {
	pattern := filepath.Join(s.dir, "*.json")

	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s failed: %w", pattern, err)
	}

	var all []*types.RawBus

	for _, file := range files {
		select {
		case <-ctx.Done():
			return all, ctx.Err()
		default:
		}

		data, err := os.ReadFile(file)
		if err != nil {
			nlog.Logger().Error().Err(err).Str("file", file).Msg("read dump file failed")

			continue
		}

		var batch []*types.RawBus
		if err := sonic.Unmarshal(data, &batch); err != nil {
			nlog.Logger().Error().Err(err).Str("file", file).Msg("parse dump file failed")

			continue
		}

		all = append(all, batch...)
	}

	return all, nil
}

// WriteDump 把一批原始记录以 JSON 形式落盘，文件名带来源与时间戳.
func WriteDump(dir, source string, raws []*types.RawBus) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create dump dir failed: %w", err)
	}

	data, err := sonic.MarshalIndent(raws, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal dump failed: %w", err)
	}

	name := fmt.Sprintf("%s_%s.json", source, time.Now().UTC().Format("20060102T150405"))
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write dump file failed: %w", err)
	}

	return path, nil
}
