// Package resolver 判定抓取到的记录是否对应已入库的车辆，按优先级级联匹配.
package resolver

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yeisme/busvault/pkg/internal/model"
	"github.com/yeisme/busvault/pkg/internal/types"
)

// FindCandidates 返回可能与 raw 指向同一实车的已存记录.
//
// 匹配策略（高优先级命中即停）：
//  1. VIN 精确相等（制造商唯一，最高置信），命中立即返回，不再尝试弱信号；
//  2. title/year/make/model 四元组相等，仅在四项齐备时尝试；
//  3. source_url 相等，仅在存在时尝试.
//
// 策略 2 与 3 的结果一并收集（按 id 去重，四元组命中在前）.
// 调用方只把第一个候选作为更新目标，其余记为信息性重复.
func FindCandidates(tx *gorm.DB, raw *types.RawBus) ([]model.Bus, error) {
	if raw.HasVIN() {
		var matches []model.Bus
		if err := tx.Where("vin = ?", *raw.VIN).Order("id").Find(&matches).Error; err != nil {
			return nil, fmt.Errorf("vin lookup failed: %w", err)
		}

		if len(matches) > 0 {
			return matches, nil
		}
	}

	var (
		candidates []model.Bus
		seen       = map[uint]struct{}{}
	)

	appendNew := func(rows []model.Bus) {
		for _, row := range rows {
			if _, ok := seen[row.ID]; ok {
				continue
			}

			seen[row.ID] = struct{}{}
			candidates = append(candidates, row)
		}
	}

	if raw.HasTuple() {
		var rows []model.Bus

		err := tx.Where("title = ? AND year = ? AND make = ? AND model = ?",
			*raw.Title, *raw.Year, *raw.Make, *raw.Model).
			Order("id").Find(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("tuple lookup failed: %w", err)
		}

		appendNew(rows)
	}

	if url := types.Str(raw.SourceURL); url != "" {
		var rows []model.Bus
		if err := tx.Where("source_url = ?", url).Order("id").Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("source_url lookup failed: %w", err)
		}

		appendNew(rows)
	}

	return candidates, nil
}
