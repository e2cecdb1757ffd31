// Package reconcile 实现记录对账与持久化引擎：决定插入或更新、做字段级合并，
// 并在单个事务内完成车辆主记录与 overview/images 从属集合的原子写入.
package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm/clause"

	ctxPkg "github.com/yeisme/busvault/pkg/context"
	"github.com/yeisme/busvault/pkg/internal/model"
	"github.com/yeisme/busvault/pkg/internal/normalize"
	"github.com/yeisme/busvault/pkg/internal/resolver"
	"github.com/yeisme/busvault/pkg/internal/storage/db"
	"github.com/yeisme/busvault/pkg/internal/types"
	nlog "github.com/yeisme/busvault/pkg/log"
)

// updatedAtStep 更新路径上 updated_at 的前移量，保证即使时钟分辨率不足或
// 连续快速写入，时间戳也严格递增.
const updatedAtStep = time.Second

// Action 标识一次 reconcile 的写入路径.
type Action string

const (
	ActionInsert Action = "insert"
	ActionUpdate Action = "update"
)

// Engine 对账引擎.
type Engine struct {
	db     *db.Client
	logger zerolog.Logger
}

// NewEngine 从 context 中的存储管理器构建引擎.
func NewEngine(c context.Context) *Engine {
	return &Engine{
		db:     ctxPkg.GetDBClient(c),
		logger: nlog.Logger().With().Str("component", "reconcile").Logger(),
	}
}

// NewEngineWithClient 直接注入 DB 客户端构建引擎，测试与批处理驱动用.
func NewEngineWithClient(client *db.Client) *Engine {
	return &Engine{
		db:     client,
		logger: nlog.Logger().With().Str("component", "reconcile").Logger(),
	}
}

// Reconcile 处理单条原始记录：校验、查重、合并、事务写入.
//
// 记录被成功持久化时返回 (*model.Bus, ActionInsert/ActionUpdate, nil)；
// 校验失败或写入失败时返回 nil 记录与错误，错误只作上层统计用，
// 不中断批处理（见 ReconcileMany）.任何失败路径整体回滚，不留部分写入.
//
// 必填字段（title/year/make/model）只在插入路径上把关：带强信号（如 VIN）
// 的稀疏记录可以只携带要覆盖的字段更新已存行.
func (e *Engine) Reconcile(ctx context.Context, raw *types.RawBus) (*model.Bus, Action, error) {
	// 1. 出现字段的长度/格式/年份校验；失败即跳过，全部违例一次性记日志
	if res := normalize.ValidateFields(raw); !res.OK {
		e.logger.Warn().
			Strs("errors", res.Errors).
			Str("title", types.Str(raw.Title)).
			Str("vin", types.Str(raw.VIN)).
			Msg("validation failed, record skipped")

		return nil, "", res.Error()
	}

	sess, err := e.db.Begin(ctx)
	if err != nil {
		return nil, "", err
	}
	defer sess.Close()

	// 2. 查重
	candidates, err := resolver.FindCandidates(sess.Tx(), raw)
	if err != nil {
		return nil, "", err
	}

	// 3. 未命中任何已存行时才要求必填字段齐备
	if len(candidates) == 0 {
		if res := normalize.ValidateRequired(raw); !res.OK {
			e.logger.Warn().
				Strs("errors", res.Errors).
				Str("vin", types.Str(raw.VIN)).
				Msg("record matches nothing and lacks required fields, skipped")

			return nil, "", res.Error()
		}
	}

	var (
		bus    *model.Bus
		action Action
	)

	if len(candidates) > 0 {
		// 4. 命中：第一个候选为更新目标，其余仅记信息
		if len(candidates) > 1 {
			for _, dup := range candidates[1:] {
				e.logger.Info().
					Uint("id", dup.ID).
					Str("title", dup.Title).
					Msg("additional duplicate candidate ignored")
			}
		}

		target := candidates[0]
		applyRaw(raw, &target)
		target.UpdatedAt = time.Now().UTC().Add(updatedAtStep)

		if err := sess.Tx().Omit(clause.Associations).Save(&target).Error; err != nil {
			return nil, "", fmt.Errorf("update failed for bus %d: %w", target.ID, err)
		}

		bus = &target
		action = ActionUpdate
	} else {
		// 5. 未命中：构造新记录并立即取得代理键，供从属行引用
		fresh := &model.Bus{
			AirConditioning: model.ACOther,
			USRegion:        model.RegionOther,
		}
		applyRaw(raw, fresh)

		now := time.Now().UTC()
		fresh.CreatedAt = now
		fresh.UpdatedAt = now

		if err := sess.Tx().Omit(clause.Associations).Create(fresh).Error; err != nil {
			return nil, "", fmt.Errorf("insert failed: %w", err)
		}

		bus = fresh
		action = ActionInsert
	}

	// 6. overview 整体替换
	if raw.HasOverview() {
		if err := e.replaceOverview(sess, bus.ID, raw); err != nil {
			return nil, "", err
		}
	}

	// 7. images 整体替换
	if len(raw.Images) > 0 {
		if err := e.replaceImages(sess, bus.ID, raw.Images); err != nil {
			return nil, "", err
		}
	}

	// 8. 一次性提交整个单元
	if err := sess.Commit(); err != nil {
		return nil, "", err
	}

	e.logger.Info().
		Uint("id", bus.ID).
		Str("action", string(action)).
		Str("title", bus.Title).
		Str("vin", bus.VIN).
		Msg("bus record persisted")

	return bus, action, nil
}

// replaceOverview 删除旧 overview 行并插入由当前记录构建的新行，
// 缺失的长文本字段写入空串，不做字段级合并.
func (e *Engine) replaceOverview(sess *db.Session, busID uint, raw *types.RawBus) error {
	if err := sess.Tx().Where("bus_id = ?", busID).Delete(&model.BusOverview{}).Error; err != nil {
		return fmt.Errorf("delete overview for bus %d failed: %w", busID, err)
	}

	overview := &model.BusOverview{
		BusID:    busID,
		MDesc:    types.Str(raw.MDesc),
		IntDesc:  types.Str(raw.IntDesc),
		ExtDesc:  types.Str(raw.ExtDesc),
		Features: types.Str(raw.Features),
		Specs:    types.Str(raw.Specs),
	}
	if err := sess.Tx().Create(overview).Error; err != nil {
		return fmt.Errorf("insert overview for bus %d failed: %w", busID, err)
	}

	return nil
}

// replaceImages 删除该车辆的全部旧图片行，按来稿顺序重建，
// image_index 为零起的插入位置，缺名图片按位置命名.
func (e *Engine) replaceImages(sess *db.Session, busID uint, images []types.RawImage) error {
	if err := sess.Tx().Where("bus_id = ?", busID).Delete(&model.BusImage{}).Error; err != nil {
		return fmt.Errorf("delete images for bus %d failed: %w", busID, err)
	}

	rows := make([]model.BusImage, 0, len(images))

	for i, img := range images {
		name := img.Name
		if name == "" {
			name = fmt.Sprintf("image_%d", i)
		}

		rows = append(rows, model.BusImage{
			BusID:       busID,
			Name:        name,
			URL:         img.URL,
			Description: img.Description,
			ImageIndex:  i,
		})
	}

	if err := sess.Tx().Create(&rows).Error; err != nil {
		return fmt.Errorf("insert images for bus %d failed: %w", busID, err)
	}

	return nil
}

// ReconcileMany 逐条处理一批原始记录，每条独立事务，单条失败不影响其余.
// 返回成功持久化的记录，保持输入顺序.
func (e *Engine) ReconcileMany(ctx context.Context, raws []*types.RawBus) []*model.Bus {
	saved := make([]*model.Bus, 0, len(raws))

	for i, raw := range raws {
		bus, _, err := e.Reconcile(ctx, raw)
		if err != nil {
			e.logger.Error().
				Err(err).
				Int("index", i).
				Str("title", types.Str(raw.Title)).
				Str("vin", types.Str(raw.VIN)).
				Msg("record not saved")

			continue
		}

		saved = append(saved, bus)
	}

	return saved
}
