package reconcile

import (
	"github.com/yeisme/busvault/pkg/internal/model"
	"github.com/yeisme/busvault/pkg/internal/normalize"
	"github.com/yeisme/busvault/pkg/internal/types"
)

// applyRaw 把原始记录中"存在"的字段覆盖到目标记录上（稀疏更新）.
//
// 每个字段一条静态赋值：nil 指针不触碰已存值，非 nil（含空串）无条件覆盖.
// 价格与里程经过规范化，无法解析按缺失处理；枚举字段经过规范化判定.
// 代理键、时间戳和关联集合不属于 RawBus，天然不可被覆盖.
func applyRaw(r *types.RawBus, b *model.Bus) {
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}

	setStr(&b.Title, r.Title)
	setStr(&b.Year, r.Year)
	setStr(&b.Make, r.Make)
	setStr(&b.Model, r.Model)
	setStr(&b.Body, r.Body)
	setStr(&b.Chassis, r.Chassis)
	setStr(&b.Engine, r.Engine)
	setStr(&b.Transmission, r.Transmission)
	setStr(&b.Passengers, r.Passengers)
	setStr(&b.Wheelchair, r.Wheelchair)
	setStr(&b.Color, r.Color)
	setStr(&b.InteriorColor, r.InteriorColor)
	setStr(&b.ExteriorColor, r.ExteriorColor)
	setStr(&b.Source, r.Source)
	setStr(&b.SourceURL, r.SourceURL)
	setStr(&b.VIN, r.VIN)
	setStr(&b.GVWR, r.GVWR)
	setStr(&b.Dimensions, r.Dimensions)
	setStr(&b.StateBusStandard, r.StateBusStandard)
	setStr(&b.Location, r.Location)
	setStr(&b.Brake, r.Brake)
	setStr(&b.ContactEmail, r.ContactEmail)
	setStr(&b.ContactPhone, r.ContactPhone)
	setStr(&b.Description, r.Description)

	setBool(&b.Published, r.Published)
	setBool(&b.Featured, r.Featured)
	setBool(&b.Sold, r.Sold)
	setBool(&b.Draft, r.Draft)
	setBool(&b.Luggage, r.Luggage)

	if r.CategoryID != nil {
		b.CategoryID = *r.CategoryID
	}

	// 价格/里程规范化后写入；无法解析视为字段缺失
	if r.Price != nil {
		if p, ok := normalize.Price(*r.Price); ok {
			b.Price = p
		}
	}

	if r.CPrice != nil {
		if p, ok := normalize.Price(*r.CPrice); ok {
			b.CPrice = p
		}
	}

	if r.Mileage != nil {
		if m, ok := normalize.Mileage(*r.Mileage); ok {
			b.Mileage = m
		}
	}

	if r.AirConditioning != nil {
		b.AirConditioning = model.NormalizeAirConditioning(*r.AirConditioning)
	}

	if r.USRegion != nil {
		b.USRegion = model.NormalizeUSRegion(*r.USRegion)
	} else if r.Location != nil && b.USRegion == model.RegionOther {
		// 未显式给出地区时按 location 文本分类
		b.USRegion = model.ParseUSRegion(*r.Location)
	}

	// 管道入库的记录一律标记为 scraped
	b.Scraped = true
}
