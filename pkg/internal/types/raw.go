// Package types 定义管道各层之间传递的数据结构.
package types

import "github.com/yeisme/busvault/pkg/internal/model"

// RawBus 来自抓取器的原始记录.
// 每个标量字段用指针表达"存在/缺失"：nil 表示该字段未出现（稀疏更新时
// 不触碰已存值），非 nil（包括空字符串）表示出现并无条件覆盖.
// JSON 键沿用各站点 dump 文件的原始键名，保证 dump 可回放.
type RawBus struct {
	Title         *string `json:"title,omitempty"`
	Year          *string `json:"year,omitempty"`
	Make          *string `json:"make,omitempty"`
	Model         *string `json:"model,omitempty"`
	Body          *string `json:"body,omitempty"`
	Chassis       *string `json:"chassis,omitempty"`
	Engine        *string `json:"engine,omitempty"`
	Transmission  *string `json:"transmission,omitempty"`
	Mileage       *string `json:"mileage,omitempty"`
	Passengers    *string `json:"passengers,omitempty"`
	Wheelchair    *string `json:"wheelchair,omitempty"`
	Color         *string `json:"color,omitempty"`
	InteriorColor *string `json:"interior_color,omitempty"`
	ExteriorColor *string `json:"exterior_color,omitempty"`

	Published *bool `json:"published,omitempty"`
	Featured  *bool `json:"featured,omitempty"`
	Sold      *bool `json:"sold,omitempty"`
	Draft     *bool `json:"draft,omitempty"`

	Source           *string `json:"source,omitempty"`
	SourceURL        *string `json:"source_url,omitempty"`
	Price            *string `json:"price,omitempty"`
	CPrice           *string `json:"cprice,omitempty"`
	VIN              *string `json:"vin,omitempty"`
	GVWR             *string `json:"gvwr,omitempty"`
	Dimensions       *string `json:"dimensions,omitempty"`
	Luggage          *bool   `json:"luggage,omitempty"`
	StateBusStandard *string `json:"state_bus_standard,omitempty"`
	AirConditioning  *string `json:"airconditioning,omitempty"`
	Location         *string `json:"location,omitempty"`
	Brake            *string `json:"brake,omitempty"`
	ContactEmail     *string `json:"contact_email,omitempty"`
	ContactPhone     *string `json:"contact_phone,omitempty"`
	USRegion         *string `json:"us_region,omitempty"`
	Description      *string `json:"description,omitempty"`
	CategoryID       *int    `json:"category_id,omitempty"`

	// 长文本 overview 字段，任一出现即触发 overview 整体替换
	MDesc    *string `json:"mdesc,omitempty"`
	IntDesc  *string `json:"intdesc,omitempty"`
	ExtDesc  *string `json:"extdesc,omitempty"`
	Features *string `json:"features,omitempty"`
	Specs    *string `json:"specs,omitempty"`

	// nil 表示记录不带 images 键；非空时触发图片集合整体替换
	Images []RawImage `json:"images,omitempty"`
}

// RawImage 原始记录中的单张图片.
type RawImage struct {
	Name        string `json:"name,omitempty"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// Str 取字段值，缺失时返回空串.
func Str(p *string) string {
	if p == nil {
		return ""
	}

	return *p
}

// StrPtr 构造存在的字符串字段，抓取器代码用.
func StrPtr(s string) *string { return &s }

// BoolPtr 构造存在的布尔字段.
func BoolPtr(b bool) *bool { return &b }

// HasVIN 判断记录是否带非空 VIN.
func (r *RawBus) HasVIN() bool {
	return r.VIN != nil && *r.VIN != ""
}

// HasTuple 判断 title/year/make/model 四元组是否齐备.
func (r *RawBus) HasTuple() bool {
	for _, p := range []*string{r.Title, r.Year, r.Make, r.Model} {
		if p == nil || *p == "" {
			return false
		}
	}

	return true
}

// HasOverview 判断是否带任一 overview 字段.
func (r *RawBus) HasOverview() bool {
	for _, p := range []*string{r.MDesc, r.IntDesc, r.ExtDesc, r.Features, r.Specs} {
		if p != nil {
			return true
		}
	}

	return false
}

// SourceReport 单个抓取来源的入库统计.
type SourceReport struct {
	Source    string `json:"source"`
	Attempted int    `json:"attempted"`
	Saved     int    `json:"saved"`
	Failed    int    `json:"failed"`
}

// IngestReport 一次完整管道运行的统计汇总.
type IngestReport struct {
	RunID     string         `json:"run_id"`
	Attempted int            `json:"attempted"`
	Saved     int            `json:"saved"`
	Failed    int            `json:"failed"`
	Sources   []SourceReport `json:"sources"`
	Buses     []*model.Bus   `json:"-"`
}

// Add 合并单来源统计.
func (r *IngestReport) Add(s SourceReport) {
	r.Sources = append(r.Sources, s)
	r.Attempted += s.Attempted
	r.Saved += s.Saved
	r.Failed += s.Failed
}
