// Package model 定义客车(bus)相关的 GORM 数据模型.
package model

import (
	"fmt"
	"time"
)

// Bus 客车列表记录，聚合根.
// created_at/updated_at 由 reconcile 引擎显式管理（更新路径需要严格递增的
// updated_at），因此关闭 GORM 的自动时间戳.
type Bus struct {
	ID            uint   `gorm:"primaryKey"  json:"id"`
	Title         string `gorm:"size:256"    json:"title"`
	Year          string `gorm:"size:10"     json:"year"`
	Make          string `gorm:"size:25"     json:"make"`
	Model         string `gorm:"size:50"     json:"model"`
	Body          string `gorm:"size:25"     json:"body"`
	Chassis       string `gorm:"size:25"     json:"chassis"`
	Engine        string `gorm:"size:300"    json:"engine"`
	Transmission  string `gorm:"size:300"    json:"transmission"`
	Mileage       string `gorm:"size:100"    json:"mileage"`
	Passengers    string `gorm:"size:300"    json:"passengers"`
	Wheelchair    string `gorm:"size:60"     json:"wheelchair"`
	Color         string `gorm:"size:60"     json:"color"`
	InteriorColor string `gorm:"size:60"     json:"interior_color"`
	ExteriorColor string `gorm:"size:60"     json:"exterior_color"`

	// 状态标志，默认均为 false；scraped 在管道入库时置 true
	Published bool `gorm:"default:false" json:"published"`
	Featured  bool `gorm:"default:false" json:"featured"`
	Sold      bool `gorm:"default:false" json:"sold"`
	Scraped   bool `gorm:"default:false" json:"scraped"`
	Draft     bool `gorm:"default:false" json:"draft"`

	Source           string              `gorm:"size:300"      json:"source"`
	SourceURL        string              `gorm:"size:1000"     json:"source_url"`
	Price            string              `gorm:"size:30"       json:"price"`
	CPrice           string              `gorm:"size:30"       json:"cprice"`
	VIN              string              `gorm:"size:60;index" json:"vin"`
	GVWR             string              `gorm:"size:50"       json:"gvwr"`
	Dimensions       string              `gorm:"size:300"      json:"dimensions"`
	Luggage          bool                `gorm:"default:false" json:"luggage"`
	StateBusStandard string              `gorm:"size:25"       json:"state_bus_standard"`
	AirConditioning  AirConditioningType `gorm:"size:10"       json:"airconditioning"`
	Location         string              `gorm:"size:30"       json:"location"`
	Brake            string              `gorm:"size:300"      json:"brake"`
	ContactEmail     string              `gorm:"size:100"      json:"contact_email"`
	ContactPhone     string              `gorm:"size:100"      json:"contact_phone"`
	USRegion         USRegion            `gorm:"size:10"       json:"us_region"`
	Description      string              `gorm:"type:text"     json:"description"`
	Score            bool                `gorm:"default:false" json:"score"`
	CategoryID       int                 `gorm:"default:0"     json:"category_id"`

	CreatedAt time.Time `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`

	Overview *BusOverview `gorm:"foreignKey:BusID;constraint:OnDelete:CASCADE" json:"overview,omitempty"`
	Images   []BusImage   `gorm:"foreignKey:BusID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

// TableName 覆盖默认表名.
func (Bus) TableName() string { return "buses" }

// String 便于日志输出关键识别字段.
func (b *Bus) String() string {
	return fmt.Sprintf("Bus(id=%d, title=%q, year=%s, make=%q)", b.ID, b.Title, b.Year, b.Make)
}

// BusOverview 车辆长文本描述，与 Bus 一对一，整体替换、不做字段级合并.
type BusOverview struct {
	ID       uint   `gorm:"primaryKey"  json:"id"`
	BusID    uint   `gorm:"index"       json:"bus_id"`
	MDesc    string `gorm:"type:text"   json:"mdesc"`
	IntDesc  string `gorm:"type:text"   json:"intdesc"`
	ExtDesc  string `gorm:"type:text"   json:"extdesc"`
	Features string `gorm:"type:text"   json:"features"`
	Specs    string `gorm:"type:text"   json:"specs"`
}

// TableName 覆盖默认表名.
func (BusOverview) TableName() string { return "buses_overview" }

// BusImage 车辆图片，按 image_index 排序的有序集合，随父记录级联删除.
type BusImage struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:64"    json:"name"`
	URL         string `gorm:"size:1000"  json:"url"`
	Description string `gorm:"type:text"  json:"description"`
	ImageIndex  int    `gorm:"default:0"  json:"image_index"`
	BusID       uint   `gorm:"index"      json:"bus_id"`
}

// TableName 覆盖默认表名.
func (BusImage) TableName() string { return "buses_images" }

// AllModels 返回需要迁移的全部模型，供 AutoMigrate 使用.
func AllModels() []any {
	return []any{&Bus{}, &BusOverview{}, &BusImage{}}
}
