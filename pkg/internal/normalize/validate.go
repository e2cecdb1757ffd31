package normalize

import (
	"errors"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/yeisme/busvault/pkg/internal/types"
	"github.com/yeisme/busvault/pkg/rule"
)

// ErrValidation 校验失败的哨兵错误，上层用 errors.Is 区分校验失败与写入失败.
var ErrValidation = errors.New("validation failed")

// Result 校验结果：OK 为 false 时 Errors 按发现顺序列出全部违例，
// 调用方必须拒绝入库并记录错误列表.
type Result struct {
	OK     bool
	Errors []string
}

// Error 汇总为单个 error，便于日志与上层传递.
func (r Result) Error() error {
	if r.OK {
		return nil
	}

	return fmt.Errorf("%w: %v", ErrValidation, r.Errors)
}

// fieldLimit 字段与最大长度的固定对照表.
type fieldLimit struct {
	name  string
	value *string
	max   int
}

const (
	minYear = 1900
)

// Validate 对原始记录做完整入库前校验：必填字段加上 ValidateFields 的全部检查.
// 只用于插入路径；稀疏更新允许缺少必填字段（VIN 等强信号已能定位目标行）.
func Validate(r *types.RawBus) Result {
	req := ValidateRequired(r)
	fields := ValidateFields(r)

	errs := append(req.Errors, fields.Errors...)

	return Result{OK: len(errs) == 0, Errors: errs}
}

// ValidateRequired 检查 title/year/make/model 是否齐备，新建记录的最低要求.
func ValidateRequired(r *types.RawBus) Result {
	var errs []string

	required := []struct {
		name  string
		value *string
	}{
		{"title", r.Title},
		{"year", r.Year},
		{"make", r.Make},
		{"model", r.Model},
	}
	for _, f := range required {
		if f.value == nil || *f.value == "" {
			errs = append(errs, fmt.Sprintf("missing required field: %s", f.name))
		}
	}

	return Result{OK: len(errs) == 0, Errors: errs}
}

// ValidateFields 检查出现字段的长度上限、格式与年份范围，插入与更新路径共用.
// 收集全部违例而不是在第一个错误处停止.
func ValidateFields(r *types.RawBus) Result {
	var errs []string

	// 长度上限，按字符计（varchar 列宽是字符数，不是字节数）
	limits := []fieldLimit{
		{"title", r.Title, 256},
		{"year", r.Year, 10},
		{"make", r.Make, 25},
		{"model", r.Model, 50},
		{"body", r.Body, 25},
		{"chassis", r.Chassis, 25},
		{"engine", r.Engine, 300},
		{"transmission", r.Transmission, 300},
		{"mileage", r.Mileage, 100},
		{"passengers", r.Passengers, 300},
		{"wheelchair", r.Wheelchair, 60},
		{"color", r.Color, 60},
		{"interior_color", r.InteriorColor, 60},
		{"exterior_color", r.ExteriorColor, 60},
		{"source", r.Source, 300},
		{"source_url", r.SourceURL, 1000},
		{"price", r.Price, 30},
		{"cprice", r.CPrice, 30},
		{"vin", r.VIN, 60},
		{"gvwr", r.GVWR, 50},
		{"dimensions", r.Dimensions, 300},
		{"state_bus_standard", r.StateBusStandard, 25},
		{"location", r.Location, 30},
		{"brake", r.Brake, 300},
		{"contact_email", r.ContactEmail, 100},
		{"contact_phone", r.ContactPhone, 100},
	}
	for _, f := range limits {
		if f.value != nil && utf8.RuneCountInString(*f.value) > f.max {
			errs = append(errs, fmt.Sprintf("field %s exceeds max length %d", f.name, f.max))
		}
	}

	// 格式校验，仅对非空字段执行
	if v := types.Str(r.VIN); v != "" {
		if err := rule.ValidateVar(v, "vin"); err != nil {
			errs = append(errs, fmt.Sprintf("invalid vin: %q", v))
		}
	}

	if v := types.Str(r.ContactEmail); v != "" {
		if err := rule.ValidateVar(v, "email"); err != nil {
			errs = append(errs, fmt.Sprintf("invalid contact_email: %q", v))
		}
	}

	if v := types.Str(r.ContactPhone); v != "" {
		if err := rule.ValidateVar(v, "usphone"); err != nil {
			errs = append(errs, fmt.Sprintf("invalid contact_phone: %q", v))
		}
	}

	// 年份范围 [1900, 当前年+1]
	if v := types.Str(r.Year); v != "" {
		y, err := strconv.Atoi(v)
		maxYear := time.Now().Year() + 1

		if err != nil || y < minYear || y > maxYear {
			errs = append(errs, fmt.Sprintf("invalid year: %q (expected %d..%d)", v, minYear, maxYear))
		}
	}

	return Result{OK: len(errs) == 0, Errors: errs}
}
