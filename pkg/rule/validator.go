// Package rule 提供结构体和字段验证功能的封装，基于 go-playground/validator 实现.
package rule

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	inst *validator.Validate
	once sync.Once
)

var (
	// vinPattern 17 位 VIN，标准字母表不含 I、O、Q.
	vinPattern = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)
	// usPhonePattern 可选 + 与国家码 1 前缀，9-15 位数字.
	usPhonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)
)

// initValidator 新建引擎并注册领域规则.
func initValidator() {
	inst = validator.New()
	inst.SetTagName("rule")

	_ = inst.RegisterValidation("vin", func(fl validator.FieldLevel) bool {
		return vinPattern.MatchString(fl.Field().String())
	})
	_ = inst.RegisterValidation("usphone", func(fl validator.FieldLevel) bool {
		return usPhonePattern.MatchString(fl.Field().String())
	})
}

// lazyInit 初始化全局 validator（幂等）.
func lazyInit() {
	once.Do(initValidator)
}

// Engine 返回全局 *validator.Validate，若未初始化则先初始化.
func Engine() *validator.Validate {
	lazyInit()

	return inst
}

// RegisterValidation 代理 RegisterValidation，确保已初始化.
func RegisterValidation(tag string, fn validator.Func, opts ...bool) error {
	lazyInit()

	return inst.RegisterValidation(tag, fn, opts...)
}

// ValidateStruct 对结构体执行完整校验，返回原始 error.
func ValidateStruct(s any) error {
	lazyInit()

	return inst.Struct(s)
}

// ValidateVar 按规则对单个变量校验，例如: ValidateVar("abc", "required,email").
func ValidateVar(field any, tag string) error {
	lazyInit()

	return inst.Var(field, tag)
}

// RegisterAlias 包装 RegisterAlias，便于注册别名规则.
func RegisterAlias(alias, rules string) {
	lazyInit()

	inst.RegisterAlias(alias, rules)
}
