// Package normalize 将抓取到的原始字段值转换为规范形式，并做入库前校验.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
)

// Price 规范化价格：剔除数字与小数点以外的字符后格式化为 "$12,345.67".
// 无法解析时返回 ok=false，按字段缺失处理而不是报错.
func Price(s string) (string, bool) {
	var b strings.Builder

	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return "", false
	}

	return "$" + groupThousands(fmt.Sprintf("%.2f", v)), true
}

// Mileage 规范化里程：只保留数字并加千位分隔符，如 "70,470".
// 无法解析时返回 ok=false.
func Mileage(s string) (string, bool) {
	var b strings.Builder

	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	v, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return "", false
	}

	return groupThousands(strconv.FormatInt(v, 10)), true
}

// groupThousands 给十进制数字串的整数部分插入千位分隔逗号.
func groupThousands(s string) string {
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	n := len(intPart)
	if n <= 3 {
		if hasFrac {
			return intPart + "." + fracPart
		}

		return intPart
	}

	var b strings.Builder

	head := n % 3
	if head > 0 {
		b.WriteString(intPart[:head])
	}

	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}

		b.WriteString(intPart[i : i+3])
	}

	if hasFrac {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}

	return b.String()
}
