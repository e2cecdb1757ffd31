package model

import "strings"

// AirConditioningType 空调位置枚举，无法判定时为 OTHER.
type AirConditioningType string

const (
	ACRear  AirConditioningType = "REAR"
	ACDash  AirConditioningType = "DASH"
	ACBoth  AirConditioningType = "BOTH"
	ACOther AirConditioningType = "OTHER"
	ACNone  AirConditioningType = "NONE"
)

// USRegion 美国地区枚举，无法判定时为 OTHER.
type USRegion string

const (
	RegionNortheast USRegion = "NORTHEAST"
	RegionMidwest   USRegion = "MIDWEST"
	RegionWest      USRegion = "WEST"
	RegionSouthwest USRegion = "SOUTHWEST"
	RegionSoutheast USRegion = "SOUTHEAST"
	RegionOther     USRegion = "OTHER"
)

// NormalizeAirConditioning 输入已是规范枚举值时直接采用，否则按关键字判定.
func NormalizeAirConditioning(s string) AirConditioningType {
	switch v := AirConditioningType(strings.ToUpper(strings.TrimSpace(s))); v {
	case ACRear, ACDash, ACBoth, ACOther, ACNone:
		return v
	}

	return ParseAirConditioning(s)
}

// ParseAirConditioning 从自由文本判定空调位置.
// 同时出现 rear 和 dash 记为 BOTH；明确 "no a/c"、"none" 记为 NONE.
func ParseAirConditioning(s string) AirConditioningType {
	t := strings.ToLower(s)
	if t == "" {
		return ACOther
	}

	hasRear := strings.Contains(t, "rear")
	hasDash := strings.Contains(t, "dash") || strings.Contains(t, "front")

	switch {
	case hasRear && hasDash:
		return ACBoth
	case hasRear:
		return ACRear
	case hasDash:
		return ACDash
	case strings.Contains(t, "none") || strings.Contains(t, "no a/c") || strings.Contains(t, "no ac"):
		return ACNone
	default:
		return ACOther
	}
}

// regionKeywords 为各地区的州名/缩写关键字表.
// 原始数据源中各站点的地区词表并不一致，其中出现过一个独立的 "SOUTH"
// 标签；这里统一收敛到五大区，原 "SOUTH" 词组归入 SOUTHEAST.
var regionKeywords = map[USRegion][]string{
	RegionNortheast: {
		"maine", "new hampshire", "vermont", "massachusetts", "rhode island",
		"connecticut", "new york", "new jersey", "pennsylvania",
		"me", "nh", "vt", "ma", "ri", "ct", "ny", "nj", "pa",
	},
	RegionMidwest: {
		"ohio", "michigan", "indiana", "illinois", "wisconsin", "minnesota",
		"iowa", "missouri", "north dakota", "south dakota", "nebraska", "kansas",
		"oh", "mi", "in", "il", "wi", "mn", "ia", "mo", "nd", "sd", "ne", "ks",
	},
	RegionWest: {
		"washington", "oregon", "california", "nevada", "idaho", "montana",
		"wyoming", "utah", "colorado", "alaska", "hawaii",
		"wa", "or", "ca", "nv", "id", "mt", "wy", "ut", "co", "ak", "hi",
	},
	RegionSouthwest: {
		"arizona", "new mexico", "texas", "oklahoma",
		"az", "nm", "tx", "ok",
	},
	RegionSoutheast: {
		"delaware", "maryland", "virginia", "west virginia", "kentucky",
		"tennessee", "north carolina", "south carolina", "georgia", "florida",
		"alabama", "mississippi", "arkansas", "louisiana",
		"de", "md", "va", "wv", "ky", "tn", "nc", "sc", "ga", "fl",
		"al", "ms", "ar", "la",
	},
}

// regionOrder 固定匹配顺序，保证分类结果确定.
var regionOrder = []USRegion{
	RegionNortheast, RegionMidwest, RegionWest, RegionSouthwest, RegionSoutheast,
}

// NormalizeUSRegion 输入已是规范枚举值时直接采用，否则按关键字判定.
// 历史数据源中出现过的 "SOUTH" 标签统一归入 SOUTHEAST.
func NormalizeUSRegion(s string) USRegion {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if upper == "SOUTH" {
		return RegionSoutheast
	}

	switch v := USRegion(upper); v {
	case RegionNortheast, RegionMidwest, RegionWest, RegionSouthwest, RegionSoutheast, RegionOther:
		return v
	}

	return ParseUSRegion(s)
}

// ParseUSRegion 从位置自由文本（州名或缩写）判定所属地区.
// 全词匹配，避免 "in"、"or" 等缩写误命中普通单词.
func ParseUSRegion(s string) USRegion {
	t := strings.ToLower(strings.TrimSpace(s))
	if t == "" {
		return RegionOther
	}

	words := strings.FieldsFunc(t, func(r rune) bool {
		return r == ' ' || r == ',' || r == '.' || r == '-' || r == '/'
	})
	wordSet := make(map[string]struct{}, len(words))
	for _, w := range words {
		wordSet[w] = struct{}{}
	}

	for _, region := range regionOrder {
		for _, kw := range regionKeywords[region] {
			if strings.Contains(kw, " ") {
				if strings.Contains(t, kw) {
					return region
				}

				continue
			}

			if _, ok := wordSet[kw]; ok {
				return region
			}
		}
	}

	return RegionOther
}
