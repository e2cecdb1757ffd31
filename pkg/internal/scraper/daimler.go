package scraper

import (
	"context"
	"fmt"
	neturl "net/url"
	"regexp"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/yeisme/busvault/pkg/internal/types"
	nlog "github.com/yeisme/busvault/pkg/log"
)

const (
	daimlerBaseURL     = "https://www.daimlercoachesnorthamerica.com"
	daimlerListingsURL = daimlerBaseURL + "/pre-owned-motor-coaches/"
	daimlerAjaxURL     = daimlerBaseURL + "/wp-admin/admin-ajax.php"

	daimlerSourceName = "Daimler Coaches North America"
)

// daimlerSource 抓取 Daimler Coaches North America 的二手大巴列表.
// 所有在售车辆都在同一个列表页上，每辆车一个 coaches-models-box 区块，
// 图片列表需要对 WordPress admin-ajax 做一次额外请求.
type daimlerSource struct {
	fetcher *Fetcher
}

func init() {
	RegisterSourceFactory("daimler", func(deps Deps) (Source, error) {
		if deps.Fetcher == nil {
			return nil, fmt.Errorf("daimler source requires a fetcher")
		}

		return &daimlerSource{fetcher: deps.Fetcher}, nil
	})
}

func (s *daimlerSource) Name() string { return daimlerSourceName }

// daimlerBoxMarker 列表页区块切分标记，每辆车一个区块.
const daimlerBoxMarker = `class="coaches-models-box"`

var (
	daimlerModelIDRe = regexp.MustCompile(`data-model-id="([^"]+)"`)
	daimlerTitleRe   = regexp.MustCompile(`(?s)<h4[^>]*>(.*?)</h4>`)
	daimlerPriceRe   = regexp.MustCompile(`\$([\d,]+\.?\d*)`)
	daimlerSoldRe    = regexp.MustCompile(`(?is)<span[^>]*>\s*sold\s*</span>`)
	daimlerTagRe     = regexp.MustCompile(`<[^>]+>`)
)

// Scrape 拉取列表页，逐区块解析出原始记录.
// 单个区块解析失败只记日志跳过，不中断整页.
func (s *daimlerSource) Scrape(ctx context.Context) ([]*types.RawBus, error) {
	page, err := s.fetcher.Get(ctx, daimlerListingsURL)
	if err != nil {
		return nil, fmt.Errorf("fetch daimler listings failed: %w", err)
	}

	// 按区块标记切分，依赖列表页的扁平结构；首段为页头，跳过
	boxes := strings.Split(string(page), daimlerBoxMarker)[1:]

	raws := make([]*types.RawBus, 0, len(boxes))

	for _, box := range boxes {
		raw, err := s.parseBox(ctx, box)
		if err != nil {
			nlog.Logger().Warn().Err(err).Str("source", daimlerSourceName).
				Msg("skip unparsable listing box")

			continue
		}

		raws = append(raws, raw)
	}

	return raws, nil
}

// parseBox 解析单个车辆区块.
//
// 标题形如 "2023 Mercedes Benz Tourrider – U1234 – 56 Passengers | $495,000"：
// 竖线前的部分按长破折号切出 年款车型 / 单元号 / 载客数，首词为年份，
// 随后两词为厂牌，第四词为型号.
func (s *daimlerSource) parseBox(ctx context.Context, box string) (*types.RawBus, error) {
	titleMatch := daimlerTitleRe.FindStringSubmatch(box)
	if titleMatch == nil {
		return nil, fmt.Errorf("listing box has no title")
	}

	title := strings.TrimSpace(daimlerTagRe.ReplaceAllString(titleMatch[1], " "))
	title = strings.Join(strings.Fields(title), " ")

	raw := &types.RawBus{
		Title:     types.StrPtr(title),
		Source:    types.StrPtr(daimlerSourceName),
		SourceURL: types.StrPtr(daimlerListingsURL),
		Sold:      types.BoolPtr(daimlerSoldRe.MatchString(box)),
	}

	if m := daimlerPriceRe.FindStringSubmatch(title); m != nil {
		raw.Price = types.StrPtr(m[1])
	}

	head, _, _ := strings.Cut(title, "|")

	parts := strings.Split(head, "–")
	if len(parts) >= 3 {
		raw.Passengers = types.StrPtr(strings.TrimSpace(parts[2]))
	}

	words := strings.Fields(strings.TrimSpace(parts[0]))
	if len(words) >= 4 {
		raw.Year = types.StrPtr(words[0])
		raw.Make = types.StrPtr(strings.Join(words[1:3], " "))
		raw.Model = types.StrPtr(words[3])
	}

	if v := daimlerField(box, "VIN#:"); v != "" {
		raw.VIN = types.StrPtr(v)
	}

	if v := daimlerField(box, "Engine:"); v != "" {
		raw.Engine = types.StrPtr(v)
	}

	if v := daimlerField(box, "Mileage:"); v != "" {
		raw.Mileage = types.StrPtr(v)
	}

	if m := daimlerModelIDRe.FindStringSubmatch(box); m != nil {
		raw.Images = s.fetchImages(ctx, m[1])
	}

	return raw, nil
}

// daimlerField 提取 "<strong>Label</strong> value<br>" 形式的详情字段.
func daimlerField(box, label string) string {
	re := regexp.MustCompile(`(?s)<strong>\s*` + regexp.QuoteMeta(label) + `\s*</strong>(.*?)<`)

	m := re.FindStringSubmatch(box)
	if m == nil {
		return ""
	}

	return strings.TrimSpace(m[1])
}

// fetchImages 通过 admin-ajax 拉取车辆图集，失败时返回空集不影响主记录.
func (s *daimlerSource) fetchImages(ctx context.Context, modelID string) []types.RawImage {
	form := neturl.Values{
		"action":   {"load_fancybox_images"},
		"model_id": {modelID},
	}

	body, err := s.fetcher.PostForm(ctx, daimlerAjaxURL, form)
	if err != nil {
		nlog.Logger().Error().Err(err).Str("model_id", modelID).
			Msg("fetch daimler images failed")

		return nil
	}

	var urls []string
	if err := sonic.Unmarshal(body, &urls); err != nil {
		nlog.Logger().Error().Err(err).Str("model_id", modelID).
			Msg("parse daimler images response failed")

		return nil
	}

	images := make([]types.RawImage, 0, len(urls))
	for i, u := range urls {
		images = append(images, types.RawImage{
			Name:        fmt.Sprintf("image_%d", i),
			URL:         u,
			Description: fmt.Sprintf("Image %d of %d", i+1, len(urls)),
		})
	}

	return images
}
