package service

import (
	"strings"

	"Aurora_Admin/internal/model"
)

// 回填管线写衍生格式时会把同一张图再落一条，键上要把这些后缀归并掉
var derivedSuffixes = []string{"_optimized", "_compressed", "_thumbnail", "_thumb", "_blur"}

// DedupImages 同一逻辑图片只留一条，保留衍生资源最全的那条。
// 取不出键的条目无条件丢弃，单条也不例外。
// 输出顺序跟随键的首次出现位置；胜出判定与输入顺序无关。
func DedupImages(in []model.ImageAsset) []model.ImageAsset {
	best := make(map[string]model.ImageAsset, len(in))
	order := make([]string, 0, len(in))
	for _, img := range in {
		key := imageKey(&img)
		if key == "" {
			// 取不出键的条目没法安全去重，丢弃
			continue
		}
		cur, ok := best[key]
		if !ok {
			best[key] = img
			order = append(order, key)
			continue
		}
		if richerImage(&img, &cur) {
			best[key] = img
		}
	}
	out := make([]model.ImageAsset, 0, len(order))
	for _, key := range order {
		out = append(out, best[key])
	}
	return out
}

// DedupVideos 视频用简单身份键，先见先留；无键条目同样丢弃
func DedupVideos(in []model.VideoAsset) []model.VideoAsset {
	seen := make(map[string]struct{}, len(in))
	out := make([]model.VideoAsset, 0, len(in))
	for _, v := range in {
		key := v.ID
		if key == "" {
			key = v.URL
		}
		if key == "" {
			key = v.ThumbnailURL
		}
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

func imageKey(a *model.ImageAsset) string {
	if a.ID != "" {
		return "id:" + a.ID
	}
	if a.URL == "" {
		return ""
	}
	return "url:" + baseKey(a.URL)
}

// baseKey 去掉查询串、扩展名和已知衍生后缀，
// foo_optimized.avif 和 foo.jpg 归并到同一个键
func baseKey(url string) string {
	s := url
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndexByte(s, '.'); i > strings.LastIndexByte(s, '/') {
		s = s[:i]
	}
	for changed := true; changed; {
		changed = false
		for _, suf := range derivedSuffixes {
			if strings.HasSuffix(s, suf) {
				s = strings.TrimSuffix(s, suf)
				changed = true
			}
		}
	}
	return s
}

// enrichment 衍生资源加权计数：AVIF 比缩略图重，缩略图比模糊占位重
func enrichment(a *model.ImageAsset) int {
	score := 0
	if a.AvifURL != "" {
		score += 4
	}
	if a.CompressedURL != "" {
		score += 3
	}
	if a.ThumbnailURL != "" {
		score += 2
	}
	if a.BlurURL != "" {
		score += 1
	}
	return score
}

// richerImage 判定 a 是否应顶掉 b。
// 平手时偏向带 AVIF 的，再偏向带缩略图的，最后用 URL 字典序定胜负，
// 保证对任意输入顺序都选出同一条。
func richerImage(a, b *model.ImageAsset) bool {
	ea, eb := enrichment(a), enrichment(b)
	if ea != eb {
		return ea > eb
	}
	if (a.AvifURL != "") != (b.AvifURL != "") {
		return a.AvifURL != ""
	}
	if (a.ThumbnailURL != "") != (b.ThumbnailURL != "") {
		return a.ThumbnailURL != ""
	}
	return a.URL < b.URL
}
