package service

import (
	"strings"
	"time"

	"Aurora_Admin/internal/model"
)

// ListFilter 列表查询条件，全部可选；同时给出的条件取交集。
// Owner 这里必须已是稳定 uid，句柄解析在上游完成。
type ListFilter struct {
	Kinds        []string
	Model        string
	OwnerUID     string
	Status       string
	DateStart    *time.Time // 含当天
	DateEnd      *time.Time // 含当天
	MinScore     *float64
	MaxScore     *float64
	UnscoredOnly bool
	Search       string
}

// Match 全部给出的条件都命中才保留
func (f *ListFilter) Match(doc *model.GenerationDoc) bool {
	if len(f.Kinds) > 0 {
		hit := false
		for _, k := range f.Kinds {
			if strings.EqualFold(k, doc.Kind) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	if f.Model != "" && !strings.EqualFold(f.Model, doc.Model) {
		return false
	}

	if f.OwnerUID != "" && f.OwnerUID != doc.Owner.UID {
		return false
	}

	if f.Status != "" && !strings.EqualFold(f.Status, doc.Status) {
		return false
	}

	if f.DateStart != nil || f.DateEnd != nil {
		// 时间解析不出来的记录直接落选
		if !doc.CreatedAt.Valid {
			return false
		}
		t := doc.CreatedAt.Time
		if f.DateStart != nil && t.Before(*f.DateStart) {
			return false
		}
		if f.DateEnd != nil && t.After(*f.DateEnd) {
			return false
		}
	}

	if f.MinScore != nil || f.MaxScore != nil {
		// 分数区间要求有分，无分记录落选
		if doc.Score == nil {
			return false
		}
		if f.MinScore != nil && *doc.Score < *f.MinScore {
			return false
		}
		if f.MaxScore != nil && *doc.Score > *f.MaxScore {
			return false
		}
	}

	if f.UnscoredOnly && doc.Score != nil {
		return false
	}

	if f.Search != "" &&
		!strings.Contains(strings.ToLower(doc.Prompt), strings.ToLower(f.Search)) {
		return false
	}

	return true
}
