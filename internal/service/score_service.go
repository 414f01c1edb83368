package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"Aurora_Admin/internal/model"
	"Aurora_Admin/internal/repository/mysql"

	"gorm.io/gorm"
)

// 两条评分入口的档位历史上就不一致：审核端允许 8 分入库，
// ArtStation 端只认 9 分以上。这是产品层面的既定事实，不做归并。
const (
	GenerationScoreMin = 8.0
	GenerationScoreMax = 10.0
	ArtStationScoreMin = 9.0
	ArtStationScoreMax = 10.0
)

type scoreStore interface {
	FindByID(ctx context.Context, id string) (*model.Generation, error)
	UpdateScore(ctx context.Context, id string, score *float64, doc []byte) error
	UpdateShowcaseScore(ctx context.Context, ownerID, generationID string, score *float64) error
}

type auditRecorder interface {
	Record(ctx context.Context, adminEmail, action, targetUID string, details map[string]any)
}

type ScoreService struct {
	repo  scoreStore
	audit auditRecorder
}

func NewScoreService(repo *mysql.GenerationRepository, audit *AuditService) *ScoreService {
	return &ScoreService{repo: repo, audit: audit}
}

// SetScore 档位校验通过后落主表，并把分数镜像进文档和作者副本。
// 副本与审计都是尽力而为，失败只记日志。
func (s *ScoreService) SetScore(ctx context.Context, adminEmail, id string, score, bandMin, bandMax float64) error {
	if score < bandMin || score > bandMax {
		return ErrScoreOutOfBand
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if row.IsDeleted {
		return ErrNotFound
	}

	prior := row.Score
	doc := applyScoreToDoc(row.Doc, &score)
	if err := s.repo.UpdateScore(ctx, id, &score, doc); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.repo.UpdateShowcaseScore(ctx, row.OwnerID, id, &score); err != nil {
		log.Printf("showcase mirror update err: generation=%s %v", id, err)
	}

	s.audit.Record(ctx, adminEmail, "generation.score", row.OwnerID, map[string]any{
		"generationId": id,
		"prior":        prior,
		"new":          score,
	})
	return nil
}

// ClearScore 撤分：删字段而不是写哨兵值，这样“有没有分”直接看字段在不在
func (s *ScoreService) ClearScore(ctx context.Context, adminEmail, id string) error {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if row.IsDeleted {
		return ErrNotFound
	}

	prior := row.Score
	doc := applyScoreToDoc(row.Doc, nil)
	if err := s.repo.UpdateScore(ctx, id, nil, doc); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.repo.UpdateShowcaseScore(ctx, row.OwnerID, id, nil); err != nil {
		log.Printf("showcase mirror clear err: generation=%s %v", id, err)
	}

	s.audit.Record(ctx, adminEmail, "generation.unscore", row.OwnerID, map[string]any{
		"generationId": id,
		"prior":        prior,
	})
	return nil
}

type BulkResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// BulkSetScore 逐条顺序处理，单条失败记进该条结果，整体照常返回
func (s *ScoreService) BulkSetScore(ctx context.Context, adminEmail string, ids []string, score, bandMin, bandMax float64) []BulkResult {
	results := make([]BulkResult, 0, len(ids))
	for _, id := range ids {
		if err := s.SetScore(ctx, adminEmail, id, score, bandMin, bandMax); err != nil {
			results = append(results, BulkResult{ID: id, Error: userFacingError(err)})
			continue
		}
		results = append(results, BulkResult{ID: id, Success: true})
	}
	return results
}

func (s *ScoreService) BulkClearScore(ctx context.Context, adminEmail string, ids []string) []BulkResult {
	results := make([]BulkResult, 0, len(ids))
	for _, id := range ids {
		if err := s.ClearScore(ctx, adminEmail, id); err != nil {
			results = append(results, BulkResult{ID: id, Error: userFacingError(err)})
			continue
		}
		results = append(results, BulkResult{ID: id, Success: true})
	}
	return results
}

func userFacingError(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "Not found"
	case errors.Is(err, ErrScoreOutOfBand):
		return "Score out of band"
	default:
		return "Internal error"
	}
}

// applyScoreToDoc 在原始文档上改分数字段，未知字段原样保留。
// score=nil 表示撤分：删掉顶层和媒体条目上的 score 键。
// 打分时镜像到第一条还没有分的媒体上，图片优先于视频。
func applyScoreToDoc(raw []byte, score *float64) []byte {
	var doc map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &doc); err != nil {
			// 文档列解析不了就只动规范列，字节原样保留
			return raw
		}
	}
	if doc == nil {
		doc = map[string]any{}
	}

	if score == nil {
		delete(doc, "score")
		clearMediaScores(doc, "images")
		clearMediaScores(doc, "videos")
	} else {
		doc["score"] = *score
		if !mirrorScoreToMedia(doc, "images", *score) {
			mirrorScoreToMedia(doc, "videos", *score)
		}
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return raw
	}
	return out
}

func mirrorScoreToMedia(doc map[string]any, field string, score float64) bool {
	list, ok := doc[field].([]any)
	if !ok {
		return false
	}
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if _, scored := entry["score"]; scored {
			continue
		}
		entry["score"] = score
		return true
	}
	return false
}

func clearMediaScores(doc map[string]any, field string) {
	list, ok := doc[field].([]any)
	if !ok {
		return
	}
	for _, item := range list {
		if entry, ok := item.(map[string]any); ok {
			delete(entry, "score")
		}
	}
}
