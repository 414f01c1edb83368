package service

import (
	"context"
	"errors"

	"Aurora_Admin/internal/model"
	"Aurora_Admin/internal/repository/mysql"

	"gorm.io/gorm"
)

const (
	// 每批从库里拉多少条再做内存过滤
	fetchBatchSize = 100
	// 过滤条件太苛刻时最多扫这么多批，防止无界扫描
	maxFetchBatches = 20

	defaultPageSize = 20
	maxPageSize     = 100

	// ArtStation 精选流的入选分数线
	FeedScoreMin = 9.0
)

// 批量拉取函数：锚点之后取一批，排序由具体取法决定
type batchFetcher func(after *model.ListAnchor, batch int) ([]model.Generation, error)

type generationStore interface {
	FindByID(ctx context.Context, id string) (*model.Generation, error)
	ListBatch(ctx context.Context, after *model.ListAnchor, batch int) ([]model.Generation, error)
	ListFeedBatch(ctx context.Context, after *model.ListAnchor, minScore float64, recent bool, batch int) ([]model.Generation, error)
}

type ownerLookup interface {
	FindByUID(ctx context.Context, uid string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type GenerationService struct {
	repo  generationStore
	users ownerLookup
}

func NewGenerationService(repo *mysql.GenerationRepository, users *mysql.UserRepository) *GenerationService {
	return &GenerationService{repo: repo, users: users}
}

type ListResult struct {
	Generations []model.GenerationDoc `json:"generations"`
	NextCursor  string                `json:"nextCursor,omitempty"`
	HasMore     bool                  `json:"hasMore"`
}

func emptyResult() *ListResult {
	return &ListResult{Generations: []model.GenerationDoc{}}
}

// List 审核列表：创建时间倒序。owner 可以是稳定 uid，也可以是用户名/邮箱句柄；
// 句柄解析不到人时返回空集而不是 4xx，前端分页状态不用特殊处理。
func (s *GenerationService) List(ctx context.Context, f ListFilter, owner, cursor string, limit int) (*ListResult, error) {
	if owner != "" {
		uid, ok, err := s.resolveOwner(ctx, owner)
		if err != nil {
			return nil, err
		}
		if !ok {
			return emptyResult(), nil
		}
		f.OwnerUID = uid
	}

	anchor, err := s.resolveCursor(ctx, cursor)
	if err != nil {
		return nil, err
	}

	fetch := func(after *model.ListAnchor, batch int) ([]model.Generation, error) {
		return s.repo.ListBatch(ctx, after, batch)
	}
	return paginate(fetch, anchor, &f, limit)
}

// ListFeed 精选流：mode 空或 curated 按评分倒序，recent 按时间倒序。
// 只含公开、未删除、评分达标且至少有一条媒体的记录。
func (s *GenerationService) ListFeed(ctx context.Context, f ListFilter, owner, cursor, mode string, limit int) (*ListResult, error) {
	if owner != "" {
		uid, ok, err := s.resolveOwner(ctx, owner)
		if err != nil {
			return nil, err
		}
		if !ok {
			return emptyResult(), nil
		}
		f.OwnerUID = uid
	}

	recent := mode == "recent"

	anchor, err := s.resolveCursor(ctx, cursor)
	if err != nil {
		return nil, err
	}

	fetch := func(after *model.ListAnchor, batch int) ([]model.Generation, error) {
		return s.repo.ListFeedBatch(ctx, after, FeedScoreMin, recent, batch)
	}
	return paginate(fetch, anchor, &feedFilter{f}, limit)
}

// resolveCursor 游标是上一页最后一条的 id；查不到记录按流起点处理
func (s *GenerationService) resolveCursor(ctx context.Context, cursor string) (*model.ListAnchor, error) {
	if cursor == "" {
		return nil, nil
	}
	row, err := s.repo.FindByID(ctx, cursor)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &model.ListAnchor{ID: row.ID, CreatedAt: row.CreatedAt, Score: row.Score}, nil
}

// resolveOwner 句柄解析：先按 uid 精确查，再按用户名，最后按邮箱
func (s *GenerationService) resolveOwner(ctx context.Context, owner string) (string, bool, error) {
	lookups := []func() (*model.User, error){
		func() (*model.User, error) { return s.users.FindByUID(ctx, owner) },
		func() (*model.User, error) { return s.users.FindByUsername(ctx, owner) },
		func() (*model.User, error) { return s.users.FindByEmail(ctx, owner) },
	}
	for _, lookup := range lookups {
		user, err := lookup()
		if err == nil {
			return user.UID, true, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, err
		}
	}
	return "", false, nil
}

type docMatcher interface {
	Match(doc *model.GenerationDoc) bool
}

// feedFilter 精选流在普通过滤之外还要求至少一条媒体
type feedFilter struct {
	ListFilter
}

func (f *feedFilter) Match(doc *model.GenerationDoc) bool {
	if len(doc.Images) == 0 && len(doc.Videos) == 0 {
		return false
	}
	return f.ListFilter.Match(doc)
}

// paginate 游标分页主循环：
// 拉一批 -> 规范化 -> 去重 -> 过滤 -> 累积，
// 直到累积条数超过页大小、库里没有更多，或达到扫描上限。
// hasMore 按截断前是否超页判断，nextCursor 是截断后最后一条的 id。
func paginate(fetch batchFetcher, anchor *model.ListAnchor, f docMatcher, limit int) (*ListResult, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}

	acc := make([]model.GenerationDoc, 0, limit+1)
	after := anchor
	for i := 0; i < maxFetchBatches; i++ {
		rows, err := fetch(after, fetchBatchSize)
		if err != nil {
			return nil, err
		}
		for j := range rows {
			doc := NormalizeGeneration(&rows[j])
			doc.Images = DedupImages(doc.Images)
			doc.Videos = DedupVideos(doc.Videos)
			if f.Match(&doc) {
				acc = append(acc, doc)
			}
		}
		// 严格超过页大小才停，多出来的那条用于判断 hasMore
		if len(acc) > limit {
			break
		}
		// 批次没拉满说明到流尾了
		if len(rows) < fetchBatchSize {
			break
		}
		last := rows[len(rows)-1]
		after = &model.ListAnchor{ID: last.ID, CreatedAt: last.CreatedAt, Score: last.Score}
	}

	res := &ListResult{}
	if len(acc) > limit {
		res.HasMore = true
		acc = acc[:limit]
	}
	res.Generations = acc
	if res.HasMore && len(acc) > 0 {
		res.NextCursor = acc[len(acc)-1].ID
	}
	return res, nil
}
