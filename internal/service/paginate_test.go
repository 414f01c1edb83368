package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"Aurora_Admin/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeGenerationStore struct {
	rows    []model.Generation
	calls   int
	listErr error
}

func (f *fakeGenerationStore) FindByID(_ context.Context, id string) (*model.Generation, error) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			return &f.rows[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeGenerationStore) ListBatch(_ context.Context, after *model.ListAnchor, batch int) ([]model.Generation, error) {
	f.calls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var rows []model.Generation
	for _, r := range f.rows {
		if r.IsDeleted {
			continue
		}
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool { return timeIDLess(&rows[j], &rows[i]) })
	return cutAfter(rows, after, batch, timeAnchorAfter), nil
}

func (f *fakeGenerationStore) ListFeedBatch(_ context.Context, after *model.ListAnchor, minScore float64, recent bool, batch int) ([]model.Generation, error) {
	f.calls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var rows []model.Generation
	for _, r := range f.rows {
		if r.IsDeleted || !r.IsPublic || r.Score == nil || *r.Score < minScore {
			continue
		}
		rows = append(rows, r)
	}
	if recent {
		sort.Slice(rows, func(i, j int) bool { return timeIDLess(&rows[j], &rows[i]) })
		return cutAfter(rows, after, batch, timeAnchorAfter), nil
	}
	sort.Slice(rows, func(i, j int) bool { return scoreTimeIDLess(&rows[j], &rows[i]) })
	return cutAfter(rows, after, batch, scoreAnchorAfter), nil
}

func timeIDLess(a, b *model.Generation) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

func scoreTimeIDLess(a, b *model.Generation) bool {
	if *a.Score != *b.Score {
		return *a.Score < *b.Score
	}
	return timeIDLess(a, b)
}

func timeAnchorAfter(r *model.Generation, a *model.ListAnchor) bool {
	if !r.CreatedAt.Equal(a.CreatedAt) {
		return r.CreatedAt.Before(a.CreatedAt)
	}
	return r.ID < a.ID
}

func scoreAnchorAfter(r *model.Generation, a *model.ListAnchor) bool {
	if a.Score == nil {
		return timeAnchorAfter(r, a)
	}
	if *r.Score != *a.Score {
		return *r.Score < *a.Score
	}
	return timeAnchorAfter(r, a)
}

func cutAfter(rows []model.Generation, after *model.ListAnchor, batch int, pred func(*model.Generation, *model.ListAnchor) bool) []model.Generation {
	out := make([]model.Generation, 0, batch)
	for i := range rows {
		if after != nil && !pred(&rows[i], after) {
			continue
		}
		out = append(out, rows[i])
		if len(out) == batch {
			break
		}
	}
	return out
}

type fakeOwnerLookup struct {
	users []model.User
}

func (f *fakeOwnerLookup) find(match func(*model.User) bool) (*model.User, error) {
	for i := range f.users {
		if match(&f.users[i]) {
			return &f.users[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOwnerLookup) FindByUID(_ context.Context, uid string) (*model.User, error) {
	return f.find(func(u *model.User) bool { return u.UID == uid })
}

func (f *fakeOwnerLookup) FindByUsername(_ context.Context, username string) (*model.User, error) {
	return f.find(func(u *model.User) bool { return u.Username == username })
}

func (f *fakeOwnerLookup) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return f.find(func(u *model.User) bool { return u.Email == email })
}

func genRow(id string, created time.Time, kind string, score *float64) model.Generation {
	return model.Generation{
		ID:        id,
		OwnerID:   "u1",
		Kind:      kind,
		Score:     score,
		IsPublic:  true,
		CreatedAt: created,
		Doc:       []byte(fmt.Sprintf(`{"prompt":"p %s","images":[{"url":"https://cdn.x/%s.jpg"}]}`, id, id)),
	}
}

// 反复跟随 nextCursor 直到 hasMore=false，拼起来应恰好覆盖满足条件的集合，
// 每条一次，不缺不重——对任意页大小成立
func TestList_PaginationCompleteness(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeGenerationStore{}
	var wantIDs []string
	kinds := []string{"image", "video", "music"}
	for i := 0; i < 57; i++ {
		id := fmt.Sprintf("g%03d", i)
		kind := kinds[i%3]
		store.rows = append(store.rows, genRow(id, base.Add(time.Duration(i)*time.Minute), kind, nil))
		if kind == "image" {
			wantIDs = append(wantIDs, id)
		}
	}
	// 期望创建时间倒序
	sort.Sort(sort.Reverse(sort.StringSlice(wantIDs)))

	svc := &GenerationService{repo: store, users: &fakeOwnerLookup{}}

	for _, pageSize := range []int{1, 4, 19} {
		var got []string
		cursor := ""
		for {
			res, err := svc.List(context.Background(), ListFilter{Kinds: []string{"image"}}, "", cursor, pageSize)
			require.NoError(t, err)
			require.LessOrEqual(t, len(res.Generations), pageSize)
			for _, d := range res.Generations {
				got = append(got, d.ID)
			}
			if !res.HasMore {
				require.Empty(t, res.NextCursor)
				break
			}
			require.NotEmpty(t, res.NextCursor)
			cursor = res.NextCursor
		}
		require.Equal(t, wantIDs, got, "page size %d", pageSize)
	}
}

func TestList_DeletedRowsExcluded(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeGenerationStore{}
	store.rows = append(store.rows, genRow("g1", base, "image", nil))
	deleted := genRow("g2", base.Add(time.Minute), "image", nil)
	deleted.IsDeleted = true
	store.rows = append(store.rows, deleted)

	svc := &GenerationService{repo: store, users: &fakeOwnerLookup{}}
	res, err := svc.List(context.Background(), ListFilter{}, "", "", 10)
	require.NoError(t, err)
	require.Len(t, res.Generations, 1)
	require.Equal(t, "g1", res.Generations[0].ID)
}

// 精选流场景：分数 [9.5, 无, 8.0, 10.0, 9.0]，页大小 2 时第一页是 10.0、9.5
func TestListFeed_CuratedScenario(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeGenerationStore{}
	scores := []*float64{fptr(9.5), nil, fptr(8.0), fptr(10.0), fptr(9.0)}
	for i, sc := range scores {
		store.rows = append(store.rows, genRow(fmt.Sprintf("g%d", i+1), base.Add(time.Duration(i)*time.Hour), "image", sc))
	}

	svc := &GenerationService{repo: store, users: &fakeOwnerLookup{}}

	res, err := svc.ListFeed(context.Background(), ListFilter{}, "", "", "", 2)
	require.NoError(t, err)
	require.True(t, res.HasMore)
	require.Len(t, res.Generations, 2)
	require.Equal(t, 10.0, *res.Generations[0].Score)
	require.Equal(t, 9.5, *res.Generations[1].Score)

	res2, err := svc.ListFeed(context.Background(), ListFilter{}, "", res.NextCursor, "", 2)
	require.NoError(t, err)
	require.False(t, res2.HasMore)
	require.Len(t, res2.Generations, 1)
	require.Equal(t, 9.0, *res2.Generations[0].Score)
}

// 精选流只收至少带一条媒体的记录
func TestListFeed_RequiresMedia(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	noMedia := genRow("g1", base, "image", fptr(9.9))
	noMedia.Doc = []byte(`{"prompt":"p"}`)
	store := &fakeGenerationStore{rows: []model.Generation{
		noMedia,
		genRow("g2", base.Add(time.Hour), "image", fptr(9.1)),
	}}

	svc := &GenerationService{repo: store, users: &fakeOwnerLookup{}}
	res, err := svc.ListFeed(context.Background(), ListFilter{}, "", "", "", 10)
	require.NoError(t, err)
	require.Len(t, res.Generations, 1)
	require.Equal(t, "g2", res.Generations[0].ID)
}

// 按不存在的用户名/邮箱过滤返回空集，不是错误
func TestList_UnknownOwnerHandleYieldsEmpty(t *testing.T) {
	store := &fakeGenerationStore{rows: []model.Generation{
		genRow("g1", time.Now(), "image", nil),
	}}
	users := &fakeOwnerLookup{users: []model.User{{UID: "u1", Username: "fox", Email: "fox@x.com"}}}
	svc := &GenerationService{repo: store, users: users}

	res, err := svc.List(context.Background(), ListFilter{}, "ghost@nowhere.com", "", 10)
	require.NoError(t, err)
	require.Empty(t, res.Generations)
	require.False(t, res.HasMore)
	require.Empty(t, res.NextCursor)
}

func TestList_OwnerHandleResolvesToUID(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mine := genRow("g1", base, "image", nil)
	other := genRow("g2", base.Add(time.Minute), "image", nil)
	other.OwnerID = "u2"
	other.Doc = []byte(`{"owner":{"uid":"u2"}}`)
	store := &fakeGenerationStore{rows: []model.Generation{mine, other}}
	users := &fakeOwnerLookup{users: []model.User{{UID: "u1", Username: "fox", Email: "fox@x.com"}}}
	svc := &GenerationService{repo: store, users: users}

	for _, handle := range []string{"u1", "fox", "fox@x.com"} {
		res, err := svc.List(context.Background(), ListFilter{}, handle, "", 10)
		require.NoError(t, err)
		require.Len(t, res.Generations, 1, "handle %s", handle)
		require.Equal(t, "g1", res.Generations[0].ID)
	}
}

// 非法游标按流起点处理，不报错
func TestList_InvalidCursorStartsFromTop(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeGenerationStore{rows: []model.Generation{
		genRow("g1", base, "image", nil),
		genRow("g2", base.Add(time.Minute), "image", nil),
	}}
	svc := &GenerationService{repo: store, users: &fakeOwnerLookup{}}

	res, err := svc.List(context.Background(), ListFilter{}, "", "no-such-id", 10)
	require.NoError(t, err)
	require.Len(t, res.Generations, 2)
	require.Equal(t, "g2", res.Generations[0].ID)
}

// 过滤条件一个都不中时，扫描批数有上限
func TestList_ScanCapBoundsBatches(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeGenerationStore{}
	for i := 0; i < fetchBatchSize*(maxFetchBatches+5); i++ {
		store.rows = append(store.rows, genRow(fmt.Sprintf("g%05d", i), base.Add(time.Duration(i)*time.Second), "image", nil))
	}
	svc := &GenerationService{repo: store, users: &fakeOwnerLookup{}}

	res, err := svc.List(context.Background(), ListFilter{Kinds: []string{"nonexistent"}}, "", "", 10)
	require.NoError(t, err)
	require.Empty(t, res.Generations)
	require.False(t, res.HasMore)
	require.Equal(t, maxFetchBatches, store.calls)
}

func TestList_StoreErrorPropagates(t *testing.T) {
	store := &fakeGenerationStore{listErr: errors.New("connection reset")}
	svc := &GenerationService{repo: store, users: &fakeOwnerLookup{}}

	_, err := svc.List(context.Background(), ListFilter{}, "", "", 10)
	require.Error(t, err)
}
