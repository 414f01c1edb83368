package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"Aurora_Admin/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeScoreStore struct {
	rows        map[string]*model.Generation
	showcaseErr error

	updates  map[string]*float64
	mirrored map[string]*float64
}

func newFakeScoreStore(rows ...*model.Generation) *fakeScoreStore {
	s := &fakeScoreStore{
		rows:     map[string]*model.Generation{},
		updates:  map[string]*float64{},
		mirrored: map[string]*float64{},
	}
	for _, r := range rows {
		s.rows[r.ID] = r
	}
	return s
}

func (s *fakeScoreStore) FindByID(_ context.Context, id string) (*model.Generation, error) {
	row, ok := s.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (s *fakeScoreStore) UpdateScore(_ context.Context, id string, score *float64, doc []byte) error {
	row, ok := s.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	row.Score = score
	row.Doc = doc
	s.updates[id] = score
	return nil
}

func (s *fakeScoreStore) UpdateShowcaseScore(_ context.Context, _, generationID string, score *float64) error {
	if s.showcaseErr != nil {
		return s.showcaseErr
	}
	s.mirrored[generationID] = score
	return nil
}

type auditEntry struct {
	AdminEmail string
	Action     string
	TargetUID  string
	Details    map[string]any
}

type fakeAudit struct {
	entries []auditEntry
}

func (a *fakeAudit) Record(_ context.Context, adminEmail, action, targetUID string, details map[string]any) {
	a.entries = append(a.entries, auditEntry{adminEmail, action, targetUID, details})
}

func scoreRow(id string, score *float64, doc string) *model.Generation {
	return &model.Generation{ID: id, OwnerID: "u1", Kind: "image", Score: score, IsPublic: true, Doc: []byte(doc)}
}

func TestSetScore_BandBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		ok    bool
	}{
		{8.0, true},
		{10.0, true},
		{7.9, false},
		{10.1, false},
	}
	for _, tc := range cases {
		store := newFakeScoreStore(scoreRow("g1", nil, `{"prompt":"p"}`))
		svc := &ScoreService{repo: store, audit: &fakeAudit{}}
		err := svc.SetScore(context.Background(), "a@x.com", "g1", tc.score, GenerationScoreMin, GenerationScoreMax)
		if tc.ok {
			require.NoError(t, err, "score %v", tc.score)
			require.Equal(t, tc.score, *store.rows["g1"].Score)
		} else {
			require.ErrorIs(t, err, ErrScoreOutOfBand, "score %v", tc.score)
			require.Empty(t, store.updates)
		}
	}
}

func TestSetScore_ArtStationBandIsTighter(t *testing.T) {
	store := newFakeScoreStore(scoreRow("g1", nil, `{}`))
	svc := &ScoreService{repo: store, audit: &fakeAudit{}}

	// 8.5 审核端能过，ArtStation 端过不了
	require.NoError(t, svc.SetScore(context.Background(), "a@x.com", "g1", 8.5, GenerationScoreMin, GenerationScoreMax))
	require.ErrorIs(t, svc.SetScore(context.Background(), "a@x.com", "g1", 8.5, ArtStationScoreMin, ArtStationScoreMax), ErrScoreOutOfBand)
}

func TestSetScore_MissingAndDeleted(t *testing.T) {
	deleted := scoreRow("g2", nil, `{}`)
	deleted.IsDeleted = true
	store := newFakeScoreStore(deleted)
	svc := &ScoreService{repo: store, audit: &fakeAudit{}}

	require.ErrorIs(t, svc.SetScore(context.Background(), "a@x.com", "missing", 9, GenerationScoreMin, GenerationScoreMax), ErrNotFound)
	require.ErrorIs(t, svc.SetScore(context.Background(), "a@x.com", "g2", 9, GenerationScoreMin, GenerationScoreMax), ErrNotFound)
}

// 作者副本写失败不影响主流程
func TestSetScore_ShowcaseFailureTolerated(t *testing.T) {
	store := newFakeScoreStore(scoreRow("g1", nil, `{}`))
	store.showcaseErr = errors.New("duplicate entry")
	audit := &fakeAudit{}
	svc := &ScoreService{repo: store, audit: audit}

	require.NoError(t, svc.SetScore(context.Background(), "a@x.com", "g1", 9, GenerationScoreMin, GenerationScoreMax))
	require.Len(t, audit.entries, 1)
}

func TestSetScore_AuditDetails(t *testing.T) {
	store := newFakeScoreStore(scoreRow("g1", fptr(8.0), `{"score":8}`))
	audit := &fakeAudit{}
	svc := &ScoreService{repo: store, audit: audit}

	require.NoError(t, svc.SetScore(context.Background(), "a@x.com", "g1", 9.5, GenerationScoreMin, GenerationScoreMax))
	require.Len(t, audit.entries, 1)
	e := audit.entries[0]
	require.Equal(t, "a@x.com", e.AdminEmail)
	require.Equal(t, "generation.score", e.Action)
	require.Equal(t, "u1", e.TargetUID)
	require.Equal(t, "g1", e.Details["generationId"])
	require.Equal(t, 8.0, *e.Details["prior"].(*float64))
	require.Equal(t, 9.5, e.Details["new"])
}

func TestClearScore(t *testing.T) {
	store := newFakeScoreStore(scoreRow("g1", fptr(9.0), `{"score":9,"images":[{"url":"a.jpg","score":9}]}`))
	audit := &fakeAudit{}
	svc := &ScoreService{repo: store, audit: audit}

	require.NoError(t, svc.ClearScore(context.Background(), "a@x.com", "g1"))
	require.Nil(t, store.rows["g1"].Score)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(store.rows["g1"].Doc, &doc))
	_, has := doc["score"]
	require.False(t, has)
	img := doc["images"].([]any)[0].(map[string]any)
	_, has = img["score"]
	require.False(t, has)

	require.Equal(t, "generation.unscore", audit.entries[0].Action)
}

// 批量打分逐条出结果，坏的不拖累好的
func TestBulkSetScore_PerItemResults(t *testing.T) {
	store := newFakeScoreStore(
		scoreRow("g1", nil, `{}`),
		scoreRow("g3", nil, `{}`),
	)
	svc := &ScoreService{repo: store, audit: &fakeAudit{}}

	results := svc.BulkSetScore(context.Background(), "a@x.com", []string{"g1", "g2", "g3"}, 9, GenerationScoreMin, GenerationScoreMax)
	require.Len(t, results, 3)
	require.Equal(t, BulkResult{ID: "g1", Success: true}, results[0])
	require.Equal(t, BulkResult{ID: "g2", Error: "Not found"}, results[1])
	require.Equal(t, BulkResult{ID: "g3", Success: true}, results[2])
}

func TestBulkSetScore_OutOfBandMessage(t *testing.T) {
	store := newFakeScoreStore(scoreRow("g1", nil, `{}`))
	svc := &ScoreService{repo: store, audit: &fakeAudit{}}

	results := svc.BulkSetScore(context.Background(), "a@x.com", []string{"g1"}, 5, GenerationScoreMin, GenerationScoreMax)
	require.Equal(t, []BulkResult{{ID: "g1", Error: "Score out of band"}}, results)
}

func TestApplyScoreToDoc(t *testing.T) {
	t.Run("mirrors to first unscored image", func(t *testing.T) {
		raw := []byte(`{"prompt":"p","images":[{"url":"a.jpg","score":7},{"url":"b.jpg"}],"videos":[{"url":"v.mp4"}]}`)
		var doc map[string]any
		require.NoError(t, json.Unmarshal(applyScoreToDoc(raw, fptr(9.0)), &doc))

		require.Equal(t, 9.0, doc["score"])
		images := doc["images"].([]any)
		require.Equal(t, 7.0, images[0].(map[string]any)["score"])
		require.Equal(t, 9.0, images[1].(map[string]any)["score"])
		// 图片接住了，视频不动
		_, has := doc["videos"].([]any)[0].(map[string]any)["score"]
		require.False(t, has)
		// 未知字段保留
		require.Equal(t, "p", doc["prompt"])
	})

	t.Run("falls back to video when all images scored", func(t *testing.T) {
		raw := []byte(`{"images":[{"url":"a.jpg","score":7}],"videos":[{"url":"v.mp4"}]}`)
		var doc map[string]any
		require.NoError(t, json.Unmarshal(applyScoreToDoc(raw, fptr(9.0)), &doc))
		require.Equal(t, 9.0, doc["videos"].([]any)[0].(map[string]any)["score"])
	})

	t.Run("clear removes top and media scores", func(t *testing.T) {
		raw := []byte(`{"score":9,"images":[{"url":"a.jpg","score":9}],"videos":[{"url":"v.mp4","score":9}]}`)
		var doc map[string]any
		require.NoError(t, json.Unmarshal(applyScoreToDoc(raw, nil), &doc))
		_, has := doc["score"]
		require.False(t, has)
		_, has = doc["images"].([]any)[0].(map[string]any)["score"]
		require.False(t, has)
		_, has = doc["videos"].([]any)[0].(map[string]any)["score"]
		require.False(t, has)
	})

	t.Run("unparsable doc returned untouched", func(t *testing.T) {
		raw := []byte(`{not json`)
		require.Equal(t, raw, applyScoreToDoc(raw, fptr(9.0)))
	})

	t.Run("empty doc gets score field", func(t *testing.T) {
		var doc map[string]any
		require.NoError(t, json.Unmarshal(applyScoreToDoc(nil, fptr(9.0)), &doc))
		require.Equal(t, 9.0, doc["score"])
	})
}
