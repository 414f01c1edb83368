package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func filterCtx(t *testing.T, query string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/generations?"+query, nil)
	return c, w
}

func TestParseListFilter_Kinds(t *testing.T) {
	// 重复参数和逗号分隔混用都收
	c, _ := filterCtx(t, "kind=image,video&kind=music&kind=%20")
	f, _, ok := parseListFilter(c)
	require.True(t, ok)
	require.Equal(t, []string{"image", "video", "music"}, f.Kinds)
}

func TestParseListFilter_ScalarFields(t *testing.T) {
	c, _ := filterCtx(t, "model=sdxl&status=done&search=castle&owner=fox&unscoredOnly=true&minScore=8.5&maxScore=10")
	f, owner, ok := parseListFilter(c)
	require.True(t, ok)
	require.Equal(t, "sdxl", f.Model)
	require.Equal(t, "done", f.Status)
	require.Equal(t, "castle", f.Search)
	require.Equal(t, "fox", owner)
	require.True(t, f.UnscoredOnly)
	require.Equal(t, 8.5, *f.MinScore)
	require.Equal(t, 10.0, *f.MaxScore)
}

func TestParseListFilter_DateRange(t *testing.T) {
	c, _ := filterCtx(t, "dateStart=2024-05-01&dateEnd=2024-05-31")
	f, _, ok := parseListFilter(c)
	require.True(t, ok)
	require.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), *f.DateStart)
	// 结束日取到当天最后一纳秒，两端都含当天
	require.Equal(t, time.Date(2024, 5, 31, 23, 59, 59, 999999999, time.UTC), *f.DateEnd)
}

func TestParseListFilter_RFC3339Dates(t *testing.T) {
	c, _ := filterCtx(t, "dateStart=2024-05-01T12%3A00%3A00Z")
	f, _, ok := parseListFilter(c)
	require.True(t, ok)
	require.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), *f.DateStart)
}

func TestParseListFilter_BadParams(t *testing.T) {
	cases := []string{
		"dateStart=yesterday",
		"dateEnd=31-05-2024",
		"minScore=high",
		"maxScore=ten",
	}
	for _, q := range cases {
		c, w := filterCtx(t, q)
		_, _, ok := parseListFilter(c)
		require.False(t, ok, "query %q", q)
		require.Equal(t, http.StatusBadRequest, w.Code, "query %q", q)
	}
}

func TestParseListFilter_Empty(t *testing.T) {
	c, _ := filterCtx(t, "")
	f, owner, ok := parseListFilter(c)
	require.True(t, ok)
	require.Empty(t, f.Kinds)
	require.Empty(t, owner)
	require.Nil(t, f.DateStart)
	require.Nil(t, f.MinScore)
	require.False(t, f.UnscoredOnly)
}
