package shared

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFor(t *testing.T, rawQuery string) PageParams {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return ParsePageParams(c, 20, 100)
}

func TestParsePageParams(t *testing.T) {
	tests := []struct {
		query    string
		wantPage int
		wantSize int
	}{
		{"", 1, 20},
		{"page=3&size=50", 3, 50},
		{"page=0&size=0", 1, 20},
		{"page=-2&size=-5", 1, 20},
		{"size=500", 1, 100},
		{"page=abc&size=xyz", 1, 20},
	}
	for _, tt := range tests {
		got := paramsFor(t, tt.query)
		assert.Equal(t, tt.wantPage, got.Page, tt.query)
		assert.Equal(t, tt.wantSize, got.Size, tt.query)
	}
}

func TestPageParamsOffset(t *testing.T) {
	assert.Equal(t, 0, PageParams{Page: 1, Size: 20}.Offset())
	assert.Equal(t, 40, PageParams{Page: 3, Size: 20}.Offset())
}
