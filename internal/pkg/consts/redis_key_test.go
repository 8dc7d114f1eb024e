package consts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// 不同计数器家族的键前缀互不为前缀，拼接具体 id 后不会串号
func TestRedisKeyFamiliesDoNotCollide(t *testing.T) {
	prefixes := []string{
		NewsViewerLogKey,
		NewsReferralViewKey,
		NewsTransmitLogKey,
		NewsReferralShareKey,
		NewsLikeUserKey,
		NewsCommentListKey,
		SharerDailyClassKey,
		SharerDailyNewsKey,
		SharerDailyUVKey,
	}

	for i, a := range prefixes {
		assert.True(t, strings.HasSuffix(a, ":"), "前缀应以冒号结尾: %s", a)
		for j, b := range prefixes {
			if i == j {
				continue
			}
			assert.False(t, strings.HasPrefix(a, b), "%s 不应以 %s 为前缀", a, b)
		}
	}
}

func TestRankKeysDistinct(t *testing.T) {
	assert.NotEqual(t, NewsViewRankKey, NewsLikeRankKey)
	assert.NotEqual(t, NewsViewRankKey, NewsCommentRankKey)
	assert.NotEqual(t, NewsLikeRankKey, NewsCommentRankKey)
}
