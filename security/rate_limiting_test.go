package security

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Allow_FirstRequestSetsWindow(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 30)

	redisMock.ExpectIncr("ratelimit:submit:10.0.0.1").SetVal(1)
	redisMock.ExpectExpire("ratelimit:submit:10.0.0.1", time.Minute).SetVal(true)

	assert.True(t, limiter.allow(context.Background(), "10.0.0.1"))
	require.NoError(t, redisMock.ExpectationsWereMet())
}

func TestRateLimiter_Allow_UnderLimit(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 30)

	redisMock.ExpectIncr("ratelimit:submit:10.0.0.1").SetVal(30)

	assert.True(t, limiter.allow(context.Background(), "10.0.0.1"))
	require.NoError(t, redisMock.ExpectationsWereMet())
}

func TestRateLimiter_Allow_OverLimit(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 30)

	redisMock.ExpectIncr("ratelimit:submit:10.0.0.1").SetVal(31)

	assert.False(t, limiter.allow(context.Background(), "10.0.0.1"))
	require.NoError(t, redisMock.ExpectationsWereMet())
}

func TestRateLimiter_Allow_RedisErrorFailsOpen(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 30)

	redisMock.ExpectIncr("ratelimit:submit:10.0.0.1").SetErr(errors.New("connection refused"))

	assert.True(t, limiter.allow(context.Background(), "10.0.0.1"))
}

func TestRateLimiter_IsSuspiciousUserAgent(t *testing.T) {
	limiter := NewRateLimiter(nil, 30)

	tests := []struct {
		ua   string
		want bool
	}{
		{"Mozilla/5.0 (X11; Linux x86_64) Firefox/128.0", false},
		{"Googlebot/2.1 (+http://www.google.com/bot.html)", true},
		{"my-crawler/1.0", true},
		{"SpiderMonkey", true},
		{"price-scraper", true},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, limiter.isSuspiciousUserAgent(tt.ua), tt.ua)
	}
}
