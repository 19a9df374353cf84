package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrLimiter возвращается, если Redis недоступен или вернул неожиданный ответ
var ErrLimiter = errors.New("ratelimit: limiter error")

const (
	defaultLimit  = 5
	defaultWindow = 10 * time.Minute
	defaultPrefix = "booking:submit"
)

// fixedWindowScript атомарно увеличивает счетчик окна и выставляет TTL при первом обращении
var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// SubmissionLimiter ограничивает число отправок формы записи с одного адреса в окно времени
// Счетчики хранятся в Redis, поэтому ограничение общее для всех экземпляров сервиса
type SubmissionLimiter struct {
	rdb    redis.Scripter
	limit  int
	window time.Duration
	prefix string
}

// NewSubmissionLimiter создает ограничитель. Неположительные значения заменяются значениями по умолчанию
func NewSubmissionLimiter(rdb redis.Scripter, limit int, window time.Duration, prefix string) *SubmissionLimiter {
	if limit <= 0 {
		limit = defaultLimit
	}
	if window <= 0 {
		window = defaultWindow
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &SubmissionLimiter{rdb: rdb, limit: limit, window: window, prefix: prefix}
}

// Allow учитывает попытку отправки и возвращает false, если лимит окна превышен
func (l *SubmissionLimiter) Allow(ctx context.Context, projectID, clientKey string) (bool, error) {
	key := l.prefix + ":" + projectID + ":" + clientKey

	count, err := l.incr(ctx, key)
	if err != nil {
		return false, err
	}

	return count <= int64(l.limit), nil
}

func (l *SubmissionLimiter) incr(ctx context.Context, key string) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, l.rdb, []string{key}, l.window.Milliseconds()).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrLimiter, err)
	}

	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrLimiter, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: unexpected script result type %T", ErrLimiter, res)
	}
}
