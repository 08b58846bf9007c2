package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RegistrationRateLimit limits registration attempts per wallet number or IP
// using Redis if available. The promo page is public; without this a single
// client can hammer the create endpoint.
func RegistrationRateLimit(cache *redis.Client, maxPerMin int) fiber.Handler {
	if maxPerMin <= 0 {
		maxPerMin = 10
	}
	return func(c *fiber.Ctx) error {
		if cache == nil {
			return c.Next() // no-op without Redis
		}
		var req struct {
			WalletNumber string `json:"wallet_number"`
		}
		_ = c.BodyParser(&req)
		key := strings.TrimSpace(req.WalletNumber)
		if key == "" {
			key = c.IP()
		}
		cacheKey := "rl:register:" + key
		cnt, err := cache.Incr(c.UserContext(), cacheKey).Result()
		if err == nil && cnt == 1 {
			cache.Expire(c.UserContext(), cacheKey, time.Minute)
		}
		if err != nil {
			return c.Next() // fail-open on cache errors
		}
		if cnt > int64(maxPerMin) {
			return fiber.NewError(http.StatusTooManyRequests, "too many registration attempts, try again later")
		}
		return c.Next()
	}
}
