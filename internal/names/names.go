// Package names suggests mock Thai full names for test data.
package names

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"house_management/internal/utils"
)

// Suggester returns up to count display names
type Suggester interface {
	Suggest(ctx context.Context, count int) []string
}

// Refresher is a Suggester that can bypass what it remembered.
type Refresher interface {
	Refresh(ctx context.Context, count int) []string
}

var fallbackNames = []string{
	"สมชาย ใจดี", "สมหญิง รักเรียน", "วิชัย กล้าหาญ", "สุดา งามตา", "ประวิทย์ มั่นคง",
}

// Fallback returns the same fixed list whatever the count
type Fallback struct{}

// Suggest returns the fixed list
func (Fallback) Suggest(_ context.Context, count int) []string {
	if count <= 0 {
		return []string{}
	}
	return append([]string(nil), fallbackNames...)
}

// Config selects and configures the provider
type Config struct {
	APIKey string        // Gemini key; empty selects Fallback
	Model  string        // Gemini model
	Redis  *redis.Client // Optional result cache
}

// New picks the live provider when a key is configured, else Fallback
func New(cfg Config) Suggester {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return Fallback{}
	}
	var s Suggester = NewGemini(cfg.APIKey, cfg.Model)
	if cfg.Redis != nil {
		s = NewCached(s, utils.NewRedisCache(cfg.Redis, "names:"), 10*time.Minute)
	}
	return s
}

func clean(in []string) []string {
	out := make([]string, 0, len(in))
	for _, n := range in {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
