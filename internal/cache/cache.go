package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/fisiogest/physio-scheduler/internal/config"
)

const defaultTTL = 5 * time.Minute

// Client es un cache de lecturas opcional sobre Redis. Las escrituras de
// citas y pagos invalidan las claves afectadas; cualquier fallo de Redis
// degrada a leer de la base de datos.
type Client struct {
	rdb *redis.Client
}

func New(cfg *config.Config) *Client {
	if cfg.RedisAddr == "" {
		return &Client{}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	return &Client{rdb: rdb}
}

func (c *Client) Enabled() bool {
	return c != nil && c.rdb != nil
}

// GetJSON devuelve true si la clave existía y se pudo decodificar en dest
func (c *Client) GetJSON(ctx context.Context, key string, dest any) bool {
	if !c.Enabled() {
		return false
	}

	raw, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Println("cache get error:", err)
		}
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false
	}
	return true
}

func (c *Client) SetJSON(ctx context.Context, key string, val any) {
	if !c.Enabled() {
		return
	}

	raw, err := json.Marshal(val)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, key, raw, defaultTTL).Err(); err != nil {
		log.Println("cache set error:", err)
	}
}

func (c *Client) Invalidate(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Println("cache invalidate error:", err)
	}
}

// ===============================
// Keys
// ===============================

func ScheduleKey(therapistID uuid.UUID, day string) string {
	return fmt.Sprintf("schedule:%s:%s", therapistID, day)
}

func StatsKey(therapistID uuid.UUID) string {
	return fmt.Sprintf("stats:%s", therapistID)
}
