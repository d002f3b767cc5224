package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// Cache guarda respostas de listagem serializadas, agrupadas por coleção
// lógica ("appointments", "clients", ...). Toda escrita bem-sucedida numa
// coleção invalida todas as entradas dessa coleção, forçando releitura.
// Redis indisponível nunca é erro: a leitura cai direto no banco.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zerolog.Logger
}

func New(rdb *redis.Client, ttl time.Duration, log *zerolog.Logger) *Cache {
	return &Cache{rdb: rdb, ttl: ttl, log: log}
}

func entryKey(collection, key string) string {
	return "cache:" + collection + ":" + key
}

func indexKey(collection string) string {
	return "cache-index:" + collection
}

// Get desserializa a entrada em dest. Retorna false em miss ou erro.
func (c *Cache) Get(ctx context.Context, collection, key string, dest any) bool {
	if c == nil || c.rdb == nil {
		return false
	}

	b, err := c.rdb.Get(ctx, entryKey(collection, key)).Bytes()
	if err != nil {
		return false
	}

	if err := json.Unmarshal(b, dest); err != nil {
		c.log.Warn().Err(err).Str("collection", collection).Msg("cache entry corrupted")
		return false
	}

	return true
}

func (c *Cache) Set(ctx context.Context, collection, key string, v any) {
	if c == nil || c.rdb == nil {
		return
	}

	b, err := json.Marshal(v)
	if err != nil {
		return
	}

	pipe := c.rdb.Pipeline()
	pipe.Set(ctx, entryKey(collection, key), b, c.ttl)
	pipe.SAdd(ctx, indexKey(collection), entryKey(collection, key))
	pipe.Expire(ctx, indexKey(collection), c.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warn().Err(err).Str("collection", collection).Msg("cache set failed")
	}
}

// Invalidate descarta todas as entradas das coleções indicadas.
func (c *Cache) Invalidate(ctx context.Context, collections ...string) {
	if c == nil || c.rdb == nil {
		return
	}

	for _, collection := range collections {
		keys, err := c.rdb.SMembers(ctx, indexKey(collection)).Result()
		if err != nil {
			continue
		}

		keys = append(keys, indexKey(collection))
		if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
			c.log.Warn().Err(err).Str("collection", collection).Msg("cache invalidate failed")
		}
	}
}
