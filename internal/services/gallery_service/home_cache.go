package services

import (
	"time"

	"photo_vitrine/internal/transport/http/dto"

	gocache "github.com/patrickmn/go-cache"
)

const homepageKey = "homepage"

// HomeCache кэширует собранную главную страницу. Workflow сбрасывает
// кэш при каждом изменении видимости, поэтому TTL здесь страховочный.
type HomeCache struct {
	cache *gocache.Cache
}

func NewHomeCache(ttl time.Duration) *HomeCache {
	return &HomeCache{cache: gocache.New(ttl, 2*ttl)}
}

func (c *HomeCache) Get() ([]dto.GalleryResponse, bool) {
	v, ok := c.cache.Get(homepageKey)
	if !ok {
		return nil, false
	}
	galleries, ok := v.([]dto.GalleryResponse)
	return galleries, ok
}

func (c *HomeCache) Set(galleries []dto.GalleryResponse) {
	c.cache.Set(homepageKey, galleries, gocache.DefaultExpiration)
}

func (c *HomeCache) Reset() {
	c.cache.Flush()
}
