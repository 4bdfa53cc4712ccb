package memory

import (
	"notion-agent-be/pkg/notion"

	"github.com/patrickmn/go-cache"
)

// UserRepository caches resolved Notion user identities for the duration
// of one page fetch. A fresh instance is created per fetch and discarded
// afterwards; it is never shared across requests.
type UserRepository struct {
	cache *cache.Cache
}

func NewUserRepository() *UserRepository {
	// No expiration and no janitor: the repository lives for one fetch only.
	c := cache.New(cache.NoExpiration, 0)
	return &UserRepository{
		cache: c,
	}
}

func (r *UserRepository) Save(user *notion.User) {
	r.cache.Set(user.Id, user, cache.DefaultExpiration)
}

func (r *UserRepository) Get(userId string) (*notion.User, bool) {
	if x, found := r.cache.Get(userId); found {
		return x.(*notion.User), true
	}
	return nil, false
}
