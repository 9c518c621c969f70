package pageservice

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/febriandika/postfolio/internal/common"
	"github.com/febriandika/postfolio/internal/postservice"
)

// DefaultRevalidate is the minimum wall-time between regenerations of any one
// page. Stale pages are served while a background regeneration runs.
const DefaultRevalidate = 60 * time.Second

func NewPageService(posts PostProvider, cache *common.Cache, logger *slog.Logger, revalidate time.Duration) *PageService {
	if revalidate <= 0 {
		revalidate = DefaultRevalidate
	}

	return &PageService{
		posts:      posts,
		cache:      cache,
		logger:     logger,
		revalidate: revalidate,
		now:        time.Now,
	}
}

// ListPage returns the cached list page, generating it on first use. A page
// older than the revalidation window is returned as-is while one background
// regeneration refreshes the cache.
func (s *PageService) ListPage(ctx context.Context) (*ListPage, error) {
	key := common.CacheKeyListPage()

	if v, ok := s.cache.Get(key); ok {
		page := v.(*ListPage)
		if s.now().Sub(page.GeneratedAt) >= s.revalidate {
			s.refreshInBackground(key, func(ctx context.Context) error {
				_, err := s.generateListPage(ctx)
				return err
			})
		}
		return page, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.generateListPage(ctx)
	})
	if err != nil {
		return nil, err
	}

	return v.(*ListPage), nil
}

func (s *PageService) generateListPage(ctx context.Context) (*ListPage, error) {
	posts, err := s.posts.GetPosts(ctx)
	if err != nil {
		return nil, err
	}

	page := &ListPage{
		Posts:       posts,
		Categories:  Categories(posts),
		GeneratedAt: s.now(),
	}

	html, err := s.renderList(page, Filter{})
	if err != nil {
		return nil, err
	}
	page.HTML = html

	s.cache.Set(common.CacheKeyListPage(), page)
	return page, nil
}

// DetailPage returns the cached detail page for id. Ids unknown at build time
// are generated on first request: concurrent requesters share a single
// generation and all block until it completes. An unknown id resolves to a
// cached not-found page under the same revalidation policy.
func (s *PageService) DetailPage(ctx context.Context, id int) (*DetailPage, error) {
	key := common.CacheKeyDetailPage(id)

	if v, ok := s.cache.Get(key); ok {
		page := v.(*DetailPage)
		if s.now().Sub(page.GeneratedAt) >= s.revalidate {
			s.refreshInBackground(key, func(ctx context.Context) error {
				_, err := s.generateDetailPage(ctx, id)
				return err
			})
		}
		return page, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.generateDetailPage(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	return v.(*DetailPage), nil
}

func (s *PageService) generateDetailPage(ctx context.Context, id int) (*DetailPage, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, postservice.ErrRecordNotFound) {
			page := &DetailPage{NotFound: true, GeneratedAt: s.now()}
			html, renderErr := RenderNotFound()
			if renderErr != nil {
				return nil, renderErr
			}
			page.HTML = html
			s.cache.Set(common.CacheKeyDetailPage(id), page)
			return page, nil
		}
		return nil, err
	}

	page := &DetailPage{
		Post:        post,
		GeneratedAt: s.now(),
	}

	html, err := s.renderDetail(post)
	if err != nil {
		return nil, err
	}
	page.HTML = html

	s.cache.Set(common.CacheKeyDetailPage(id), page)
	return page, nil
}

// refreshInBackground regenerates one page without blocking the caller. The
// singleflight key keeps concurrent stale hits from starting more than one
// regeneration; a failed regeneration keeps the stale entry and is logged.
func (s *PageService) refreshInBackground(key string, generate func(ctx context.Context) error) {
	go func() {
		_, err, _ := s.group.Do("refresh:"+key, func() (any, error) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return nil, generate(ctx)
		})
		if err != nil {
			s.logger.Error("page regeneration failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}()
}

// Prime pre-generates the list page and the detail page of every post known
// at startup, the equivalent of a build-time render. Ids that appear later
// are handled by the fallback path in DetailPage.
func (s *PageService) Prime(ctx context.Context) error {
	page, err := s.ListPage(ctx)
	if err != nil {
		return err
	}

	for _, post := range page.Posts {
		if _, err := s.DetailPage(ctx, post.ID); err != nil {
			s.logger.Error("could not pre-generate detail page", slog.String("id", strconv.Itoa(post.ID)), slog.String("error", err.Error()))
		}
	}

	return nil
}
