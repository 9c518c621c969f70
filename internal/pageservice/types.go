package pageservice

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/febriandika/postfolio/internal/common"
	"github.com/febriandika/postfolio/internal/postservice"
)

// PostProvider is the slice of the post repository the page generator needs.
type PostProvider interface {
	GetPosts(ctx context.Context) ([]postservice.Post, error)
	GetPostByID(ctx context.Context, id int) (*postservice.Post, error)
}

type PageService struct {
	posts      PostProvider
	cache      *common.Cache
	logger     pageLogger
	group      singleflight.Group
	revalidate time.Duration
	now        func() time.Time
}

type pageLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

// ListPage is the materialized list page: the full post set, the category
// row shown above it, and the rendered HTML.
type ListPage struct {
	Posts       []postservice.Post
	Categories  []string
	HTML        []byte
	GeneratedAt time.Time
}

// DetailPage is one generated detail page. NotFound pages are cached like any
// other result so unknown ids do not hit the store on every request.
type DetailPage struct {
	Post        *postservice.Post
	NotFound    bool
	HTML        []byte
	GeneratedAt time.Time
}
