package postservice

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/febriandika/postfolio/internal/common"
)

func setupTestEnvironment(t *testing.T) (*PostService, func() error) {
	t.Helper()

	db := common.TestDB("file://../../migrations", t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM posts")
		return err
	}

	return NewPostService(db, nil, logger), cleanup
}

func TestCreatePost(t *testing.T) {
	s, cleanup := setupTestEnvironment(t)

	testCases := []struct {
		name        string
		req         *CreatePostRequest
		expectedErr error
	}{
		{
			name: "valid post with sections",
			req: &CreatePostRequest{
				Title:       "Test Post",
				Content:     "This is a test post.",
				Description: "A summary",
				Category:    "go",
				ContentSections: []SectionInput{
					{Type: SectionText, Content: "a"},
					{Type: SectionImage, Src: "http://x/y.png"},
				},
			},
			expectedErr: nil,
		},
		{
			name: "client-supplied order values are ignored",
			req: &CreatePostRequest{
				Title: "Ordered Post",
				ContentSections: []SectionInput{
					{Type: SectionText, Content: "first", Order: 99},
					{Type: SectionCode, Content: "second", Order: 5},
					{Type: SectionVideo, Src: "http://x/v.mp4", Order: 0},
				},
			},
			expectedErr: nil,
		},
		{
			name: "post without sections",
			req: &CreatePostRequest{
				Title: "Bare Post",
			},
			expectedErr: nil,
		},
		{
			name: "missing title",
			req: &CreatePostRequest{
				Content: "no title here",
				ContentSections: []SectionInput{
					{Type: SectionText, Content: "a"},
				},
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"title": "must be provided"}},
		},
		{
			name: "section missing type",
			req: &CreatePostRequest{
				Title: "Broken Sections",
				ContentSections: []SectionInput{
					{Content: "a"},
				},
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"contentSections[0].type": "must be provided"}},
		},
		{
			name: "unknown section type",
			req: &CreatePostRequest{
				Title: "Broken Sections",
				ContentSections: []SectionInput{
					{Type: "gif", Src: "http://x/y.gif"},
				},
			},
			expectedErr: common.ValidationError{Errors: map[string]string{"contentSections[0].type": "must be one of text, image, code, video"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			defer cleanup()

			before, err := s.m.countPosts(context.Background())
			assert.NoError(t, err)

			post, err := s.CreatePost(context.Background(), tc.req)

			if tc.expectedErr != nil {
				assert.Equal(t, tc.expectedErr, err)

				// a rejected create must not persist anything
				after, err := s.m.countPosts(context.Background())
				assert.NoError(t, err)
				assert.Equal(t, before, after)
				return
			}

			assert.NoError(t, err)
			assert.NotZero(t, post.ID)
			assert.Equal(t, tc.req.Title, post.Title)
			assert.Equal(t, 0, post.Views)
			assert.False(t, post.CreatedAt.IsZero())
			assert.Len(t, post.Sections, len(tc.req.ContentSections))

			// positions follow the submitted order, 0..N-1
			for i, section := range post.Sections {
				assert.Equal(t, i, section.Order)
				assert.Equal(t, post.ID, section.PostID)
				assert.Equal(t, tc.req.ContentSections[i].Type, section.Type)
				assert.Equal(t, tc.req.ContentSections[i].Content, section.Content)
				assert.Equal(t, tc.req.ContentSections[i].Src, section.Src)
				assert.NotZero(t, section.ID)
			}
		})
	}
}

func TestGetPostByID(t *testing.T) {
	s, cleanup := setupTestEnvironment(t)
	defer cleanup()

	created, err := s.CreatePost(context.Background(), &CreatePostRequest{
		Title:    "Test Post",
		Content:  "body",
		Category: "go",
		ContentSections: []SectionInput{
			{Type: SectionText, Content: "a"},
			{Type: SectionImage, Src: "http://x/y.png"},
		},
	})
	assert.NoError(t, err)

	post, err := s.GetPostByID(context.Background(), created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, post.ID)
	assert.Equal(t, "Test Post", post.Title)
	assert.Len(t, post.Sections, 2)

	assert.Equal(t, SectionText, post.Sections[0].Type)
	assert.Equal(t, "a", post.Sections[0].Content)
	assert.Equal(t, 0, post.Sections[0].Order)

	assert.Equal(t, SectionImage, post.Sections[1].Type)
	assert.Equal(t, "http://x/y.png", post.Sections[1].Src)
	assert.Equal(t, 1, post.Sections[1].Order)

	t.Run("unknown id", func(t *testing.T) {
		post, err := s.GetPostByID(context.Background(), created.ID+1000)
		assert.Nil(t, post)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		post, err := s.GetPostByID(context.Background(), 0)
		assert.Nil(t, post)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestGetPosts(t *testing.T) {
	s, cleanup := setupTestEnvironment(t)
	defer cleanup()

	first, err := s.CreatePost(context.Background(), &CreatePostRequest{
		Title: "Older Post",
		ContentSections: []SectionInput{
			{Type: SectionText, Content: "a"},
		},
	})
	assert.NoError(t, err)

	second, err := s.CreatePost(context.Background(), &CreatePostRequest{
		Title: "Newer Post",
	})
	assert.NoError(t, err)

	posts, err := s.GetPosts(context.Background())
	assert.NoError(t, err)
	assert.Len(t, posts, 2)

	// newest first
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)

	assert.Empty(t, posts[0].Sections)
	assert.Len(t, posts[1].Sections, 1)
	assert.Equal(t, "a", posts[1].Sections[0].Content)
}

func TestIncrementViews(t *testing.T) {
	s, cleanup := setupTestEnvironment(t)
	defer cleanup()

	created, err := s.CreatePost(context.Background(), &CreatePostRequest{Title: "Counted Post"})
	assert.NoError(t, err)
	assert.Equal(t, 0, created.Views)

	views, err := s.IncrementViews(context.Background(), created.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, views)

	t.Run("concurrent increments lose no updates", func(t *testing.T) {
		const increments = 10

		var wg sync.WaitGroup
		for i := 0; i < increments; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.IncrementViews(context.Background(), created.ID)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		post, err := s.GetPostByID(context.Background(), created.ID)
		assert.NoError(t, err)
		assert.Equal(t, 1+increments, post.Views)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := s.IncrementViews(context.Background(), created.ID+1000)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}
