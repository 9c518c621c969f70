package postservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/febriandika/postfolio/internal/common"
)

func NewPostService(db *sql.DB, mb common.MessageProducer, logger *slog.Logger) *PostService {
	return &PostService{m: newPostModel(db), mb: mb, logger: logger}
}

// SectionInput is one section as submitted by the author. Any client-supplied
// order value is ignored: the stored position always comes from the slice
// index.
type SectionInput struct {
	Type    SectionType `json:"type"`
	Content string      `json:"content"`
	Src     string      `json:"src"`
	Order   int         `json:"order"`
}

type CreatePostRequest struct {
	Title           string         `json:"title"`
	Content         string         `json:"content"`
	Description     string         `json:"description"`
	Image           string         `json:"image"`
	Category        string         `json:"category"`
	ContentSections []SectionInput `json:"contentSections"`
}

// CreatePost persists a post and its sections atomically and returns the
// stored post, including the assigned id and section positions. A post.created
// event is published afterwards; publish failures are logged but do not fail
// the creation.
func (s *PostService) CreatePost(ctx context.Context, req *CreatePostRequest) (*Post, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateSections(v, req.ContentSections)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	post := Post{
		Title:       req.Title,
		Content:     req.Content,
		Description: req.Description,
		Image:       req.Image,
		Category:    req.Category,
		Sections:    make([]ContentSection, len(req.ContentSections)),
	}
	for i, section := range req.ContentSections {
		post.Sections[i] = ContentSection{
			Type:    section.Type,
			Content: section.Content,
			Src:     section.Src,
		}
	}

	err := s.m.insert(ctx, &post)
	if err != nil {
		return nil, err
	}

	s.publishPostCreated(ctx, &post)

	return &post, nil
}

func (s *PostService) publishPostCreated(ctx context.Context, post *Post) {
	if s.mb == nil {
		return
	}

	data := struct {
		ID       int    `json:"id"`
		Title    string `json:"title"`
		Category string `json:"category"`
	}{
		ID:       post.ID,
		Title:    post.Title,
		Category: post.Category,
	}

	msg, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("could not marshal post.created event", slog.String("error", err.Error()))
		return
	}

	err = s.mb.Publish(ctx, msg, common.PostCreatedKey, common.PostExchange)
	if err != nil {
		s.logger.Error("could not publish post.created event", slog.Int("post_id", post.ID), slog.String("error", err.Error()))
	}
}

// GetPosts returns every post with its ordered sections, newest first.
func (s *PostService) GetPosts(ctx context.Context) ([]Post, error) {
	return s.m.getPosts(ctx)
}

// GetPostByID returns a post by its ID with sections ordered ascending.
func (s *PostService) GetPostByID(ctx context.Context, id int) (*Post, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	return s.m.getPostById(ctx, id)
}

// IncrementViews adds 1 to the view counter of the given post and returns the
// new count. Safe under concurrent calls.
func (s *PostService) IncrementViews(ctx context.Context, id int) (int, error) {
	return s.m.incrementViews(ctx, id)
}
