package postservice

import (
	"context"
	"database/sql"
	"errors"
)

var ErrRecordNotFound = errors.New("record not found")

func newPostModel(db *sql.DB) *PostModel {
	return &PostModel{db: db}
}

// insert stores a post and its sections as a single transaction. The section
// positions are taken from the slice order, so a post is never visible with a
// partial or misnumbered section list.
func (m *PostModel) insert(ctx context.Context, post *Post) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO posts (title, content, description, image, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, views, created_at, updated_at`

	err = tx.QueryRowContext(ctx, query, post.Title, post.Content, post.Description, post.Image, post.Category).Scan(&post.ID, &post.Views, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return err
	}

	sectionQuery := `
		INSERT INTO content_sections (post_id, type, content, src, position)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	for i := range post.Sections {
		section := &post.Sections[i]
		section.PostID = post.ID
		section.Order = i

		err = tx.QueryRowContext(ctx, sectionQuery, post.ID, section.Type, section.Content, section.Src, section.Order).Scan(&section.ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// getPostById returns a post with its sections ordered ascending by position.
func (m *PostModel) getPostById(ctx context.Context, id int) (*Post, error) {
	query := `
		SELECT id, title, content, description, image, category, views, created_at, updated_at
		FROM posts
		WHERE id = $1`

	var post Post
	err := m.db.QueryRowContext(ctx, query, id).Scan(&post.ID, &post.Title, &post.Content, &post.Description, &post.Image, &post.Category, &post.Views, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	sections, err := m.getSections(ctx, id)
	if err != nil {
		return nil, err
	}
	post.Sections = sections

	return &post, nil
}

func (m *PostModel) getSections(ctx context.Context, postID int) ([]ContentSection, error) {
	query := `
		SELECT id, post_id, type, content, src, position
		FROM content_sections
		WHERE post_id = $1
		ORDER BY position ASC`

	rows, err := m.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sections := []ContentSection{}
	for rows.Next() {
		var s ContentSection
		err := rows.Scan(&s.ID, &s.PostID, &s.Type, &s.Content, &s.Src, &s.Order)
		if err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}

	return sections, rows.Err()
}

// getPosts returns every post, newest first, each with its ordered sections.
// The sections for all posts are fetched in one query and grouped in memory.
func (m *PostModel) getPosts(ctx context.Context) ([]Post, error) {
	query := `
		SELECT id, title, content, description, image, category, views, created_at, updated_at
		FROM posts
		ORDER BY created_at DESC, id DESC`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []Post{}
	index := map[int]int{}
	for rows.Next() {
		var post Post
		err := rows.Scan(&post.ID, &post.Title, &post.Content, &post.Description, &post.Image, &post.Category, &post.Views, &post.CreatedAt, &post.UpdatedAt)
		if err != nil {
			return nil, err
		}
		post.Sections = []ContentSection{}
		index[post.ID] = len(posts)
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sectionQuery := `
		SELECT id, post_id, type, content, src, position
		FROM content_sections
		ORDER BY post_id, position ASC`

	sectionRows, err := m.db.QueryContext(ctx, sectionQuery)
	if err != nil {
		return nil, err
	}
	defer sectionRows.Close()

	for sectionRows.Next() {
		var s ContentSection
		err := sectionRows.Scan(&s.ID, &s.PostID, &s.Type, &s.Content, &s.Src, &s.Order)
		if err != nil {
			return nil, err
		}
		if i, ok := index[s.PostID]; ok {
			posts[i].Sections = append(posts[i].Sections, s)
		}
	}

	return posts, sectionRows.Err()
}

// incrementViews adds exactly 1 to the stored counter in a single UPDATE so
// concurrent calls cannot lose updates.
func (m *PostModel) incrementViews(ctx context.Context, id int) (int, error) {
	query := `
		UPDATE posts
		SET views = views + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING views`

	var views int
	err := m.db.QueryRowContext(ctx, query, id).Scan(&views)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return 0, ErrRecordNotFound
		default:
			return 0, err
		}
	}

	return views, nil
}

// countPosts is used by tests to assert that failed creates leave no rows.
func (m *PostModel) countPosts(ctx context.Context) (int, error) {
	var count int
	err := m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count)
	return count, err
}
