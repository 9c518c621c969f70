package postservice

import (
	"database/sql"
	"time"

	"github.com/febriandika/postfolio/internal/common"
)

// SectionType is the closed set of content section variants. The type decides
// which payload field carries meaning: Content for text and code, Src for
// image and video. The other field may still be stored but is ignored by
// consumers.
type SectionType string

const (
	SectionText  SectionType = "text"
	SectionImage SectionType = "image"
	SectionCode  SectionType = "code"
	SectionVideo SectionType = "video"
)

func (t SectionType) IsValid() bool {
	switch t {
	case SectionText, SectionImage, SectionCode, SectionVideo:
		return true
	}
	return false
}

type ContentSection struct {
	ID      int         `json:"id"`
	PostID  int         `json:"postId"`
	Type    SectionType `json:"type"`
	Content string      `json:"content"`
	Src     string      `json:"src"`
	// Order is the 0-based rendering position within the post, assigned from
	// the submitted section list at creation time and never renumbered.
	Order int `json:"order"`
}

type Post struct {
	ID          int              `json:"id"`
	Title       string           `json:"title"`
	Content     string           `json:"content"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Category    string           `json:"category"`
	Views       int              `json:"views"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	Sections    []ContentSection `json:"contentSections"`
}

type PostModel struct {
	db *sql.DB
}

type PostService struct {
	m      *PostModel
	mb     common.MessageProducer
	logger serviceLogger
}

type serviceLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}
