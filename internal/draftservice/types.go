package draftservice

import (
	"context"

	"github.com/febriandika/postfolio/internal/postservice"
)

// PostCreator is the single repository operation the controller needs.
// *postservice.PostService satisfies it.
type PostCreator interface {
	CreatePost(ctx context.Context, req *postservice.CreatePostRequest) (*postservice.Post, error)
}

// ConfirmFunc asks the author to confirm before a draft is submitted. A
// declined confirmation leaves the draft untouched and makes no create call.
type ConfirmFunc func() bool

// SectionDraft is one in-progress content section. Which of Content and Src
// matters is decided by Type, but both are kept and submitted as typed.
type SectionDraft struct {
	Type    postservice.SectionType
	Content string
	Src     string
}

// Draft is the in-progress post: plain fields plus an ordered, growable list
// of section drafts. Section order in the slice is the order that will be
// persisted.
type Draft struct {
	Title       string
	Content     string
	Description string
	Image       string
	Category    string
	Sections    []SectionDraft
}

// Controller owns one author's draft. It is private to a single session, so
// it needs no locking of its own.
type Controller struct {
	creator PostCreator
	confirm ConfirmFunc
	draft   Draft
}
