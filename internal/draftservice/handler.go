package draftservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/febriandika/postfolio/internal/postservice"
)

var ErrSubmissionCancelled = errors.New("submission cancelled")

// Section draft fields addressable by UpdateSection.
const (
	FieldType    = "type"
	FieldContent = "content"
	FieldSrc     = "src"
)

func newSectionDraft() SectionDraft {
	return SectionDraft{Type: postservice.SectionText}
}

// New returns a controller holding a fresh draft: empty fields and one
// default text section.
func New(creator PostCreator, confirm ConfirmFunc) *Controller {
	return &Controller{
		creator: creator,
		confirm: confirm,
		draft:   Draft{Sections: []SectionDraft{newSectionDraft()}},
	}
}

// Draft returns a copy of the current draft state. The sections slice is
// copied so callers cannot alias the controller's state.
func (c *Controller) Draft() Draft {
	draft := c.draft
	draft.Sections = make([]SectionDraft, len(c.draft.Sections))
	copy(draft.Sections, c.draft.Sections)
	return draft
}

func (c *Controller) SetTitle(title string)             { c.draft.Title = title }
func (c *Controller) SetContent(content string)         { c.draft.Content = content }
func (c *Controller) SetDescription(description string) { c.draft.Description = description }
func (c *Controller) SetImage(image string)             { c.draft.Image = image }
func (c *Controller) SetCategory(category string)       { c.draft.Category = category }

// AddSection appends one default text section draft to the end of the list.
func (c *Controller) AddSection() {
	sections := make([]SectionDraft, len(c.draft.Sections), len(c.draft.Sections)+1)
	copy(sections, c.draft.Sections)
	c.draft.Sections = append(sections, newSectionDraft())
}

// UpdateSection replaces one field of the section at index. The update is
// copy-on-write: a new slice is built with the entry at index replaced, so
// sibling sections and their order are never touched.
func (c *Controller) UpdateSection(index int, field, value string) error {
	if index < 0 || index >= len(c.draft.Sections) {
		return fmt.Errorf("no section at index %d", index)
	}

	section := c.draft.Sections[index]
	switch field {
	case FieldType:
		section.Type = postservice.SectionType(value)
	case FieldContent:
		section.Content = value
	case FieldSrc:
		section.Src = value
	default:
		return fmt.Errorf("unknown section field %q", field)
	}

	sections := make([]SectionDraft, len(c.draft.Sections))
	copy(sections, c.draft.Sections)
	sections[index] = section
	c.draft.Sections = sections

	return nil
}

// Submit asks for confirmation and, if given, submits the draft exactly as
// arranged: field values verbatim and sections in their current order. On
// success the draft is reset for the next post; on any failure the draft is
// left intact so the author can retry without data loss.
func (c *Controller) Submit(ctx context.Context) (*postservice.Post, error) {
	if c.confirm != nil && !c.confirm() {
		return nil, ErrSubmissionCancelled
	}

	req := &postservice.CreatePostRequest{
		Title:           c.draft.Title,
		Content:         c.draft.Content,
		Description:     c.draft.Description,
		Image:           c.draft.Image,
		Category:        c.draft.Category,
		ContentSections: make([]postservice.SectionInput, len(c.draft.Sections)),
	}
	for i, section := range c.draft.Sections {
		req.ContentSections[i] = postservice.SectionInput{
			Type:    section.Type,
			Content: section.Content,
			Src:     section.Src,
		}
	}

	post, err := c.creator.CreatePost(ctx, req)
	if err != nil {
		return nil, err
	}

	c.draft = Draft{Sections: []SectionDraft{newSectionDraft()}}

	return post, nil
}
