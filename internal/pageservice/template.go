package pageservice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/febriandika/postfolio/internal/postservice"
)

//go:embed templates/*
var templateFS embed.FS

var pageTemplates = template.Must(template.New("pages").Funcs(template.FuncMap{
	"excerpt":       excerpt,
	"sectionNumber": sectionNumber,
	"categoryQuery": categoryQuery,
}).ParseFS(templateFS, "templates/*.html"))

// excerpt shortens a post's content for the list page cards.
func excerpt(content string) string {
	const max = 100
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max]) + "..."
}

func sectionNumber(i int) int {
	return i + 1
}

// categoryQuery builds the shallow query string for one category button,
// preserving the current search term.
func categoryQuery(f Filter, category string) string {
	return f.SelectCategory(category).Values().Encode()
}

type listPageData struct {
	Posts      []postservice.Post
	Categories []string
	Filter     Filter
}

func (s *PageService) renderList(page *ListPage, f Filter) ([]byte, error) {
	data := listPageData{
		Posts:      f.Apply(page.Posts),
		Categories: page.Categories,
		Filter:     f,
	}

	var buf bytes.Buffer
	err := pageTemplates.ExecuteTemplate(&buf, "list.html", data)
	if err != nil {
		return nil, fmt.Errorf("could not render list page: %w", err)
	}

	return buf.Bytes(), nil
}

// RenderList returns the HTML of the list page with the given filter applied
// to the materialized post set. The unfiltered page is served from the
// pre-rendered bytes.
func (s *PageService) RenderList(page *ListPage, f Filter) ([]byte, error) {
	if f == (Filter{}) {
		return page.HTML, nil
	}
	return s.renderList(page, f)
}

func (s *PageService) renderDetail(post *postservice.Post) ([]byte, error) {
	var buf bytes.Buffer
	err := pageTemplates.ExecuteTemplate(&buf, "detail.html", post)
	if err != nil {
		return nil, fmt.Errorf("could not render detail page: %w", err)
	}

	return buf.Bytes(), nil
}

// RenderNotFound is the body of a detail page whose id resolved to nothing.
func RenderNotFound() ([]byte, error) {
	var buf bytes.Buffer
	err := pageTemplates.ExecuteTemplate(&buf, "notfound.html", nil)
	if err != nil {
		return nil, fmt.Errorf("could not render not-found page: %w", err)
	}

	return buf.Bytes(), nil
}
