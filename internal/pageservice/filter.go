package pageservice

import (
	"net/url"
	"strings"

	"github.com/febriandika/postfolio/internal/postservice"
)

// AllCategory is the synthetic first entry of the category row. Selecting it
// means "no category filter".
const AllCategory = "All"

// Filter is the list-view filter state. It is a pure predicate over the
// materialized post list: no store round-trip happens per filter change.
type Filter struct {
	Search   string
	Category string
}

// Matches reports whether a post passes both predicates: the search term is
// contained (case-insensitively) in the title or content, and the category
// equals the selected one when a category is selected.
func (f Filter) Matches(post postservice.Post) bool {
	search := strings.ToLower(f.Search)
	if search != "" {
		title := strings.ToLower(post.Title)
		content := strings.ToLower(post.Content)
		if !strings.Contains(title, search) && !strings.Contains(content, search) {
			return false
		}
	}

	if f.Category != "" && post.Category != f.Category {
		return false
	}

	return true
}

// Apply returns the posts matching the filter, preserving list order.
func (f Filter) Apply(posts []postservice.Post) []postservice.Post {
	matched := []postservice.Post{}
	for _, post := range posts {
		if f.Matches(post) {
			matched = append(matched, post)
		}
	}
	return matched
}

// SelectCategory returns the filter with the given category selected.
// Selecting the synthetic "All" entry clears the category filter.
func (f Filter) SelectCategory(category string) Filter {
	if category == AllCategory {
		f.Category = ""
	} else {
		f.Category = category
	}
	return f
}

// Values encodes the filter state as URL query parameters so the view state
// stays navigable without a full reload.
func (f Filter) Values() url.Values {
	values := url.Values{}
	if f.Search != "" {
		values.Set("q", f.Search)
	}
	if f.Category != "" {
		values.Set("category", f.Category)
	}
	return values
}

// ParseFilter restores filter state from URL query parameters.
func ParseFilter(values url.Values) Filter {
	return Filter{}.SelectCategory(values.Get("category")).withSearch(values.Get("q"))
}

func (f Filter) withSearch(search string) Filter {
	f.Search = search
	return f
}

// Categories derives the category row for the list page: the synthetic "All"
// entry followed by each distinct category in first-seen order.
func Categories(posts []postservice.Post) []string {
	categories := []string{AllCategory}
	seen := map[string]bool{}
	for _, post := range posts {
		if post.Category == "" || seen[post.Category] {
			continue
		}
		seen[post.Category] = true
		categories = append(categories, post.Category)
	}
	return categories
}
