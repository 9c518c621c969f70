package pageservice

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/febriandika/postfolio/internal/postservice"
)

func filterPosts() []postservice.Post {
	return []postservice.Post{
		{ID: 1, Title: "yak shaving in go", Content: "tooling", Category: "go"},
		{ID: 2, Title: "profiling basics", Content: "pprof and friends", Category: "go"},
		{ID: 3, Title: "Deploy notes", Content: "contains y somewhere", Category: "infra"},
		{ID: 4, Title: "plain post", Content: "nothing here", Category: "infra"},
		{ID: 5, Title: "YAML pitfalls", Content: "indentation", Category: "go"},
	}
}

func TestFilterMatches(t *testing.T) {
	posts := filterPosts()

	testCases := []struct {
		name     string
		filter   Filter
		expected []int
	}{
		{
			name:     "no filter matches everything",
			filter:   Filter{},
			expected: []int{1, 2, 3, 4, 5},
		},
		{
			name:     "search is case-insensitive over title and content",
			filter:   Filter{Search: "ya"},
			expected: []int{1, 5},
		},
		{
			name:     "search matches content too",
			filter:   Filter{Search: "pprof"},
			expected: []int{2},
		},
		{
			name:     "category only",
			filter:   Filter{Category: "infra"},
			expected: []int{3, 4},
		},
		{
			name:     "search and category combined",
			filter:   Filter{Search: "y", Category: "infra"},
			expected: []int{3},
		},
		{
			name:     "no match",
			filter:   Filter{Search: "rust", Category: "go"},
			expected: []int{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			matched := tc.filter.Apply(posts)

			ids := []int{}
			for _, post := range matched {
				ids = append(ids, post.ID)
			}
			assert.Equal(t, tc.expected, ids)
		})
	}
}

// The two predicates must commute: filtering by category then search yields
// the same set as search then category.
func TestFilterPredicatesCommute(t *testing.T) {
	posts := filterPosts()

	byCategory := Filter{Category: "go"}
	bySearch := Filter{Search: "y"}

	categoryFirst := bySearch.Apply(byCategory.Apply(posts))
	searchFirst := byCategory.Apply(bySearch.Apply(posts))

	assert.Equal(t, categoryFirst, searchFirst)
	assert.Equal(t, categoryFirst, Filter{Search: "y", Category: "go"}.Apply(posts))
}

func TestFilterSelectCategory(t *testing.T) {
	f := Filter{Search: "go", Category: "infra"}

	f = f.SelectCategory("go")
	assert.Equal(t, "go", f.Category)

	// the synthetic All entry clears the category filter
	f = f.SelectCategory(AllCategory)
	assert.Equal(t, "", f.Category)
	assert.Equal(t, "go", f.Search)
}

func TestFilterQueryRoundTrip(t *testing.T) {
	f := Filter{Search: "docker", Category: "infra"}

	values := f.Values()
	assert.Equal(t, "docker", values.Get("q"))
	assert.Equal(t, "infra", values.Get("category"))

	assert.Equal(t, f, ParseFilter(values))

	// selecting All through the URL clears the category as well
	parsed := ParseFilter(url.Values{"category": {AllCategory}})
	assert.Equal(t, "", parsed.Category)
}

func TestCategories(t *testing.T) {
	categories := Categories(filterPosts())
	assert.Equal(t, []string{"All", "go", "infra"}, categories)

	// posts without a category contribute nothing
	categories = Categories([]postservice.Post{{ID: 1, Title: "untagged"}})
	assert.Equal(t, []string{"All"}, categories)
}
