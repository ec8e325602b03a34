// Package breadcrumb keeps the navigation trail of a request.
package breadcrumb

import "strings"

// Crumb is one entry of a trail. The last crumb usually has no URL.
type Crumb struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
}

// Trail is an ordered list of crumbs. Not safe for concurrent use; each
// request gets its own.
type Trail struct {
	path []Crumb
}

func New() *Trail { return &Trail{} }

// Add appends a crumb and returns the trail for chaining.
func (t *Trail) Add(title, url string) *Trail {
	t.path = append(t.path, Crumb{Title: title, URL: url})
	return t
}

// Path returns a copy of the crumbs in order.
func (t *Trail) Path() []Crumb {
	return append([]Crumb{}, t.path...)
}

func (t *Trail) Last() (Crumb, bool) {
	if len(t.path) == 0 {
		return Crumb{}, false
	}
	return t.path[len(t.path)-1], true
}

func (t *Trail) Len() int { return len(t.path) }

// FromPath builds a trail from a URL path: a root crumb, then one crumb per
// segment linking to the accumulated path. The final segment has no URL.
//
//	/campaigns/c-1/sessions -> Home(/) campaigns(/campaigns) c-1(/campaigns/c-1) sessions
func FromPath(rootTitle, path string) *Trail {
	t := New()
	clean := strings.Trim(strings.TrimSpace(path), "/")
	if clean == "" {
		return t.Add(rootTitle, "")
	}
	t.Add(rootTitle, "/")

	var segments []string
	for _, s := range strings.Split(clean, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	acc := ""
	for i, s := range segments {
		acc += "/" + s
		if i == len(segments)-1 {
			t.Add(s, "")
			continue
		}
		t.Add(s, acc)
	}
	return t
}
