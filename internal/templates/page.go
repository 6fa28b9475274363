package templates

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

// pageNameRegexp matches the file names of error pages: <code>.<extension>, for example 404.html.
var pageNameRegexp = regexp.MustCompile(`^(0|[1-9][0-9]*)\.([a-z0-9][a-z0-9.+-]*)$`)

// Page is an error page found in the templates directory.
type Page struct {
	// Name is the file name of the page, for example 503.json.
	Name string
	// Extension is the file extension of the page without the leading dot, for example json.
	Extension string
	// Size is the size of the page in bytes.
	Size int64
	// Code is the HTTP status code the page is served for.
	Code uint32
}

// Index maps page names to pages.
type Index map[string]Page

// ParsePageName parses the file name of an error page.
// It returns false if the name is not of the form <code>.<extension>.
func ParsePageName(name string) (Page, bool) {
	matches := pageNameRegexp.FindStringSubmatch(name)
	if matches == nil {
		return Page{}, false
	}

	code, err := strconv.ParseUint(matches[1], 10, 32)
	if err != nil {
		return Page{}, false
	}

	return Page{
		Name:      name,
		Code:      uint32(code),
		Extension: matches[2],
	}, true
}

// PageName returns the file name of the page for the code and extension.
func PageName(code uint32, extension string) string {
	return fmt.Sprintf("%d.%s", code, extension)
}

// Sorted returns the pages of the Index sorted by code and then by extension.
func (idx Index) Sorted() []Page {
	pages := make([]Page, 0, len(idx))
	for _, p := range idx {
		pages = append(pages, p)
	}

	sort.Slice(pages, func(i, j int) bool {
		if pages[i].Code != pages[j].Code {
			return pages[i].Code < pages[j].Code
		}
		return pages[i].Extension < pages[j].Extension
	})

	return pages
}
