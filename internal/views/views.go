// Package views holds the templ components for the live HTMX fragments
// pushed over SSE and swapped in by the gallery modal.
package views

//go:generate templ generate

import "strconv"

// Slide is one project in the carousel.
type Slide struct {
	Slug    string
	Title   string
	Tagline string
	Cover   string
	DevTime string
	Starred bool
}

// Carousel holds data for the carousel fragment.
type Carousel struct {
	Slides   []Slide
	Index    int
	Playing  bool
	Progress float64
	Version  uint64
}

func (vm Carousel) visible() bool {
	return vm.Index >= 0 && vm.Index < len(vm.Slides)
}

// MediaViewer holds data for the gallery modal.
type MediaViewer struct {
	Slug     string
	Title    string
	Index    int
	Count    int
	Kind     string
	URL      string
	EmbedURL string
	Caption  string
}

func (vm MediaViewer) mediaPath(n int) string {
	return "/projects/" + vm.Slug + "/media/" + strconv.Itoa(n)
}

func (vm MediaViewer) prev() int {
	return (vm.Index - 1 + vm.Count) % vm.Count
}

func (vm MediaViewer) next() int {
	return (vm.Index + 1) % vm.Count
}

func formatProgress(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64)
}
