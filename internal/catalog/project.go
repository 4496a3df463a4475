// Package catalog holds the portfolio's project case studies and the
// helpers used to order, filter and present them.
package catalog

import (
	"sort"
	"strings"
)

// MediaKind distinguishes gallery entries.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Media is one gallery entry. Video entries hold a YouTube URL.
type Media struct {
	Kind    MediaKind `json:"kind"`
	URL     string    `json:"url"`
	Caption string    `json:"caption,omitempty"`
}

// Award is a prize or selection a project received.
type Award struct {
	Title string `json:"title"`
	Event string `json:"event"`
	Year  int    `json:"year,omitempty"`
}

// Credit names a team member.
type Credit struct {
	Name string `json:"name"`
	Role string `json:"role"`
	URL  string `json:"url,omitempty"`
}

// Link is an external page such as a store or jam entry.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Project is a game case study.
type Project struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Tagline     string   `json:"tagline"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Genre       string   `json:"genre"`
	Engine      string   `json:"engine"`
	Role        string   `json:"role"`
	Platforms   []string `json:"platforms"`
	Tags        []string `json:"tags"`
	DevTime     string   `json:"dev_time"`
	TeamSize    int      `json:"team_size"`
	Year        int      `json:"year"`
	TrailerURL  string   `json:"trailer_url,omitempty"`
	Starred     bool     `json:"starred"`
	Media       []Media  `json:"media"`
	Awards      []Award  `json:"awards"`
	Team        []Credit `json:"team"`
	Links       []Link   `json:"links"`
	Views       int64    `json:"views"`
}

// Pinned reports whether the project sorts ahead of the rest.
func (p Project) Pinned() bool { return p.Starred }

// VideoID returns the YouTube ID of the trailer, if any.
func (p Project) VideoID() (string, bool) {
	return YouTubeID(p.TrailerURL)
}

// Cover returns the first image of the gallery, falling back to the trailer
// thumbnail.
func (p Project) Cover() string {
	for _, m := range p.Media {
		if m.Kind == MediaImage {
			return m.URL
		}
	}
	if id, ok := p.VideoID(); ok {
		return ThumbnailURL(id)
	}
	return ""
}

// HasTag reports whether the project carries tag, ignoring case.
func (p Project) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// SortPinnedFirst returns a copy of projects with starred ones first. The
// relative order within each group is kept.
func SortPinnedFirst(projects []Project) []Project {
	out := append([]Project(nil), projects...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Pinned() && !out[j].Pinned()
	})
	return out
}

// FilterByTag returns the projects carrying tag. An empty tag or "all"
// keeps everything.
func FilterByTag(projects []Project, tag string) []Project {
	tag = strings.TrimSpace(tag)
	if tag == "" || strings.EqualFold(tag, "all") {
		return append([]Project(nil), projects...)
	}
	var out []Project
	for _, p := range projects {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}

// Tags lists the distinct tags across projects in alphabetical order,
// keeping the spelling of the first occurrence.
func Tags(projects []Project) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range projects {
		for _, t := range p.Tags {
			key := strings.ToLower(strings.TrimSpace(t))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, strings.TrimSpace(t))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}

// FindBySlug returns the project with slug.
func FindBySlug(projects []Project, slug string) (Project, bool) {
	for _, p := range projects {
		if p.Slug == slug {
			return p, true
		}
	}
	return Project{}, false
}
