package catalog

import (
	"errors"
	"math"
	"testing"
)

func TestSortPinnedFirst_StableAndNonMutating(t *testing.T) {
	in := []Project{
		{Slug: "a"}, {Slug: "b", Starred: true}, {Slug: "c"}, {Slug: "d", Starred: true},
	}
	got := SortPinnedFirst(in)
	want := []string{"b", "d", "a", "c"}
	for i, slug := range want {
		if got[i].Slug != slug {
			t.Fatalf("order %v, want %v", slugs(got), want)
		}
	}
	if in[0].Slug != "a" || in[1].Slug != "b" {
		t.Error("input was reordered")
	}
}

func TestFilterByTag(t *testing.T) {
	in := []Project{
		{Slug: "a", Tags: []string{"Game Jam"}},
		{Slug: "b", Tags: []string{"Commercial", "Unity"}},
		{Slug: "c", Tags: []string{"game jam", "Go"}},
	}
	if got := FilterByTag(in, "GAME JAM"); len(got) != 2 || got[0].Slug != "a" || got[1].Slug != "c" {
		t.Errorf("filter game jam = %v", slugs(got))
	}
	if got := FilterByTag(in, "all"); len(got) != 3 {
		t.Errorf("filter all = %v", slugs(got))
	}
	if got := FilterByTag(in, " "); len(got) != 3 {
		t.Errorf("filter blank = %v", slugs(got))
	}
	if got := FilterByTag(in, "Mobile"); len(got) != 0 {
		t.Errorf("filter mobile = %v", slugs(got))
	}
}

func TestTags(t *testing.T) {
	in := []Project{
		{Tags: []string{"Unity", "Game Jam"}},
		{Tags: []string{"game jam", "Commercial", ""}},
	}
	got := Tags(in)
	want := []string{"Commercial", "Game Jam", "Unity"}
	if len(got) != len(want) {
		t.Fatalf("tags %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tags %v, want %v", got, want)
		}
	}
}

func TestFindBySlug(t *testing.T) {
	p, ok := FindBySlug(Projects, "lanternfall")
	if !ok || p.Title != "Lanternfall" {
		t.Errorf("FindBySlug = %+v, %v", p, ok)
	}
	if _, ok := FindBySlug(Projects, "missing"); ok {
		t.Error("FindBySlug should miss")
	}
}

func TestCatalogData(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range Projects {
		if p.Slug == "" || p.Title == "" {
			t.Errorf("project missing slug or title: %+v", p)
		}
		if seen[p.Slug] {
			t.Errorf("duplicate slug %q", p.Slug)
		}
		seen[p.Slug] = true
		if _, err := ParseDevTime(p.DevTime); err != nil {
			t.Errorf("%s: dev time %q: %v", p.Slug, p.DevTime, err)
		}
		if p.TrailerURL != "" {
			if _, ok := p.VideoID(); !ok {
				t.Errorf("%s: trailer %q is not a YouTube URL", p.Slug, p.TrailerURL)
			}
		}
		for _, m := range p.Media {
			if m.Kind == MediaVideo {
				if _, ok := YouTubeID(m.URL); !ok {
					t.Errorf("%s: video %q is not a YouTube URL", p.Slug, m.URL)
				}
			}
		}
	}
}

func TestCover(t *testing.T) {
	withImage := Project{Media: []Media{{Kind: MediaVideo, URL: "x"}, {Kind: MediaImage, URL: "/img.png"}}}
	if got := withImage.Cover(); got != "/img.png" {
		t.Errorf("cover %q", got)
	}
	videoOnly := Project{TrailerURL: "https://youtu.be/Gly9hBr3ak0"}
	if got := videoOnly.Cover(); got != ThumbnailURL("Gly9hBr3ak0") {
		t.Errorf("cover %q", got)
	}
	if got := (Project{}).Cover(); got != "" {
		t.Errorf("cover %q, want empty", got)
	}
}

func TestParseDevTime(t *testing.T) {
	cases := []struct {
		in   string
		want string
		hrs  float64
	}{
		{"48 hours", "48 hours", 48},
		{"72 hrs", "72 hours", 72},
		{"1 week", "1 week", 168},
		{"2wks", "2 weeks", 336},
		{"10 Days", "10 days", 240},
		{"~6 mos", "~6 months", 6 * 24 * 30.44},
		{"1yr", "1 year", 24 * 365.25},
		{" 14 months ", "14 months", 14 * 24 * 30.44},
	}
	for _, tc := range cases {
		got, err := ParseDevTime(tc.in)
		if err != nil {
			t.Errorf("ParseDevTime(%q): %v", tc.in, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("ParseDevTime(%q) = %q, want %q", tc.in, got.String(), tc.want)
		}
		if math.Abs(got.Hours()-tc.hrs) > 1e-9 {
			t.Errorf("ParseDevTime(%q).Hours() = %v, want %v", tc.in, got.Hours(), tc.hrs)
		}
	}
}

func TestParseDevTime_Invalid(t *testing.T) {
	for _, in := range []string{"", "~", "weeks", "0 days", "3 fortnights", "-2 days", "99999999999999999999 hours"} {
		if _, err := ParseDevTime(in); !errors.Is(err, ErrInvalidDevTime) {
			t.Errorf("ParseDevTime(%q) err = %v, want ErrInvalidDevTime", in, err)
		}
	}
}

func TestFormatDevTime(t *testing.T) {
	if got := FormatDevTime("3 mo"); got != "3 months" {
		t.Errorf("got %q", got)
	}
	if got := FormatDevTime(" a summer "); got != "a summer" {
		t.Errorf("got %q", got)
	}
}

func TestYouTubeID(t *testing.T) {
	const id = "Lf7aQx3bK9M"
	valid := []string{
		"https://www.youtube.com/watch?v=" + id,
		"https://youtube.com/watch?v=" + id + "&t=42s",
		"https://m.youtube.com/watch?v=" + id,
		"youtube.com/watch?v=" + id,
		"https://youtu.be/" + id,
		"https://youtu.be/" + id + "?si=abc",
		"https://www.youtube.com/embed/" + id,
		"https://www.youtube-nocookie.com/embed/" + id + "?rel=0",
		"https://youtube.com/shorts/" + id,
		"https://www.youtube.com/live/" + id,
	}
	for _, in := range valid {
		got, ok := YouTubeID(in)
		if !ok || got != id {
			t.Errorf("YouTubeID(%q) = %q, %v", in, got, ok)
		}
	}
	invalid := []string{
		"",
		"https://vimeo.com/12345",
		"https://www.youtube.com/watch?v=short",
		"https://www.youtube.com/channel/UC1234567890",
		"https://youtu.be/",
		"https://www.youtube.com/watch?v=Lf7aQx3bK9!",
	}
	for _, in := range invalid {
		if got, ok := YouTubeID(in); ok {
			t.Errorf("YouTubeID(%q) = %q, want no match", in, got)
		}
	}
}

func TestEmbedAndThumbnailURL(t *testing.T) {
	if got := EmbedURL("Lf7aQx3bK9M", false); got != "https://www.youtube-nocookie.com/embed/Lf7aQx3bK9M?modestbranding=1&rel=0" {
		t.Errorf("embed %q", got)
	}
	if got := EmbedURL("Lf7aQx3bK9M", true); got != "https://www.youtube-nocookie.com/embed/Lf7aQx3bK9M?autoplay=1&modestbranding=1&mute=1&rel=0" {
		t.Errorf("embed autoplay %q", got)
	}
	if got := ThumbnailURL("Lf7aQx3bK9M"); got != "https://i.ytimg.com/vi/Lf7aQx3bK9M/hqdefault.jpg" {
		t.Errorf("thumbnail %q", got)
	}
}

func slugs(ps []Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Slug
	}
	return out
}
