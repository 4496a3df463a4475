package catalog

import (
	"net/url"
	"strings"
)

func validVideoID(id string) bool {
	if len(id) != 11 {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// YouTubeID extracts the video ID from the usual YouTube URL shapes:
// youtu.be/ID, watch?v=ID, /embed/ID, /shorts/ID, /live/ID and the
// youtube-nocookie.com embed host.
func YouTubeID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	var id string
	switch host {
	case "youtu.be":
		id = segments[0]
	case "youtube.com", "music.youtube.com", "youtube-nocookie.com":
		if len(segments) == 1 && segments[0] == "watch" {
			id = u.Query().Get("v")
			break
		}
		if len(segments) >= 2 {
			switch segments[0] {
			case "embed", "shorts", "live", "v":
				id = segments[1]
			}
		}
	}
	if !validVideoID(id) {
		return "", false
	}
	return id, true
}

// EmbedURL returns the privacy-enhanced player URL for id.
func EmbedURL(id string, autoplay bool) string {
	v := url.Values{}
	v.Set("rel", "0")
	v.Set("modestbranding", "1")
	if autoplay {
		v.Set("autoplay", "1")
		v.Set("mute", "1")
	}
	return "https://www.youtube-nocookie.com/embed/" + url.PathEscape(id) + "?" + v.Encode()
}

// ThumbnailURL returns the high quality still for id.
func ThumbnailURL(id string) string {
	return "https://i.ytimg.com/vi/" + url.PathEscape(id) + "/hqdefault.jpg"
}
