package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"Townsquare/services/town"
)

const youtubeAPIURL = "https://www.googleapis.com/youtube/v3/"

// YouTube resolves video URLs against the YouTube Data API. It implements
// town.VideoResolver.
type YouTube struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewYouTube builds a resolver using the given Data API key.
func NewYouTube(apiKey string) *YouTube {
	return &YouTube{
		apiKey:  apiKey,
		baseURL: youtubeAPIURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewYouTubeWithBaseURL is used by tests to point the resolver at a stub server.
func NewYouTubeWithBaseURL(apiKey, baseURL string) *YouTube {
	y := NewYouTube(apiKey)
	y.baseURL = baseURL
	return y
}

type videoListResponse struct {
	Items []struct {
		Snippet struct {
			Title      string `json:"title"`
			Thumbnails struct {
				Default struct {
					URL string `json:"url"`
				} `json:"default"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// VideoDetails resolves a video URL to its title, thumbnail and duration.
// Malformed URLs and unknown videos both fail with town.ErrVideoNotFound.
func (y *YouTube) VideoDetails(videoURL string) (*town.VideoDetails, error) {
	videoID, err := extractVideoID(videoURL)
	if err != nil {
		return nil, err
	}

	endpoint := y.baseURL + "videos"
	params := url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("key", y.apiKey)
	params.Set("id", videoID)

	resp, err := y.client.Get(endpoint + "?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("youtube request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube request: unexpected status %d", resp.StatusCode)
	}

	var list videoListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("youtube response: %w", err)
	}
	if len(list.Items) == 0 {
		return nil, town.ErrVideoNotFound
	}

	item := list.Items[0]
	duration, err := parseISODuration(item.ContentDetails.Duration)
	if err != nil {
		return nil, fmt.Errorf("youtube response: %w", err)
	}
	return &town.VideoDetails{
		Title:       item.Snippet.Title,
		Thumbnail:   item.Snippet.Thumbnails.Default.URL,
		DurationSec: duration,
	}, nil
}

// extractVideoID pulls the 11-character video ID out of the URL forms YouTube
// hands out: watch?v=, youtu.be/, /shorts/ and /embed/.
func extractVideoID(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", town.ErrVideoNotFound
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	switch host {
	case "youtube.com", "m.youtube.com":
		if id := u.Query().Get("v"); id != "" {
			return id, nil
		}
		for _, prefix := range []string{"/shorts/", "/embed/"} {
			if strings.HasPrefix(u.Path, prefix) {
				if id := strings.TrimPrefix(u.Path, prefix); id != "" {
					return strings.SplitN(id, "/", 2)[0], nil
				}
			}
		}
	case "youtu.be":
		if id := strings.TrimPrefix(u.Path, "/"); id != "" {
			return strings.SplitN(id, "/", 2)[0], nil
		}
	}
	return "", town.ErrVideoNotFound
}

// parseISODuration converts the ISO-8601 durations the Data API returns
// (PT1H2M3S) into seconds.
func parseISODuration(s string) (int, error) {
	rest, ok := strings.CutPrefix(s, "PT")
	if !ok {
		return 0, fmt.Errorf("bad duration %q", s)
	}
	total := 0
	value := 0
	digits := false
	for _, r := range rest {
		switch {
		case r >= '0' && r <= '9':
			value = value*10 + int(r-'0')
			digits = true
		case r == 'H' || r == 'M' || r == 'S':
			if !digits {
				return 0, fmt.Errorf("bad duration %q", s)
			}
			switch r {
			case 'H':
				total += value * 3600
			case 'M':
				total += value * 60
			case 'S':
				total += value
			}
			value = 0
			digits = false
		default:
			return 0, fmt.Errorf("bad duration %q", s)
		}
	}
	if digits {
		return 0, fmt.Errorf("bad duration %q", s)
	}
	return total, nil
}
