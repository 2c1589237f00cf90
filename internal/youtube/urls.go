package youtube

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/amankumarsingh77/channel-monitor/pkg/apperrors"
)

type ReferenceKind int

const (
	RefChannelID ReferenceKind = iota
	RefHandle
	RefUsername
	RefCustomURL
)

// ChannelRef is a channel URL reduced to the identifier the provider needs.
type ChannelRef struct {
	Kind  ReferenceKind
	Value string
}

var channelIDPattern = regexp.MustCompile(`^UC[\w-]{22}$`)

// ParseChannelURL recognises /channel/, /@handle, /user/ and /c/ URLs as well as bare ids and handles.
func ParseChannelURL(raw string) (ChannelRef, error) {
	raw = strings.TrimSpace(raw)
	if channelIDPattern.MatchString(raw) {
		return ChannelRef{Kind: RefChannelID, Value: raw}, nil
	}
	if strings.HasPrefix(raw, "@") && len(raw) > 1 {
		return ChannelRef{Kind: RefHandle, Value: strings.TrimPrefix(raw, "@")}, nil
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ChannelRef{}, apperrors.Validation("invalid channel url: %q", raw)
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	host = strings.TrimPrefix(host, "m.")
	if host != "youtube.com" {
		return ChannelRef{}, apperrors.Validation("not a youtube channel url: %q", raw)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		return ChannelRef{}, apperrors.Validation("invalid channel url: %q", raw)
	}

	first := segments[0]
	switch {
	case strings.HasPrefix(first, "@") && len(first) > 1:
		return ChannelRef{Kind: RefHandle, Value: first[1:]}, nil
	case len(segments) < 2 || segments[1] == "":
		return ChannelRef{}, apperrors.Validation("invalid channel url: %q", raw)
	case first == "channel":
		if !channelIDPattern.MatchString(segments[1]) {
			return ChannelRef{}, apperrors.Validation("invalid channel id in url: %q", raw)
		}
		return ChannelRef{Kind: RefChannelID, Value: segments[1]}, nil
	case first == "user":
		return ChannelRef{Kind: RefUsername, Value: segments[1]}, nil
	case first == "c":
		return ChannelRef{Kind: RefCustomURL, Value: segments[1]}, nil
	}
	return ChannelRef{}, apperrors.Validation("unsupported channel url: %q", raw)
}

// WatchURL is the public page of a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
