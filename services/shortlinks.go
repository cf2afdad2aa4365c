// services/shortlinks.go
package services

import (
	"math/rand"
	"net/url"
	"sort"
	"strings"

	"guild-economy-system/store"

	"github.com/gosimple/slug"
)

// ShortLinkService maintains per-community short codes for long URLs.
type ShortLinkService struct {
	Store *store.Repository
}

func NewShortLinkService(repo *store.Repository) *ShortLinkService {
	return &ShortLinkService{Store: repo}
}

// ShortLink is one code -> URL mapping.
type ShortLink struct {
	Code string `json:"code"`
	URL  string `json:"url"`
}

// Shorten registers a code for a URL. With an empty code a random one is
// generated; an explicit code is slugified and must be free. Shortening a
// URL that already has a code returns the existing code unchanged.
func (s *ShortLinkService) Shorten(communityID, longURL, code string) (ShortLink, error) {
	longURL = strings.TrimSpace(longURL)
	parsed, err := url.Parse(longURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ShortLink{}, ErrInvalidArgument
	}

	var out ShortLink
	err = s.Store.UpdateShortLinks(communityID, func(links map[string]string) error {
		for existing, target := range links {
			if target == longURL {
				out = ShortLink{Code: existing, URL: longURL}
				return nil
			}
		}

		if code == "" {
			code = randomCode(6)
			for _, taken := links[code]; taken; _, taken = links[code] {
				code = randomCode(6)
			}
		} else {
			code = slug.Make(code)
			if code == "" {
				return ErrInvalidArgument
			}
		}
		if _, taken := links[code]; taken {
			return ErrCodeTaken
		}
		links[code] = longURL
		out = ShortLink{Code: code, URL: longURL}
		return nil
	})
	if err != nil {
		return ShortLink{}, err
	}
	return out, nil
}

const codeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}

// Expand resolves a code back to its URL.
func (s *ShortLinkService) Expand(communityID, code string) (string, bool) {
	links := s.Store.GetShortLinks(communityID)
	target, ok := links[code]
	return target, ok
}

// List returns every link for a community sorted by code.
func (s *ShortLinkService) List(communityID string) []ShortLink {
	links := s.Store.GetShortLinks(communityID)
	out := make([]ShortLink, 0, len(links))
	for code, target := range links {
		out = append(out, ShortLink{Code: code, URL: target})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Delete removes a code. Missing codes report NotFound.
func (s *ShortLinkService) Delete(communityID, code string) error {
	return s.Store.UpdateShortLinks(communityID, func(links map[string]string) error {
		if _, ok := links[code]; !ok {
			return ErrNotFound
		}
		delete(links, code)
		return nil
	})
}
