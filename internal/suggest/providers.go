package suggest

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/mkbkakwk/mynav/internal/domain"
)

// Endpoints are the suggestion upstreams. Overridable for tests.
type Endpoints struct {
	Baidu  string
	Google string
	So360  string
}

// DefaultEndpoints returns the production upstreams.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Baidu:  "https://sp0.baidu.com/5a1Fazu8AA54nxGko9WTAnF6hhy/su",
		Google: "https://suggestqueries.google.com/complete/search",
		So360:  "https://sug.so.360.cn/suggest",
	}
}

// provider describes one upstream: its URL shape, its callback parameter
// name, and how to normalize its response envelope.
type provider struct {
	name          string
	callbackParam string
	buildURL      func(e Endpoints, query string) string
	parse         func(payload []byte) ([]string, error)
}

// providerFor maps a suggestion source to its upstream. Bing shares the
// 360 endpoint; none means no request at all.
func providerFor(source domain.SuggestionSource) (provider, bool) {
	switch source {
	case domain.SuggestBaidu:
		return provider{
			name:          "baidu",
			callbackParam: "cb",
			buildURL: func(e Endpoints, query string) string {
				return fmt.Sprintf("%s?wd=%s", e.Baidu, url.QueryEscape(query))
			},
			parse: parseKeyedList,
		}, true
	case domain.SuggestGoogle:
		return provider{
			name:          "google",
			callbackParam: "jsonp",
			buildURL: func(e Endpoints, query string) string {
				return fmt.Sprintf("%s?client=youtube&q=%s", e.Google, url.QueryEscape(query))
			},
			parse: parseNestedList,
		}, true
	case domain.SuggestBing, domain.Suggest360:
		return provider{
			name:          "360",
			callbackParam: "callback",
			buildURL: func(e Endpoints, query string) string {
				return fmt.Sprintf("%s?word=%s&encodein=utf-8&encodeout=utf-8", e.So360, url.QueryEscape(query))
			},
			parse: parseKeyedList,
		}, true
	default:
		return provider{}, false
	}
}

// parseKeyedList handles the flat {"s": ["a", "b"]} envelope.
func parseKeyedList(payload []byte) ([]string, error) {
	var envelope struct {
		S []string `json:"s"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("decode suggestions: %w", err)
	}
	return envelope.S, nil
}

// parseNestedList handles the [query, [...]] envelope where entries under
// index 1 are either bare strings or ["text", ...] tuples.
func parseNestedList(payload []byte) ([]string, error) {
	var outer []json.RawMessage
	if err := json.Unmarshal(payload, &outer); err != nil {
		return nil, fmt.Errorf("decode suggestions: %w", err)
	}
	if len(outer) < 2 {
		return nil, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(outer[1], &entries); err != nil {
		return nil, fmt.Errorf("decode suggestion entries: %w", err)
	}

	results := make([]string, 0, len(entries))
	for _, entry := range entries {
		var s string
		if err := json.Unmarshal(entry, &s); err == nil {
			results = append(results, s)
			continue
		}
		var tuple []json.RawMessage
		if err := json.Unmarshal(entry, &tuple); err == nil && len(tuple) > 0 {
			if err := json.Unmarshal(tuple[0], &s); err == nil {
				results = append(results, s)
			}
		}
	}
	return results, nil
}
