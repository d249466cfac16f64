package util

import (
	"net/http"
	"net/url"
	"os"
	"strings"
)

// NewProxyFunc creates a proxy function based on configuration.
// If no proxy URLs are provided, falls back to environment variables.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

// FixedProxyFunc routes every request through one proxy, regardless of
// scheme. The transcript fetcher uses it when rotating through a proxy
// list.
func FixedProxyFunc(proxyURL string) (func(*http.Request) (*url.URL, error), error) {
	parsed, err := url.Parse(proxyURL)
	if err != nil {
		return nil, err
	}
	return http.ProxyURL(parsed), nil
}

// LoadProxiesFromEnv reads the PROXY_LIST environment variable
// (comma-separated proxy URLs) and returns the non-empty entries in
// order. An unset variable yields nil.
func LoadProxiesFromEnv() []string {
	raw := os.Getenv("PROXY_LIST")
	if raw == "" {
		return nil
	}
	var proxies []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			proxies = append(proxies, p)
		}
	}
	return proxies
}
