package utils

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// BuildQueryParams constructs a URL-encoded query string from a map of parameters.
// Each key-value pair in the map is converted to "key=value" format, with both
// the key and value being URL-encoded. The pairs are then joined by "&".
func BuildQueryParams(params map[string]string) string {
	var queryParams []string
	for key, value := range params {
		queryParams = append(queryParams, fmt.Sprintf("%s=%s", url.QueryEscape(key), url.QueryEscape(value)))
	}
	return strings.Join(queryParams, "&")
}

func CreateDirectoryIfNotExists(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

func LocalFileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
