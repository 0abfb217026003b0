package wixutil

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fivetwenty-io/wix-templates/internal/constants"
	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

// BuildAPIURL joins endpoint onto the Wix API base URL.
func BuildAPIURL(endpoint string) string {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}

	return wix.DefaultAPIConfig.APIBaseURL + endpoint
}

// SafeJSONParse decodes data into a T, returning defaultValue when data is
// not valid JSON for T.
func SafeJSONParse[T any](data string, defaultValue T) T {
	var result T

	err := json.Unmarshal([]byte(data), &result)
	if err != nil {
		return defaultValue
	}

	return result
}

// Debounce returns a trigger that calls fn with the latest argument once
// wait has passed without another trigger, and a stop function that
// cancels any pending call.
func Debounce[T any](fn func(T), wait time.Duration) (trigger func(T), stop func()) {
	var (
		mutex sync.Mutex
		timer *time.Timer
	)

	trigger = func(arg T) {
		mutex.Lock()
		defer mutex.Unlock()

		if timer != nil {
			timer.Stop()
		}

		timer = time.AfterFunc(wait, func() { fn(arg) })
	}

	stop = func() {
		mutex.Lock()
		defer mutex.Unlock()

		if timer != nil {
			timer.Stop()
			timer = nil
		}
	}

	return trigger, stop
}

// GenerateUniqueID returns "<unix millis>-<9 random base-16 characters>".
func GenerateUniqueID() string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")

	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), random[:constants.UniqueIDSuffixLength])
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonWordRun    = regexp.MustCompile(`[^\w-]+`)
	dashRun       = regexp.MustCompile(`-{2,}`)
)

// Slugify lowercases text and reduces it to ASCII word characters joined by
// single dashes, e.g. "Hello,  World!" becomes "hello-world".
func Slugify(text string) string {
	slug := strings.TrimSpace(strings.ToLower(text))
	slug = whitespaceRun.ReplaceAllString(slug, "-")
	slug = nonWordRun.ReplaceAllString(slug, "")
	slug = dashRun.ReplaceAllString(slug, "-")

	return strings.Trim(slug, "-")
}
