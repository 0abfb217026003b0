package wixutil_test

import (
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/wix-templates/pkg/wix"
	"github.com/fivetwenty-io/wix-templates/pkg/wixutil"
)

func TestFormatDate(t *testing.T) {
	t.Parallel()

	date := time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "March 14, 2025", wixutil.FormatDate(date, "en-US"))
	assert.Equal(t, "March 14, 2025", wixutil.FormatDate(date, ""))
	assert.Equal(t, "14 March 2025", wixutil.FormatDate(date, "en-GB"))
	assert.Equal(t, "14 March 2025", wixutil.FormatDate(date, "de-DE"))
	assert.Equal(t, "14 March 2025", wixutil.FormatDate(date, "fr-FR"), "month names stay English")
	assert.Equal(t, "March 14, 2025", wixutil.FormatDate(date, "en-PH"))
}

func TestFormatDateString(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"2025-03-14", "2025-03-14T10:00:00Z", "2025-03-14T10:00:00.123+00:00"} {
		formatted, err := wixutil.FormatDateString(input, "en-US")
		require.NoError(t, err, input)
		assert.Equal(t, "March 14, 2025", formatted)
	}

	_, err := wixutil.FormatDateString("next tuesday", "en-US")
	require.ErrorIs(t, err, wix.ErrInvalidDate)
}

func TestFormatCurrency(t *testing.T) {
	t.Parallel()

	formatted, err := wixutil.FormatCurrency(1234.5, "USD", "en-US")
	require.NoError(t, err)
	assert.Equal(t, "$1,234.50", formatted)

	formatted, err = wixutil.FormatCurrency(1234.5, "", "")
	require.NoError(t, err)
	assert.Equal(t, "$1,234.50", formatted)

	formatted, err = wixutil.FormatCurrency(-3, "GBP", "en-GB")
	require.NoError(t, err)
	assert.Equal(t, "-£3.00", formatted)

	formatted, err = wixutil.FormatCurrency(1234, "JPY", "en-US")
	require.NoError(t, err)
	assert.Equal(t, "¥1,234", formatted)

	formatted, err = wixutil.FormatCurrency(10, "CHF", "en-US")
	require.NoError(t, err)
	assert.Equal(t, "CHF 10.00", formatted)

	formatted, err = wixutil.FormatCurrency(1234.5, "EUR", "de-DE")
	require.NoError(t, err)
	assert.Equal(t, "1.234,50 €", formatted)

	_, err = wixutil.FormatCurrency(1, "NOPE", "en-US")
	require.ErrorIs(t, err, wix.ErrInvalidCurrency)
}

func TestFormatCurrency_Symbols(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		amount   float64
		code     string
		locale   string
		expected string
	}{
		{name: "euro in english", amount: 5, code: "EUR", locale: "en-US", expected: "€5.00"},
		{name: "rupee", amount: 99.9, code: "INR", locale: "en-US", expected: "₹99.90"},
		{name: "won has no minor units", amount: 1500, code: "KRW", locale: "en-US", expected: "₩1,500"},
		{name: "swedish krona has no english symbol", amount: 12, code: "SEK", locale: "en-US", expected: "SEK 12.00"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			formatted, err := wixutil.FormatCurrency(tt.amount, tt.code, tt.locale)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, formatted)
		})
	}
}

func TestHumanize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Pricing Plans", wixutil.Humanize("pricing-plans"))
	assert.Equal(t, "Cms", wixutil.Humanize("cms"))
}

func TestValidateCredentials(t *testing.T) {
	t.Parallel()

	assert.True(t, wixutil.ValidateCredentials(wixutil.Credentials{ClientID: "c", SiteID: "s"}))
	assert.False(t, wixutil.ValidateCredentials(wixutil.Credentials{ClientID: "c"}))
	assert.False(t, wixutil.ValidateCredentials(wixutil.Credentials{}))

	err := wixutil.CheckCredentials(wixutil.Credentials{SiteID: "s"})
	require.ErrorIs(t, err, wixutil.ErrMissingCredentials)
	assert.Contains(t, err.Error(), "ClientID")

	env := map[string]string{wix.EnvClientID: "c", wix.EnvSiteID: "s"}
	credentials := wixutil.CredentialsFromEnv(func(key string) string { return env[key] })
	assert.True(t, wixutil.ValidateCredentials(credentials))
}

func TestBuildAPIURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://www.wixapis.com/stores/v1/products", wixutil.BuildAPIURL("/stores/v1/products"))
	assert.Equal(t, "https://www.wixapis.com/stores/v1/products", wixutil.BuildAPIURL("stores/v1/products"))
}

func TestSafeJSONParse(t *testing.T) {
	t.Parallel()

	parsed := wixutil.SafeJSONParse(`{"name":"blog"}`, map[string]string{})
	assert.Equal(t, "blog", parsed["name"])

	fallback := map[string]string{"fallback": "yes"}
	assert.Equal(t, fallback, wixutil.SafeJSONParse(`{not json`, fallback))
	assert.Equal(t, 7, wixutil.SafeJSONParse(`"seven"`, 7))
}

func TestDebounce(t *testing.T) {
	t.Parallel()

	t.Run("calls once with the last argument", func(t *testing.T) {
		t.Parallel()

		var (
			mutex sync.Mutex
			calls []string
		)

		done := make(chan struct{})
		trigger, _ := wixutil.Debounce(func(value string) {
			mutex.Lock()
			calls = append(calls, value)
			mutex.Unlock()
			close(done)
		}, 20*time.Millisecond)

		trigger("a")
		trigger("b")
		trigger("c")

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("debounced function was not called")
		}

		time.Sleep(40 * time.Millisecond)

		mutex.Lock()
		defer mutex.Unlock()
		assert.Equal(t, []string{"c"}, calls)
	})

	t.Run("stop cancels the pending call", func(t *testing.T) {
		t.Parallel()

		called := make(chan struct{}, 1)
		trigger, stop := wixutil.Debounce(func(struct{}) { called <- struct{}{} }, 20*time.Millisecond)

		trigger(struct{}{})
		stop()

		select {
		case <-called:
			t.Fatal("stopped debounce still fired")
		case <-time.After(60 * time.Millisecond):
		}
	})
}

func TestGenerateUniqueID(t *testing.T) {
	t.Parallel()

	pattern := regexp.MustCompile(`^\d{13}-[0-9a-f]{9}$`)
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		id := wixutil.GenerateUniqueID()
		assert.Regexp(t, pattern, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Hello World":          "hello-world",
		"  Hello,   World!  ":  "hello-world",
		"--Already--dashed--":  "already-dashed",
		"snake_case stays":     "snake_case-stays",
		"Café Crème":           "caf-crme",
		"":                     "",
		"!!!":                  "",
	}

	for input, expected := range tests {
		assert.Equal(t, expected, wixutil.Slugify(input), input)
	}
}
