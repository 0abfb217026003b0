// Package wixutil holds small helpers shared by the CLI and by programs that
// use the unified client: locale aware formatting, credential checks, URL
// building, lenient JSON parsing, debouncing, ID generation and slugs.
package wixutil
