// Package htmltext strips markup from collaborator responses which come
// back as HTML, such as encyclopedia sections and linked discussion pages.
package htmltext

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Text returns the text content of r by dropping all non-text tags and
// trimming whitespace.
func Text(r io.Reader) (string, error) {
	var text strings.Builder
	tokenizer := html.NewTokenizer(r)
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			if tokenizer.Err() == io.EOF {
				break
			}
			return "", fmt.Errorf("tokenizer error: %w", tokenizer.Err())
		}
		if tt == html.TextToken {
			trimmed := bytes.TrimSpace(tokenizer.Text())
			if len(trimmed) > 0 {
				text.Write(trimmed)
				text.WriteRune('\n')
			}
		}
	}
	return text.String(), nil
}

// Paragraphs returns the text of the first n paragraph elements of r,
// joined by newlines. Pages without paragraph tags yield an empty string.
func Paragraphs(r io.Reader, n int) (string, error) {
	var paragraphs []string
	var current strings.Builder
	inParagraph := false
	tokenizer := html.NewTokenizer(r)
	for len(paragraphs) < n {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			if tokenizer.Err() == io.EOF {
				return strings.Join(paragraphs, "\n"), nil
			}
			return "", fmt.Errorf("tokenizer error: %w", tokenizer.Err())
		case html.StartTagToken:
			if name, _ := tokenizer.TagName(); string(name) == "p" {
				inParagraph = true
				current.Reset()
			}
		case html.EndTagToken:
			if name, _ := tokenizer.TagName(); string(name) == "p" && inParagraph {
				inParagraph = false
				if text := strings.TrimSpace(current.String()); text != "" {
					paragraphs = append(paragraphs, text)
				}
			}
		case html.TextToken:
			if inParagraph {
				current.Write(tokenizer.Text())
			}
		}
	}
	return strings.Join(paragraphs, "\n"), nil
}

// Truncate shortens s to at most limit runes, appending an ellipsis when
// something was cut.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
