package htmltext

import (
	"strings"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func TestText(t *testing.T) {
	t.Run("it should drop tags and keep text", func(t *testing.T) {
		in := `<html><head><title>T</title></head><body><h1>Hello</h1><p>world</p></body></html>`
		got, err := Text(strings.NewReader(in))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, got, "T\nHello\nworld\n")
	})

	t.Run("it should skip whitespace-only text nodes", func(t *testing.T) {
		in := "<div>\n   \n<span>a</span>\n</div>"
		got, err := Text(strings.NewReader(in))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, got, "a\n")
	})
}

func TestParagraphs(t *testing.T) {
	t.Run("it should stop after n paragraphs", func(t *testing.T) {
		in := `<body><p>one</p><p>two</p><p>three</p></body>`
		got, err := Paragraphs(strings.NewReader(in), 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, got, "one\ntwo")
	})

	t.Run("it should return empty string when no paragraphs exist", func(t *testing.T) {
		in := `<body><div>nothing here</div></body>`
		got, err := Paragraphs(strings.NewReader(in), 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, got, "")
	})

	t.Run("it should keep nested inline text", func(t *testing.T) {
		in := `<p>see <a href="x">link</a> here</p>`
		got, err := Paragraphs(strings.NewReader(in), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, got, "see link here")
	})
}

func TestTruncate(t *testing.T) {
	t.Run("it should leave short strings alone", func(t *testing.T) {
		testboil.FailTestIfDiff(t, Truncate("abc", 10), "abc")
	})
	t.Run("it should cut long strings with ellipsis", func(t *testing.T) {
		got := Truncate("abcdefghij", 8)
		testboil.FailTestIfDiff(t, got, "abcde...")
	})
}
