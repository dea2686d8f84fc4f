// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

// stripped renders markdown and returns ANSI-stripped visible text.
func stripped(input string, width int) string {
	return ansi.Strip(RenderMarkdown(input, DefaultTheme, width))
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if result := RenderMarkdown("", DefaultTheme, 80); result != "" {
		t.Errorf("expected empty output for empty input, got %q", result)
	}
}

func TestRenderMarkdownParagraphReflow(t *testing.T) {
	// Source text hard-wrapped at a narrow width.
	input := "This is a reply that was\nwritten at a narrow width with\nhard line breaks embedded in it."
	result := stripped(input, 120)

	if strings.Contains(result, "\n") {
		t.Errorf("expected no newlines at width=120, got:\n%s", result)
	}
	if !strings.Contains(result, "was written at") {
		t.Errorf("expected soft break converted to space, got:\n%s", result)
	}
}

func TestRenderMarkdownWrapsToWidth(t *testing.T) {
	input := "This is a reply that should be wrapped at the target width."
	result := stripped(input, 30)

	for _, line := range strings.Split(result, "\n") {
		if len(line) > 30 {
			t.Errorf("line exceeds width 30: %q (len=%d)", line, len(line))
		}
	}
}

func TestRenderMarkdownHardLineBreak(t *testing.T) {
	// Two trailing spaces are a hard break in CommonMark.
	input := "Line one  \nLine two"
	result := stripped(input, 80)

	if !strings.Contains(result, "Line one\nLine two") {
		t.Errorf("expected hard line break preserved, got:\n%s", result)
	}
}

func TestRenderMarkdownHeadingAndEmphasis(t *testing.T) {
	input := "## Required documents\n\nBring your *passport* and **two photos**."
	result := stripped(input, 80)

	if !strings.Contains(result, "Required documents") {
		t.Error("missing heading text")
	}
	if !strings.Contains(result, "passport") || !strings.Contains(result, "two photos") {
		t.Errorf("missing emphasized text, got:\n%s", result)
	}
	if raw := RenderMarkdown(input, DefaultTheme, 80); raw == result {
		t.Error("expected ANSI styling in output")
	}
}

func TestRenderMarkdownList(t *testing.T) {
	input := "Steps:\n\n1. Create an account\n2. Upload documents\n\n- passport\n- photos"
	result := stripped(input, 80)

	for _, want := range []string{"1. Create an account", "2. Upload documents", "- passport", "- photos"} {
		if !strings.Contains(result, want) {
			t.Errorf("missing list entry %q in:\n%s", want, result)
		}
	}
}

func TestRenderMarkdownFencedCode(t *testing.T) {
	input := "Run this:\n\n```bash\nconvert photo.jpg photo.png\n```\n\nDone."
	result := stripped(input, 80)

	if !strings.Contains(result, "convert photo.jpg photo.png") {
		t.Errorf("missing code content, got:\n%s", result)
	}
}

func TestRenderMarkdownBlockquote(t *testing.T) {
	input := "> The embassy requires originals."
	result := stripped(input, 80)

	if !strings.Contains(result, "│ The embassy requires originals.") {
		t.Errorf("missing blockquote prefix, got:\n%s", result)
	}
}

func TestRenderMarkdownLink(t *testing.T) {
	input := "See [the portal](https://visa.example.com)."
	result := stripped(input, 80)

	if !strings.Contains(result, "the portal") {
		t.Error("missing link text")
	}
	if !strings.Contains(result, "(https://visa.example.com)") {
		t.Errorf("missing link destination, got:\n%s", result)
	}
}

func TestSpliceOverlay(t *testing.T) {
	view := "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc"
	overlay := []string{"XXXX", "YYYY"}

	result := SpliceOverlay(view, overlay, 3, 1)
	lines := strings.Split(result, "\n")

	if ansi.Strip(lines[0]) != "aaaaaaaaaa" {
		t.Errorf("line 0 changed: %q", lines[0])
	}
	if got := ansi.Strip(lines[1]); got != "bbbXXXXbbb" {
		t.Errorf("line 1 = %q, want bbbXXXXbbb", got)
	}
	if got := ansi.Strip(lines[2]); got != "cccYYYYccc" {
		t.Errorf("line 2 = %q, want cccYYYYccc", got)
	}
}

func TestSpliceOverlayOutOfRange(t *testing.T) {
	view := "aaaa\nbbbb"
	result := SpliceOverlay(view, []string{"XX", "YY", "ZZ"}, 0, 1)
	lines := strings.Split(result, "\n")
	if len(lines) != 2 {
		t.Fatalf("view grew to %d lines", len(lines))
	}
	if got := ansi.Strip(lines[0]); got != "aaaa" {
		t.Errorf("line 0 = %q, want aaaa", got)
	}
	if got := ansi.Strip(lines[1]); got != "XXbb" {
		t.Errorf("line 1 = %q, want XXbb", got)
	}

	// A negative anchor drops the overlay lines above the view.
	result = SpliceOverlay(view, []string{"XX", "YY"}, 0, -1)
	lines = strings.Split(result, "\n")
	if got := ansi.Strip(lines[0]); got != "YYaa" {
		t.Errorf("line 0 = %q, want YYaa", got)
	}
	if got := ansi.Strip(lines[1]); got != "bbbb" {
		t.Errorf("line 1 = %q, want bbbb", got)
	}
}

func TestExtractExcerpt(t *testing.T) {
	body := "\n\nFirst line of the body\n\nSecond line that is quite a bit longer than the width\nThird"
	excerpt := ExtractExcerpt(body, 20, 2)

	if len(excerpt) != 2 {
		t.Fatalf("got %d lines, want 2", len(excerpt))
	}
	if ansi.StringWidth(excerpt[0]) > 20 || !strings.HasSuffix(excerpt[0], "…") {
		t.Errorf("first line not truncated to width: %q", excerpt[0])
	}
	if ansi.StringWidth(excerpt[1]) > 20 {
		t.Errorf("second line exceeds width: %q", excerpt[1])
	}
}
