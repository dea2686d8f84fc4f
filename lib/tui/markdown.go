// Copyright 2026 The Nuxt Visa Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// parserInstance is initialized once and reused. The parser
// configuration never changes and the goldmark Parser is safe to
// share; parsing creates per-call state via Parse(reader).
//
// Assistant replies are prose with the occasional code block, so only
// the strikethrough and linkify extensions are enabled. Tables and
// task lists are out.
var (
	parserInstance goldmark.Markdown
	parserOnce     sync.Once
)

func markdownParser() goldmark.Markdown {
	parserOnce.Do(func() {
		parserInstance = goldmark.New(
			goldmark.WithExtensions(
				extension.Strikethrough,
				extension.Linkify,
			),
		)
	})
	return parserInstance
}

// RenderMarkdown parses markdown text and renders it as styled
// terminal output wrapped to width. Soft line breaks (single newlines
// within paragraphs) become spaces so hard-wrapped source reflows
// correctly at any terminal width. Code blocks, lists, and
// blockquotes keep their structure.
func RenderMarkdown(input string, theme Theme, width int) string {
	if input == "" {
		return ""
	}
	source := []byte(input)
	reader := text.NewReader(source)
	document := markdownParser().Parser().Parse(reader)

	// Force the ANSI256 profile: this output is always for terminal
	// display inside the bubbletea program, and auto-detection would
	// produce uncolored output in test environments with no TTY.
	styles := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	styles.SetColorProfile(termenv.ANSI256)

	r := &markdownRenderer{
		source: source,
		theme:  theme,
		width:  width,
		styles: styles,
	}
	ast.Walk(document, r.walk)

	return strings.TrimRight(r.output.String(), "\n")
}

// markdownRenderer walks a goldmark AST and produces styled terminal
// text. It uses a direct ast.Walk rather than goldmark's renderer
// interface because terminal rendering needs accumulate-then-wrap
// semantics: a paragraph's inline content collects in a buffer and is
// word-wrapped as a unit when the paragraph closes.
type markdownRenderer struct {
	source []byte
	theme  Theme
	width  int

	output strings.Builder

	// Inline accumulator for the current paragraph or heading,
	// flushed with word-wrap when the block closes.
	inline strings.Builder

	// Prefix stack for nested containers (blockquotes, lists).
	prefixStack []prefixLevel
	linePrefix  string
	prefixWidth int

	// Pending bullet replaces linePrefix for the next emitted line,
	// then clears. Used for list item bullets and numbers.
	pendingBullet string

	// Inline style counters. Counters rather than booleans so nested
	// emphasis unwinds correctly.
	boldCount   int
	italicCount int
	strikeCount int

	listStack []listState

	styles *lipgloss.Renderer

	// Trailing newlines at the end of output, for blank line
	// management between blocks.
	trailingNewlines int
}

type prefixLevel struct {
	text  string
	width int
}

type listState struct {
	ordered bool
	counter int
	tight   bool
}

func (r *markdownRenderer) newStyle() lipgloss.Style {
	return r.styles.NewStyle()
}

// contentWidth is the width left after nesting prefixes, clamped to a
// minimum of 10 to prevent degenerate wrapping.
func (r *markdownRenderer) contentWidth() int {
	width := r.width - r.prefixWidth
	if width < 10 {
		width = 10
	}
	return width
}

func (r *markdownRenderer) pushPrefix(prefix string, visibleWidth int) {
	r.prefixStack = append(r.prefixStack, prefixLevel{text: prefix, width: visibleWidth})
	r.linePrefix += prefix
	r.prefixWidth += visibleWidth
}

func (r *markdownRenderer) popPrefix() {
	if len(r.prefixStack) == 0 {
		return
	}
	top := r.prefixStack[len(r.prefixStack)-1]
	r.prefixStack = r.prefixStack[:len(r.prefixStack)-1]
	r.linePrefix = r.linePrefix[:len(r.linePrefix)-len(top.text)]
	r.prefixWidth -= top.width
}

func (r *markdownRenderer) inTightList() bool {
	if len(r.listStack) == 0 {
		return false
	}
	return r.listStack[len(r.listStack)-1].tight
}

func (r *markdownRenderer) writeOutput(s string) {
	if s == "" {
		return
	}
	r.output.WriteString(s)

	trailing := 0
	allNewlines := true
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '\n' {
			trailing++
		} else {
			allNewlines = false
			break
		}
	}
	if allNewlines {
		r.trailingNewlines += trailing
	} else {
		r.trailingNewlines = trailing
	}
}

func (r *markdownRenderer) ensureNewline() {
	if r.trailingNewlines < 1 {
		r.writeOutput("\n")
	}
}

func (r *markdownRenderer) ensureBlankLine() {
	for r.trailingNewlines < 2 {
		r.writeOutput("\n")
	}
}

// consumeLinePrefix returns the prefix for the current line. A
// pending bullet wins once, for the first line of a list item.
func (r *markdownRenderer) consumeLinePrefix() string {
	if r.pendingBullet != "" {
		bullet := r.pendingBullet
		r.pendingBullet = ""
		return bullet
	}
	return r.linePrefix
}

func (r *markdownRenderer) applyPrefixes(content string) string {
	lines := strings.Split(content, "\n")
	var result strings.Builder
	for i, line := range lines {
		if i == 0 {
			result.WriteString(r.consumeLinePrefix())
		} else {
			result.WriteString(r.linePrefix)
		}
		result.WriteString(line)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// flushInline word-wraps the accumulated inline content, applies line
// prefixes, and resets the buffer.
func (r *markdownRenderer) flushInline() string {
	content := r.inline.String()
	r.inline.Reset()
	if content == "" {
		return ""
	}
	content = ansi.Wrap(content, r.contentWidth(), " ,.;-+|")
	return r.applyPrefixes(content)
}

func (r *markdownRenderer) styledText(content string) string {
	style := r.newStyle().Foreground(r.theme.NormalText)
	if r.boldCount > 0 {
		style = style.Bold(true)
	}
	if r.italicCount > 0 {
		style = style.Italic(true)
	}
	if r.strikeCount > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(content)
}

// renderInlineContent collects a node's children into a string,
// saving and restoring the inline buffer and style state so the
// caller's context is unaffected.
func (r *markdownRenderer) renderInlineContent(node ast.Node) string {
	savedInline := r.inline.String()
	savedBold, savedItalic, savedStrike := r.boldCount, r.italicCount, r.strikeCount

	r.inline.Reset()
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		ast.Walk(child, r.walk)
	}
	result := r.inline.String()

	r.inline.Reset()
	r.inline.WriteString(savedInline)
	r.boldCount, r.italicCount, r.strikeCount = savedBold, savedItalic, savedStrike

	return result
}

// highlightCode syntax-highlights code with Chroma, falling back to
// FaintText-styled plain text for unknown languages.
func (r *markdownRenderer) highlightCode(code, language string) string {
	if language == "" {
		return r.newStyle().Foreground(r.theme.FaintText).Render(code)
	}
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, code, language, "terminal256", "monokai"); err != nil {
		return r.newStyle().Foreground(r.theme.FaintText).Render(code)
	}
	return buffer.String()
}

func (r *markdownRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {

	case ast.KindDocument:

	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			r.inline.Reset()
		} else {
			flushed := r.flushInline()
			if flushed != "" {
				r.writeOutput(flushed)
				r.ensureNewline()
				if !r.inTightList() {
					r.ensureBlankLine()
				}
			}
		}

	case ast.KindHeading:
		if entering {
			r.inline.Reset()
		} else {
			r.leaveHeading(node.(*ast.Heading))
		}

	case ast.KindFencedCodeBlock:
		if entering {
			fenced := node.(*ast.FencedCodeBlock)
			r.renderCode(blockText(fenced, r.source), string(fenced.Language(r.source)))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindCodeBlock:
		if entering {
			r.renderCode(blockText(node, r.source), "")
			return ast.WalkSkipChildren, nil
		}

	case ast.KindBlockquote:
		if entering {
			r.pushPrefix("│ ", 2)
		} else {
			r.popPrefix()
			r.ensureBlankLine()
		}

	case ast.KindList:
		if entering {
			r.enterList(node.(*ast.List))
		} else {
			r.leaveList()
		}

	case ast.KindListItem:
		if entering {
			r.enterListItem()
		} else {
			r.leaveListItem()
		}

	case ast.KindThematicBreak:
		if entering {
			r.renderThematicBreak()
		}

	case ast.KindText:
		if entering {
			r.handleText(node.(*ast.Text))
		}

	case ast.KindString:
		if entering {
			r.inline.WriteString(r.styledText(string(node.(*ast.String).Value)))
		}

	case ast.KindEmphasis:
		emphasis := node.(*ast.Emphasis)
		delta := 1
		if !entering {
			delta = -1
		}
		if emphasis.Level >= 2 {
			r.boldCount += delta
		} else {
			r.italicCount += delta
		}

	case ast.KindCodeSpan:
		if entering {
			r.renderCodeSpan(node)
			return ast.WalkSkipChildren, nil
		}

	case ast.KindLink:
		if entering {
			r.renderLink(node.(*ast.Link))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindAutoLink:
		if entering {
			url := string(node.(*ast.AutoLink).URL(r.source))
			r.inline.WriteString(r.newStyle().Foreground(r.theme.FaintText).Render(url))
		}

	case ast.KindImage:
		if entering {
			r.renderImage(node.(*ast.Image))
			return ast.WalkSkipChildren, nil
		}

	case extast.KindStrikethrough:
		if entering {
			r.strikeCount++
		} else {
			r.strikeCount--
		}
	}

	return ast.WalkContinue, nil
}

func (r *markdownRenderer) leaveHeading(heading *ast.Heading) {
	// Strip inline styling collected so far; the heading style
	// replaces it wholesale.
	content := ansi.Strip(r.inline.String())
	r.inline.Reset()
	if content == "" {
		return
	}

	style := r.newStyle().Bold(true)
	if heading.Level <= 2 {
		style = style.Foreground(r.theme.HeaderForeground)
	} else {
		style = style.Foreground(r.theme.NormalText)
	}

	wrapped := ansi.Wrap(style.Render(content), r.contentWidth(), " ,.;-+|")
	r.ensureBlankLine()
	r.writeOutput(r.applyPrefixes(wrapped))
	r.ensureNewline()
	r.ensureBlankLine()
}

// blockText joins a block node's line segments into one string.
func blockText(node ast.Node, source []byte) string {
	var buffer strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buffer.Write(segment.Value(source))
	}
	return buffer.String()
}

func (r *markdownRenderer) renderCode(code, language string) {
	highlighted := r.highlightCode(code, language)
	r.ensureBlankLine()
	for _, line := range strings.Split(strings.TrimRight(highlighted, "\n"), "\n") {
		r.writeOutput(r.consumeLinePrefix() + line)
		r.ensureNewline()
	}
	r.ensureBlankLine()
}

func (r *markdownRenderer) enterList(list *ast.List) {
	start := 0
	if list.IsOrdered() {
		start = list.Start
	}
	r.listStack = append(r.listStack, listState{
		ordered: list.IsOrdered(),
		counter: start,
		tight:   list.IsTight,
	})
}

func (r *markdownRenderer) leaveList() {
	if len(r.listStack) > 0 {
		r.listStack = r.listStack[:len(r.listStack)-1]
	}
	if !r.inTightList() {
		r.ensureBlankLine()
	}
}

func (r *markdownRenderer) enterListItem() {
	if len(r.listStack) == 0 {
		return
	}
	top := &r.listStack[len(r.listStack)-1]

	var bullet string
	if top.ordered {
		bullet = fmt.Sprintf("%d. ", top.counter)
		top.counter++
	} else {
		bullet = "- "
	}

	bulletWidth := len(bullet) // ASCII, so byte length == visual width.
	continuation := strings.Repeat(" ", bulletWidth)

	// The pending bullet carries the current linePrefix so it
	// replaces the whole prefix for the item's first line.
	r.pendingBullet = r.linePrefix + bullet
	r.pushPrefix(continuation, bulletWidth)
}

func (r *markdownRenderer) leaveListItem() {
	r.popPrefix()
	if !r.inTightList() {
		r.ensureBlankLine()
	} else {
		r.ensureNewline()
	}
}

func (r *markdownRenderer) renderThematicBreak() {
	rule := strings.Repeat("─", r.contentWidth())
	style := r.newStyle().Foreground(r.theme.BorderColor)
	r.ensureBlankLine()
	r.writeOutput(r.applyPrefixes(style.Render(rule)))
	r.ensureNewline()
	r.ensureBlankLine()
}

func (r *markdownRenderer) handleText(node *ast.Text) {
	value := string(node.Segment.Value(r.source))
	r.inline.WriteString(r.styledText(value))

	if node.SoftLineBreak() {
		// Soft breaks become spaces so hard-wrapped source reflows
		// at the terminal's width.
		r.inline.WriteString(" ")
	}
	if node.HardLineBreak() {
		r.inline.WriteString("\n")
	}
}

func (r *markdownRenderer) renderCodeSpan(node ast.Node) {
	var code strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch child := child.(type) {
		case *ast.Text:
			code.Write(child.Segment.Value(r.source))
		case *ast.String:
			code.Write(child.Value)
		}
	}
	r.inline.WriteString(r.newStyle().Foreground(r.theme.FaintText).Render(code.String()))
}

func (r *markdownRenderer) renderLink(node *ast.Link) {
	// renderInlineContent already styles the link text; write it
	// directly to avoid double-styling.
	display := r.renderInlineContent(node)
	url := string(node.Destination)

	r.inline.WriteString(display)
	if url != "" {
		faint := r.newStyle().Foreground(r.theme.FaintText)
		r.inline.WriteString(" " + faint.Render("("+url+")"))
	}
}

func (r *markdownRenderer) renderImage(node *ast.Image) {
	alt := r.renderInlineContent(node)
	url := string(node.Destination)
	faint := r.newStyle().Foreground(r.theme.FaintText)
	r.inline.WriteString(faint.Render("[" + alt + "]"))
	if url != "" {
		r.inline.WriteString(" " + faint.Render("("+url+")"))
	}
}
