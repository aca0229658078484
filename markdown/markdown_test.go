package markdown

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormatInlineBold(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"__bold__", "<strong>bold</strong>"},
		{"text **bold** more", "text <strong>bold</strong> more"},
	}
	for _, tt := range tests {
		got := FormatInline(tt.input)
		if got != tt.expected {
			t.Errorf("FormatInline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatInlineItalic(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"*italic*", "<em>italic</em>"},
		{"_italic_", "<em>italic</em>"},
		{"text *italic* more", "text <em>italic</em> more"},
	}
	for _, tt := range tests {
		got := FormatInline(tt.input)
		if got != tt.expected {
			t.Errorf("FormatInline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatInlineNested(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold *italic* text**", "<strong>bold <em>italic</em> text</strong>"},
		{"__bold _italic_ text__", "<strong>bold <em>italic</em> text</strong>"},
	}
	for _, tt := range tests {
		got := FormatInline(tt.input)
		if got != tt.expected {
			t.Errorf("FormatInline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatInlineBoldNotMatchedAsItalic(t *testing.T) {
	input := "**bold**"
	got := FormatInline(input)
	if strings.Contains(got, "<em>") {
		t.Errorf("FormatInline(%q) = %q, should not contain <em>", input, got)
	}
}

func TestRenderMarkdownCodeBlock(t *testing.T) {
	input := "```\ncode here\n```"
	var buf bytes.Buffer
	RenderMarkdown(&buf, input)
	got := buf.String()
	if !strings.Contains(got, "<pre") || !strings.Contains(got, "<code>") {
		t.Errorf("RenderMarkdown code block failed: %q", got)
	}
	if !strings.Contains(got, "code here") {
		t.Errorf("RenderMarkdown code block missing content: %q", got)
	}
}

func TestRenderMarkdownCodeBlockWithLanguage(t *testing.T) {
	input := "```go\nfmt.Println(\"hello\")\n```"
	var buf bytes.Buffer
	RenderMarkdown(&buf, input)
	got := buf.String()
	if !strings.Contains(got, `class="language-go"`) {
		t.Errorf("code block should have language-go class: %q", got)
	}
}

func TestRenderMarkdownHeadings(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"# Heading 1", "<h1>Heading 1</h1>"},
		{"## Heading 2", "<h2>Heading 2</h2>"},
		{"### Heading 3", "<h3>Heading 3</h3>"},
		{"#### Heading 4", "<h4>Heading 4</h4>"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		RenderMarkdown(&buf, tt.input)
		got := buf.String()
		if got != tt.expected {
			t.Errorf("RenderMarkdown(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatInlineLinkWithUnderscoresInURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{
			"[Wikipedia](https://en.wikipedia.org/wiki/Some_Article_Title)",
			`<a href="https://en.wikipedia.org/wiki/Some_Article_Title">Wikipedia</a>`,
		},
		{
			"Visit [link](https://example.com/my_page/sub_path) for info",
			`Visit <a href="https://example.com/my_page/sub_path">link</a> for info`,
		},
	}
	for _, tt := range tests {
		got := FormatInline(tt.input)
		if got != tt.expected {
			t.Errorf("FormatInline(%q)\n  got:  %q\n  want: %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatInlineLinkNewTab(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{
			"[Google](https://google.com)^",
			`<a href="https://google.com" target="_blank" rel="noopener noreferrer">Google</a>`,
		},
		{
			"[Google](https://google.com)",
			`<a href="https://google.com">Google</a>`,
		},
	}
	for _, tt := range tests {
		got := FormatInline(tt.input)
		if got != tt.expected {
			t.Errorf("FormatInline(%q)\n  got:  %q\n  want: %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatInlineImage(t *testing.T) {
	input := "![Cover](/public/uploads/cover.jpg)"
	got := FormatInline(input)
	if !strings.Contains(got, `src="/public/uploads/cover.jpg"`) {
		t.Errorf("FormatInline(%q) = %q, want img src", input, got)
	}
	if !strings.Contains(got, `alt="Cover"`) {
		t.Errorf("FormatInline(%q) = %q, want alt attribute", input, got)
	}
}

func TestFormatInlineUnsafeURLDropped(t *testing.T) {
	input := "[click](javascript:alert(1))"
	got := FormatInline(input)
	if strings.Contains(got, "javascript") {
		t.Errorf("FormatInline(%q) = %q, unsafe scheme should be dropped", input, got)
	}
	if !strings.Contains(got, "click") {
		t.Errorf("FormatInline(%q) = %q, link text should survive", input, got)
	}
}

func TestFormatInlineCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"`code`", "<code>code</code>"},
		{"use `fmt.Println` here", "use <code>fmt.Println</code> here"},
		{"`a` and `b`", "<code>a</code> and <code>b</code>"},
		// bold inside backticks should not be formatted
		{"`**not bold**`", "<code>**not bold**</code>"},
	}
	for _, tt := range tests {
		got := FormatInline(tt.input)
		if got != tt.expected {
			t.Errorf("FormatInline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderMarkdownList(t *testing.T) {
	input := "- item 1\n- item 2"
	var buf bytes.Buffer
	RenderMarkdown(&buf, input)
	got := buf.String()
	expected := "<ul><li>item 1</li><li>item 2</li></ul>"
	if got != expected {
		t.Errorf("RenderMarkdown(%q) = %q, want %q", input, got, expected)
	}
}

func TestRenderMarkdownOrderedList(t *testing.T) {
	input := "1. first\n2. second\n3. third"
	var buf bytes.Buffer
	RenderMarkdown(&buf, input)
	got := buf.String()
	expected := "<ol><li>first</li><li>second</li><li>third</li></ol>"
	if got != expected {
		t.Errorf("RenderMarkdown(%q) = %q, want %q", input, got, expected)
	}
}

func TestRenderMarkdownTable(t *testing.T) {
	input := "| a | b |\n|---|---|\n| 1 | 2 |"
	var buf bytes.Buffer
	RenderMarkdown(&buf, input)
	got := buf.String()
	if !strings.Contains(got, "<table>") || !strings.Contains(got, "</table>") {
		t.Errorf("expected table tags: %q", got)
	}
	if !strings.Contains(got, "<th>a</th>") {
		t.Errorf("expected header cell: %q", got)
	}
	if !strings.Contains(got, "<td>1</td>") {
		t.Errorf("expected body cell: %q", got)
	}
}

func TestRenderMarkdownBlockquote(t *testing.T) {
	input := "> quoted text"
	var buf bytes.Buffer
	RenderMarkdown(&buf, input)
	got := buf.String()
	expected := "<blockquote>quoted text</blockquote>"
	if got != expected {
		t.Errorf("RenderMarkdown(%q) = %q, want %q", input, got, expected)
	}
}

func TestRenderMarkdownOrderedListFollowedByParagraph(t *testing.T) {
	input := "1. item one\n2. item two\n\nsome text"
	var buf bytes.Buffer
	RenderMarkdown(&buf, input)
	got := buf.String()
	if !strings.Contains(got, "<ol>") || !strings.Contains(got, "</ol>") {
		t.Errorf("expected <ol> tags: %q", got)
	}
	if !strings.Contains(got, "<p>") {
		t.Errorf("expected paragraph after list: %q", got)
	}
}
