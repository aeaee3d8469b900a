package content

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// Extractor defines an interface for extracting title and body text from
// article HTML.
type Extractor interface {
	ExtractTitle(htmlContent string) (string, error)
	ExtractText(htmlContent string) (string, error)
}

// DefaultExtractor implements the Extractor interface using readability
// with goquery fallbacks.
type DefaultExtractor struct{}

// NewDefaultExtractor creates a new default extractor
func NewDefaultExtractor() *DefaultExtractor {
	return &DefaultExtractor{}
}

// ExtractTitle extracts the article title using the default extraction logic
func (e *DefaultExtractor) ExtractTitle(htmlContent string) (string, error) {
	return ExtractTitle(htmlContent)
}

// ExtractText extracts the article text using the default extraction logic
func (e *DefaultExtractor) ExtractText(htmlContent string) (string, error) {
	return ExtractText(htmlContent)
}

// ExtractText extracts the main article text from HTML content
func ExtractText(htmlContent string) (string, error) {
	article, err := readability.FromReader(strings.NewReader(htmlContent), nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", fmt.Errorf("no article text found in HTML")
	}

	return text, nil
}

// ExtractTitle extracts the article title from HTML content with fallback mechanisms
func ExtractTitle(htmlContent string) (string, error) {
	// Try readability first
	article, err := readability.FromReader(strings.NewReader(htmlContent), nil)
	if err == nil {
		title := strings.TrimSpace(article.Title)
		if title != "" {
			return title, nil
		}
	}

	// Fallback: Try parsing HTML directly with goquery
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	// Try <title> tag
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title, nil
	}

	// Try <h1> tag (often the main heading)
	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		return title, nil
	}

	// Try meta property="og:title"
	if title, exists := doc.Find("meta[property='og:title']").Attr("content"); exists && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title), nil
	}

	// Try meta name="title"
	if title, exists := doc.Find("meta[name='title']").Attr("content"); exists && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title), nil
	}

	return "", fmt.Errorf("title not found in HTML")
}
