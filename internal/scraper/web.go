package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const webUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Web scrapes arbitrary web pages, with a soft spot for recipe sites
// carrying schema.org markup. It is the universal fallback: CanHandle
// accepts everything.
type Web struct {
	client *http.Client
}

// NewWeb creates a web scraper.
func NewWeb() *Web {
	return &Web{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (w *Web) Name() string {
	return "web"
}

// CanHandle always returns true; the web scraper is the fallback for
// every URL no other scraper claims.
func (w *Web) CanHandle(url string) bool {
	return true
}

// Scrape fetches the page and extracts structured recipe data when
// present, falling back to whole-page text. The transcribe flag is
// accepted but meaningless here: a web page has no audio.
func (w *Web) Scrape(ctx context.Context, url string, transcribe bool) Result {
	log.Printf("[web] scraping %s", url)

	doc, err := w.fetch(ctx, url)
	if err != nil {
		log.Printf("[web] failed to scrape %s: %v", url, err)
		return failed(url, err)
	}

	if rec, ok := findRecipe(doc); ok {
		log.Printf("[web] found structured recipe data")
		return Result{
			Captions:    rec.description,
			Description: rec.description,
			OriginalURL: url,
			Metadata:    rec.metadata(),
		}
	}

	log.Printf("[web] no structured data found, extracting page text")
	text := extractText(doc)
	metadata := map[string]string{
		"title": doc.Find("title").First().Text(),
	}

	return Result{
		Captions:    text,
		Description: text,
		OriginalURL: url,
		Metadata:    metadata,
	}
}

func (w *Web) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	req.Header.Set("User-Agent", webUserAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch page: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return doc, nil
}

// recipe holds the fields extracted from a schema.org Recipe object.
type recipe struct {
	title       string
	description string
	author      string
	prepTime    string
	cookTime    string
	servings    string
}

func (r *recipe) metadata() map[string]string {
	return map[string]string{
		"title":       r.title,
		"description": r.description,
		"author":      r.author,
		"prep_time":   r.prepTime,
		"cook_time":   r.cookTime,
		"servings":    r.servings,
	}
}

// findRecipe scans the page's JSON-LD blocks for a Recipe object.
// Malformed blocks are skipped; the next one might parse fine.
func findRecipe(doc *goquery.Document) (*recipe, bool) {
	var found *recipe

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		rec, ok := parseRecipeBlock(sel.Text())
		if !ok {
			return true
		}
		found = rec
		return false
	})

	return found, found != nil
}

func parseRecipeBlock(raw string) (*recipe, bool) {
	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, false
	}

	// A block can hold a single object or an array of them.
	obj, ok := data.(map[string]any)
	if !ok {
		list, isList := data.([]any)
		if !isList {
			return nil, false
		}
		for _, item := range list {
			if m, isMap := item.(map[string]any); isMap && m["@type"] == "Recipe" {
				obj = m
				break
			}
		}
	}
	if obj == nil || obj["@type"] != "Recipe" {
		return nil, false
	}

	return &recipe{
		title:       asString(obj["name"]),
		description: buildRecipeDescription(obj),
		author:      authorName(obj["author"]),
		prepTime:    asString(obj["prepTime"]),
		cookTime:    asString(obj["cookTime"]),
		servings:    asString(obj["recipeYield"]),
	}, true
}

// buildRecipeDescription synthesizes a readable description from the
// ingredient and instruction lists.
func buildRecipeDescription(obj map[string]any) string {
	var parts []string

	if ingredients, ok := obj["recipeIngredient"].([]any); ok && len(ingredients) > 0 {
		parts = append(parts, "INGREDIENTS:")
		for _, ing := range ingredients {
			parts = append(parts, asString(ing))
		}
		parts = append(parts, "")
	}

	switch instructions := obj["recipeInstructions"].(type) {
	case []any:
		if len(instructions) > 0 {
			parts = append(parts, "INSTRUCTIONS:")
			for i, inst := range instructions {
				parts = append(parts, fmt.Sprintf("%d. %s", i+1, instructionText(inst)))
			}
		}
	case nil:
	default:
		parts = append(parts, "INSTRUCTIONS:", asString(instructions))
	}

	return strings.Join(parts, "\n")
}

// instructionText unwraps a HowToStep object to its text field;
// plain-string instructions pass through.
func instructionText(inst any) string {
	if m, ok := inst.(map[string]any); ok {
		if text, ok := m["text"].(string); ok {
			return text
		}
	}
	return asString(inst)
}

// authorName unwraps a nested Person object to its name; plain-string
// authors pass through.
func authorName(author any) string {
	if m, ok := author.(map[string]any); ok {
		return asString(m["name"])
	}
	return asString(author)
}

// asString coerces JSON scalar values to strings.
func asString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []any:
		if len(val) > 0 {
			return asString(val[0])
		}
		return ""
	default:
		return fmt.Sprint(val)
	}
}

// extractText strips non-content markup and returns the page's visible
// text, one trimmed line per non-blank source line.
func extractText(doc *goquery.Document) string {
	doc.Find("script, style, nav, footer, header").Remove()

	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, "\n")
}
