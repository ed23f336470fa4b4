package clipper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ai-grocery-assistant/internal/ghost"
	"ai-grocery-assistant/internal/llm"
	"ai-grocery-assistant/internal/mealplan"

	"github.com/PuerkitoBio/goquery"
)

// Clipper fetches meal-plan pages, extracts their recipes and optionally
// publishes the result to Ghost.
type Clipper struct {
	ghostClient ghost.Client
	textGen     llm.TextGenerator
}

// ClipResult holds the extraction outcome for a clipped URL.
type ClipResult struct {
	SourceURL string
	Recipes   []mealplan.Recipe
	Post      *ghost.Post
	Meta      llm.CallMeta

	// UsedLLM is set when the heuristic extractor found nothing usable and
	// the model performed the extraction instead.
	UsedLLM bool
}

// NewClipper creates a new Clipper instance. ghostClient may be nil, in which
// case publishing is skipped.
func NewClipper(ghostClient ghost.Client, textGen llm.TextGenerator) *Clipper {
	return &Clipper{
		ghostClient: ghostClient,
		textGen:     textGen,
	}
}

// ClipURL fetches the URL and extracts its recipes. The narrative extractor
// runs first; the model is only consulted when the page yields no recipe with
// ingredients. When publish is set and a Ghost client is configured, the
// formatted plan is saved as a published post.
func (c *Clipper) ClipURL(ctx context.Context, url string, publish bool) (*ClipResult, error) {
	content, err := c.fetchAndCleanHTML(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	result := &ClipResult{SourceURL: url}

	extraction := mealplan.ExtractNarrative(content)
	result.Recipes = extraction.Recipes

	if !hasIngredients(extraction.Recipes) {
		recipes, meta, err := c.extractWithModel(ctx, content)
		if err != nil {
			return nil, err
		}
		result.Recipes = recipes
		result.Meta = meta
		result.UsedLLM = true
	}

	if len(result.Recipes) == 0 {
		return nil, fmt.Errorf("no recipes found at %s", url)
	}

	if publish && c.ghostClient != nil {
		title := result.Recipes[0].Title
		if len(result.Recipes) > 1 {
			title = fmt.Sprintf("Meal plan: %d recipes", len(result.Recipes))
		}
		post, err := c.ghostClient.CreatePost(title, formatToHTML(result.Recipes, url), true)
		if err != nil {
			return nil, fmt.Errorf("failed to save to ghost: %w", err)
		}
		result.Post = post
	}

	return result, nil
}

func hasIngredients(recipes []mealplan.Recipe) bool {
	for _, r := range recipes {
		if len(r.Ingredients) > 0 {
			return true
		}
	}
	return false
}

func (c *Clipper) extractWithModel(ctx context.Context, content string) ([]mealplan.Recipe, llm.CallMeta, error) {
	prompt := fmt.Sprintf(`
You are a recipe extraction expert. Extract every recipe from the following page text.
Return the result strictly as a JSON object with this structure:
{
  "recipes": [
    {
      "title": "Recipe Title",
      "meal_type": "breakfast|lunch|dinner|snack",
      "ingredients": ["2 cups flour", "1 egg", ...],
      "instructions": ["Step 1", "Step 2", ...],
      "prep_time": "e.g. 30 mins",
      "servings": "e.g. 4 people"
    }
  ]
}

Page Text:
%s
`, content)

	start := time.Now()
	resp, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, llm.CallMeta{}, fmt.Errorf("ai extraction failed: %w", err)
	}
	meta := llm.CallMeta{Caller: "clipper", Usage: resp.Usage, Latency: time.Since(start)}

	var extracted struct {
		Recipes []mealplan.Recipe `json:"recipes"`
	}
	if err := json.Unmarshal([]byte(resp.Content), &extracted); err != nil {
		return nil, meta, fmt.Errorf("failed to parse AI response: %w. Response: %s", err, resp.Content)
	}
	if len(extracted.Recipes) == 0 {
		return nil, meta, fmt.Errorf("model found no recipes in page")
	}

	return extracted.Recipes, meta, nil
}

func (c *Clipper) fetchAndCleanHTML(ctx context.Context, url string) (string, error) {
	client := &http.Client{Timeout: 15 * time.Second}
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to keep the extractor input small
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	// Emit one line per block element so the line-oriented extractor sees
	// the same structure a reader would.
	var sb strings.Builder
	doc.Find("body").Find("h1, h2, h3, h4, p, li").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			sb.WriteString(text)
			sb.WriteString("\n")
		}
	})
	if sb.Len() == 0 {
		return doc.Find("body").Text(), nil
	}
	return sb.String(), nil
}

func formatToHTML(recipes []mealplan.Recipe, sourceURL string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<p><i>Imported from: <a href=\"%s\">%s</a></i></p>", sourceURL, sourceURL))

	for _, r := range recipes {
		sb.WriteString(fmt.Sprintf("<h2>%s</h2>", r.Title))
		if r.MealType != "" && r.MealType != mealplan.MealTypeSuggested {
			sb.WriteString(fmt.Sprintf("<p><strong>%s</strong></p>", r.MealType))
		}

		if len(r.Ingredients) > 0 {
			sb.WriteString("<h3>Ingredients</h3><ul>")
			for _, ing := range r.Ingredients {
				sb.WriteString(fmt.Sprintf("<li>%s</li>", ing))
			}
			sb.WriteString("</ul>")
		}

		if len(r.Instructions) > 0 {
			sb.WriteString("<h3>Instructions</h3><ol>")
			for _, step := range r.Instructions {
				sb.WriteString(fmt.Sprintf("<li>%s</li>", step))
			}
			sb.WriteString("</ol>")
		}
	}

	return sb.String()
}
