package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"bidly-backend/config"
)

// Summarizer is the external AI collaborator: submit text, receive a summary.
// Every call is best-effort from the caller's point of view; a failure must
// never block or roll back the core write it follows.
type Summarizer interface {
	SummarizePlan(ctx context.Context, planText string) (string, error)
	SummarizeBid(ctx context.Context, bidText string) (*BidSummary, error)
	CompareBids(ctx context.Context, bids []BidComparisonInput) (string, error)
}

type BidSummary struct {
	Summary           string
	ExtractedPrice    *float64
	ExtractedDuration string
}

type BidComparisonInput struct {
	SubName string
	Amount  *float64
	Summary string
}

// GeminiSummarizer calls the Gemini REST API directly.
type GeminiSummarizer struct {
	APIKey string
	Model  string
	Client *http.Client
}

// NewSummarizerFromConfig returns a Gemini-backed summarizer, or nil when no
// API key is configured (callers treat nil as "enrichment disabled").
func NewSummarizerFromConfig() Summarizer {
	if config.AppConfig.GeminiAPIKey == "" {
		return nil
	}
	return &GeminiSummarizer{
		APIKey: config.AppConfig.GeminiAPIKey,
		Model:  "gemini-pro",
		Client: &http.Client{Timeout: 60 * time.Second},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (g *GeminiSummarizer) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", g.Model, g.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.Error.Message != "" {
		return "", errors.New(out.Error.Message)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty model response")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

const maxPromptText = 30000

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func (g *GeminiSummarizer) SummarizePlan(ctx context.Context, planText string) (string, error) {
	prompt := `You are an assistant helping subcontractors understand construction plans.
Summarize the attached project plans in 10-12 bullet points. Highlight:
- Scope of work
- Materials mentioned
- Deadlines and timelines
- Key constraints or requirements
- Important specifications

Keep it clear and non-technical. Format as bullet points.

Project Plans:
` + truncate(planText, maxPromptText)
	return g.generate(ctx, prompt)
}

func (g *GeminiSummarizer) SummarizeBid(ctx context.Context, bidText string) (*BidSummary, error) {
	prompt := `Summarize this subcontractor bid for the General Contractor in 8-10 bullet points. Include:
- Approximate pricing (if mentioned)
- Duration/timeline
- Inclusions
- Exclusions
- Key assumptions or conditions

Keep it concise and actionable.

Bid Document:
` + truncate(bidText, maxPromptText)

	summary, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &BidSummary{
		Summary:           summary,
		ExtractedPrice:    ExtractPrice(summary),
		ExtractedDuration: ExtractDuration(summary),
	}, nil
}

func (g *GeminiSummarizer) CompareBids(ctx context.Context, bids []BidComparisonInput) (string, error) {
	var sb strings.Builder
	sb.WriteString("Compare the following subcontractor bids for the same project. For each bid, we provide: name, price, and key notes.\n\n")
	for i, bid := range bids {
		name := bid.SubName
		if name == "" {
			name = "Unknown"
		}
		price := "Not specified"
		if bid.Amount != nil {
			price = fmt.Sprintf("$%.2f", *bid.Amount)
		}
		summary := bid.Summary
		if summary == "" {
			summary = "No summary available"
		}
		fmt.Fprintf(&sb, "Bid %d:\n- Subcontractor: %s\n- Price: %s\n- Summary: %s\n\n", i+1, name, price, summary)
	}
	sb.WriteString(`Please create a comparison analysis:
1. Create a comparison table in text format
2. Highlight which bid is best for: lowest cost, fastest delivery, and best overall value
3. Mention potential risks or missing items
4. Provide a recommendation

Format the response clearly with sections.`)

	return g.generate(ctx, sb.String())
}

var (
	priceRegex    = regexp.MustCompile(`\$[\d,]+(?:\.\d{2})?`)
	durationRegex = regexp.MustCompile(`(?i)(\d+)\s*(?:weeks?|months?|days?)`)
)

// ExtractPrice pulls the first dollar figure out of summary text.
func ExtractPrice(text string) *float64 {
	match := priceRegex.FindString(text)
	if match == "" {
		return nil
	}
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(match)
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &value
}

// ExtractDuration pulls the first "<n> days/weeks/months" phrase out of
// summary text.
func ExtractDuration(text string) string {
	return durationRegex.FindString(text)
}
