// Package planner is the client for the external itinerary planning service,
// an OpenAI-compatible chat-completions endpoint. The planner drafts a day
// narrative and picks catalog services; all pricing and consistency rules are
// applied locally after the draft comes back.
package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tourcraft/quote-builder/internal/domain"
)

// Draft is the planner's proposal: one entry per trip day, each naming the
// catalog services to book that day. The draft is advisory; the generation
// service re-validates every id against the catalog.
type Draft struct {
	Days []DraftDay `json:"days"`
}

// DraftDay is a single proposed day.
type DraftDay struct {
	Day        int     `json:"day"`
	Title      string  `json:"title"`
	Narrative  string  `json:"narrative"`
	ServiceIDs []int64 `json:"service_ids"`
}

// Request carries the trip constraints the planner works within.
type Request struct {
	Allocation []domain.CityNights
	StartDate  time.Time
	Adults     int
	Children   int

	// Catalog is the excerpt of bookable services the planner may pick from.
	Catalog []domain.CatalogService
}

// Client talks to the planning service. It makes exactly one attempt per
// call; retrying a failed generation is the operator's decision, not the
// client's.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// New constructs a Client. baseURL is the API root without the
// /chat/completions suffix.
func New(baseURL, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// PlanItinerary asks the planning service for a day-by-day draft. Any
// transport failure, non-200 status, or unparseable reply maps to
// domain.ErrUpstream.
func (c *Client) PlanItinerary(ctx context.Context, req Request) (Draft, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(req)},
		},
	})
	if err != nil {
		return Draft{}, fmt.Errorf("planner.Client.PlanItinerary: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return Draft{}, fmt.Errorf("planner.Client.PlanItinerary: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Draft{}, fmt.Errorf("planner.Client.PlanItinerary: %w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Draft{}, fmt.Errorf("planner.Client.PlanItinerary: %w: status %d: %s",
			domain.ErrUpstream, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return Draft{}, fmt.Errorf("planner.Client.PlanItinerary: %w: decode response: %v", domain.ErrUpstream, err)
	}
	if len(chat.Choices) == 0 {
		return Draft{}, fmt.Errorf("planner.Client.PlanItinerary: %w: empty choices", domain.ErrUpstream)
	}

	draft, err := parseDraft(chat.Choices[0].Message.Content)
	if err != nil {
		return Draft{}, fmt.Errorf("planner.Client.PlanItinerary: %w", err)
	}
	return draft, nil
}

const systemPrompt = `You are a trip planning assistant for a tour operator.
Given the routing, traveler counts, and the available service catalog, draft a
day-by-day itinerary. Pick services only from the catalog by their numeric id.
Respond with JSON only, in this format:
{"days":[{"day":1,"title":"...","narrative":"...","service_ids":[1,2]}]}`

// buildUserPrompt renders the trip constraints and the catalog excerpt the
// planner may draw from.
func buildUserPrompt(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Start date: %s\n", req.StartDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "Travelers: %d adults, %d children\n", req.Adults, req.Children)

	b.WriteString("Routing:\n")
	for _, cn := range req.Allocation {
		fmt.Fprintf(&b, "- %s: %d nights\n", cn.City, cn.Nights)
	}

	b.WriteString("\nAvailable services:\n")
	for _, svc := range req.Catalog {
		fmt.Fprintf(&b, "- id=%d type=%s city=%s name=%q price=%.2f %s",
			svc.ID, svc.Type, svc.City, svc.Name, svc.UnitPrice, svc.UnitLabel)
		if svc.Type == domain.ItemLodging {
			fmt.Fprintf(&b, " stars=%.1f", svc.StarRating)
		}
		if svc.Duration != "" {
			fmt.Fprintf(&b, " duration=%q", svc.Duration)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nThe last day is the departure day: no lodging on it.\n")
	return b.String()
}

// parseDraft extracts the JSON payload from the model reply. Models often
// wrap JSON in a fenced code block or surround it with prose, so look for a
// fence first and fall back to the outermost brace span.
func parseDraft(content string) (Draft, error) {
	payload := extractJSON(content)
	if payload == "" {
		return Draft{}, fmt.Errorf("%w: no JSON object in reply", domain.ErrUpstream)
	}

	var draft Draft
	if err := json.Unmarshal([]byte(payload), &draft); err != nil {
		return Draft{}, fmt.Errorf("%w: malformed draft: %v", domain.ErrUpstream, err)
	}
	if len(draft.Days) == 0 {
		return Draft{}, fmt.Errorf("%w: draft has no days", domain.ErrUpstream)
	}
	return draft, nil
}

func extractJSON(content string) string {
	if i := strings.Index(content, "```json"); i >= 0 {
		rest := content[i+len("```json"):]
		if j := strings.Index(rest, "```"); j >= 0 {
			return strings.TrimSpace(rest[:j])
		}
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		return content[start : end+1]
	}
	return ""
}
