package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/rustyeddy/lotsize/config"
	"github.com/rustyeddy/lotsize/journal"
	"github.com/rustyeddy/lotsize/pkg/logging"
)

var errNoAPIKey = errors.New("analysis api key not configured")

// Client asks a Gemini model for a journal review.
type Client struct {
	client    *resty.Client
	model     string
	apiKey    string
	maxTrades int
	log       *zap.Logger
}

var _ Analyzer = (*Client)(nil)

func NewClient(cfg config.AnalysisConfig, log *zap.Logger) *Client {
	timeout, err := cfg.TimeoutDuration()
	if err != nil || timeout <= 0 {
		timeout = 60 * time.Second
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimRight(cfg.BaseURL, "/"))
	client.SetTimeout(timeout)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		client:    client,
		model:     cfg.Model,
		apiKey:    cfg.APIKey,
		maxTrades: cfg.MaxTrades,
		log:       logging.OrNop(log),
	}
}

// Analyze returns EmptyJournal for no trades and Fallback on any fault.
func (c *Client) Analyze(ctx context.Context, trades []journal.Trade, balance float64) Result {
	if len(trades) == 0 {
		return EmptyJournal()
	}

	res, err := c.generate(ctx, BuildPrompt(trades, balance, c.maxTrades))
	if err != nil {
		c.log.Warn("journal analysis failed",
			zap.String("model", c.model),
			zap.Int("trades", len(trades)),
			zap.Error(err))
		return Fallback()
	}
	return res
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
	ResponseSchema   schema `json:"responseSchema"`
}

type schema struct {
	Type       string            `json:"type"`
	Properties map[string]schema `json:"properties,omitempty"`
	Items      *schema           `json:"items,omitempty"`
	Required   []string          `json:"required,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (r generateResponse) text() string {
	var b strings.Builder
	for _, c := range r.Candidates {
		for _, p := range c.Content.Parts {
			b.WriteString(p.Text)
		}
		if b.Len() > 0 {
			break
		}
	}
	return b.String()
}

func resultSchema() schema {
	str := schema{Type: "STRING"}
	list := schema{Type: "ARRAY", Items: &schema{Type: "STRING"}}
	return schema{
		Type: "OBJECT",
		Properties: map[string]schema{
			"summary":        str,
			"strengths":      list,
			"weaknesses":     list,
			"recommendation": str,
		},
		Required: []string{"summary", "strengths", "weaknesses", "recommendation"},
	}
}

func (c *Client) generate(ctx context.Context, prompt string) (Result, error) {
	if c.apiKey == "" {
		return Result{}, errNoAPIKey
	}

	body := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   resultSchema(),
		},
	}

	var out generateResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", c.apiKey).
		SetPathParam("model", c.model).
		SetBody(body).
		SetResult(&out).
		Post("/v1beta/models/{model}:generateContent")
	if err != nil {
		return Result{}, fmt.Errorf("generate content: %w", err)
	}
	if resp.IsError() {
		return Result{}, fmt.Errorf("generate content: %s", resp.Status())
	}

	text := out.text()
	if text == "" {
		return Result{}, errors.New("no response from model")
	}

	var res Result
	if err := json.Unmarshal([]byte(text), &res); err != nil {
		return Result{}, fmt.Errorf("decode analysis: %w", err)
	}
	if res.Strengths == nil {
		res.Strengths = []string{}
	}
	if res.Weaknesses == nil {
		res.Weaknesses = []string{}
	}
	return res, nil
}
