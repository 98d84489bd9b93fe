package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/loglens/loglens/internal/analysis"
	"github.com/loglens/loglens/internal/extract"
	"github.com/loglens/loglens/internal/parser"
)

const defaultMaxLogBytes = 200 * 1024

// Analyzer sends a log to the chat model and runs the extraction pipeline
// over whatever comes back. The model call is the only fallible step; once
// a reply exists, extraction always produces a result.
type Analyzer struct {
	client      *Client
	maxLogBytes int
}

func NewAnalyzer(cfg Config) (*Analyzer, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	if cfg.MaxLogBytes <= 0 {
		cfg.MaxLogBytes = defaultMaxLogBytes
	}

	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		client:      client,
		maxLogBytes: cfg.MaxLogBytes,
	}, nil
}

func (a *Analyzer) Analyze(ctx context.Context, lines []parser.LogLine) (*analysis.Result, error) {
	logText := parser.Render(lines, a.maxLogBytes)

	system, user := BuildPrompt(logText)

	content, err := a.client.Chat(ctx, system, user)
	if err != nil {
		return nil, fmt.Errorf("model request failed: %w", err)
	}

	return extract.Run(content, time.Now()), nil
}
