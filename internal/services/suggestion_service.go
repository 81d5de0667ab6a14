package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"fintrack/internal/logger"
)

// FallbackSuggestion is returned whenever advice generation fails.
const FallbackSuggestion = "Unable to generate suggestions at the moment."

const suggestionModel = "gemini-1.5-flash-8b"

// geminiSuggester generates spending advice with the Gemini API.
type geminiSuggester struct {
	apiKey string
}

// NewGeminiSuggester creates a Suggester backed by Gemini.
func NewGeminiSuggester(apiKey string) Suggester {
	return &geminiSuggester{apiKey: apiKey}
}

// GenerateSuggestions turns the trend series into free-text advice.
// It never returns an error: any failure is logged and replaced with
// FallbackSuggestion so callers always receive text.
func (g *geminiSuggester) GenerateSuggestions(ctx context.Context, trends []MonthlyTotal) string {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		logger.Get().Errorw("failed to create suggestion client", "error", err)
		return FallbackSuggestion
	}
	defer client.Close()

	model := client.GenerativeModel(suggestionModel)
	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(trends)))
	if err != nil {
		logger.Get().Errorw("failed to generate suggestions", "error", err)
		return FallbackSuggestion
	}

	text := extractText(resp)
	if text == "" {
		return FallbackSuggestion
	}
	return text
}

func buildPrompt(trends []MonthlyTotal) string {
	descriptions := make([]string, 0, len(trends))
	for _, trend := range trends {
		descriptions = append(descriptions,
			fmt.Sprintf("Month: %d, Amount spent: %s", trend.Month, trend.TotalAmount.String()))
	}

	return fmt.Sprintf(
		"You are a financial assistant. Given the following spending trends, provide clear and concise spending suggestions:\n%s",
		strings.Join(descriptions, ", "))
}

func extractText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return sb.String()
}
