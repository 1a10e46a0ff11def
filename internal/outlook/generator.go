package outlook

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/nuptial/flightcast/internal/models"
)

// Generator writes a short natural-language flight outlook for a forecast
// day using OpenAI's API. It is optional: forecasts never depend on it.
type Generator struct {
	client openai.Client
	model  openai.ChatModel
}

// NewGenerator creates an outlook generator. It reads the OPENAI_API_KEY
// environment variable for authentication.
func NewGenerator() (*Generator, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable not set")
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &Generator{
		client: client,
		model:  openai.ChatModelGPT4oMini,
	}, nil
}

// Generate produces a two-sentence outlook for the given prediction day.
func (g *Generator) Generate(ctx context.Context, day models.PredictionDay, agg models.DailyAggregate) (string, error) {
	prompt := buildPrompt(day, agg)

	log.Printf("outlook: generating narrative for %s", day.Date)

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You write brief, factual outlooks for ant nuptial flight forecasts. Two sentences, no hedging boilerplate."),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("outlook generation failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no completion returned")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("empty completion returned")
	}

	log.Printf("outlook: generated narrative for %s (%d bytes)", day.Date, len(text))
	return text, nil
}

func buildPrompt(day models.PredictionDay, agg models.DailyAggregate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Date: %s. Max temp %.1f C, mean humidity %.0f%%, total rain %.1f mm, max wind %.1f.\n",
		day.Date, agg.TempMax, agg.HumidityMean, agg.PrecipSum, agg.WindMax)
	b.WriteString("Ranked flight likelihood:\n")
	for _, t := range day.Taxa {
		name := t.Genus
		if t.Species != "" {
			name += " " + t.Species
		}
		fmt.Fprintf(&b, "- %s: %.1f%%\n", name, t.Probability*100)
	}
	b.WriteString("Summarise the flight outlook for ant keepers in this area.")
	return b.String()
}
