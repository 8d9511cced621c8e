package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/genai"

	"github.com/iburimskiy/loopvis/internal/config"
)

const DefaultModel = "gemini-3-flash-preview"

// Gemini implements both services on the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// APIKey reads the key from the environment.
func APIKey() string {
	for _, name := range []string{"GEMINI_API_KEY", "API_KEY"} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.Wrap(ErrUnavailable, "no API key set")
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "client: %v", err)
	}
	return &Gemini{client: client, model: model}, nil
}

var (
	str = &genai.Schema{Type: genai.TypeString}
	num = &genai.Schema{Type: genai.TypeNumber}

	stellarSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"themeName": str,
			"bgColor":   str,
			"starColor": str,
			"glowColor": str,
			"speedZ":    num,
			"starCount": {Type: genai.TypeInteger},
			"driftX":    num,
			"driftY":    num,
		},
		Required: []string{"themeName", "bgColor", "starColor", "speedZ"},
	}

	gradientSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"themeName": str,
			"colors":    {Type: genai.TypeArray, Items: str},
			"type":      {Type: genai.TypeString, Enum: []string{"LINEAR", "RADIAL", "MESH"}},
			"angle":     num,
		},
		Required: []string{"themeName", "colors", "type"},
	}
)

func stellarPrompt(c config.Stellar) string {
	return fmt.Sprintf(`You style a procedural star-trail animation.
Current background %s, star colour %s, forward speed %g.
Invent a theme named like a space mission or a sci-fi phenomenon and give
a colour palette plus speed, drift and star count that suit it.
Reply with JSON only.`, c.BgColor, c.StarColor, c.SpeedZ)
}

func gradientPrompt(c config.Gradient) string {
	return fmt.Sprintf(`You style an animated background gradient.
Current palette: %s.
Pick a mood such as premium minimalist, cyberpunk glow or natural dusk and
give 3 to 5 hex colours with a gradient type of LINEAR, RADIAL or MESH.
Reply with JSON only.`, strings.Join(c.Colors, ", "))
}

func (g *Gemini) generate(ctx context.Context, prompt string, schema *genai.Schema, out any) error {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return errors.Wrapf(ErrUnavailable, "generate: %v", err)
	}
	text := resp.Text()
	if text == "" {
		return errors.Wrap(ErrInvalid, "empty response")
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return errors.Wrapf(ErrInvalid, "decode: %v", err)
	}
	return nil
}

func (g *Gemini) SuggestStellar(ctx context.Context, current config.Stellar) (StellarSuggestion, error) {
	var s StellarSuggestion
	if err := g.generate(ctx, stellarPrompt(current), stellarSchema, &s); err != nil {
		return StellarSuggestion{}, err
	}
	return s, s.Validate()
}

func (g *Gemini) SuggestGradient(ctx context.Context, current config.Gradient) (GradientSuggestion, error) {
	var s GradientSuggestion
	if err := g.generate(ctx, gradientPrompt(current), gradientSchema, &s); err != nil {
		return GradientSuggestion{}, err
	}
	return s, s.Validate()
}
