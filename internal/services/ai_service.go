package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	"github.com/vladimiradmaev/fittrack/internal/config"
	"github.com/vladimiradmaev/fittrack/internal/domain"
	"google.golang.org/api/option"
)

// RecipeGenerator asks a text-generation service for a recipe and returns
// the raw reply. The reply is validated by the caller.
type RecipeGenerator interface {
	Generate(ctx context.Context, goal domain.RecipeGoal, remaining domain.NutrientTotals) (string, error)
}

const recipeSystemPrompt = `You are a professional nutritionist specializing in fitness nutrition.
Create a recipe that is suitable for someone with a %s goal and fits within these nutritional parameters:
Calories: approximately %.0f calories
Protein: approximately %.0fg
Carbs: approximately %.0fg
Fat: approximately %.0fg

Respond with a single JSON object and nothing else, with these fields:
- name: the name of the recipe
- description: a brief description of the recipe
- ingredients: an array of strings listing all ingredients with quantities
- instructions: step-by-step instructions for preparing the recipe, as one string
- calories: the approximate calories in the recipe, as a number
- protein: the protein content in grams, as a number
- carbs: the carbohydrate content in grams, as a number
- fat: the fat content in grams, as a number`

func recipePrompts(goal domain.RecipeGoal, remaining domain.NutrientTotals) (system, user string) {
	system = fmt.Sprintf(recipeSystemPrompt, goal, remaining.Calories, remaining.Protein, remaining.Carbs, remaining.Fat)
	payload, _ := json.Marshal(remaining)
	user = fmt.Sprintf("Please generate a recipe for my %s goal that helps me meet my remaining nutritional needs: %s", goal, payload)
	return system, user
}

type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

func NewOpenAIGenerator(apiKey, model string) *OpenAIGenerator {
	return &OpenAIGenerator{client: openai.NewClient(apiKey), model: model}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, goal domain.RecipeGoal, remaining domain.NutrientTotals) (string, error) {
	system, user := recipePrompts(goal, remaining)

	resp, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: g.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, goal domain.RecipeGoal, remaining domain.NutrientTotals) (string, error) {
	system, user := recipePrompts(goal, remaining)

	model := g.client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx, genai.Text(system), genai.Text(user))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

// unavailableGenerator is used when the selected provider has no API key.
type unavailableGenerator struct {
	provider string
}

func (g unavailableGenerator) Generate(context.Context, domain.RecipeGoal, domain.NutrientTotals) (string, error) {
	return "", fmt.Errorf("%s API key is not configured", g.provider)
}

// NewRecipeGenerator builds the generator selected by cfg.Provider.
func NewRecipeGenerator(ctx context.Context, cfg config.AIConfig) (RecipeGenerator, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return unavailableGenerator{provider: cfg.Provider}, nil
		}
		return NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case config.ProviderOpenAI, "":
		if cfg.OpenAIAPIKey == "" {
			return unavailableGenerator{provider: config.ProviderOpenAI}, nil
		}
		return NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

// GeneratedRecipe is the reply shape. Nutrient fields are pointers so a
// missing field can be told apart from zero.
type GeneratedRecipe struct {
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Ingredients  []string  `json:"ingredients"`
	Instructions textBlock `json:"instructions"`
	Calories     *float64  `json:"calories"`
	Protein      *float64  `json:"protein"`
	Carbs        *float64  `json:"carbs"`
	Fat          *float64  `json:"fat"`
	ImageURL     string    `json:"imageUrl"`
}

// textBlock accepts either a string or a list of steps.
type textBlock string

func (t *textBlock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = textBlock(s)
		return nil
	}
	var steps []string
	if err := json.Unmarshal(data, &steps); err != nil {
		return fmt.Errorf("instructions must be a string or a list of strings")
	}
	*t = textBlock(strings.Join(steps, "\n"))
	return nil
}

// parseGeneratedRecipe decodes a reply and checks every required field.
func parseGeneratedRecipe(reply string) (*GeneratedRecipe, error) {
	jsonStr := extractJSON(reply)
	if jsonStr == "" {
		return nil, fmt.Errorf("no valid JSON found in response")
	}

	var g GeneratedRecipe
	if err := json.Unmarshal([]byte(jsonStr), &g); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if strings.TrimSpace(g.Name) == "" {
		return nil, fmt.Errorf("response is missing name")
	}
	for field, v := range map[string]*float64{"calories": g.Calories, "protein": g.Protein, "carbs": g.Carbs, "fat": g.Fat} {
		if v == nil {
			return nil, fmt.Errorf("response is missing %s", field)
		}
		if *v < 0 {
			return nil, fmt.Errorf("response has negative %s", field)
		}
	}
	return &g, nil
}

// extractJSON returns the text between the first '{' and the last '}',
// which strips code fences and surrounding prose.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(s, "}")
	if end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}
