package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"promptforge/prompt/catalog"
)

// IdeaSuggestion is an invented prompt idea paired with a suggested persona.
type IdeaSuggestion struct {
	Prompt  string `json:"prompt"`
	Persona string `json:"persona"`
}

// Score is one graded dimension of a prompt analysis.
type Score struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// Analysis grades a generated prompt on clarity, specificity and constraints.
type Analysis struct {
	Clarity     Score  `json:"clarity"`
	Specificity Score  `json:"specificity"`
	Constraints Score  `json:"constraints"`
	Summary     string `json:"summary"`
}

const suggestInstruction = `You are a creative idea generator. Your task is to invent a unique, random, and interesting prompt idea that a user could give to a powerful generative AI. The prompt idea should be a clear, descriptive sentence that suggests a complete task. You must also suggest the most suitable user persona for this prompt from the provided list. Respond ONLY in the specified JSON format.`

const analyzeInstruction = `You are a world-class Prompt Engineering expert. Your task is to analyze a given prompt and provide a quality score and constructive feedback on three key areas: Clarity, Specificity, and Constraints.
- Clarity: How clear and unambiguous is the prompt? Is the goal well-defined?
- Specificity: Does the prompt provide enough detail (context, examples, format) for the AI to produce a high-quality, relevant response?
- Constraints: Does the prompt effectively guide the AI on what to do and what to avoid?
Scores must be an integer between 1 and 10.
Provide a final one-sentence summary with the most important piece of advice for improvement.
Respond ONLY in the specified JSON format.`

// SuggestIdea asks the model to invent a prompt idea and pick a persona.
func (c *Client) SuggestIdea(ctx context.Context) (IdeaSuggestion, error) {
	personaList := strings.Join(catalog.PersonaKeys(), ", ")

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"prompt": {
				Type:        genai.TypeString,
				Description: "The creative and unique prompt idea as a descriptive sentence that suggests a complete task.",
			},
			"persona": {
				Type:        genai.TypeString,
				Description: fmt.Sprintf("The most suitable persona from the list. Must be one of: %s", personaList),
			},
		},
		Required: []string{"prompt", "persona"},
	}

	var out IdeaSuggestion
	text := fmt.Sprintf("Generate a creative prompt idea. The available personas are: %s.", personaList)
	if err := c.generateJSON(ctx, suggestInstruction, text, schema, &out); err != nil {
		return IdeaSuggestion{}, err
	}
	if out.Prompt == "" || out.Persona == "" {
		return IdeaSuggestion{}, fmt.Errorf("%w: incomplete suggestion", ErrGenerationFailed)
	}
	return out, nil
}

// Analyze grades an already generated prompt.
func (c *Client) Analyze(ctx context.Context, promptText string) (Analysis, error) {
	scoreSchema := func() *genai.Schema {
		return &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"score":    {Type: genai.TypeInteger},
				"feedback": {Type: genai.TypeString},
			},
			Required: []string{"score", "feedback"},
		}
	}

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"clarity":     scoreSchema(),
			"specificity": scoreSchema(),
			"constraints": scoreSchema(),
			"summary":     {Type: genai.TypeString},
		},
		Required: []string{"clarity", "specificity", "constraints", "summary"},
	}

	var out Analysis
	text := fmt.Sprintf("Analyze the following prompt:\n\n---\n\n%s", promptText)
	if err := c.generateJSON(ctx, analyzeInstruction, text, schema, &out); err != nil {
		return Analysis{}, err
	}
	return out, nil
}
