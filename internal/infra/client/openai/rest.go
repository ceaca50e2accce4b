package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/sitemint/sitemint-backend/internal/application/dto"
	"github.com/sitemint/sitemint-backend/internal/application/errs"
)

type OpenAIClient struct {
	cfg    OpenAIConfig
	client openai.Client
}

func NewOpenAIClient(config OpenAIConfig) *OpenAIClient {
	return &OpenAIClient{
		config,
		openai.NewClient(option.WithAPIKey(config.apiKey)),
	}
}

const systemPromptFormat = `You are a website analyzer that extracts information to create a site configuration object.
Extract relevant information from the HTML and make reasonable assumptions for missing data based on the business type and location.
IMPORTANT: All text content must be in Norwegian (Bokmål).
Use this subdomain: %q

Guidelines for Norwegian content:
- Use professional Norwegian business language
- Use Norwegian currency format (NOK/kr)
- Use Norwegian date/time formats
- Use Norwegian phone number format (+47)
- Use Norwegian address formats
- Default working hours should be "Man-Fre: 07:00-16:00" if not specified
- Make assumptions that align with Norwegian business practices`

// ExtractSiteConfig asks the model for a site configuration constrained to
// the SiteConfig JSON schema. An explicit refusal comes back as
// errs.ExtractionRefused, undecodable output as errs.ValidationError.
func (c *OpenAIClient) ExtractSiteConfig(ctx context.Context, subdomain, html string) (*dto.SiteConfig, error) {
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(fmt.Sprintf(systemPromptFormat, subdomain)),
		openai.UserMessage("Analyze this HTML and extract relevant information: " + html),
	}

	chatCompletion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(c.cfg.model),
		Messages:            messages,
		MaxCompletionTokens: param.Opt[int64]{Value: c.cfg.maxTokens},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   "site_config",
					Schema: siteConfigSchema,
					Strict: openai.Bool(true),
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(chatCompletion.Choices) == 0 {
		return nil, errs.ValidationError{Err: fmt.Errorf("completion returned no choices")}
	}

	message := chatCompletion.Choices[0].Message
	if message.Refusal != "" {
		return nil, errs.ExtractionRefused{Reason: message.Refusal}
	}

	var config dto.SiteConfig
	if err := json.Unmarshal([]byte(message.Content), &config); err != nil {
		return nil, errs.ValidationError{Err: err}
	}

	return &config, nil
}

// siteConfigSchema mirrors dto.SiteConfig. Strict mode requires every key to
// be listed as required, so optionals are nullable instead.
var siteConfigSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"required": []string{
		"subdomain", "name", "description", "owner", "theme", "contact",
		"services", "socialMedia", "hero",
	},
	"properties": map[string]any{
		"subdomain":   map[string]any{"type": "string"},
		"name":        map[string]any{"type": "string"},
		"description": map[string]any{"type": "string"},
		"owner": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"required":             []string{"name", "email", "phone"},
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"email": map[string]any{"type": "string"},
				"phone": map[string]any{"type": []string{"string", "null"}},
			},
		},
		"theme": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"required":             []string{"primaryColor", "secondaryColor"},
			"properties": map[string]any{
				"primaryColor":   map[string]any{"type": "string"},
				"secondaryColor": map[string]any{"type": "string"},
			},
		},
		"contact": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"required":             []string{"address", "city", "phone", "email", "workingHours", "areas"},
			"properties": map[string]any{
				"address":      map[string]any{"type": []string{"string", "null"}},
				"city":         map[string]any{"type": []string{"string", "null"}},
				"phone":        map[string]any{"type": []string{"string", "null"}},
				"email":        map[string]any{"type": []string{"string", "null"}},
				"workingHours": map[string]any{"type": []string{"string", "null"}},
				"areas": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
		},
		"services": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"required":             []string{"title", "description", "price"},
				"properties": map[string]any{
					"title":       map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
					"price":       map[string]any{"type": []string{"string", "null"}},
				},
			},
		},
		"socialMedia": map[string]any{
			"type":                 []string{"object", "null"},
			"additionalProperties": false,
			"required":             []string{"facebook", "instagram", "linkedin"},
			"properties": map[string]any{
				"facebook":  map[string]any{"type": []string{"string", "null"}},
				"instagram": map[string]any{"type": []string{"string", "null"}},
				"linkedin":  map[string]any{"type": []string{"string", "null"}},
			},
		},
		"hero": map[string]any{
			"type":                 []string{"object", "null"},
			"additionalProperties": false,
			"required":             []string{"mainTitle", "subtitle", "highlights", "ctaPrimary", "ctaSecondary"},
			"properties": map[string]any{
				"mainTitle": map[string]any{"type": []string{"string", "null"}},
				"subtitle":  map[string]any{"type": []string{"string", "null"}},
				"highlights": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
				"ctaPrimary":   map[string]any{"type": []string{"string", "null"}},
				"ctaSecondary": map[string]any{"type": []string{"string", "null"}},
			},
		},
	},
}
