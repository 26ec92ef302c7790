package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/k-otsuka/lexinote/internal/inference"
	"github.com/k-otsuka/lexinote/internal/language"
)

// Config holds settings for the Gemini generation client.
type Config struct {
	APIKey           string
	TextModel        string
	ImageModel       string
	SpeechModel      string
	Voice            string
	MaxRetryAttempts uint
	RequestTimeout   time.Duration
}

// DefaultConfig returns the default model selection. The voice profile is
// fixed: every speech request uses the same prebuilt voice.
func DefaultConfig() Config {
	return Config{
		TextModel:        "gemini-2.5-flash",
		ImageModel:       "gemini-2.0-flash-preview-image-generation",
		SpeechModel:      "gemini-2.5-flash-preview-tts",
		Voice:            "Kore",
		MaxRetryAttempts: inference.DefaultMaxRetryAttempts,
		RequestTimeout:   60 * time.Second,
	}
}

// Client implements inference.Client against the Gemini REST API.
type Client struct {
	httpClient *resty.Client
	config     Config
}

var _ inference.Client = (*Client)(nil)

func NewClient(config Config) (*Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client := resty.New()
	client.SetBaseURL("https://generativelanguage.googleapis.com/v1beta")
	client.SetHeader("x-goog-api-key", config.APIKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient: client,
		config:     config,
	}, nil
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

type generateContentRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string `json:"text,omitempty"`
	InlineData *blob  `json:"inlineData,omitempty"`
}

type blob struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	Temperature        float32       `json:"temperature,omitempty"`
	ResponseMIMEType   string        `json:"responseMimeType,omitempty"`
	ResponseSchema     *schema       `json:"responseSchema,omitempty"`
	ResponseModalities []string      `json:"responseModalities,omitempty"`
	SpeechConfig       *speechConfig `json:"speechConfig,omitempty"`
}

type speechConfig struct {
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig prebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

// generateContent posts a request for the given model and returns the first
// candidate. The response structure is shared by the text, image, and speech
// endpoints; only the generation config differs.
func (client *Client) generateContent(ctx context.Context, model string, request generateContentRequest) (candidate, error) {
	if client.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, client.config.RequestTimeout)
		defer cancel()
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&generateContentResponse{}).
		Post(fmt.Sprintf("/models/%s:generateContent", model))
	if err != nil {
		return candidate{}, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return candidate{}, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*generateContentResponse)
	if responseBody == nil || len(responseBody.Candidates) == 0 {
		return candidate{}, fmt.Errorf("empty response body or candidates: %s", response.String())
	}
	return responseBody.Candidates[0], nil
}

// firstText returns the first text part of a candidate.
func firstText(c candidate) (string, error) {
	for _, p := range c.Content.Parts {
		if p.Text != "" {
			return p.Text, nil
		}
	}
	return "", fmt.Errorf("no text part in candidate (finishReason=%s)", c.FinishReason)
}

// firstInlineData returns the decoded bytes and MIME type of the first inline
// data part whose MIME type has the given prefix.
func firstInlineData(c candidate, mimePrefix string) ([]byte, string, error) {
	for _, p := range c.Content.Parts {
		if p.InlineData == nil {
			continue
		}
		if !strings.HasPrefix(p.InlineData.MIMEType, mimePrefix) {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
		if err != nil {
			return nil, "", fmt.Errorf("base64.DecodeString > %w", err)
		}
		return data, p.InlineData.MIMEType, nil
	}
	return nil, "", fmt.Errorf("no %s* inline data in candidate (finishReason=%s)", mimePrefix, c.FinishReason)
}

// GenerateEntry implements the inference.Client interface.
func (client *Client) GenerateEntry(
	ctx context.Context,
	params inference.GenerateEntryRequest,
) (inference.GenerateEntryResponse, error) {
	var result inference.GenerateEntryResponse
	if err := client.withRetry(ctx, func() error {
		response, err := client.generateEntry(ctx, params)
		if err != nil {
			return err
		}
		result = response
		return nil
	}); err != nil {
		return inference.GenerateEntryResponse{}, err
	}
	return result, nil
}

func (client *Client) generateEntry(
	ctx context.Context,
	params inference.GenerateEntryRequest,
) (inference.GenerateEntryResponse, error) {
	source, err := language.Get(params.SourceLanguage)
	if err != nil {
		return inference.GenerateEntryResponse{}, fmt.Errorf("language.Get(%s) > %w", params.SourceLanguage, err)
	}
	target, err := language.Get(params.TargetLanguage)
	if err != nil {
		return inference.GenerateEntryResponse{}, fmt.Errorf("language.Get(%s) > %w", params.TargetLanguage, err)
	}

	prompt := fmt.Sprintf(`You are a dictionary for language learners.
The learner speaks %s and is studying %s.

For the term %q, produce:
- "translated_term": the term translated into %s
- "definition_target": a concise learner-friendly definition written in %s
- "definition_native": the same definition written in %s
- "examples": exactly 2 example sentences, each with "target" (%s) and "native" (%s) versions
- "scenario": a short dialogue of 3 to 4 lines between two speakers using the term naturally; each line has "speaker", "text" (%s), and "translation" (%s)
- "usage_note": one short note about register, nuance, or common mistakes

Use everyday vocabulary around the term so the examples stay readable for a learner.`,
		source.Name, target.Name,
		params.Term,
		target.Name,
		target.Name, source.Name,
		target.Name, source.Name,
		target.Name, source.Name,
	)

	request := generateContentRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{
			Temperature:      0.4,
			ResponseMIMEType: "application/json",
			ResponseSchema:   entrySchema(),
		},
	}

	c, err := client.generateContent(ctx, client.config.TextModel, request)
	if err != nil {
		return inference.GenerateEntryResponse{}, err
	}
	text, err := firstText(c)
	if err != nil {
		return inference.GenerateEntryResponse{}, err
	}

	slog.Default().Debug("gemini entry response", "term", params.Term, "content", text)

	var decoded inference.GenerateEntryResponse
	if err := json.NewDecoder(strings.NewReader(text)).Decode(&decoded); err != nil {
		return inference.GenerateEntryResponse{}, fmt.Errorf("json.Unmarshal(%s) > %w", text, err)
	}
	return decoded, nil
}

// GenerateImage implements the inference.Client interface.
func (client *Client) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	var result []byte
	if err := client.withRetry(ctx, func() error {
		request := generateContentRequest{
			Contents: []content{
				{Role: "user", Parts: []part{{Text: prompt}}},
			},
			GenerationConfig: &generationConfig{
				ResponseModalities: []string{"TEXT", "IMAGE"},
			},
		}
		c, err := client.generateContent(ctx, client.config.ImageModel, request)
		if err != nil {
			return err
		}
		data, _, err := firstInlineData(c, "image/")
		if err != nil {
			return err
		}
		result = data
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// GenerateSpeech implements the inference.Client interface. The returned MIME
// type is whatever the service reports; callers must not assume the payload
// carries a self-describing container.
func (client *Client) GenerateSpeech(ctx context.Context, text string) ([]byte, string, error) {
	var (
		result   []byte
		mimeType string
	)
	if err := client.withRetry(ctx, func() error {
		request := generateContentRequest{
			Contents: []content{
				{Role: "user", Parts: []part{{Text: text}}},
			},
			GenerationConfig: &generationConfig{
				ResponseModalities: []string{"AUDIO"},
				SpeechConfig: &speechConfig{
					VoiceConfig: voiceConfig{
						PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: client.config.Voice},
					},
				},
			},
		}
		c, err := client.generateContent(ctx, client.config.SpeechModel, request)
		if err != nil {
			return err
		}
		data, mime, err := firstInlineData(c, "audio/")
		if err != nil {
			return err
		}
		result = data
		mimeType = mime
		return nil
	}); err != nil {
		return nil, "", err
	}
	return result, mimeType, nil
}

// GenerateText implements the inference.Client interface.
func (client *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	var result string
	if err := client.withRetry(ctx, func() error {
		request := generateContentRequest{
			Contents: []content{
				{Role: "user", Parts: []part{{Text: prompt}}},
			},
			GenerationConfig: &generationConfig{
				Temperature: 0.8,
			},
		}
		c, err := client.generateContent(ctx, client.config.TextModel, request)
		if err != nil {
			return err
		}
		text, err := firstText(c)
		if err != nil {
			return err
		}
		result = text
		return nil
	}); err != nil {
		return "", err
	}
	return result, nil
}
