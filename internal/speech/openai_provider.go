package speech

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider using the OpenAI TTS API. It serves as
// the fallback voice when the primary generation backend cannot synthesize.
type OpenAIProvider struct {
	client *openai.Client
	model  openai.SpeechModel
	voice  openai.SpeechVoice
}

func NewOpenAIProvider(apiKey string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  openai.TTSModel1,
		voice:  openai.VoiceAlloy,
	}, nil
}

func (p *OpenAIProvider) Synthesize(ctx context.Context, text string) (Audio, error) {
	response, err := p.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          p.model,
		Input:          text,
		Voice:          p.voice,
		ResponseFormat: openai.SpeechResponseFormatWav,
	})
	if err != nil {
		return Audio{}, fmt.Errorf("client.CreateSpeech > %w", err)
	}
	defer response.Close()

	data, err := io.ReadAll(response)
	if err != nil {
		return Audio{}, fmt.Errorf("io.ReadAll > %w", err)
	}
	if len(data) == 0 {
		return Audio{}, fmt.Errorf("no audio data received from OpenAI")
	}

	return Audio{
		Payload:  base64.StdEncoding.EncodeToString(data),
		MIMEType: "audio/wav",
	}, nil
}

func (p *OpenAIProvider) Name() string {
	return "openai"
}
