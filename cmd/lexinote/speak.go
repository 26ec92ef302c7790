package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/k-otsuka/lexinote/internal/audio"
)

func newSpeakCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "speak <text>",
		Short: "Synthesize text to speech and play it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			client, err := newInferenceClient(cfg)
			if err != nil {
				return err
			}

			synthesizer := newSynthesizer(cfg, client)
			result, ok := synthesizer.Speak(cmd.Context(), args[0])
			if !ok {
				return fmt.Errorf("no audio available for the given text")
			}

			clip, err := audio.Decode(result.Payload)
			if err != nil {
				return fmt.Errorf("audio.Decode > %w", err)
			}
			fmt.Printf("Playing %.1fs of audio...\n", clip.Duration().Seconds())

			player := audio.NewPlayer()
			if err := player.Play(clip); err != nil {
				return fmt.Errorf("player.Play > %w", err)
			}
			player.Wait()
			return nil
		},
	}
}
