package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/k-otsuka/lexinote/internal/audio"
	"github.com/k-otsuka/lexinote/internal/dictionary"
)

func newLookupCommand() *cobra.Command {
	var (
		save       bool
		speak      bool
		sourceLang string
		targetLang string
	)

	cmd := &cobra.Command{
		Use:   "lookup <term>",
		Short: "Look up a term and show its definition, examples and dialogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if sourceLang == "" {
				sourceLang = cfg.Learning.SourceLanguage
			}
			if targetLang == "" {
				targetLang = cfg.Learning.TargetLanguage
			}

			client, err := newInferenceClient(cfg)
			if err != nil {
				return err
			}

			orchestrator := dictionary.NewOrchestrator(client, cfg.Media.Directory)
			session := dictionary.NewSession()
			token := session.Begin()

			entry, err := orchestrator.Lookup(cmd.Context(), args[0], sourceLang, targetLang)
			if err != nil {
				return fmt.Errorf("orchestrator.Lookup > %w", err)
			}
			session.Complete(token, entry)

			printEntry(entry)

			if save {
				store, err := newStore(cfg)
				if err != nil {
					return fmt.Errorf("failed to open notebook: %w", err)
				}
				if err := store.Add(*entry); err != nil {
					return fmt.Errorf("store.Add > %w", err)
				}
				fmt.Printf("\nSaved %q to the notebook.\n", entry.Term)
			}

			if speak {
				synthesizer := newSynthesizer(cfg, client)
				result, ok := synthesizer.Speak(cmd.Context(), entry.TranslatedTerm)
				if !ok {
					fmt.Println("\nNo audio available.")
					return nil
				}
				clip, err := audio.Decode(result.Payload)
				if err != nil {
					return fmt.Errorf("audio.Decode > %w", err)
				}
				player := audio.NewPlayer()
				if err := player.Play(clip); err != nil {
					return fmt.Errorf("player.Play > %w", err)
				}
				player.Wait()
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Save the entry to the notebook")
	cmd.Flags().BoolVar(&speak, "speak", false, "Play the pronunciation of the translated term")
	cmd.Flags().StringVar(&sourceLang, "from", "", "Source language code (defaults to configuration)")
	cmd.Flags().StringVar(&targetLang, "to", "", "Target language code (defaults to configuration)")

	return cmd
}

func printEntry(entry *dictionary.Entry) {
	bold := color.New(color.Bold)

	bold.Printf("%s", entry.Term)
	fmt.Printf(" (%s)\n\n", entry.TranslatedTerm)
	fmt.Printf("%s\n%s\n", entry.DefinitionTarget, entry.DefinitionNative)

	if len(entry.Examples) > 0 {
		bold.Printf("\nExamples\n")
		for _, example := range entry.Examples {
			fmt.Printf("  %s\n    %s\n", example.Target, example.Native)
		}
	}

	if len(entry.Scenario) > 0 {
		bold.Printf("\nDialogue\n")
		for _, line := range entry.Scenario {
			fmt.Printf("  %s: %s\n", line.Speaker, line.Text)
			if line.Translation != "" {
				fmt.Printf("    %s\n", line.Translation)
			}
		}
	}

	fmt.Printf("\n%s\n", entry.UsageNote)
	if entry.ImageURL != "" {
		fmt.Printf("\nIllustration: %s\n", entry.ImageURL)
	}
}
