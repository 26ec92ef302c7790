package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/k-otsuka/lexinote/internal/story"
)

func newStoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "story",
		Short: "Generate a short story from the saved vocabulary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			store, err := newStore(cfg)
			if err != nil {
				return fmt.Errorf("failed to open notebook: %w", err)
			}

			entries, err := store.List()
			if err != nil {
				return fmt.Errorf("store.List > %w", err)
			}
			if len(entries) == 0 {
				return fmt.Errorf("the notebook is empty; save some entries first")
			}

			terms := make([]string, 0, len(entries))
			for _, saved := range entries {
				terms = append(terms, saved.Entry.TranslatedTerm)
				if limit > 0 && len(terms) >= limit {
					break
				}
			}

			client, err := newInferenceClient(cfg)
			if err != nil {
				return err
			}

			generator := story.NewGenerator(client)
			result, err := generator.Tell(cmd.Context(), terms, cfg.Learning.TargetLanguage)
			if err != nil {
				return fmt.Errorf("generator.Tell > %w", err)
			}

			fmt.Println(story.Highlight(result.Text, story.ConversionStyleTerminal))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of terms to weave into the story (0 for all)")

	return cmd
}
