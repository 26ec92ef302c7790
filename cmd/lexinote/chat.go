package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/k-otsuka/lexinote/internal/chat"
	"github.com/k-otsuka/lexinote/internal/dictionary"
)

func newChatCommand() *cobra.Command {
	var (
		sourceLang string
		targetLang string
	)

	cmd := &cobra.Command{
		Use:   "chat <term>",
		Short: "Look up a term, then ask follow-up questions about it",
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

			assistant := chat.NewAssistant(client, session)
			bold := color.New(color.Bold)
			fmt.Println("\nAsk about this term (empty line or Ctrl-D to quit):")

			scanner := bufio.NewScanner(os.Stdin)
			for {
				bold.Print("> ")
				if !scanner.Scan() {
					break
				}
				question := strings.TrimSpace(scanner.Text())
				if question == "" {
					break
				}

				answer, err := assistant.Ask(cmd.Context(), question)
				if errors.Is(err, chat.ErrEmptyQuestion) {
					continue
				}
				if err != nil {
					return fmt.Errorf("assistant.Ask > %w", err)
				}
				fmt.Println(answer.Text)
			}
			return scanner.Err()
		},
	}

	cmd.Flags().StringVar(&sourceLang, "from", "", "Source language code (defaults to configuration)")
	cmd.Flags().StringVar(&targetLang, "to", "", "Target language code (defaults to configuration)")

	return cmd
}
