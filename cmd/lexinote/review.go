package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/k-otsuka/lexinote/internal/notebook"
)

func newReviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Run a flashcard session over the entries that are due",
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

			now := time.Now()
			due := make([]notebook.SavedEntry, 0, len(entries))
			for _, saved := range entries {
				if saved.Review.Due(now) {
					due = append(due, saved)
				}
			}
			if len(due) == 0 {
				fmt.Println("Nothing is due for review.")
				return nil
			}

			bold := color.New(color.Bold)
			scanner := bufio.NewScanner(os.Stdin)
			reviewed := 0

			for i, saved := range due {
				bold.Printf("\n[%d/%d] %s\n", i+1, len(due), saved.Entry.Term)
				fmt.Print("Press Enter to reveal...")
				if !scanner.Scan() {
					break
				}

				fmt.Printf("%s\n%s\n", saved.Entry.TranslatedTerm, saved.Entry.DefinitionNative)

				quality, ok := readQuality(scanner)
				if !ok {
					break
				}

				next := notebook.NextReview(saved.Review, quality, time.Now())
				if err := store.UpdateReview(saved.Entry.ID, next); err != nil {
					return fmt.Errorf("store.UpdateReview > %w", err)
				}
				fmt.Printf("Next review in %d day(s).\n", next.IntervalDays)
				reviewed++
			}

			fmt.Printf("\nReviewed %d of %d due entries.\n", reviewed, len(due))
			return scanner.Err()
		},
	}
}

// readQuality keeps prompting until it gets a grade between 0 and 5.
// It reports false when input is exhausted.
func readQuality(scanner *bufio.Scanner) (int, bool) {
	for {
		fmt.Print("How well did you know it? (0=blackout .. 5=perfect): ")
		if !scanner.Scan() {
			return 0, false
		}
		quality, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || quality < 0 || quality > 5 {
			fmt.Println("Please enter a number between 0 and 5.")
			continue
		}
		return quality, true
	}
}
