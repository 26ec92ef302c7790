package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/k-otsuka/lexinote/internal/notebook"
	"github.com/k-otsuka/lexinote/internal/pdf"
)

func newNotebookCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notebook",
		Short: "Manage saved entries",
	}
	cmd.AddCommand(
		newNotebookListCommand(),
		newNotebookRemoveCommand(),
		newNotebookExportCommand(),
	)
	return cmd
}

func newNotebookListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved entries, most recent first",
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
				fmt.Println("The notebook is empty.")
				return nil
			}

			for _, saved := range entries {
				fmt.Printf("%s  %s (%s)  saved %s\n",
					saved.Entry.ID,
					saved.Entry.Term,
					saved.Entry.TranslatedTerm,
					saved.SavedAt.Format("2006-01-02"),
				)
			}
			return nil
		},
	}
}

func newNotebookRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a saved entry by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			store, err := newStore(cfg)
			if err != nil {
				return fmt.Errorf("failed to open notebook: %w", err)
			}
			if err := store.Remove(args[0]); err != nil {
				return fmt.Errorf("store.Remove > %w", err)
			}
			fmt.Printf("Removed entry %s.\n", args[0])
			return nil
		},
	}
}

func newNotebookExportCommand() *cobra.Command {
	var (
		format string
		output string
		toPDF  bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the notebook as markdown, yaml or json",
		RunE: func(cmd *cobra.Command, args []string) error {
			if toPDF && format != string(notebook.ExportMarkdown) {
				return fmt.Errorf("--pdf requires --format markdown")
			}

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

			contents, err := notebook.Export(entries, notebook.ExportFormat(format))
			if err != nil {
				return fmt.Errorf("notebook.Export > %w", err)
			}

			if output == "" {
				fmt.Print(contents)
				return nil
			}

			if dir := filepath.Dir(output); dir != "" && dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
				}
			}
			if err := os.WriteFile(output, []byte(contents), 0644); err != nil {
				return fmt.Errorf("os.WriteFile(%s) > %w", output, err)
			}
			fmt.Printf("Exported %d entries to %s.\n", len(entries), output)

			if toPDF {
				if !strings.HasSuffix(output, ".md") {
					return fmt.Errorf("--pdf requires the output path to end in .md")
				}
				pdfPath, err := pdf.ConvertMarkdownToPDF(output)
				if err != nil {
					return fmt.Errorf("pdf.ConvertMarkdownToPDF > %w", err)
				}
				fmt.Printf("Wrote PDF to %s.\n", pdfPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(notebook.ExportMarkdown), "Export format: markdown, yaml or json")
	cmd.Flags().StringVar(&output, "output", "", "Output file path (prints to stdout when empty)")
	cmd.Flags().BoolVar(&toPDF, "pdf", false, "Also convert the markdown export to PDF")

	return cmd
}
