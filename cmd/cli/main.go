package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	domaindataset "namecorrector/domain/dataset"
	"namecorrector/internal/config"
	"namecorrector/internal/container"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "namecorrector-cli",
		Short: "Correct scientific names against the GBIF backbone from the terminal",
		PersistentPreRun: func(*cobra.Command, []string) {
			_ = godotenv.Load()
		},
	}

	rootCmd.AddCommand(
		newMatchCmd(),
		newCorrectCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadContainer() (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return container.New(cfg)
}

func newMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match [names...]",
		Short: "Look up names and print one correction record per name as JSON",
		Long: `Look up names and print one correction record per name as JSON.

Example: namecorrector-cli match "Panthera leo" "Quercus robur"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadContainer()
			if err != nil {
				return err
			}
			records, err := c.Engine.Correct(cmd.Context(), args)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			for i, rec := range records {
				if err := enc.Encode(map[string]interface{}{
					"name":   args[i],
					"record": rec,
				}); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newCorrectCmd() *cobra.Command {
	var column string
	var outDir string

	cmd := &cobra.Command{
		Use:   "correct [file]",
		Short: "Correct a spreadsheet column and write corrected_names_<timestamp>.xlsx",
		Long: `Correct a spreadsheet column and write corrected_names_<timestamp>.xlsx.

Without --column the column is guessed from the headers and values.

Example: namecorrector-cli correct especies.xlsx --column nombre --out ./out`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadContainer()
			if err != nil {
				return err
			}

			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			info, err := f.Stat()
			if err != nil {
				return err
			}

			table, err := c.Processor.ProcessUpload(&domaindataset.Upload{
				Filename: filepath.Base(path),
				Size:     info.Size(),
				File:     f,
			})
			if err != nil {
				return err
			}
			if column == "" {
				column = c.Processor.SuggestColumn(table)
				fmt.Fprintf(cmd.ErrOrStderr(), "using column %q\n", column)
			}

			progress := func(done, total int) {
				fmt.Fprintf(cmd.ErrOrStderr(), "\r%d/%d", done, total)
				if done == total {
					fmt.Fprintln(cmd.ErrOrStderr())
				}
			}
			result, err := c.Processor.Correct(cmd.Context(), table, column, progress)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			out := filepath.Join(outDir, result.Export.Filename)
			if err := os.WriteFile(out, result.Export.Data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d of %d names matched\n", out, result.Summary.Matched, result.Summary.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "Header of the column holding scientific names")
	cmd.Flags().StringVar(&outDir, "out", ".", "Directory for the corrected workbook")

	return cmd
}
