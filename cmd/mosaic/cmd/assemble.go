package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/MeKo-Tech/mosaic/internal/assembler"
	"github.com/MeKo-Tech/mosaic/internal/document"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// assembleCmd reads a detection file and writes the assembled document.
var assembleCmd = &cobra.Command{
	Use:   "assemble [detections.json]",
	Short: "Assemble detections into an ordered, typed document",
	Long: `Read a JSON file of per-page text-line and layout-region detections and
assemble them into a document: lines are matched to regions by overlap,
merged into typed blocks, and ordered top to bottom per page.

Examples:
  mosaic assemble detections.json
  mosaic assemble detections.json --format markdown
  mosaic assemble detections.json --threshold 0.7 --workers 4 --output doc.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAssemble,
}

func runAssemble(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	format := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		format, _ = cmd.Flags().GetString("format")
	}
	outputFile := cfg.Output.File
	if cmd.Flags().Changed("output") {
		outputFile, _ = cmd.Flags().GetString("output")
	}
	workers := cfg.Assembly.MaxWorkers
	if cmd.Flags().Changed("workers") {
		workers, _ = cmd.Flags().GetInt("workers")
	}
	showProgress, _ := cmd.Flags().GetBool("progress")

	acfg := cfg.ToAssemblerConfig()
	if cmd.Flags().Changed("threshold") {
		acfg.Threshold, _ = cmd.Flags().GetFloat64("threshold")
	}
	if cmd.Flags().Changed("origin") {
		acfg.Origin, _ = cmd.Flags().GetString("origin")
	}
	if cmd.Flags().Changed("clean-text") {
		acfg.CleanText, _ = cmd.Flags().GetBool("clean-text")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading detections file: %w", err)
	}

	in, err := assembler.ParseInput(data)
	if err != nil {
		return err
	}
	if in.DetectionOrigin != "" && !cmd.Flags().Changed("origin") {
		acfg.Origin = in.DetectionOrigin
	}

	slog.Debug("Assembling document",
		"pages", len(in.Pages), "threshold", acfg.Threshold, "workers", workers)

	pcfg := assembler.ParallelConfig{MaxWorkers: workers}
	if showProgress {
		pcfg.ProgressCallback = assembler.NewConsoleProgressCallback(cmd.ErrOrStderr(), "Assembling: ")
	}

	doc, err := assembler.New(acfg).AssembleParallel(context.Background(), in.Pages, pcfg)
	if err != nil {
		return err
	}

	out, err := renderDocument(doc, format)
	if err != nil {
		return err
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(out), 0o600); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		slog.Info("Wrote document", "file", outputFile, "blocks", len(doc.Content))
		return nil
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func renderDocument(doc *document.Document, format string) (string, error) {
	switch format {
	case "json", "":
		return document.ToJSON(doc)
	case "markdown", "md":
		return document.ToMarkdown(doc)
	case "text", "txt":
		return document.ToPlainText(doc)
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

func init() {
	assembleCmd.Flags().StringP("format", "f", "json", "output format (json, markdown, text)")
	assembleCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	assembleCmd.Flags().Float64P("threshold", "t", assembler.DefaultOverlapThreshold, "line/region overlap threshold in (0, 1)")
	assembleCmd.Flags().IntP("workers", "w", 0, "parallel page workers (0 = number of CPUs)")
	assembleCmd.Flags().String("origin", "", "detection origin tag for the output document")
	assembleCmd.Flags().Bool("clean-text", false, "normalize recognized text before merging")
	assembleCmd.Flags().Bool("progress", false, "show assembly progress on stderr")

	_ = viper.BindPFlag("output.format", assembleCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("output.file", assembleCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("assembly.threshold", assembleCmd.Flags().Lookup("threshold"))
	_ = viper.BindPFlag("assembly.origin", assembleCmd.Flags().Lookup("origin"))
	_ = viper.BindPFlag("assembly.clean_text", assembleCmd.Flags().Lookup("clean-text"))

	rootCmd.AddCommand(assembleCmd)
}

// GetAssembleCommand returns the assemble command for testing purposes.
func GetAssembleCommand() *cobra.Command {
	return assembleCmd
}
