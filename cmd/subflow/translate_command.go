package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"subflow/internal/boundary"
	"subflow/internal/language"
	"subflow/internal/llm"
	"subflow/internal/subtitles"
)

// newTranslateCommand translates an existing subtitle file, independent of
// any pipeline run.
func newTranslateCommand(app *appContext) *cobra.Command {
	var (
		to     string
		from   string
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "translate <subtitle-file>",
		Short: "Translate an existing subtitle file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := language.Validate(to); err != nil {
				return err
			}
			outFormat, err := subtitles.ParseFormat(format)
			if err != nil {
				return err
			}
			sourceLang := from
			if sourceLang == "" {
				sourceLang = app.cfg.Whisper.Language
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			input := args[0]
			segments, err := subtitles.Load(input)
			if err != nil {
				return err
			}
			if len(segments) == 0 {
				return fmt.Errorf("no segments in %s", input)
			}

			repairer := boundary.New(boundary.NewCache(boundary.LexiconLoader))
			segments = repairer.RepairText(segments, sourceLang)

			gen, err := llm.NewGenerator(app.cfg.LLM, app.log)
			if err != nil {
				return err
			}
			engine := llm.NewTranslationEngine(gen, app.log, app.cfg.LLM.TranslationChunkSize)
			result, err := engine.Translate(ctx, segments, sourceLang, to, func(frac float64) {
				app.log.Info(ctx, "Translating (%.0f%%)...", frac*100)
			})
			if err != nil {
				return err
			}

			outPath := output
			if outPath == "" {
				stem := strings.TrimSuffix(input, filepath.Ext(input))
				outPath = fmt.Sprintf("%s.%s.%s", stem, to, format)
			}
			if err := subtitles.Save(outPath, outFormat, result.Translated); err != nil {
				return err
			}
			app.log.Info(ctx, "Saved: %s", outPath)

			biPath := fmt.Sprintf("%s.bilingual.%s-%s.vtt",
				strings.TrimSuffix(input, filepath.Ext(input)), sourceLang, to)
			if err := subtitles.SaveBilingualVTT(biPath, result); err != nil {
				return err
			}
			app.log.Info(ctx, "Saved: %s", biPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Target language code (required)")
	cmd.Flags().StringVar(&from, "from", "", "Source language code (defaults to whisper.language)")
	cmd.Flags().StringVarP(&format, "format", "f", "vtt", "Output format: vtt, srt or txt")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
