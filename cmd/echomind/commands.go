package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spacesedan/echomind/config"
	"github.com/spacesedan/echomind/internal/models"
	"github.com/spacesedan/echomind/internal/monitoring"
	"github.com/spacesedan/echomind/internal/server"
	"github.com/spacesedan/echomind/internal/trend"
	"github.com/spf13/cobra"
)

func newRootCmd(cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "echomind",
		Short:         "Assess the mood of text and voice notes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newAnalyzeCmd(cfg),
		newTranscribeCmd(cfg),
		newHistoryCmd(cfg),
		newTrendCmd(cfg),
		newServeCmd(cfg),
	)
	return root
}

func newAnalyzeCmd(cfg config.Config) *cobra.Command {
	var text string
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Assess a piece of text and log the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			if text == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				text = string(b)
			}

			a, err := buildApp(cmd.Context(), cfg, wireOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.service.SubmitText(cmd.Context(), text)
			if !result.Timestamp.IsZero() {
				printAssessment(cmd.OutOrStdout(), result)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&text, "text", "", `text to assess, or "-" to read stdin`)
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func newTranscribeCmd(cfg config.Config) *cobra.Command {
	var audio string
	cmd := &cobra.Command{
		Use:   "transcribe",
		Short: "Transcribe an .mp3 or .wav voice note, then assess and log it",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.Context(), cfg, wireOptions{withTranscriber: true})
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.service.SubmitAudio(cmd.Context(), audio)
			if !result.Timestamp.IsZero() {
				fmt.Fprintf(cmd.OutOrStdout(), "Transcription: %s\n", result.SourceText)
				printAssessment(cmd.OutOrStdout(), result)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&audio, "audio", "", "path to the audio file")
	_ = cmd.MarkFlagRequired("audio")
	return cmd
}

func newHistoryCmd(cfg config.Config) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print every logged assessment",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.Context(), cfg, wireOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			entries, err := a.service.History(cmd.Context())
			if err != nil {
				return err
			}
			return printHistory(cmd.OutOrStdout(), entries, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print entries as JSON")
	return cmd
}

func newTrendCmd(cfg config.Config) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Render the mood trend chart as an HTML page",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.Context(), cfg, wireOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			entries, err := a.service.History(cmd.Context())
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := trend.NewReporter().Render(f, entries); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d entries)\n", out, len(entries))
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "mood_trend.html", "output HTML file")
	return cmd
}

func newServeCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the assessment API and trend page over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := buildApp(ctx, cfg, wireOptions{withTranscriber: true})
			if err != nil {
				return err
			}
			defer a.Close()

			for _, b := range a.backends {
				go monitoring.MonitorBackendHealth(ctx, b, 0)
			}

			h := server.NewAssessmentHandler(a.service, trend.NewReporter(), a.backends...)
			return server.Run(ctx, server.New(h), cfg.HTTP.Address)
		},
	}
}

func printAssessment(w io.Writer, a models.Assessment) {
	if a.Empty {
		fmt.Fprintln(w, "No sentences found.")
		return
	}
	fmt.Fprintf(w, "Full Text Sentiment: %s (%.2f%%)\n", a.FullLabel, a.FullConfidence*100)
	fmt.Fprintln(w, "Sentence Breakdown:")
	for i, s := range a.Sentences {
		fmt.Fprintf(w, "  %d. %s\n     -> %s (%.2f%%)\n", i+1, s.Sentence, s.Label, s.Percent())
	}
	if len(a.Entities) == 0 {
		fmt.Fprintln(w, "No named entities found.")
	}
	for _, e := range a.Entities {
		fmt.Fprintf(w, "  - %s (%s)\n", e.Text, e.Type)
	}
	fmt.Fprintln(w, a.Message)
	if a.Celebrate() {
		fmt.Fprintln(w, "🎈🎈🎈")
	}
}

func printHistory(w io.Writer, entries []models.LogEntry, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "No assessments logged yet.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %-8s %6.2f%%  %s\n",
			e.Timestamp.Format(models.TimestampLayout), e.SentimentLabel, e.SentimentScore, e.Text)
	}
	return nil
}
