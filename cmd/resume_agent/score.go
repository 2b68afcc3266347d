package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-agent/internal/ingestion"
	"github.com/jonathan/resume-agent/internal/observability"
	"github.com/jonathan/resume-agent/internal/scoring"
	"github.com/jonathan/resume-agent/internal/types"
)

type scoreOptions struct {
	resumes []string
	jobFile string
	asJSON  bool
	strict  bool
}

// scoreOutput is one element of the --json output.
type scoreOutput struct {
	Source string             `json:"source"`
	Result *types.ScoreResult `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
}

func newScoreCmd(a *app) *cobra.Command {
	var opts scoreOptions

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score résumé JSON files against a job description",
		Long: `Score one or more résumé JSON files against an optional job description.
Job description files ending in .html or .htm are reduced to their main text first.
Multiple résumés are scored concurrently and ranked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScore(cmd, a, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.resumes, "resume", "r", nil, "Résumé JSON file (repeatable)")
	cmd.Flags().StringVarP(&opts.jobFile, "job", "j", "", "Job description file (text or HTML)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print results as JSON")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Reject résumés that do not match the résumé schema")
	_ = cmd.MarkFlagRequired("resume")

	return cmd
}

func runScore(cmd *cobra.Command, a *app, opts scoreOptions) error {
	jobDescription := ""
	if opts.jobFile != "" {
		jd, err := ingestion.LoadFile(opts.jobFile)
		if err != nil {
			return err
		}
		jobDescription = jd.Text
		a.log.Debug("job description loaded",
			zap.String("path", jd.Source),
			zap.String("format", jd.Format),
			zap.String("hash", jd.Hash),
		)
	}

	strict := opts.strict || a.cfg.StrictSchema
	entries, err := scoreFiles(cmd.Context(), opts.resumes, jobDescription, strict)
	if err != nil {
		return err
	}

	failed := 0
	for _, e := range entries {
		if e.Err != nil {
			failed++
			a.log.Warn("résumé not scored", zap.String("path", e.Source), zap.Error(e.Err))
		}
	}

	out := cmd.OutOrStdout()
	if opts.asJSON {
		if err := writeScoreJSON(cmd, entries); err != nil {
			return err
		}
	} else {
		printer := observability.NewPrinter(out)
		for _, e := range entries {
			if e.Err == nil {
				printer.PrintScoreResult(e.Source, e.Result)
			}
		}
		if len(entries) > 1 {
			printer.PrintScoreRanking(entries)
		}
	}

	if failed > 0 {
		if len(entries) == 1 {
			return entries[0].Err
		}
		return fmt.Errorf("%d of %d résumés could not be scored", failed, len(entries))
	}
	return nil
}

// scoreFiles scores every résumé concurrently. A file that cannot be loaded
// is reported in its entry rather than aborting the others; the returned
// error is only set when ctx is cancelled. Entries keep the order of paths.
func scoreFiles(ctx context.Context, paths []string, jobDescription string, strict bool) ([]observability.ScoreEntry, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	entries := make([]observability.ScoreEntry, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			entry := observability.ScoreEntry{Source: path}
			resume, err := readResume(path, strict)
			if err != nil {
				entry.Err = err
			} else {
				entry.Result = scoring.Score(resume, jobDescription)
			}
			// Each goroutine owns entries[i].
			entries[i] = entry
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

func writeScoreJSON(cmd *cobra.Command, entries []observability.ScoreEntry) error {
	if len(entries) == 1 && entries[0].Err == nil {
		return encodeJSON(cmd.OutOrStdout(), entries[0].Result)
	}

	outputs := make([]scoreOutput, 0, len(entries))
	for _, e := range entries {
		o := scoreOutput{Source: e.Source, Result: e.Result}
		if e.Err != nil {
			o.Error = e.Err.Error()
		}
		outputs = append(outputs, o)
	}
	return encodeJSON(cmd.OutOrStdout(), outputs)
}
