package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-agent/internal/enhance"
	"github.com/jonathan/resume-agent/internal/observability"
)

type enhanceOptions struct {
	resume  string
	out     string
	inPlace bool
}

func newEnhanceCmd(a *app) *cobra.Command {
	var opts enhanceOptions

	cmd := &cobra.Command{
		Use:   "enhance",
		Short: "Apply text enhancements to a résumé JSON file",
		Long: `Extend a short summary and remove duplicate skills. The enhanced résumé is
written to stdout, to --out, or back over the input with --in-place. A summary
of the changes goes to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEnhance(cmd, a, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.resume, "resume", "r", "", "Résumé JSON file")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write the enhanced résumé to this file")
	cmd.Flags().BoolVar(&opts.inPlace, "in-place", false, "Rewrite the input file")
	_ = cmd.MarkFlagRequired("resume")
	cmd.MarkFlagsMutuallyExclusive("out", "in-place")

	return cmd
}

func runEnhance(cmd *cobra.Command, a *app, opts enhanceOptions) error {
	resume, err := readResume(opts.resume, a.cfg.StrictSchema)
	if err != nil {
		return err
	}

	before := resume
	if opts.inPlace {
		before = resume.Clone()
		enhance.Enhance(resume, enhance.InPlace())
	} else {
		resume = enhance.Enhance(resume)
	}
	changes := enhance.Diff(before, resume)

	a.log.Debug("résumé enhanced", zap.String("path", opts.resume), zap.Strings("changes", changes))

	var buf bytes.Buffer
	if err := encodeJSON(&buf, resume); err != nil {
		return fmt.Errorf("failed to encode résumé: %w", err)
	}

	switch {
	case opts.inPlace:
		err = writeFileAtomic(opts.resume, buf.Bytes())
	case opts.out != "":
		err = writeFileAtomic(opts.out, buf.Bytes())
	default:
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
	}
	if err != nil {
		return err
	}

	observability.NewPrinter(cmd.ErrOrStderr()).PrintEnhancement(opts.resume, changes)
	return nil
}
