package cmd

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/gaurav-prasanna/linkharvest/pipeline"
	"github.com/spf13/cobra"
)

// runTask starts the pipeline in the background, follows its events and
// prints a summary once it finishes.
func runTask(cmd *cobra.Command, cfg pipeline.Config) error {
	task := pipeline.Start(cmd.Context(), cfg, pipeline.WithLogger(logger))

	var s *spinner.Spinner
	if flagProgress {
		s = spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
		s.Start()
	}

	for ev := range task.Events() {
		if s == nil {
			continue
		}
		switch ev.Kind {
		case pipeline.EventProgress:
			s.Suffix = fmt.Sprintf(" [%d/%d] %s", ev.Index, ev.Total, formatSpinnerMessage(ev.URL))
		case pipeline.EventStatus:
			s.Suffix = " " + ev.Status
		}
	}
	if s != nil {
		s.Stop()
	}

	res, err := task.Wait()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.Extract {
		fmt.Fprintf(out, "✓ Saved %d URLs to %s\n", res.Saved, cfg.URLFile)
	}
	if cfg.Fetch {
		fmt.Fprintf(out, "✓ Saved content for %d URLs to %s", res.Fetched, cfg.ContentFile)
		if res.Failed > 0 {
			fmt.Fprintf(out, " (%d failed)", res.Failed)
		}
		fmt.Fprintln(out)
	}
	return nil
}

// formatSpinnerMessage shortens long URLs so the spinner stays on one line.
func formatSpinnerMessage(url string) string {
	const maxLen = 60
	if len(url) <= maxLen {
		return url
	}
	return url[:maxLen-3] + "..."
}
