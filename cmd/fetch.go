package cmd

import (
	"github.com/gaurav-prasanna/linkharvest/core/output"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <url_file> [content_file]",
	Short: "Fetch the content of every URL in an existing URL file",
	Long: `Fetch reads a URL file (one URL per line, as written by the root command
or edited by hand) and writes the content of each URL to content_file.

The URL file is used as-is: its order is kept and nothing is deduplicated.
content_file defaults to the URL file name with "_content.txt" in place of
its extension.

Examples:
  linkharvest fetch links.txt --api-key KEY
  linkharvest fetch links.txt out.txt --reader local --local-format text`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	urlFile := args[0]
	contentFile := output.SuggestPath(urlFile, "_content.txt")
	if len(args) == 2 {
		contentFile = args[1]
	}

	cfg := runConfig(appConfig)
	cfg.Fetch = true
	cfg.URLFile = urlFile
	cfg.ContentFile = contentFile

	return runTask(cmd, cfg)
}
