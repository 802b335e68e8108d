package cmd

import (
	"fmt"

	"github.com/gaurav-prasanna/linkharvest/config"
	"github.com/gaurav-prasanna/linkharvest/core/output"
	"github.com/gaurav-prasanna/linkharvest/links"
	"github.com/gaurav-prasanna/linkharvest/pipeline"
	"github.com/spf13/cobra"
)

// DefaultContentFile is where --fetch-content writes unless told otherwise.
const DefaultContentFile = "fetched_content.txt"

// contentFileAuto derives the content file name from the URL file.
const contentFileAuto = "auto"

// Root command flag variables.
var (
	flagBaseURL      string
	flagFetchContent bool
	flagContentFile  string
	flagSkipStatic   bool
	flagWebOnly      bool
	flagSameHost     bool
)

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flagBaseURL, "base-url", "", "Base URL for relative links")
	f.BoolVar(&flagFetchContent, "fetch-content", false, "Fetch content for extracted links")
	f.StringVar(&flagContentFile, "content-file", DefaultContentFile, `Where fetched content goes ("auto": <output_file>_content.txt)`)

	// Optional link filters; all off by default.
	f.BoolVar(&flagSkipStatic, "skip-static", false, "Drop links to images, stylesheets, scripts and documents")
	f.BoolVar(&flagWebOnly, "web-only", false, "Drop mailto:, javascript:, tel:, data: and fragment-only links")
	f.BoolVar(&flagSameHost, "same-host", false, "Keep only links on the --base-url host")
}

// runExtract is the root command: extract links, save them and optionally
// fetch their content.
func runExtract(cmd *cobra.Command, args []string) error {
	inputFile, outputFile := args[0], args[1]

	if appConfig.Reader == config.ReaderEndpoint && appConfig.APIKey == "" {
		return fmt.Errorf("an API key is required: use --api-key, LINKHARVEST_API_KEY or api_key in the config file")
	}

	cfg := runConfig(appConfig)
	cfg.Extract = true
	cfg.Fetch = flagFetchContent
	cfg.InputFile = inputFile
	cfg.URLFile = outputFile
	cfg.BaseURL = flagBaseURL
	cfg.SameHost = flagSameHost
	cfg.Filter = links.Filter{
		SkipStatic: flagSkipStatic,
		WebOnly:    flagWebOnly,
	}
	if flagFetchContent {
		cfg.ContentFile = contentFilePath(flagContentFile, outputFile)
	}

	return runTask(cmd, cfg)
}

// contentFilePath resolves the --content-file value.
func contentFilePath(flagValue string, urlFile string) string {
	if flagValue == contentFileAuto {
		return output.SuggestPath(urlFile, "_content.txt")
	}
	if flagValue == "" {
		return DefaultContentFile
	}
	return flagValue
}

// runConfig copies the fetch settings from the application config.
func runConfig(c *config.Config) pipeline.Config {
	return pipeline.Config{
		Reader:        c.Reader,
		APIKey:        c.APIKey,
		Endpoint:      c.Endpoint,
		Delay:         c.Delay,
		Timeout:       c.Timeout,
		UserAgent:     c.UserAgent,
		LocalFormat:   c.LocalFormat,
		RespectRobots: c.RespectRobots,
	}
}
