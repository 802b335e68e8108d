package cmd

import (
	"fmt"

	"github.com/gaurav-prasanna/linkharvest/core/store"
	"github.com/spf13/cobra"
)

var flagHead int

var listCmd = &cobra.Command{
	Use:   "list <url_file>",
	Short: "Preview a URL file",
	Long: `List loads a URL file the same way fetch does and prints how many URLs
it holds, followed by the first few.`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVar(&flagHead, "head", 3, "Number of URLs to show")
}

func runList(cmd *cobra.Command, args []string) error {
	urls, err := store.Load(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Found %d URLs in %s\n", len(urls), args[0])

	head := flagHead
	if head < 0 {
		head = 0
	}
	if head > len(urls) {
		head = len(urls)
	}
	for _, u := range urls[:head] {
		fmt.Fprintf(out, "- %s\n", u)
	}
	if len(urls) > head {
		fmt.Fprintln(out, "...")
	}
	return nil
}
