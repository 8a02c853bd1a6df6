package cmd

import (
	"github.com/spf13/cobra"
)

var (
	describeFull  bool
	describeSince string
)

// describeCmd represents the describe command
var describeCmd = &cobra.Command{
	Use:   "describe <object>",
	Short: "Show metadata for an sObject type",
	Long: `Show metadata for an sObject type.

With --full, the complete describe result is fetched instead of the
summary. With --since, the fetch is conditional: the server returns the
metadata only if it changed after the given time, otherwise a
not-modified message. The --since value accepts most common date
formats.`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribe,
}

func init() {
	describeCmd.Flags().BoolVar(&describeFull, "full", false, "fetch the full describe result")
	describeCmd.Flags().StringVar(&describeSince, "since", "", "only return metadata modified after this time")
}

func runDescribe(cmd *cobra.Command, args []string) error {
	result, err := client.ObjectMetadata(cmd.Context(), args[0], describeFull, describeSince)
	if err != nil {
		return err
	}
	return printResult(result)
}
