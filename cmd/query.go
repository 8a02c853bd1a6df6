package cmd

import (
	"github.com/spf13/cobra"
)

var (
	queryAll     bool
	queryExplain bool
)

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query <soql>",
	Short: "Execute a SOQL query",
	Long: `Execute a SOQL query against the org.

The query string is passed through verbatim. With --all, records in the
recycle bin are included. With --explain, the query plan is returned
instead of results.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().BoolVar(&queryAll, "all", false, "include deleted records (queryAll)")
	queryCmd.Flags().BoolVar(&queryExplain, "explain", false, "return the query plan instead of results")
}

func runQuery(cmd *cobra.Command, args []string) error {
	soql := args[0]
	logger.Debug().Str("soql", soql).Bool("all", queryAll).Bool("explain", queryExplain).Msg("Executing query")

	result, err := client.Query(cmd.Context(), soql, queryAll, queryExplain)
	if err != nil {
		return err
	}
	return printResult(result)
}
