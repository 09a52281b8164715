package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tinkertanker/groupmaker/internal/render"
)

var (
	listQuery      string
	listMaxResults int64
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List groups in the domain",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client, err := newDirectoryClient(ctx)
		if err != nil {
			return err
		}

		groups, err := client.ListGroups(ctx, cfg.Domain, listQuery, listMaxResults)
		if err != nil {
			return err
		}

		render.Groups(os.Stdout, groups)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listQuery, "query", "", "Search query to filter groups")
	listCmd.Flags().Int64Var(&listMaxResults, "max-results", 100, "Maximum number of groups to return")
	rootCmd.AddCommand(listCmd)
}
