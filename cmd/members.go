package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tinkertanker/groupmaker/internal/models"
	"github.com/tinkertanker/groupmaker/internal/render"
)

var (
	membersIncludeDerived bool
	membersMaxResults     int64
)

var membersCmd = &cobra.Command{
	Use:   "members <group>",
	Short: "List members of a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client, err := newDirectoryClient(ctx)
		if err != nil {
			return err
		}

		members, err := client.ListMembers(ctx, qualifyGroup(args[0]), membersIncludeDerived, membersMaxResults)
		if err != nil {
			return err
		}

		models.SortMembersByRole(members)
		render.Members(os.Stdout, members)
		return nil
	},
}

func init() {
	membersCmd.Flags().BoolVar(&membersIncludeDerived, "include-derived", false, "Include members inherited through nested groups")
	membersCmd.Flags().Int64Var(&membersMaxResults, "max-results", 100, "Maximum number of members to return")
	rootCmd.AddCommand(membersCmd)
}
