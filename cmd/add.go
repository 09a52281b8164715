package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinkertanker/groupmaker/internal/cliout"
	"github.com/tinkertanker/groupmaker/internal/models"
)

var addRole string

var addCmd = &cobra.Command{
	Use:   "add <group> <email>",
	Short: "Add a member to a group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		group, email := qualifyGroup(args[0]), args[1]

		if !cliout.ValidEmail(email) {
			return fmt.Errorf("invalid email address: %s", email)
		}
		switch addRole {
		case models.RoleMember, models.RoleManager, models.RoleOwner:
		default:
			return fmt.Errorf("invalid role: %s (expected MEMBER, MANAGER, or OWNER)", addRole)
		}

		ctx := cmd.Context()
		client, err := newDirectoryClient(ctx)
		if err != nil {
			return err
		}

		if _, err := client.AddMember(ctx, group, email, addRole); err != nil {
			return err
		}
		fmt.Printf("Added %s to %s as %s\n", email, group, addRole)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addRole, "role", models.RoleMember, "Member role: MEMBER, MANAGER, or OWNER")
	rootCmd.AddCommand(addCmd)
}
