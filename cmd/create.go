package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinkertanker/groupmaker/internal/cliout"
	"github.com/tinkertanker/groupmaker/internal/models"
)

var (
	createDescription string
	createSkipSelf    bool
	createSelfEmail   string
)

var createCmd = &cobra.Command{
	Use:   "create <group_name> <trainer_email>",
	Short: "Create a group and add its first members",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		groupName, trainerEmail := args[0], args[1]

		if msg := cliout.ValidateGroupName(groupName); msg != "" {
			return fmt.Errorf("%s", msg)
		}
		if !cliout.ValidEmail(trainerEmail) {
			return fmt.Errorf("invalid email address: %s", trainerEmail)
		}
		selfEmail := createSelfEmail
		if selfEmail == "" {
			selfEmail = cfg.DefaultEmail
		}
		if !createSkipSelf && !cliout.ValidEmail(selfEmail) {
			return fmt.Errorf("no valid self email configured; set DEFAULT_EMAIL or pass --self-email")
		}

		ctx := cmd.Context()
		client, err := newDirectoryClient(ctx)
		if err != nil {
			return err
		}

		group, err := client.CreateGroup(ctx, groupName, cfg.Domain, createDescription)
		if err != nil {
			return err
		}
		fmt.Printf("Group '%s' created successfully!\n", group.Email)

		// The backend may not see the new group yet; the first insert
		// retries once after a fixed delay.
		if _, err := client.AddMemberAfterCreate(ctx, group.Email, trainerEmail, models.RoleMember); err != nil {
			return err
		}
		fmt.Printf("Added %s to %s as %s\n", trainerEmail, group.Email, models.RoleMember)

		if !createSkipSelf {
			if _, err := client.AddMember(ctx, group.Email, selfEmail, models.RoleMember); err != nil {
				return err
			}
			fmt.Printf("Added %s to %s as %s\n", selfEmail, group.Email, models.RoleMember)
		}

		fmt.Printf("Group setup complete. Group email: %s\n", group.Email)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createDescription, "description", "", "Optional description for the group")
	createCmd.Flags().BoolVar(&createSkipSelf, "skip-self", false, "Skip adding yourself to the group")
	createCmd.Flags().StringVar(&createSelfEmail, "self-email", "", "Your email address (defaults to DEFAULT_EMAIL)")
	rootCmd.AddCommand(createCmd)
}
