package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <group>",
	Short: "Delete a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		group := qualifyGroup(args[0])

		if !deleteYes {
			fmt.Printf("Delete group %s? This cannot be undone. Type 'yes' to confirm: ", group)
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if strings.TrimSpace(answer) != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		ctx := cmd.Context()
		client, err := newDirectoryClient(ctx)
		if err != nil {
			return err
		}

		if err := client.DeleteGroup(ctx, group); err != nil {
			return err
		}
		fmt.Printf("Group '%s' deleted.\n", group)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteYes, "yes", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}
