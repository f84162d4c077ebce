package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/creatorops/opsfeed/internal/dismissed"
)

// NewCmdDismiss creates the dismiss command with subcommands.
func NewCmdDismiss() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dismiss <item-id>",
		Short: "Hide a feed item until it has new activity",
		Args:  cobra.ExactArgs(1),
		RunE:  runDismiss,
	}

	cmd.AddCommand(newCmdDismissRestore())
	cmd.AddCommand(newCmdDismissList())

	return cmd
}

func newCmdDismissRestore() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <item-id>",
		Short: "Bring a dismissed item back into the feed",
		Args:  cobra.ExactArgs(1),
		RunE:  runDismissRestore,
	}
}

func newCmdDismissList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show how many items are dismissed",
		RunE:  runDismissList,
	}
}

func runDismiss(cmd *cobra.Command, args []string) error {
	store, err := dismissed.NewStore()
	if err != nil {
		return fmt.Errorf("failed to open dismissed store: %w", err)
	}

	itemID := args[0]
	if err := store.Dismiss(itemID, time.Now()); err != nil {
		return fmt.Errorf("failed to dismiss %s: %w", itemID, err)
	}

	fmt.Printf("Dismissed %s. It will return when it has new activity.\n", itemID)
	return nil
}

func runDismissRestore(cmd *cobra.Command, args []string) error {
	store, err := dismissed.NewStore()
	if err != nil {
		return fmt.Errorf("failed to open dismissed store: %w", err)
	}

	itemID := args[0]
	if !store.IsDismissed(itemID) {
		fmt.Printf("%s is not dismissed.\n", itemID)
		return nil
	}
	if err := store.Restore(itemID); err != nil {
		return fmt.Errorf("failed to restore %s: %w", itemID, err)
	}

	fmt.Printf("Restored %s.\n", itemID)
	return nil
}

func runDismissList(cmd *cobra.Command, args []string) error {
	store, err := dismissed.NewStore()
	if err != nil {
		return fmt.Errorf("failed to open dismissed store: %w", err)
	}

	fmt.Printf("%d item(s) currently dismissed.\n", store.Count())
	return nil
}
