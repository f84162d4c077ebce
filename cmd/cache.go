package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/creatorops/opsfeed/internal/cache"
)

// NewCmdCache creates the cache command with subcommands.
func NewCmdCache() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the record cache",
	}

	cmd.AddCommand(newCmdCacheClear())
	cmd.AddCommand(newCmdCacheStats())

	return cmd
}

func newCmdCacheClear() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear cached dashboard records",
		RunE:  runCacheClear,
	}
}

func newCmdCacheStats() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		RunE:  runCacheStats,
	}
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	c, err := cache.NewCache()
	if err != nil {
		return fmt.Errorf("failed to access cache: %w", err)
	}

	if err := c.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	fmt.Println("Cache cleared.")
	return nil
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	c, err := cache.NewCache()
	if err != nil {
		return fmt.Errorf("failed to access cache: %w", err)
	}

	total, valid, err := c.Stats()
	if err != nil {
		return fmt.Errorf("failed to get cache stats: %w", err)
	}

	fmt.Printf("Cache statistics (TTL: %s):\n", cache.ListTTL)
	fmt.Printf("  Total lists: %d\n", total)
	fmt.Printf("  Valid:       %d\n", valid)
	fmt.Printf("  Expired:     %d\n", total-valid)
	return nil
}
