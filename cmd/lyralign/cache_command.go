package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lyralign/internal/transcribe/cache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the transcript cache",
	}

	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "stats",
		Aliases: []string{"info"},
		Short:   "Show transcript cache usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, warn, err := openCache(ctx)
			if warn != "" {
				fmt.Fprintln(cmd.OutOrStdout(), warn)
			}
			if err != nil || store == nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Path:        %s\n", store.Path())
			fmt.Fprintf(out, "Transcripts: %d\n", stats.Entries)
			fmt.Fprintf(out, "Words:       %d\n", stats.Words)
			fmt.Fprintf(out, "Size:        %s\n", humanBytes(stats.Bytes))
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached transcripts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, warn, err := openCache(ctx)
			if warn != "" {
				fmt.Fprintln(cmd.OutOrStdout(), warn)
			}
			if err != nil || store == nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			if removed == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Cache already empty")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached transcript(s)\n", removed)
			return nil
		},
	}
}

// openCache resolves the cache from configuration. A disabled cache is a
// warning, not an error, so scripted invocations keep a zero exit code.
func openCache(ctx *commandContext) (*cache.Store, string, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, "", err
	}
	if !cfg.Cache.Enabled {
		return nil, "Transcript cache is disabled (set enabled = true in the [cache] section)", nil
	}
	if _, err := os.Stat(cfg.Cache.Path); os.IsNotExist(err) {
		return nil, "Transcript cache is empty (nothing cached yet)", nil
	}
	store, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		return nil, "", fmt.Errorf("open transcript cache: %w", err)
	}
	return store, "", nil
}

func humanBytes(v int64) string {
	const unit = 1024
	if v < unit {
		return fmt.Sprintf("%d B", v)
	}
	div := int64(unit)
	exp := 0
	for n := v / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	value := float64(v) / float64(div)
	return fmt.Sprintf("%.1f %ciB", value, "KMGTPEZY"[exp])
}
