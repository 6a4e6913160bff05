package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tabhost/tabhost/engine/diagnostic"
	"github.com/tabhost/tabhost/engine/extension"
	"github.com/tabhost/tabhost/engine/registry"
	"github.com/tabhost/tabhost/engine/tab"
)

func ValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate extension tab contributions without registering them",
		RunE:  runValidate,
	}
	cmd.Flags().String("extensions", "", "extensions directory (overrides config)")
	cmd.Flags().Bool("strict", false, "abort on the first manifest-level failure")
	return cmd
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := setupFromFlags(cmd)
	if err != nil {
		return err
	}
	// Validation uses a throwaway registry so a dry run never leaks state.
	reg := registry.New()
	processor := tab.NewProcessor(tab.WithDefaultProvider(cfg.Extensions.DefaultProvider))
	loader := extension.New(cfg.Extensions.Dir, cfg.LoaderConfig(), reg, processor)
	result, err := loader.Load(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, entry := range result.Diagnostics {
		fmt.Fprintln(out, entry.String())
	}
	for _, loadErr := range result.Errors {
		fmt.Fprintf(out, "[error] %s: %v\n", loadErr.File, loadErr.Err)
	}
	fmt.Fprintf(out, "%d manifest(s) processed, %d tab(s) accepted, %d diagnostic(s)\n",
		result.ManifestsProcessed, result.TabsRegistered, len(result.Diagnostics))
	if result.HasErrors() {
		errorCount := len(result.Errors)
		for _, entry := range result.Diagnostics {
			if entry.Severity == diagnostic.SeverityError {
				errorCount++
			}
		}
		return fmt.Errorf("validation failed with %d error(s)", errorCount)
	}
	return nil
}
