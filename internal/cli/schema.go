package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/macropower/namify/pkg/config"
)

type SchemaArgs struct {
	Output string
}

// NewSchemaCmd prints the JSON schema of the configuration file.
func NewSchemaCmd() *cobra.Command {
	args := &SchemaArgs{}

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the configuration JSON schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := config.Schema()
			if err != nil {
				return err //nolint:wrapcheck // Already wrapped.
			}

			if args.Output == "" {
				mustN(fmt.Fprintln(cmd.OutOrStdout(), string(b)))

				return nil
			}

			if err := os.WriteFile(args.Output, b, 0o600); err != nil {
				return fmt.Errorf("write schema: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&args.Output, "output", "o", "", "Write the schema to a file instead of stdout")
	must(cmd.MarkFlagFilename("output", "json"))

	return cmd
}
