package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newCallCmd() *cobra.Command {
	var jsonParams string

	cmd := &cobra.Command{
		Use:   "call <tool> [key=value...]",
		Short: "Run a single tool and print its JSON result",
		Long: `Runs one tool without an MCP client, e.g.

  monumenten-mcp-server call get_verblijfsobject_id postal_code=3011AD house_number=30
  monumenten-mcp-server call get_monumental_status bag_verblijfsobject_id=0599010000165822`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args[1:], jsonParams)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), os.Stderr, false)
			if err != nil {
				return err
			}
			defer a.close()

			result, err := a.registry.Dispatcher().Dispatch(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVar(&jsonParams, "json", "", "Parameters as a JSON object; key=value pairs override its fields")
	return cmd
}

// parseParams merges a JSON object and key=value pairs into one parameter
// mapping. Pair values are always strings.
func parseParams(pairs []string, jsonParams string) (map[string]any, error) {
	params := map[string]any{}
	if strings.TrimSpace(jsonParams) != "" {
		dec := json.NewDecoder(bytes.NewReader([]byte(jsonParams)))
		dec.UseNumber()
		if err := dec.Decode(&params); err != nil {
			return nil, fmt.Errorf("invalid --json parameters: %w", err)
		}
	}

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q: expected key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the server version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ServerName, ServerVersion)
		},
	}
}
