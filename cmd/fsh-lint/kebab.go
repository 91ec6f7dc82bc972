// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/fsh-lint/internal/naming"
	"github.com/pdiddy/fsh-lint/pkg/types"
)

var kebabCmd = &cobra.Command{
	Use:   "kebab <name>...",
	Short: "Print the Id expected for definition names",
	Long: `Kebab prints, for each name, the Id that check expects: the kebab-case
form of the name with whitelisted tokens kept whole. Names that are not
PascalCase are marked.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlag("whitelist", cmd.Flags().Lookup("whitelist")); err != nil {
			return fmt.Errorf("binding flag whitelist: %w", err)
		}
		return writeKebab(cmd.OutOrStdout(), args, viper.GetStringSlice("whitelist"))
	},
}

func writeKebab(w io.Writer, names, whitelist []string) error {
	for _, name := range names {
		id := naming.KebabFromPascal(name, whitelist)
		var err error
		if naming.IsPascalCase(name) {
			_, err = fmt.Fprintf(w, "%s\t%s\n", name, id)
		} else {
			_, err = fmt.Fprintf(w, "%s\t%s\t(not PascalCase)\n", name, id)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func init() {
	kebabCmd.Flags().StringSlice("whitelist", types.DefaultLintConfig().Whitelist, "tokens kept as one id segment, e.g. MedCom,HL7")

	rootCmd.AddCommand(kebabCmd)
}
