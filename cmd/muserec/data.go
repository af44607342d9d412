package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rushteam/muserec/loader"
	"github.com/rushteam/muserec/store"
)

func newImportCmd(root *rootOptions) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load catalog files and save them as a snapshot in Redis",
		Example: `  muserec import --redis localhost:6379
  muserec import -d catalog.json --redis localhost:6379 --prefix staging`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if root.redis.Addr == "" {
				return errors.New("--redis is required")
			}
			_, log, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}

			catalog, err := loader.LoadFiles(cmd.Context(), root.dataFiles...)
			if err != nil {
				return err
			}
			if err := catalog.Validate(); err != nil {
				if strict {
					return err
				}
				log.Warn().Err(err).Msg("catalog has invalid records")
			}

			rs, err := store.NewRedisStore(root.redis)
			if err != nil {
				return err
			}
			defer rs.Close()

			if err := loader.NewRepository(rs, root.prefix).Save(cmd.Context(), catalog); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d artists and %d songs into %s.\n",
				len(catalog.Artists), len(catalog.Songs), root.redis.Addr)
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Abort when the catalog has invalid records")
	return cmd
}

func newValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check catalog files for invalid records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loader.LoadFiles(cmd.Context(), root.dataFiles...)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Loaded %d artists and %d songs.\n", len(catalog.Artists), len(catalog.Songs))
			for _, id := range loader.UnknownGenres(catalog.Artists) {
				fmt.Fprintf(w, "warning: artist %q has unknown genre %q\n", id, catalog.Artists[id].Genre)
			}
			if err := catalog.Validate(); err != nil {
				fmt.Fprintln(w, err)
				return errors.New("catalog is invalid")
			}
			fmt.Fprintln(w, "Catalog is valid.")
			return nil
		},
	}
}
