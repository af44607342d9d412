package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rushteam/muserec/core"
	"github.com/rushteam/muserec/model"
)

func newClustersCmd(root *rootOptions) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "clusters",
		Short: "Train the cluster models and print their members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.setup(cmd)
			if err != nil {
				return err
			}
			if !a.engine.MLEnabled() {
				fmt.Fprintln(cmd.OutOrStdout(), "ML is disabled.")
				return nil
			}

			enh := a.engine.Enhancer()
			w := cmd.OutOrStdout()
			switch core.Kind(kind) {
			case core.KindArtist:
				if !enh.IsArtistModelTrained() {
					fmt.Fprintln(w, "Artist model is not trained.")
					return nil
				}
				printStats(cmd, "artist", enh.ArtistClustering())
				for c := range enh.NumClusters() {
					names := make([]string, 0)
					for _, m := range enh.ArtistsInCluster(c) {
						names = append(names, m.Name)
					}
					fmt.Fprintf(w, "[%d] %s\n", c, strings.Join(names, ", "))
				}
			case core.KindSong:
				if !enh.IsSongModelTrained() {
					fmt.Fprintln(w, "Song model is not trained.")
					return nil
				}
				printStats(cmd, "song", enh.SongClustering())
				for c := range enh.NumClusters() {
					names := make([]string, 0)
					for _, m := range enh.SongsInCluster(c) {
						names = append(names, m.Name)
					}
					fmt.Fprintf(w, "[%d] %s\n", c, strings.Join(names, ", "))
				}
			default:
				return fmt.Errorf("unknown kind %q (artist or song)", kind)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", string(core.KindArtist), "Which model to show: artist or song")
	return cmd
}

func printStats(cmd *cobra.Command, kind string, fit *model.Clustering) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s clusters: k=%d iterations=%d converged=%t sizes=%v\n",
		kind, fit.K(), fit.Iterations, fit.Converged, fit.Sizes())
}
