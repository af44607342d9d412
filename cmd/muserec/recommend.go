package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rushteam/muserec/core"
)

type recommendOptions struct {
	count  int
	byID   bool
	asJSON bool
}

func (r *recommendOptions) bind(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&r.count, "count", "n", 0, "Number of recommendations (default from config)")
	cmd.Flags().BoolVar(&r.byID, "id", false, "Treat the argument as an id instead of a display name")
	cmd.Flags().BoolVar(&r.asJSON, "json", false, "Output results as JSON")
}

func (r *recommendOptions) resolveCount(cmd *cobra.Command, a *app) int {
	if cmd.Flags().Changed("count") {
		return r.count
	}
	return a.engine.Recommendations()
}

func newArtistCmd(root *rootOptions) *cobra.Command {
	opts := &recommendOptions{}
	cmd := &cobra.Command{
		Use:   "artist <name>",
		Short: "Recommend artists similar to the given one",
		Example: `  muserec artist Radiohead
  muserec artist "Boards of Canada" -n 5 --json
  muserec artist --id a12`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.setup(cmd)
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			count := opts.resolveCount(cmd, a)

			var items []*core.Item
			if opts.byID {
				items, err = a.engine.RecommendSimilarArtistsByID(cmd.Context(), query, a.catalog.Artists, count)
			} else {
				items, err = a.engine.RecommendSimilarArtists(cmd.Context(), query, a.catalog.Artists, count)
			}
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), query, items, opts.asJSON)
		},
	}
	opts.bind(cmd)
	return cmd
}

func newSongCmd(root *rootOptions) *cobra.Command {
	opts := &recommendOptions{}
	cmd := &cobra.Command{
		Use:   "song <title>",
		Short: "Recommend songs similar to the given one",
		Example: `  muserec song "Paranoid Android"
  muserec song --id s7 -n 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.setup(cmd)
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			count := opts.resolveCount(cmd, a)

			var items []*core.Item
			if opts.byID {
				items, err = a.engine.RecommendSimilarSongsByID(cmd.Context(), query, a.catalog.Songs, a.catalog.Artists, count)
			} else {
				items, err = a.engine.RecommendSimilarSongs(cmd.Context(), query, a.catalog.Songs, a.catalog.Artists, count)
			}
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), query, items, opts.asJSON)
		},
	}
	opts.bind(cmd)
	return cmd
}

// recommendation 是 JSON 输出的单条结果。
type recommendation struct {
	ID         string  `json:"id"`
	Kind       string  `json:"kind"`
	ArtistName string  `json:"artist_name,omitempty"`
	SongTitle  string  `json:"song_title,omitempty"`
	Score      float64 `json:"score"`
	BaseScore  float64 `json:"base_score"`
	Popularity float64 `json:"popularity"`
	Reason     string  `json:"reason"`
}

func render(w io.Writer, query string, items []*core.Item, asJSON bool) error {
	if asJSON {
		out := make([]recommendation, 0, len(items))
		for _, it := range items {
			out = append(out, recommendation{
				ID:         it.ID,
				Kind:       string(it.Kind),
				ArtistName: displayArtist(it),
				SongTitle:  it.SongTitle,
				Score:      it.Score,
				BaseScore:  it.RawScore,
				Popularity: it.Popularity,
				Reason:     it.Reason,
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(w, "Getting recommendations for: %s\n", query)
	if len(items) == 0 {
		fmt.Fprintln(w, "No recommendations found.")
		return nil
	}

	fmt.Fprintln(w, "\n=== Recommendations ===")
	for i, it := range items {
		title := displayArtist(it)
		if it.SongTitle != "" {
			title = it.SongTitle
			if artist := displayArtist(it); artist != "" {
				title = artist + " - " + it.SongTitle
			}
		}
		fmt.Fprintf(w, "%d. %s\n", i+1, title)
		fmt.Fprintf(w, "   Score: %.3f (Base: %.3f)\n", it.Score, it.RawScore)
		fmt.Fprintf(w, "   Reason: %s\n\n", it.Reason)
	}
	return nil
}

// displayArtist 返回结果的艺人名：艺人结果取 ArtistName，歌曲结果取召回写入的 meta。
func displayArtist(it *core.Item) string {
	if it.ArtistName != "" {
		return it.ArtistName
	}
	if name, ok := it.Meta["artist_name"].(string); ok {
		return name
	}
	return ""
}
