package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/solrkit/solrkit/solr"
)

// facetConcurrency bounds parallel facet requests against the server.
const facetConcurrency = 4

// facetCmd represents the facet command
var facetCmd = &cobra.Command{
	Use:   "facet <field> [field...]",
	Short: "Show facet counts for one or more fields",
	Long: `Aggregate the documents matching the query by the distinct values of the
given fields. Fields are faceted concurrently when more than one is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFacet,
}

func init() {
	rootCmd.AddCommand(facetCmd)
}

func runFacet(cmd *cobra.Command, args []string) error {
	query, err := buildQuery()
	if err != nil {
		return err
	}

	logger.Debug().
		Str("query", query.String()).
		Strs("fields", args).
		Msg("Fetching facet counts")

	results := make([][]solr.FacetCount, len(args))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(facetConcurrency)

	for i, name := range args {
		i, name := i, name
		g.Go(func() error {
			counts, err := client.Facet(ctx, query, solr.NewField(name))
			if err != nil {
				return err
			}
			results[i] = counts
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for i, name := range args {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s:\n", name)
		if len(results[i]) == 0 {
			fmt.Println("  (no values)")
			continue
		}
		for _, fc := range results[i] {
			fmt.Printf("  %-30s %d\n", fc.Value, fc.Count)
		}
	}

	return nil
}
