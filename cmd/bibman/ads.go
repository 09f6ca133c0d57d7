package main

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mr91i/bibmanager/internal/ads"
	"github.com/mr91i/bibmanager/internal/bib"
	"github.com/spf13/cobra"
)

var (
	adsStart int
	adsRows  int
)

var adsCmd = &cobra.Command{
	Use:   "ads",
	Short: "NASA/ADS integration commands",
	Long: `Commands for querying the NASA Astrophysics Data System.

Search the literature and pull BibTeX records straight into the
database by bibcode.

The API token is read from the ADS_TOKEN environment variable (a .env
file is honored) or the ads_token config value.`,
}

func init() {
	// Load .env file if present (for ADS_TOKEN)
	_ = godotenv.Load()

	adsSearchCmd.Flags().IntVar(&adsStart, "start", 0, "Index of the first result")
	adsSearchCmd.Flags().IntVar(&adsRows, "rows", ads.DefaultRows, "Number of results per page")

	adsCmd.AddCommand(adsSearchCmd)
	adsCmd.AddCommand(adsAddCmd)
	rootCmd.AddCommand(adsCmd)
}

// newADSClient builds a client with the configured token. The ADS_TOKEN
// environment variable wins over the config file.
func newADSClient() *ads.Client {
	cfg := mustLoadConfig()
	if os.Getenv("ADS_TOKEN") == "" && cfg.ADSToken != "" {
		return ads.NewClient(ads.WithToken(cfg.ADSToken))
	}
	return ads.NewClient()
}

var adsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the ADS literature",
	Long: `Search ADS with its native query syntax.

Examples:
  bibman ads search "author:^Fortney year:2016"
  bibman ads search "exoplanets" --rows 5 --start 10`,
	Args: cobra.MinimumNArgs(1),
	RunE: runADSSearch,
}

func runADSSearch(cmd *cobra.Command, args []string) error {
	client := newADSClient()

	res, err := client.Search(cmd.Context(), strings.Join(args, " "), adsStart, adsRows)
	if err != nil {
		if errors.Is(err, ads.ErrUnauthorized) {
			exitWithError(ExitAuthError, "%v", err)
		}
		return err
	}

	if humanOutput {
		for _, doc := range res.Docs {
			title := ""
			if len(doc.Title) > 0 {
				title = doc.Title[0]
			}
			outputHuman("%s  %s (%s)\n", doc.Bibcode, truncate(title, SearchTitleMaxLen), doc.Year)
		}
		outputHuman("Showing %d-%d of %d matches\n",
			res.Start+1, res.Start+len(res.Docs), res.NumFound)
		return nil
	}
	return outputJSON(res)
}

var adsAddCmd = &cobra.Command{
	Use:   "add <bibcode>...",
	Short: "Fetch ADS records into the database",
	Long: `Fetch the BibTeX records for one or more bibcodes and merge them into
the database.

Examples:
  bibman ads add 1925PhDT.........1P
  bibman ads add 1925PhDT.........1P 1913LowOB...2...56S`,
	Args: cobra.MinimumNArgs(1),
	RunE: runADSAdd,
}

func runADSAdd(cmd *cobra.Command, args []string) error {
	client := newADSClient()

	text, err := client.ExportBibTeX(cmd.Context(), args)
	if err != nil {
		if errors.Is(err, ads.ErrUnauthorized) {
			exitWithError(ExitAuthError, "%v", err)
		}
		return err
	}

	entries, err := bib.Parse(text)
	if err != nil {
		exitWithError(ExitDataError, "parsing ADS export: %v", err)
	}
	if len(entries) == 0 {
		exitWithError(ExitError, "no records found for: %s", strings.Join(args, ", "))
	}

	cfg := mustLoadConfig()
	db := mustOpenDatabase(cfg)

	added, updated := db.Merge(entries)
	if err := db.Save(); err != nil {
		return err
	}

	if humanOutput {
		outputHuman("Fetched %d record(s): %d added, %d updated\n",
			len(entries), added, updated)
		return nil
	}
	return outputJSON(map[string]int{
		"fetched": len(entries),
		"added":   added,
		"updated": updated,
	})
}
