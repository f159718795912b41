package monoframe

import (
	"fmt"
	"os"

	"github.com/dasdy/monoframe/db"
	"github.com/spf13/cobra"
)

var (
	filenames   []string
	mergeOutput string
)

// mergeCmd represents the merge command.
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge recordings into one database",
	Long:  `Given several frame databases, create a new one holding the sessions of all of them.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		if _, err := os.Stat(mergeOutput); err == nil {
			return fmt.Errorf("output file %s already exists", mergeOutput)
		}

		inputs := make([]db.Storage, 0, len(filenames))

		for _, fn := range filenames {
			store, err := db.ConnectDB(fn)
			if err != nil {
				return err
			}
			defer store.Close()

			inputs = append(inputs, store)
		}

		output, err := db.ConnectDB(mergeOutput)
		if err != nil {
			return err
		}
		defer output.Close()

		return db.Merge(inputs, output)
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringSliceVarP(&filenames, "file", "f", []string{}, "List of databases to merge")
	mergeCmd.Flags().StringVarP(&mergeOutput, "out", "o", "./merged.sqlite", "Output path for the merged database")
}
