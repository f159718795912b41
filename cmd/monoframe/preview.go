package monoframe

import (
	"fmt"

	"github.com/dasdy/monoframe/db"
	"github.com/dasdy/monoframe/web"
	"github.com/spf13/cobra"
)

var port int

// previewCmd represents the preview command.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Browse recorded sessions",
	Long:  `Run a web server that shows recorded sessions frame by frame.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		storage, err := db.ConnectDB(storagePath)
		if err != nil {
			return fmt.Errorf("could not open %s as sqlite file: %w", storagePath, err)
		}
		defer storage.Close()

		return web.StartServer(port, storage)
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	addStorageFlag(previewCmd, "Database with recorded frames")

	previewCmd.Flags().IntVarP(&port, "port", "p", 3000, "Port on which server should be watching")
}
