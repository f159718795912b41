package widget

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dasdy/monoframe/logging"
	"gopkg.in/yaml.v3"
)

// IconManifest lists the icons of an IconOptionWidget.
//
//	icons:
//	  - id: play
//	    label: Play
//	    image: play.png
//	    option: 1
//	    disabled: false
type IconManifest struct {
	Icons []IconEntry `yaml:"icons"`
}

type IconEntry struct {
	ID       string `yaml:"id"`
	Label    string `yaml:"label"`
	Image    string `yaml:"image"`
	Option   any    `yaml:"option"`
	Disabled bool   `yaml:"disabled"`
}

// LoadManifest adds the icons listed in the YAML file at path. Image paths
// are relative to the manifest's directory.
func (w *IconOptionWidget) LoadManifest(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open manifest %s: %w", path, err)
	}
	defer file.Close()

	return w.AddManifest(file, filepath.Dir(path))
}

// AddManifest adds the icons of a YAML manifest read from r.
func (w *IconOptionWidget) AddManifest(r io.Reader, dir string) error {
	var manifest IconManifest

	if err := yaml.NewDecoder(r).Decode(&manifest); err != nil {
		return fmt.Errorf("could not parse icon manifest: %w", err)
	}

	ctx := logging.PackageCtx("widget")

	for _, entry := range manifest.Icons {
		image := entry.Image
		if !filepath.IsAbs(image) {
			image = filepath.Join(dir, image)
		}

		if err := w.AddIcon(image, entry.Label, entry.ID, entry.Option); err != nil {
			return fmt.Errorf("could not add icon %q: %w", entry.ID, err)
		}

		if entry.Disabled {
			if err := w.DisableIcon(entry.ID); err != nil {
				return err
			}
		}

		slog.DebugContext(ctx, "Added icon", "id", entry.ID, "image", image)
	}

	return nil
}
