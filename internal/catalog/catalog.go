// Package catalog embeds the offline POI fixture set used whenever no
// external places provider is configured or reachable. Scoring semantics
// are identical against either source.
package catalog

import (
	_ "embed"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/locscore/internal/model"
)

//go:embed catalog.yaml
var catalogYAML []byte

type catalogFile struct {
	POIs []model.POI `yaml:"pois"`
}

// Load parses the embedded catalog. The returned POIs carry no distance;
// the store computes distances against the query center.
func Load() ([]model.POI, error) {
	var f catalogFile
	if err := yaml.Unmarshal(catalogYAML, &f); err != nil {
		return nil, eris.Wrap(err, "catalog: unmarshal embedded catalog")
	}
	if len(f.POIs) == 0 {
		return nil, eris.New("catalog: embedded catalog is empty")
	}
	return f.POIs, nil
}
