// Package ingest loads the OSM-derived feature dataset into the
// waterway store. The dataset is the GeoParquet output of the external
// ETL pipeline (osmium filter + ohsome-planet conversion); this package
// only consumes its columnar schema.
package ingest

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Feature is one row of the feature dataset. Only the columns the
// store needs are projected; everything else in the file is ignored.
type Feature struct {
	OSMID    int64             `parquet:"osm_id"`
	OSMType  string            `parquet:"osm_type"`
	Tags     map[string]string `parquet:"tags"`
	Geometry []byte            `parquet:"geometry"`
}

// ID renders the stable external identifier, e.g. "way/82538".
func (f Feature) ID() string {
	return fmt.Sprintf("%s/%d", f.OSMType, f.OSMID)
}

// ReadDataset reads every parquet file under dir, in path order. A
// missing directory or a directory without parquet files is an error:
// there is no such thing as a partially built store.
func ReadDataset(dir string) ([]Feature, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".parquet") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset directory %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no parquet files found under %s", dir)
	}

	var features []Feature
	for _, path := range paths {
		rows, err := parquet.ReadFile[Feature](path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		features = append(features, rows...)
	}

	return features, nil
}
