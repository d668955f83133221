package lesson

import "embed"

//go:embed data
var seedFS embed.FS

// SeedLoader returns the loader over the content pack compiled into the
// binary. Studio-authored documents take precedence at a higher layer.
func SeedLoader() (*IndexLoader, error) {
	return NewIndexLoader(seedFS, "data/master-index.json")
}
