// Package assets embeds the default map so the game runs without a data
// directory.
package assets

import (
	"embed"
	"strconv"
)

// Maps holds maps/mapN/graph.json and maps/mapN/words/diffK.txt
//
//go:embed maps
var Maps embed.FS

// MapCount is the number of embedded maps
const MapCount = 1

// MapDir returns the directory of map i within Maps
func MapDir(i int) string {
	return "maps/map" + strconv.Itoa(i)
}
