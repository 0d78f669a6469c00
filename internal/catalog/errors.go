package catalog

import "errors"

var (
	// ErrNoCatalogFile is returned when a directory holds no tiles.yaml, tiles.yml or tiles.json.
	ErrNoCatalogFile = errors.New("catalog: no catalog file found")
	// ErrNoTiles is returned when a catalog expands to zero tiles.
	ErrNoTiles = errors.New("catalog: catalog defines no tiles")
	// ErrBadRotation is returned for rotations outside 0..3 or unknown keywords.
	ErrBadRotation = errors.New("catalog: rotation must be All or a quarter turn 0..3")
	// ErrMissingSocket is returned when an entry omits one of the four sides.
	ErrMissingSocket = errors.New("catalog: entry must define up, right, down and left sockets")
	// ErrTileSize is returned when tile images are not square or differ in size.
	ErrTileSize = errors.New("catalog: tile images must be square and equally sized")
	// ErrUnknownBuiltin is returned by Builtin for unregistered names.
	ErrUnknownBuiltin = errors.New("catalog: unknown built-in set")
)
