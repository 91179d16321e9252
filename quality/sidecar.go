package quality

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// FindSidecars searches root recursively for RPC and RPB geolocation
// files matching the raster stem. RPC companions are *.rpc files or
// *_rpc.txt files; RPB companions are *.rpb files. A sidecar matches
// when its own stem equals the raster's, or equals the raster's plus
// the respective _rpc/_rpb suffix. The first match of each kind wins.
// Unreadable directories count as "no sidecar", never as a failure.
func FindSidecars(root, stem string) (hasRPC, hasRPB bool) {
	filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if entry.IsDir() {
			return nil
		}

		name := entry.Name()
		sidecarStem := strings.TrimSuffix(name, filepath.Ext(name))

		if !hasRPC && isRPCName(name) {
			if sidecarStem == stem || sidecarStem == stem+"_rpc" {
				hasRPC = true
			}
		}
		if !hasRPB && filepath.Ext(name) == ".rpb" {
			if sidecarStem == stem || sidecarStem == stem+"_rpb" {
				hasRPB = true
			}
		}

		if hasRPC && hasRPB {
			return fs.SkipAll
		}
		return nil
	})
	return hasRPC, hasRPB
}

func isRPCName(name string) bool {
	return filepath.Ext(name) == ".rpc" || strings.HasSuffix(name, "_rpc.txt")
}
