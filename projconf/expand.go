package projconf

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// ExpandPath expands a leading ~ to the current user's home directory
// and substitutes environment variables ($VAR or ${VAR}). Expansion
// reflects the environment at call time, so the same config resolved
// later may yield different absolute paths.
func ExpandPath(path string) string {
	path = os.ExpandEnv(path)

	usr, err := user.Current()
	if err != nil {
		return path
	}

	if path == "~" {
		// In case of "~", which won't be caught by the "else if"
		path = usr.HomeDir
	} else if strings.HasPrefix(path, "~/") {
		// Use strings.HasPrefix so we don't match paths like
		// "/something/~/something/"
		path = filepath.Join(usr.HomeDir, path[2:])
	}

	return path
}
