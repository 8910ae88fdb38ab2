package fsops

import "os"

// Basename returns the part of p after its last path separator, or all of p
// when it has none. A trailing separator yields "".
func Basename(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if os.IsPathSeparator(p[i]) {
			return p[i+1:]
		}
	}
	return p
}

// ResolveDestination returns the effective file path for copying src to dst.
// When dst is a directory the result is dst joined with the basename of src,
// adding a separator only if dst does not already end in one. Otherwise dst
// is returned unchanged. The join is textual; no cleaning is applied.
func ResolveDestination(src, dst string, dstIsDir bool) string {
	if !dstIsDir {
		return dst
	}
	base := Basename(src)
	if dst != "" && os.IsPathSeparator(dst[len(dst)-1]) {
		return dst + base
	}
	return dst + string(os.PathSeparator) + base
}
