// loader.go — the filesystem module loader (SPEC_FULL.md §3.7).
//
// Grounded on the teacher's LoadPrelude/modules.go shape, reduced to plain
// filesystem loading: no URL fetch, no caching, no module-value
// snapshotting, since spec.md's core has no module system beyond
// top-level sequential loading of a file's forms into Global.
package goscheme

import (
	"fmt"
	"os"
	"path/filepath"
)

// GoschemePathEnv is the environment variable consulted by ResolveLoadPath
// when a (load "name") argument does not name a file directly (SPEC_FULL.md
// §2.3), grounded on the teacher's MindScriptPath-based module search
// (modules.go's resolveFS: try the spec as-is, then each search-path root).
const GoschemePathEnv = "GOSCHEME_PATH"

// ResolveLoadPath finds the file a (load "name") argument refers to: spec
// itself, if it already names a file relative to the working directory,
// otherwise each GOSCHEME_PATH entry in turn (colon-separated, os.PathListSeparator
// via filepath.SplitList), trying both the bare name and name+".scm".
func ResolveLoadPath(spec string) (string, error) {
	if fi, err := os.Stat(spec); err == nil && !fi.IsDir() {
		return spec, nil
	}
	if sp := os.Getenv(GoschemePathEnv); sp != "" {
		for _, root := range filepath.SplitList(sp) {
			if root == "" {
				continue
			}
			for _, cand := range []string{filepath.Join(root, spec), filepath.Join(root, spec) + ".scm"} {
				if fi, err := os.Stat(cand); err == nil && !fi.IsDir() {
					return cand, nil
				}
			}
		}
	}
	return "", fmt.Errorf("load: file not found: %s", spec)
}

// LoadFile parses and evaluates every top-level form in the file at path
// against ip.Global, in order, stopping and returning the first error
// encountered. That error goes through WrapErrorWithSource, which adds
// file/line context only to errors that carry a line (parse errors);
// evaluation errors carry no source location and are returned unchanged.
func LoadFile(ip *Interpreter, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	src := string(data)
	forms, err := ParseAll(src)
	if err != nil {
		return WrapErrorWithSource(err, path, src)
	}
	for _, form := range forms {
		if _, err := Eval(ip.Global, form); err != nil {
			return WrapErrorWithSource(err, path, src)
		}
	}
	return nil
}
