package store

import (
	"path/filepath"

	"zls/internal/buildrunner"
	"zls/internal/uri"
)

// isBuildFilePath reports whether uri names a build script the store
// should classify as a build file on open (spec §4.3.1 step 3): it ends
// with "/build.zig", is not under a "/std/" subtree, and the compiler
// executable is configured.
func (s *Store) isBuildFilePath(u string) bool {
	return s.cfg.ZigExePath != "" && uri.HasSuffix(u, "/build.zig") && !containsStdSegment(u)
}

func containsStdSegment(u string) bool {
	return uri.ContainsSegment(u, "std")
}

// createDescriptor builds a build-file descriptor for a newly discovered
// build script (spec §4.4.2).
func (s *Store) createDescriptor(buildURI string) (*BuildFileDescriptor, error) {
	path, err := uri.ToPath(buildURI)
	if err != nil {
		return nil, err
	}
	scriptDir := filepath.Dir(path)

	desc := &BuildFileDescriptor{URI: buildURI}

	buildJSON, err := s.loadBuildJSON(scriptDir)
	if err != nil {
		return nil, err
	}
	desc.BuildOptions = buildJSON.BuildOptions

	if buildJSON.RelativeBuiltinPath != nil {
		builtinURI := uri.Join(uri.FromPath(scriptDir), *buildJSON.RelativeBuiltinPath)
		desc.BuiltinURI = &builtinURI
	} else if s.cfg.BuiltinPath != "" {
		builtinURI := uri.FromPath(s.cfg.BuiltinPath)
		desc.BuiltinURI = &builtinURI
	}

	result, err := s.runBuild(buildrunner.Config{
		ZigExePath:      s.cfg.ZigExePath,
		BuildRunnerPath: s.cfg.BuildRunnerPath,
		GlobalCachePath: s.cfg.GlobalCachePath,
		BuildFilePath:   path,
		ScriptDir:       scriptDir,
		LocalCacheRoot:  localCacheRoot,
		GlobalCacheRoot: globalCacheRoot,
		BuildOptions:    buildJSON.BuildOptions,
	})
	if err != nil {
		s.log.WithError(err).WithField("build_file", buildURI).Warn("build-script runner failed")
		return desc, nil
	}

	for _, pkg := range result.Packages {
		desc.Packages = append(desc.Packages, Package{Name: pkg.Name, URI: uri.FromPath(pkg.Path)})
	}
	desc.IncludeDirs = result.IncludeDirs
	return desc, nil
}

// discoverAssociatedBuildFile runs the ancestor walk for docURI and picks
// the chosen descriptor per spec §4.3.1 step 3: the nearest descriptor
// whose package set transitively reaches docURI wins; absent any match,
// the closest (deepest-ancestor) descriptor observed during the walk is
// used as a fallback.
func (s *Store) discoverAssociatedBuildFile(docURI string) *BuildFileDescriptor {
	path, err := uri.ToPath(docURI)
	if err != nil {
		return nil
	}
	walk := buildrunner.NewAncestorWalk(path, s.fs.Exists)

	var associated, closest *BuildFileDescriptor
	for {
		candidate, ok := walk.Next()
		if !ok {
			break
		}
		desc := s.findOrCreateDescriptor(uri.FromPath(candidate), candidate)
		if desc == nil {
			continue
		}
		closest = desc
		if s.uriAssociatedWithBuild(desc, docURI) {
			associated = desc
		}
	}
	if associated != nil {
		return associated
	}
	return closest
}

// findOrCreateDescriptor reuses a descriptor already tracked for
// buildURI, or opens the build script as a document (which classifies
// and registers its descriptor as a side effect of newDocument).
func (s *Store) findOrCreateDescriptor(buildURI, path string) *BuildFileDescriptor {
	for _, d := range s.buildFiles {
		if d.URI == buildURI {
			return d
		}
	}
	if _, ok := s.lookup(buildURI); ok {
		for _, d := range s.buildFiles {
			if d.URI == buildURI {
				return d
			}
		}
		return nil
	}

	text, err := s.fs.ReadFile(path)
	if err != nil {
		return nil
	}
	h, err := s.newDocument(buildURI, text)
	if err != nil {
		return nil
	}
	return h.IsBuildFile
}
