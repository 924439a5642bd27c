package store

// uriAssociatedWithBuild reports whether query is transitively reachable
// from one of desc's declared package URIs via imports (spec §4.5).
func (s *Store) uriAssociatedWithBuild(desc *BuildFileDescriptor, query string) bool {
	visited := make(map[string]bool)
	for _, pkg := range desc.Packages {
		if s.searchPackageForURI(pkg.URI, query, visited) {
			return true
		}
	}
	return false
}

// searchPackageForURI walks imports reachable from pkgURI looking for
// query, opening handles on demand. Errors are swallowed — an
// unreadable or unparsable package along the way is simply "not
// associated", per spec §4.5.
func (s *Store) searchPackageForURI(pkgURI, query string, visited map[string]bool) bool {
	if pkgURI == query {
		return true
	}
	if visited[pkgURI] {
		return false
	}
	visited[pkgURI] = true

	h, err := s.openFromSource(pkgURI)
	if err != nil || h == nil {
		return false
	}

	for _, imp := range h.ImportURIs {
		if s.searchPackageForURI(imp, query, visited) {
			return true
		}
	}
	for _, c := range h.CImports {
		if c.Result != nil && s.searchPackageForURI(c.Result.URI, query, visited) {
			return true
		}
	}
	return false
}
