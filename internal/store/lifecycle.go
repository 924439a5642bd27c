package store

// newDocument runs the full open pipeline for a URI that is not already
// registered (spec §4.3.1). Callers must check the registry first.
func (s *Store) newDocument(uri string, text []byte) (*Handle, error) {
	tree, err := s.collab.Parse(text)
	if err != nil {
		return nil, err
	}
	scope, err := s.collab.MakeScope(tree)
	if err != nil {
		tree.Close()
		return nil, err
	}

	h := &Handle{URI: uri, Text: text, Tree: tree, Scope: scope, Count: 1}

	if s.isBuildFilePath(uri) {
		desc, err := s.createDescriptor(uri)
		if err != nil {
			tree.Close()
			scope.Close()
			return nil, err
		}
		s.buildFiles = append(s.buildFiles, desc)
		desc.Refs++
		h.IsBuildFile = desc
	} else if s.cfg.ZigExePath != "" && !containsStdSegment(uri) {
		if desc := s.discoverAssociatedBuildFile(uri); desc != nil {
			desc.Refs++
			h.AssociatedBuildFile = desc
		}
	}

	// Collection happens after build-file classification so package-name
	// imports can be resolved against the now-known associated build file.
	h.ImportURIs = s.collectImportURIs(h, tree)
	h.CImports = s.refreshCImports(h, tree)

	s.handles[uri] = h
	return h, nil
}

// refresh re-derives a handle's parsed state from its already-updated
// Text (spec §4.3.2). The new tree and scope are built first and swapped
// in only on success, so a parse failure never leaves the handle without
// a usable tree (spec §9, "Refresh failure semantics").
func (s *Store) refresh(h *Handle) error {
	newTree, err := s.collab.Parse(h.Text)
	if err != nil {
		return err
	}
	newScope, err := s.collab.MakeScope(newTree)
	if err != nil {
		newTree.Close()
		return err
	}

	newImportURIs := s.collectImportURIs(h, newTree)
	newCImports := s.refreshCImports(h, newTree)

	successSet := make(map[string]bool, len(newCImports))
	for _, c := range newCImports {
		if c.Result != nil {
			successSet[c.Result.URI] = true
		}
	}
	importSet := make(map[string]bool, len(newImportURIs))
	for _, u := range newImportURIs {
		importSet[u] = true
	}

	survivors := make([]string, 0, len(h.ImportsUsed))
	for _, used := range h.ImportsUsed {
		if importSet[used] || successSet[used] {
			survivors = append(survivors, used)
			continue
		}
		s.decrementCount(used)
	}

	oldTree, oldScope := h.Tree, h.Scope
	h.Tree = newTree
	h.Scope = newScope
	h.ImportURIs = newImportURIs
	h.CImports = newCImports
	h.ImportsUsed = survivors
	oldTree.Close()
	oldScope.Close()
	return nil
}

// decrementCount implements spec §4.3.3. It is re-entrant-safe: the
// count==0 guard absorbs the recursive call that comes back through the
// build-file ↔ document cycle (spec §9, "Cyclic ownership").
func (s *Store) decrementCount(uri string) {
	h, ok := s.handles[uri]
	if !ok {
		return
	}
	if h.Count == 0 {
		return
	}
	h.Count--
	if h.Count > 0 {
		return
	}

	if h.AssociatedBuildFile != nil {
		s.decrementBuildFileRefs(h.AssociatedBuildFile)
	}
	if h.IsBuildFile != nil {
		s.decrementBuildFileRefs(h.IsBuildFile)
	}
	for _, used := range h.ImportsUsed {
		s.decrementCount(used)
	}

	h.Tree.Close()
	h.Scope.Close()
	for _, c := range h.CImports {
		if c.Result != nil {
			c.Result.Deinit()
		}
	}
	delete(s.handles, uri)
}

// decrementBuildFileRefs implements spec §4.3.4. Each call drops exactly
// one reference; when that brings Refs to zero the descriptor's own
// document is decremented (a no-op if already mid-teardown) and the
// descriptor is removed.
func (s *Store) decrementBuildFileRefs(desc *BuildFileDescriptor) {
	desc.Refs--
	if desc.Refs > 0 {
		return
	}
	s.decrementCount(desc.URI)
	s.removeBuildFile(desc)
}

func (s *Store) removeBuildFile(desc *BuildFileDescriptor) {
	for i, d := range s.buildFiles {
		if d == desc {
			s.buildFiles = append(s.buildFiles[:i], s.buildFiles[i+1:]...)
			return
		}
	}
}
