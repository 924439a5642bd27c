package store

import (
	"zls/internal/buildrunner"
	"zls/internal/ctranslate"
	"zls/internal/syntax"
)

// Handle is the in-memory record for one retained document (spec §3,
// "Document handle").
type Handle struct {
	URI   string
	Text  []byte
	Tree  syntax.Tree
	Scope syntax.Scope

	// ImportURIs is the ordered sequence of resolved URIs, one per
	// textual import that resolved to something.
	ImportURIs []string
	// CImports is the ordered sequence of C-import records, one per
	// C-import node whose extracted source was translatable.
	CImports []CImportRecord
	// ImportsUsed is the subset of ImportURIs/CImports success URIs the
	// document currently retains a reference count on.
	ImportsUsed []string

	AssociatedBuildFile *BuildFileDescriptor
	IsBuildFile         *BuildFileDescriptor

	// Count is the number of external holders: client opens plus
	// references from other handles' ImportsUsed.
	Count int
}

// hasPackageURI reports whether u is one of the package URIs declared by
// the handle's associated build file.
func (h *Handle) hasPackageURI(u string) bool {
	if h.AssociatedBuildFile == nil {
		return false
	}
	for _, p := range h.AssociatedBuildFile.Packages {
		if p.URI == u {
			return true
		}
	}
	return false
}

// CImportRecord is one C-import's node index, content hash, and
// translation result (spec §3, "C-import record").
type CImportRecord struct {
	Node   syntax.NodeIndex
	Hash   [16]byte
	Result *ctranslate.Result
}

// Package is one package record a build-file descriptor declares: a
// name the import resolver matches against, and the URI it resolves to.
type Package struct {
	Name string
	URI  string
}

// BuildFileDescriptor is the in-memory record for one discovered build
// script, independent of the document representing its text (spec §3,
// "Build-file descriptor").
type BuildFileDescriptor struct {
	URI          string
	Packages     []Package
	IncludeDirs  []string
	BuiltinURI   *string
	BuildOptions []buildrunner.BuildOption

	Refs int
}
