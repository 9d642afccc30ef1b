// Package services provides the ambient services rules may require through
// the service bag. Services are loaded once per analysis pass; rules that
// require an absent service silently yield no results.
package services

import (
	"fmt"
	"os"
	"time"

	scippb "github.com/sourcegraph/scip/bindings/go/scip"
	"google.golang.org/protobuf/proto"

	"sift/internal/errors"
)

// SymbolIndexService is the bag key under which the symbol index registers.
const SymbolIndexService = "symbolIndex"

// SymbolIndex is a read-only view over a SCIP index, used by cross-file
// rules to resolve symbols the current file does not declare.
type SymbolIndex struct {
	// Tool is the indexer that produced the index.
	Tool string

	// LoadedAt is when the index was loaded.
	LoadedAt time.Time

	// symbols maps fully qualified symbol names to their display name.
	symbols map[string]string

	// byFile maps a relative document path to the symbols it defines.
	byFile map[string][]string

	raw *scippb.Index
}

// LoadSymbolIndex loads a SCIP index from the specified path.
func LoadSymbolIndex(path string) (*SymbolIndex, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.New(
			errors.IndexMissing,
			fmt.Sprintf("symbol index not found at %s", path),
			err,
		)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(
			errors.InternalError,
			fmt.Sprintf("failed to read symbol index from %s", path),
			err,
		)
	}

	var index scippb.Index
	if err := proto.Unmarshal(data, &index); err != nil {
		return nil, errors.New(
			errors.InternalError,
			fmt.Sprintf("failed to parse symbol index from %s", path),
			err,
		)
	}

	si := &SymbolIndex{
		LoadedAt: time.Now(),
		symbols:  make(map[string]string),
		byFile:   make(map[string][]string),
		raw:      &index,
	}
	if index.Metadata != nil && index.Metadata.ToolInfo != nil {
		si.Tool = index.Metadata.ToolInfo.Name
	}

	for _, doc := range index.Documents {
		for _, sym := range doc.Symbols {
			si.symbols[sym.Symbol] = sym.DisplayName
			si.byFile[doc.RelativePath] = append(si.byFile[doc.RelativePath], sym.Symbol)
			if sym.DisplayName != "" {
				// Rules resolve by display name; keep both spellings.
				si.symbols[sym.DisplayName] = sym.DisplayName
			}
		}
	}

	return si, nil
}

// Len returns the number of distinct symbols in the index.
func (si *SymbolIndex) Len() int {
	return len(si.symbols)
}

// Resolve reports whether a symbol name is known to the index.
func (si *SymbolIndex) Resolve(name string) bool {
	_, ok := si.symbols[name]
	return ok
}

// DocumentSymbols returns the symbols defined by one document.
func (si *SymbolIndex) DocumentSymbols(relativePath string) []string {
	return si.byFile[relativePath]
}
