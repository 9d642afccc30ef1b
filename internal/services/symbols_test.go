package services

import (
	"os"
	"path/filepath"
	"testing"

	scippb "github.com/sourcegraph/scip/bindings/go/scip"
	"google.golang.org/protobuf/proto"
)

func writeIndex(t *testing.T, index *scippb.Index) string {
	t.Helper()
	data, err := proto.Marshal(index)
	if err != nil {
		t.Fatalf("marshal index: %v", err)
	}
	path := filepath.Join(t.TempDir(), "index.scip")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSymbolIndex(t *testing.T) {
	path := writeIndex(t, &scippb.Index{
		Metadata: &scippb.Metadata{
			ToolInfo: &scippb.ToolInfo{Name: "scip-typescript"},
		},
		Documents: []*scippb.Document{
			{
				RelativePath: "src/util.js",
				Symbols: []*scippb.SymbolInformation{
					{Symbol: "scip-typescript npm pkg 1.0.0 src/`util.js`/helperFn().", DisplayName: "helperFn"},
				},
			},
		},
	})

	si, err := LoadSymbolIndex(path)
	if err != nil {
		t.Fatalf("LoadSymbolIndex: %v", err)
	}
	if si.Tool != "scip-typescript" {
		t.Errorf("Tool = %q", si.Tool)
	}
	if !si.Resolve("helperFn") {
		t.Error("display name not resolved")
	}
	if si.Resolve("missingFn") {
		t.Error("unknown symbol resolved")
	}
	if syms := si.DocumentSymbols("src/util.js"); len(syms) != 1 {
		t.Errorf("document symbols = %v", syms)
	}
}

func TestLoadSymbolIndexMissingFile(t *testing.T) {
	if _, err := LoadSymbolIndex(filepath.Join(t.TempDir(), "nope.scip")); err == nil {
		t.Error("expected error for missing index")
	}
}

func TestLoadSymbolIndexCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.scip")
	// Field 1 of Index is a message; a wire type mismatch makes this invalid.
	if err := os.WriteFile(path, []byte{0x0d, 0x01, 0x02}, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSymbolIndex(path); err == nil {
		t.Error("expected error for corrupt index")
	}
}
