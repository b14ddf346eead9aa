package ports

import (
	"context"
	"io"

	"github.com/blakesmith/ar"

	"avular-packages/internal/types"
)

// DebRepoPort is the repository collaborator spec.md §6.2 describes: it
// hands back a verifying reader for a package artifact, checking the
// artifact's size and hash before any byte reaches the caller. The core
// never performs this I/O itself.
type DebRepoPort interface {
	VerifyingReader(ctx context.Context, ref types.RepoFileRef) (io.ReadCloser, error)
	VerifyingDebReader(ctx context.Context, ref types.RepoFileRef) (*DebReader, error)
}

// DebReader wraps a verified artifact stream with .deb archive (ar format)
// semantics (spec.md §6.2's verifying_deb_reader), so a caller can walk the
// archive's members (debian-binary, control.tar.*, data.tar.*) without the
// core itself owning any control-file parsing logic.
type DebReader struct {
	ar     *ar.Reader
	source io.ReadCloser
}

// NewDebReader wraps a verified artifact stream as a DebReader. source is
// closed by Close.
func NewDebReader(source io.ReadCloser) *DebReader {
	return &DebReader{ar: ar.NewReader(source), source: source}
}

// Next advances to the next archive member, returning its ar header.
func (d *DebReader) Next() (*ar.Header, error) {
	return d.ar.Next()
}

// Read reads from the current archive member.
func (d *DebReader) Read(p []byte) (int, error) {
	return d.ar.Read(p)
}

// Close releases the underlying verified artifact stream.
func (d *DebReader) Close() error {
	return d.source.Close()
}

// ControlParserPort is the out-of-scope control-file parser collaborator
// named in spec.md §1/§6.1, modeled as the narrow accessor contract the
// universe ingestion loop actually needs: a way to obtain every package
// version in a package set. A real implementation parses Debian control
// files; this module supplies only a YAML stand-in adapter for tests and
// the demo CLI (see internal/adapters/deb_control_yaml.go).
type ControlParserPort interface {
	LoadPackageSet(ctx context.Context, name string) (types.PackageSet, error)
}
