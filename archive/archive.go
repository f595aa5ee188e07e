// Package archive is the minimal concrete implementation of the
// resource-storage collaborator spec.md §1 assumes as external: "named
// byte-stream creation, appendable raw-data sink, final close/commit with
// schema metadata". Nothing in the example pack ships an flat-archive
// library, and the compiler needs somewhere real to write, so this package
// is a small filesystem-backed adapter to that exact contract rather than
// a full reimplementation of a general schema-checked archive format.
package archive

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/osmflat/flatc/internal/ferr"
)

// Descriptor documents one resource written into the archive: its name,
// the fixed schema text spec.md §3/§6 requires to match the reader
// bit-for-bit, and any @explicit_reference annotations pointing at other
// resources it indexes into.
type Descriptor struct {
	Name       string
	Schema     string
	References []string // other resource names this one indexes into
}

// Sink is an appendable raw-data byte stream, the "appendable raw-data
// sink" half of the collaborator contract.
type Sink struct {
	f *os.File
	w *bufio.Writer
}

func (s *Sink) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	if err != nil {
		return n, ferr.New(ferr.OutputIO, -1, err)
	}
	return n, nil
}

func (s *Sink) Close() error {
	if err := s.w.Flush(); err != nil {
		return ferr.New(ferr.OutputIO, -1, err)
	}
	if err := s.f.Close(); err != nil {
		return ferr.New(ferr.OutputIO, -1, err)
	}
	return nil
}

// Archive is a directory of resource files plus a top-level schema
// descriptor, written by a single producer and then committed exactly
// once. It is not safe for concurrent Stream calls; each pipeline stage
// owns its own resources exclusively until Commit (spec.md §3 "Ownership
// and lifecycle").
type Archive struct {
	dir         string
	descriptors []Descriptor
}

// Create makes dir (and any missing parents) and returns an Archive rooted
// there; files already in an existing dir are left in place. A failed
// mkdir is a fatal ferr.OutputIO.
func Create(dir string) (*Archive, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, ferr.New(ferr.OutputIO, -1, fmt.Errorf("create archive dir %s: %w", dir, err))
	}
	return &Archive{dir: dir}, nil
}

// Stream creates a named byte-stream under the archive directory
// (spec.md §1's "named byte-stream creation"), returning an appendable
// Sink. name may contain a slash (the optional ids/ sub-archive).
func (a *Archive) Stream(name string) (*Sink, error) {
	path := filepath.Join(a.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, ferr.New(ferr.OutputIO, -1, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, ferr.New(ferr.OutputIO, -1, err)
	}
	return &Sink{f: f, w: bufio.NewWriter(f)}, nil
}

// WriteResource writes one complete resource file: an 8-byte
// little-endian length prefix (record count for fixed-stride vectors, byte
// count for raw streams like stringtable/relation_members data), the
// packed payload, and a trailing copy of the resource's schema text
// (spec.md §6). It then registers the resource's descriptor for the
// top-level manifest written by Commit.
func (a *Archive) WriteResource(d Descriptor, length uint64, payload []byte) error {
	sink, err := a.Stream(d.Name)
	if err != nil {
		return err
	}

	var lenBuf [8]byte
	binary.LittleEndian.PutUint64(lenBuf[:], length)
	if _, err := sink.Write(lenBuf[:]); err != nil {
		sink.Close()
		return err
	}
	if _, err := sink.Write(payload); err != nil {
		sink.Close()
		return err
	}
	if _, err := sink.Write([]byte(d.Schema)); err != nil {
		sink.Close()
		return err
	}
	if err := sink.Close(); err != nil {
		return err
	}

	a.descriptors = append(a.descriptors, d)
	return nil
}

// Commit writes the top-level schema descriptor listing every resource
// written so far along with its @explicit_reference annotations, then
// finalizes the archive. Per spec.md §1/§7, a fatal error anywhere in the
// pipeline must be followed by removing partial output; Commit is only
// ever called on the success path (see compiler.Compile / Abort).
func (a *Archive) Commit() error {
	sorted := make([]Descriptor, len(a.descriptors))
	copy(sorted, a.descriptors)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	path := filepath.Join(a.dir, "schema")
	f, err := os.Create(path)
	if err != nil {
		return ferr.New(ferr.OutputIO, -1, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, d := range sorted {
		fmt.Fprintf(w, "resource %s\n", d.Name)
		for _, ref := range d.References {
			fmt.Fprintf(w, "  @explicit_reference %s\n", ref)
		}
	}
	if err := w.Flush(); err != nil {
		return ferr.New(ferr.OutputIO, -1, err)
	}
	return nil
}

// Abort removes the partially-written archive directory. Called on any
// fatal pipeline error (spec.md §5 "no recovery from a mid-pipeline fatal
// error"; §7 "attempt to remove partial output").
func (a *Archive) Abort() error {
	return os.RemoveAll(a.dir)
}
