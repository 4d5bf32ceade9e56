package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"cppdoc/internal/comment"
	"cppdoc/internal/decl"
	"cppdoc/internal/diag"
	"cppdoc/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Key identifies the front-end output of one file: content hash plus the
// settings that change how the file is lexed.
type Key [32]byte

func (k Key) String() string { return hex.EncodeToString(k[:]) }

// CacheKey derives the key for a file lexed with the given hidden tokens.
func CacheKey(contentHash [32]byte, hidden []string) Key {
	h := sha256.New()
	var schema [2]byte
	binary.LittleEndian.PutUint16(schema[:], diskCacheSchemaVersion)
	_, _ = h.Write(schema[:])
	_, _ = h.Write(contentHash[:])
	names := slices.Clone(hidden)
	slices.Sort(names)
	for _, n := range slices.Compact(names) {
		_, _ = h.Write([]byte(n))
		_, _ = h.Write([]byte{0})
	}
	var out Key
	copy(out[:], h.Sum(nil))
	return out
}

// DiskCache хранит результаты лексера, сканера и экстрактора по Key на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached front-end output. Spans are stored with the
// file ID of the run that wrote them and rebased on load.
type DiskPayload struct {
	Schema      uint16
	Path        string
	Records     []decl.Record
	Blocks      []comment.Block
	Diagnostics []diag.Diagnostic
	// EmptyTemplates lists records whose Template is empty but not nil
	// (explicit specializations); the encoding does not keep the difference.
	EmptyTemplates []int
}

func newPayload(path string, records []decl.Record, blocks []comment.Block, bag *diag.Bag) *DiskPayload {
	p := &DiskPayload{
		Path:        path,
		Records:     records,
		Blocks:      blocks,
		Diagnostics: snapshotDiagnostics(bag),
	}
	for i := range records {
		if records[i].Template != nil && len(records[i].Template) == 0 {
			p.EmptyTemplates = append(p.EmptyTemplates, i)
		}
	}
	return p
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Key) string {
	hexKey := key.String()
	// подкаталог по первым двум символам, чтобы не раздувать один каталог
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Key, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload. A payload written by another schema
// version is reported as a miss.
func (c *DiskCache) Get(key Key, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// rebase moves every span of the payload to file and restores the
// template markers.
func (p *DiskPayload) rebase(file source.FileID) {
	for i := range p.Records {
		r := &p.Records[i]
		r.Span.File = file
		r.NameSpan.File = file
		if len(r.Template) == 0 {
			r.Template = nil
		}
	}
	for _, i := range p.EmptyTemplates {
		if i >= 0 && i < len(p.Records) {
			p.Records[i].Template = []string{}
		}
	}
	for i := range p.Blocks {
		p.Blocks[i].Span.File = file
	}
	for i := range p.Diagnostics {
		d := &p.Diagnostics[i]
		d.Primary.File = file
		for j := range d.Notes {
			d.Notes[j].Span.File = file
		}
		for j := range d.Fixes {
			for k := range d.Fixes[j].Edits {
				d.Fixes[j].Edits[k].Span.File = file
			}
		}
	}
}

func snapshotDiagnostics(bag *diag.Bag) []diag.Diagnostic {
	items := bag.Items()
	out := make([]diag.Diagnostic, len(items))
	for i, d := range items {
		out[i] = *d
	}
	return out
}
