// Package cartridgeloader is used to specify the ROM data to be attached
// to the emulated console.
//
// When the cartridge is ready to be loaded, Load() reads the raw bytes
// from either a local file or an HTTP(S) URL into the Loader's Data field.
// Parsing the iNES/NES 2.0 header and picking a mapper happens one layer
// up, in hardware/memory/cartridge.
package cartridgeloader

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/tone-malone/nes-emu/curated"
)

// Loader describes the ROM to load and, after Load() has run, the raw
// file bytes and their hash.
type Loader struct {
	// Filename of the ROM file. May be a local path or an http(s) URL.
	Filename string

	// Expected SHA-1 hash of the file. Empty string means "don't check".
	// After a successful Load() this holds the hash of what was loaded.
	Hash string

	// Data is the raw file content once Load() has succeeded.
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(filename string) Loader {
	return Loader{Filename: filename}
}

// ShortName returns the filename without its directory or extension.
func (cl Loader) ShortName() string {
	short := path.Base(cl.Filename)
	return strings.TrimSuffix(short, path.Ext(cl.Filename))
}

// HasLoaded returns true if Load() has already succeeded.
func (cl Loader) HasLoaded() bool {
	return len(cl.Data) > 0
}

// SavePath returns the sidecar battery-save path for this ROM: the same
// path with its extension replaced by ".sav".
func (cl Loader) SavePath() string {
	ext := path.Ext(cl.Filename)
	return strings.TrimSuffix(cl.Filename, ext) + ".sav"
}

// Load reads the ROM data and returns it as a byte slice. Filenames with a
// recognised URL scheme are fetched over HTTP; anything else is treated as
// a local file path.
func (cl *Loader) Load() error {
	if len(cl.Data) > 0 {
		return nil
	}

	scheme := "file"
	if u, err := url.Parse(cl.Filename); err == nil && u.Scheme != "" {
		scheme = u.Scheme
	}

	switch scheme {
	case "http", "https":
		resp, err := http.Get(cl.Filename)
		if err != nil {
			return curated.Errorf("cartridgeloader: %v", err)
		}
		defer resp.Body.Close()

		cl.Data, err = io.ReadAll(resp.Body)
		if err != nil {
			return curated.Errorf("cartridgeloader: %v", err)
		}

	case "file", "":
		f, err := os.Open(cl.Filename)
		if err != nil {
			return curated.Errorf("cartridgeloader: %v", err)
		}
		defer f.Close()

		cl.Data, err = io.ReadAll(f)
		if err != nil {
			return curated.Errorf("cartridgeloader: %v", err)
		}

	default:
		return curated.Errorf("cartridgeloader: %v", fmt.Sprintf("unsupported URL scheme (%s)", scheme))
	}

	hash := fmt.Sprintf("%x", sha1.Sum(cl.Data))
	if cl.Hash != "" && cl.Hash != hash {
		return curated.Errorf("cartridgeloader: %v", "unexpected hash value")
	}
	cl.Hash = hash

	return nil
}
