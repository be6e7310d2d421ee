package system

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
)

// DumpExt is the file extension of serialized systems.
const DumpExt = ".tsf"

// Encode renders the canonical dump document. Component order follows
// declaration order and map keys are emitted sorted, so identical models
// encode to identical bytes.
func (s *System) Encode() ([]byte, error) {
	b, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode %q: %w", s.doc.UID, err)
	}
	return append(b, '\n'), nil
}

// Dump writes the encoded system below directory and returns the written
// path. An empty filename derives one from the system UID; an empty
// directory means the working directory. The defaults beyond that (where
// dumps collect) belong to the caller, not to this layer.
func (s *System) Dump(directory, filename string) (string, error) {
	if filename == "" {
		filename = Slug(s.doc.UID) + DumpExt
	}
	if directory == "" {
		directory = "."
	}

	b, err := s.Encode()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(directory, 0755); err != nil {
		return "", fmt.Errorf("dump %q: %w", s.doc.UID, err)
	}
	path := filepath.Join(directory, filename)
	if err := ioutil.WriteFile(path, b, 0644); err != nil {
		return "", fmt.Errorf("dump %q: %w", s.doc.UID, err)
	}
	return path, nil
}

// Restore reads a dump back into a validated system. The restored system
// carries a fresh PID but an identical document, satisfying the round-trip
// law. A document that fails validation is rejected, so a hand-edited dump
// cannot smuggle an inconsistent model past the constructors.
func Restore(path string) (*System, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	return Decode(b)
}

// Decode parses and validates a dump document.
func Decode(b []byte) (*System, error) {
	doc := Document{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	if err := validate(doc); err != nil {
		return nil, err
	}
	return fromDocument(doc)
}

// Slug lowercases a UID and maps separator runs to single underscores,
// yielding stable default filenames: "Zero Costs Example" →
// "zero_costs_example".
func Slug(uid string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(uid) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
		default:
			pending = true
		}
	}
	if b.Len() == 0 {
		return "energy_system"
	}
	return b.String()
}
