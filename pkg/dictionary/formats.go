package dictionary

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents the supported dictionary file formats
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatText               // one word per line
	FormatJSON               // {"words": [...]}
)

// FormatInfo contains metadata about a dictionary file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Word List",
		Extensions:  []string{".txt", ".dic", ""},
	},
	FormatJSON: {
		Format:      FormatJSON,
		Description: "JSON Word List",
		Extensions:  []string{".json"},
	},
}

// DetectFileFormat picks the format from the file extension.
func DetectFileFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range []FileFormat{FormatJSON, FormatText} {
		for _, e := range supportedFormats[f].Extensions {
			if ext == e {
				return f, nil
			}
		}
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}

// Load reads a dictionary file in either supported format.
func Load(filename string) (*UserDict, error) {
	format, err := DetectFileFormat(filename)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary %s: %w", filename, err)
	}
	defer f.Close()

	var words []string
	switch format {
	case FormatJSON:
		words, err = readJSON(f)
	default:
		words, err = readText(f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary %s: %w", filename, err)
	}

	d := New(words...)
	info, _ := GetFormatInfo(format)
	log.Debugf("Loaded %d words from %s (%s)", d.Len(), filename, info.Description)
	return d, nil
}

// Save writes the dictionary in the format matching the file extension.
func (d *UserDict) Save(filename string) error {
	format, err := DetectFileFormat(filename)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create dictionary %s: %w", filename, err)
	}
	defer f.Close()

	words := d.Words()
	if format == FormatJSON {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Words []string `json:"words"`
		}{Words: words})
	}
	w := bufio.NewWriter(f)
	for _, word := range words {
		fmt.Fprintln(w, word)
	}
	return w.Flush()
}

func readText(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words, sc.Err()
}

func readJSON(r io.Reader) ([]string, error) {
	var doc struct {
		Words []string `json:"words"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Words, nil
}
