package transcript

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover walks root recursively and returns every *.jsonl transcript with
// its modification time. A missing or non-directory root is a hard error,
// reported before any scan begins.
func Discover(root string) ([]File, error) {
	st, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("search directory does not exist: %s", root)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("search directory is not a directory: %s", root)
	}

	files := make([]File, 0, 64)
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), ".jsonl") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		files = append(files, File{Path: path, ModTime: info.ModTime()})
		return nil
	})

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}

// ConversationID is the file stem, which Claude names after the session UUID.
func ConversationID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
