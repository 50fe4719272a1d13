package scan

import (
	"os"
	"path/filepath"
)

type FileInfo struct {
	Path  string
	Mtime int64
	Size  int64
}

// ScanRoot walks the logs root for realtime event log files (.log or .txt).
func ScanRoot(root string) ([]FileInfo, error) {
	if root == "" {
		return nil, nil
	}

	var files []FileInfo
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable dirs
		}
		if info.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".log" && ext != ".txt" {
			return nil
		}
		files = append(files, FileInfo{
			Path:  path,
			Mtime: info.ModTime().Unix(),
			Size:  info.Size(),
		})
		return nil
	})
	if os.IsNotExist(err) {
		return files, nil
	}
	return files, err
}
