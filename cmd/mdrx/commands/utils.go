package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	maxFileSize  = 50 * 1024 * 1024 // 50MB per file
	maxFileCount = 1000             // Maximum files to process
)

// findFiles finds all files matching the given glob patterns with validation
// and limits. Supports ** for recursive directory matching
// (e.g., docs/**/*.md).
func findFiles(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		var matches []string
		var err error

		if strings.Contains(pattern, "**") {
			matches, err = globWithDoublestar(pattern)
		} else {
			matches, err = filepath.Glob(pattern)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %s: %w", pattern, err)
		}

		for _, match := range matches {
			if len(files) >= maxFileCount {
				return nil, fmt.Errorf("too many files matched (limit: %d). Use more specific patterns", maxFileCount)
			}

			ext := filepath.Ext(match)
			if ext != ".md" && ext != ".mdx" {
				continue
			}

			absPath, err := filepath.Abs(match)
			if err != nil {
				return nil, fmt.Errorf("getting absolute path for %s: %w", match, err)
			}
			if seen[absPath] {
				continue
			}

			fileInfo, err := os.Stat(absPath)
			if err != nil {
				if os.IsNotExist(err) {
					continue
				}
				if os.IsPermission(err) {
					return nil, fmt.Errorf("permission denied accessing file %s", absPath)
				}
				return nil, fmt.Errorf("error accessing file %s: %w", absPath, err)
			}
			if fileInfo.IsDir() {
				continue
			}
			if fileInfo.Size() > maxFileSize {
				return nil, fmt.Errorf("file %s is too large (%d bytes, limit: %d bytes)",
					absPath, fileInfo.Size(), maxFileSize)
			}

			file, err := os.Open(absPath)
			if err != nil {
				return nil, fmt.Errorf("cannot read file %s: %w", absPath, err)
			}
			_ = file.Close()

			seen[absPath] = true
			files = append(files, absPath)
		}
	}

	return files, nil
}

// globWithDoublestar handles glob patterns containing **, walking the
// directory tree and matching files against the pattern.
func globWithDoublestar(pattern string) ([]string, error) {
	var matches []string

	baseDir, suffix := splitDoublestar(pattern)
	if baseDir == "" {
		baseDir = "."
	}

	err := filepath.Walk(baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsPermission(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}

		if suffix != "" {
			relPath, err := filepath.Rel(baseDir, path)
			if err != nil {
				return nil
			}
			matched, err := filepath.Match(suffix, filepath.Base(path))
			if err != nil {
				return err
			}
			if !matched {
				matched, _ = filepath.Match(suffix, relPath)
			}
			if !matched {
				return nil
			}
		}

		matches = append(matches, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return matches, nil
}

// splitDoublestar splits a pattern at ** into a base directory and suffix.
func splitDoublestar(pattern string) (base, suffix string) {
	if idx := strings.Index(pattern, "/**/"); idx >= 0 {
		return pattern[:idx], pattern[idx+4:]
	}
	if strings.HasSuffix(pattern, "/**") {
		return pattern[:len(pattern)-3], ""
	}
	if strings.HasPrefix(pattern, "**/") {
		return ".", pattern[3:]
	}
	if pattern == "**" {
		return ".", ""
	}
	return pattern, ""
}
