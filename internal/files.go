package internal

import (
	"os"
	"path/filepath"
	"sort"
)

// Directory returns the names of the entries in the given directory,
// sorted by name. If file is not a directory, it returns just its base
// name.
func Directory(file string) (files []string, err error) {
	info, err := os.Stat(file)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{filepath.Base(file)}, nil
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer func() {
		nerr := f.Close()
		if err == nil {
			err = nerr
		}
	}()
	if files, err = f.Readdirnames(0); err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func FullPathname(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		return filename, nil
	}
	wd, err := os.Getwd()
	return filepath.Join(wd, filename), err
}

// FileCreate creates the named file, creating missing parent
// directories first.
func FileCreate(filename string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0700); err != nil {
		return nil, err
	}
	return os.Create(filename)
}

// RemoveAll removes each of the given paths and returns the first
// error encountered, if any.
func RemoveAll(paths ...string) (err error) {
	for _, path := range paths {
		if nerr := os.RemoveAll(path); err == nil {
			err = nerr
		}
	}
	return err
}
