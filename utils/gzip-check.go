// pantera: utilities for genome annotation files and tandem repeat scanning.
// Copyright (c) 2026 The pantera authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License along with this program. If not, see
// <https://github.com/pantera-bio/pantera/blob/master/LICENSE.txt>.

package utils

import (
	"bufio"
	"io"
	"os"

	"github.com/klauspost/pgzip"
)

// IsGzip checks if the given reader starts with the gzip magic bytes.
// IsGzip only peeks, so no input is consumed.
func IsGzip(buf *bufio.Reader) (bool, error) {
	magic, err := buf.Peek(2)
	if err == io.EOF {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return magic[0] == 0x1f && magic[1] == 0x8b, nil
}

// HandleGzip checks if the given reader produces a gzip file
// by looking at the initial bytes. It then either returns
// a pgzip.Reader, or returns the given reader unchanged.
func HandleGzip(buf *bufio.Reader) (io.Reader, error) {
	if ok, err := IsGzip(buf); err != nil {
		return nil, err
	} else if ok {
		return pgzip.NewReader(buf)
	}
	return buf, nil
}

type inputFile struct {
	io.Reader
	file *os.File
}

func (f inputFile) Close() error {
	if c, ok := f.Reader.(io.Closer); ok {
		if err := c.Close(); err != nil {
			_ = f.file.Close()
			return err
		}
	}
	return f.file.Close()
}

// Open opens the named file for reading. Gzip-compressed files are
// decompressed transparently.
func Open(filename string) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	r, err := HandleGzip(bufio.NewReader(file))
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	return inputFile{Reader: r, file: file}, nil
}
