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

package fasta

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/pantera-bio/pantera/internal"
	"github.com/pantera-bio/pantera/utils"
)

// LineWidth is the number of residues per line in FASTA files
// written by this package.
const LineWidth = 60

// A Chunk is one of the FASTA files written by SplitByLength.
type Chunk struct {
	Name      string
	Sequences int
	Length    int
}

// ChunkName returns the name of the chunk file with the given index.
// Names sort in index order.
func ChunkName(dir, prefix string, index int) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%05d.fasta", prefix, index))
}

// NewScanner returns a scanner over the FASTA records of r.
func NewScanner(r io.Reader) *seqio.Scanner {
	return seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNAredundant)))
}

type chunkWriter struct {
	Chunk
	file   *os.File
	writer *fasta.Writer
}

func createChunk(name string) (*chunkWriter, error) {
	f, err := internal.FileCreate(name)
	if err != nil {
		return nil, err
	}
	return &chunkWriter{
		Chunk:  Chunk{Name: name},
		file:   f,
		writer: fasta.NewWriter(f, LineWidth),
	}, nil
}

func (w *chunkWriter) write(s *linear.Seq) error {
	if _, err := w.writer.Write(s); err != nil {
		return fmt.Errorf("%v, while writing %v", err, w.Name)
	}
	w.Sequences++
	w.Length += s.Len()
	return nil
}

/*
SplitByLength distributes the sequences of the input FASTA file over
chunk files in dir, named with ChunkName. Sequences are kept in input
order and are never cut. A new chunk is started when adding the next
sequence would make the cumulative length of the current chunk exceed
maxLength, so a sequence longer than maxLength ends up in a chunk of
its own. A maxLength of 0 or less puts all sequences in one chunk.

The input may be gzip-compressed. The returned chunks are in creation
order. Chunk files keep identifiers, descriptions and residues, but
not the input layout: the identifier and description of a header are
separated by a single space, and residues are wrapped at LineWidth.
*/
func SplitByLength(input, dir, prefix string, maxLength int) (chunks []Chunk, err error) {
	in, err := utils.Open(input)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := in.Close(); err == nil {
			err = nerr
		}
	}()
	var current *chunkWriter
	closeCurrent := func() error {
		if current == nil {
			return nil
		}
		chunks = append(chunks, current.Chunk)
		err := current.file.Close()
		current = nil
		return err
	}
	defer func() {
		if current != nil {
			_ = current.file.Close()
		}
	}()
	sc := NewScanner(in)
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		length := s.Len()
		if current != nil && maxLength > 0 && current.Length > 0 && current.Length+length > maxLength {
			if err = closeCurrent(); err != nil {
				return nil, err
			}
		}
		if current == nil {
			if current, err = createChunk(ChunkName(dir, prefix, len(chunks))); err != nil {
				return nil, err
			}
		}
		if err = current.write(s); err != nil {
			return nil, err
		}
	}
	if err = sc.Error(); err != nil {
		return nil, fmt.Errorf("%v, while reading %v", err, input)
	}
	if err = closeCurrent(); err != nil {
		return nil, err
	}
	return chunks, nil
}

// Count returns the number of sequences and their cumulative length
// in the given FASTA file.
func Count(filename string) (sequences, length int, err error) {
	in, err := utils.Open(filename)
	if err != nil {
		return 0, 0, err
	}
	defer func() {
		if nerr := in.Close(); err == nil {
			err = nerr
		}
	}()
	sc := NewScanner(in)
	for sc.Next() {
		sequences++
		length += sc.Seq().Len()
	}
	if err = sc.Error(); err != nil {
		return 0, 0, fmt.Errorf("%v, while reading %v", err, filename)
	}
	return sequences, length, nil
}
