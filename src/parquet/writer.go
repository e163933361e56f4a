package parquet

import (
	"io"

	"github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/writer"
)

type PokedexEntryWriter struct {
	buffer *buffer.BufferFile
	writer *writer.ParquetWriter
	rows   int
}

const (
	InitialCapacity = 16 * 1024 * 1024
	parallelism     = 4
)

func NewPokedexEntryWriter() (*PokedexEntryWriter, error) {
	bufferFile := buffer.NewBufferFileCapacity(InitialCapacity)
	w, err := writer.NewParquetWriter(bufferFile, new(PokedexEntry), parallelism)
	if err != nil {
		return nil, err
	}
	return &PokedexEntryWriter{
		buffer: bufferFile,
		writer: w,
	}, nil
}

func (w *PokedexEntryWriter) Write(entry *PokedexEntry) error {
	if err := w.writer.Write(entry); err != nil {
		return err
	}
	w.rows++
	return nil
}

func (w *PokedexEntryWriter) Rows() int {
	return w.rows
}

// Finish writes the footer and rewinds the buffer so BufferReader starts at offset 0.
func (w *PokedexEntryWriter) Finish() error {
	err := w.writer.WriteStop()
	if err != nil {
		return err
	}
	_, err = w.buffer.Seek(0, io.SeekStart)
	return err
}

func (w *PokedexEntryWriter) Size() int {
	return len(w.buffer.Bytes())
}

func (w *PokedexEntryWriter) BufferReader() io.Reader {
	return w.buffer
}
