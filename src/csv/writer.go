package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"reflect"

	"github.com/BielosX/wombat/pokenat/src/utils"
	"github.com/xitongsys/parquet-go-source/buffer"
)

// Writer renders rows of T as CSV, using the parquet column names of T as header.
type Writer[T any] struct {
	buffer *buffer.BufferFile
	writer *csv.Writer
	fields []reflect.StructField
}

const InitialCapacity = 1024 * 1024

func NewWriter[T any]() *Writer[T] {
	bufferFile := buffer.NewBufferFileCapacity(InitialCapacity)
	var row T
	return &Writer[T]{
		buffer: bufferFile,
		writer: csv.NewWriter(bufferFile),
		fields: utils.GetFields(row),
	}
}

func (w *Writer[T]) WriteHeader() error {
	return w.writer.Write(utils.ColumnNames(w.fields))
}

func (w *Writer[T]) Write(row T) error {
	value := reflect.ValueOf(row)
	converted := make([]string, 0, len(w.fields))
	for _, field := range w.fields {
		converted = append(converted, fmt.Sprint(value.FieldByIndex(field.Index).Interface()))
	}
	return w.writer.Write(converted)
}

func (w *Writer[T]) Finish() error {
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		return err
	}
	_, err := w.buffer.Seek(0, io.SeekStart)
	return err
}

func (w *Writer[T]) Size() int {
	return len(w.buffer.Bytes())
}

func (w *Writer[T]) BufferReader() io.Reader {
	return w.buffer
}
