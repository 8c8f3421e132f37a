// Package ingest drives batch photo uploads: validate each filename,
// push the object, insert the index row, and keep going when single
// files fail.
package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"

	"fotostand/index"
	"fotostand/models"
	"fotostand/naming"
	"fotostand/storage"
)

// DefaultChunkSize bounds how many uploads run at once.
const DefaultChunkSize = 20

// File is one candidate upload. Open is called once, on the worker
// goroutine, so a file that cannot be read fails alone.
type File struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// Failure names a file that did not make it and why.
type Failure struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// Progress is emitted after every chunk. Processed counts attempted
// files, successes and failures alike.
type Progress struct {
	Processed int `json:"processed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

// Result summarizes a finished batch.
type Result struct {
	Uploaded int       `json:"uploaded"`
	Failures []Failure `json:"failures"`
}

// Coordinator uploads batches in sequential chunks, fanning out inside
// each chunk. Chunk k+1 does not start before chunk k has fully settled.
type Coordinator struct {
	Store      storage.ObjectStore
	Index      index.PhotoIndex
	PublicBase string
	ChunkSize  int

	inFlight atomic.Int32
}

// InFlight reports whether a batch is still running, so the UI can warn
// before navigating away mid-upload.
func (c *Coordinator) InFlight() bool {
	return c.inFlight.Load() > 0
}

// Upload processes files for one event day. Per-file errors are recorded
// and never abort the batch. onProgress may be nil.
func (c *Coordinator) Upload(ctx context.Context, day string, files []File, onProgress func(Progress)) Result {
	c.inFlight.Add(1)
	defer c.inFlight.Add(-1)

	chunkSize := c.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	var (
		mu       sync.Mutex
		uploaded int
		failures []Failure
	)

	total := len(files)
	processed := 0

	for start := 0; start < total; start += chunkSize {
		end := min(start+chunkSize, total)
		chunk := files[start:end]

		var wg sync.WaitGroup
		for _, file := range chunk {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := c.uploadOne(ctx, day, file); err != nil {
					mu.Lock()
					failures = append(failures, Failure{File: file.Name, Reason: err.Error()})
					mu.Unlock()
					return
				}
				mu.Lock()
				uploaded++
				mu.Unlock()
			}()
		}
		wg.Wait()

		processed += len(chunk)
		if onProgress != nil {
			onProgress(Progress{
				Processed: processed,
				Total:     total,
				Percent:   int(math.Round(float64(processed) / float64(total) * 100)),
			})
		}
	}

	return Result{Uploaded: uploaded, Failures: failures}
}

func (c *Coordinator) uploadOne(ctx context.Context, day string, file File) error {
	name, err := naming.Parse(file.Name)
	if err != nil {
		return err
	}

	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	data, err := io.ReadAll(reader)
	reader.Close()
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	key := naming.Key(day, name.Number)
	if err := c.Store.Put(ctx, key, bytes.NewReader(data), "image/jpeg"); err != nil {
		return fmt.Errorf("store object: %w", err)
	}

	photo := models.Photo{
		Number:       name.Number,
		Day:          day,
		S3Key:        key,
		URL:          c.PublicBase + "/" + key,
		OriginalName: file.Name,
	}
	if _, err := c.Index.Insert(ctx, photo); err != nil {
		return fmt.Errorf("index row: %w", err)
	}
	return nil
}
