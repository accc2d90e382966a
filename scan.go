package moyface

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/moyoung/moyface/face"
)

func (t *Tool) findFaces(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
				return nil
			}

			// Ignore any file greater than 16 MB
			if info.Size() > 16<<(10*2) {
				return nil
			}

			if filepath.Ext(file) != ".bin" {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (t *Tool) faceWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			rec, err := t.indexFace(file)
			if err != nil {
				t.logger.Printf("Skipping \"%s\": %v\n", file, err)
				continue
			}
			if err := t.db.Add(rec); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

// indexFace decodes one face file into a catalog row. A walk that
// halts part way still produces a row from whatever decoded; a file
// whose header doesn't parse is not a face.
func (t *Tool) indexFace(file string) (*FaceRecord, error) {
	data, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}

	doc, err := face.New(data, t.logger)
	if err != nil {
		return nil, err
	}

	els, err := doc.Elements()
	if err != nil {
		t.logger.Printf("Partial decode of \"%s\": %v\n", file, err)
	}

	images := 0
	for _, e := range els {
		images += len(e.Refs())
	}

	h := doc.Header()
	return &FaceRecord{
		Path:     file,
		SHA1:     fmt.Sprintf("%X", sha1.Sum(data)),
		ApiVer:   int(h.ApiVer),
		Revision: int(h.Revision),
		Width:    int(h.PreviewWidth),
		Height:   int(h.PreviewHeight),
		Elements: len(els),
		Images:   images,
	}, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks a directory tree and indexes every decodable face file
// into the catalog.
func (t *Tool) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := t.findFaces(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < 10; i++ {
		errc, err := t.faceWorker(ctx, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
