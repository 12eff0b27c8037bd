// Package watch re-scores STL files against a reference mesh as they
// appear or change on disk. It is the iterate-on-a-generated-mesh
// workflow: keep the watcher running, regenerate the model, read the
// fresh score off the log.
package watch

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/gabigabogabu/stl-bench/pkg/bench"
	"github.com/gabigabogabu/stl-bench/pkg/geometry"
	"github.com/gabigabogabu/stl-bench/pkg/logging"
	"github.com/gabigabogabu/stl-bench/pkg/sample"
	"github.com/gabigabogabu/stl-bench/pkg/similarity"
	"github.com/gabigabogabu/stl-bench/pkg/stl"
)

// Watcher scores changed STL files against a fixed reference mesh.
type Watcher struct {
	ref      *geometry.Mesh
	samples  int
	seed     int64
	fsnotify *fsnotify.Watcher
	done     chan struct{}
	isClosed bool

	// OnScore, when set, receives every score instead of the default
	// log line.
	OnScore func(name string, metrics similarity.Metrics)
}

// New creates a watcher scoring against ref with the given sample
// count. A non-zero seed makes every score deterministic.
func New(ref *geometry.Mesh, samples int, seed int64) (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		ref:      ref,
		samples:  samples,
		seed:     seed,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}, nil
}

// Watch starts watching the named directory and blocks until Close is
// called.
func (w *Watcher) Watch(dir string) error {
	if w.isClosed {
		return errors.New("watch: watcher already closed")
	}
	if err := w.fsnotify.Add(dir); err != nil {
		return err
	}
	logging.Info("watching %s", dir)

	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return nil
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.handleFileEvent(e.Name)
			}
		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return nil
			}
			logging.Warn("watch: %s", err)
		case <-w.done:
			return nil
		}
	}
}

// Close stops the watcher and unblocks Watch.
func (w *Watcher) Close() error {
	if w.isClosed {
		return nil
	}
	w.isClosed = true
	close(w.done)
	return w.fsnotify.Close()
}

// handleFileEvent scores a single changed file. Anything that is not a
// readable STL file is skipped quietly; editors produce plenty of
// partial writes and temp files.
func (w *Watcher) handleFileEvent(name string) {
	if !strings.EqualFold(filepath.Ext(name), ".stl") {
		return
	}
	data, err := os.ReadFile(name)
	if err != nil {
		logging.Debug("watch: reading %s: %s", name, err)
		return
	}
	mesh, err := stl.Decode(data)
	if err != nil {
		logging.Warn("watch: %s: %s", name, err)
		return
	}
	if mesh.IsEmpty() {
		logging.Warn("watch: %s decoded to an empty mesh", name)
		return
	}

	metrics := similarity.Compare(w.ref, mesh, similarity.Options{
		Samples:   w.samples,
		NewSource: w.sourceFactory(),
	})
	if w.OnScore != nil {
		w.OnScore(name, metrics)
		return
	}
	logging.Info("%s: score=%.3f iou=%.3f area=%.3f volume=%.3f chamfer=%.4f",
		filepath.Base(name), bench.CompositeScore(metrics), metrics.BoxIoU,
		metrics.AreaRatio, metrics.VolumeRatio, metrics.Chamfer.MeanAB)
}

func (w *Watcher) sourceFactory() func() sample.Source {
	if w.seed == 0 {
		return nil
	}
	seed := w.seed
	return func() sample.Source { return sample.NewSource(seed) }
}
