package iconpack

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/halfcrow/iconpack/utils"
)

// maxWorkers sets the maximum number of concurrently running render workers.
const maxWorkers = 20

// Processor options
type Processor struct {
	// Formats lists the container formats to produce. When empty,
	// both ICO and ICNS are produced.
	Formats []Format
	// Name is the artifact base name, "icon" by default.
	Name string
	// Upscale permits enlarging raster sources beyond their native
	// resolution instead of failing the oversized frames.
	Upscale bool
	// Workers caps the number of concurrent render calls per format.
	Workers int
	// Spinner is the CLI progress indicator, optional.
	Spinner *utils.Spinner
}

// rendered carries one fan-out result back to the collecting side.
type rendered struct {
	size int
	data []byte
	err  error
}

// Process reads the source image from r and writes one icon artifact
// per requested format into dstDir. The formats run concurrently with
// each other; a failure in one format does not revoke artifacts the
// other formats already wrote.
func (p *Processor) Process(r io.Reader, dstDir string) error {
	renderer, err := NewRenderer(r, p.Upscale)
	if err != nil {
		return err
	}
	return p.produce(renderer, dstDir)
}

// produce runs every requested format pipeline against the renderer
// and joins their failures.
func (p *Processor) produce(renderer Renderer, dstDir string) error {
	formats := p.Formats
	if len(formats) == 0 {
		formats = []Format{FormatICO, FormatICNS}
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	wg.Add(len(formats))
	for _, f := range formats {
		go func(f Format) {
			defer wg.Done()
			if err := p.produceFormat(renderer, f, dstDir); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(f)
	}
	wg.Wait()

	return errors.Join(errs...)
}

// produceFormat renders the format's full size ladder, encodes the
// container and persists it. Encoding never starts before every frame
// of the ladder has been rendered: the container layouts carry offset
// and length fields spanning the whole file.
func (p *Processor) produceFormat(renderer Renderer, f Format, dstDir string) error {
	set, err := p.renderLadder(renderer, f.Sizes())
	if err != nil {
		return fmt.Errorf("%s: %w", f, err)
	}

	if f == FormatPNG {
		return p.writeLadder(set, dstDir)
	}

	path := filepath.Join(dstDir, p.baseName()+"."+f.String())
	switch f {
	case FormatICO:
		err = writeArtifact(path, set, EncodeICO)
	case FormatICNS:
		err = writeArtifact(path, set, EncodeICNS)
	default:
		err = fmt.Errorf("unsupported output format: %v", f)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", f, err)
	}
	return nil
}

// renderLadder fans out one render call per ladder size and joins on
// the whole ladder. The first render failure aborts the format: a
// container with a hole in its size ladder is not a valid partial
// result, since the directory count is fixed by the request list.
func (p *Processor) renderLadder(renderer Renderer, sizes []int) (*IconSet, error) {
	workers := p.Workers
	if workers <= 0 || workers > maxWorkers {
		workers = utils.Min(runtime.NumCPU(), len(sizes))
	}

	jobs := make(chan int)
	results := make(chan rendered)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for size := range jobs {
				data, err := renderer.Render(size)
				results <- rendered{size: size, data: data, err: err}
			}
		}()
	}

	go func() {
		for _, size := range sizes {
			jobs <- size
		}
		close(jobs)
	}()

	// Close the results channel after the workers are drained.
	go func() {
		wg.Wait()
		close(results)
	}()

	frames := make(map[int][]byte, len(sizes))
	var err error
	for res := range results {
		if res.err != nil {
			// In-flight siblings finish on their own; their results
			// are drained and dropped.
			if err == nil {
				err = fmt.Errorf("could not render the %dpx frame: %w", res.size, res.err)
			}
			continue
		}
		frames[res.size] = res.data
	}
	if err != nil {
		return nil, err
	}

	// Collect in ladder order so the ICO directory layout is
	// deterministic regardless of worker scheduling.
	set := NewIconSet()
	for _, size := range sizes {
		if addErr := set.Add(Frame{Size: size, Data: frames[size]}); addErr != nil {
			return nil, addErr
		}
	}
	return set, nil
}

// writeLadder persists the raw per-size PNG frames, hicolor style:
// one <name>_<size>.png file per ladder entry.
func (p *Processor) writeLadder(set *IconSet, dstDir string) error {
	for _, f := range set.Frames() {
		path := filepath.Join(dstDir, fmt.Sprintf("%s_%d.png", p.baseName(), f.Size))
		if err := os.WriteFile(path, f.Data, 0644); err != nil {
			return fmt.Errorf("could not write %s: %w", path, err)
		}
	}
	return nil
}

func (p *Processor) baseName() string {
	if p.Name != "" {
		return p.Name
	}
	return "icon"
}

// writeArtifact persists one encoded container. The file handle is
// released on every exit path, write failures included.
func writeArtifact(path string, set *IconSet, encode func(io.Writer, *IconSet) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	defer f.Close()

	if err := encode(f, set); err != nil {
		return fmt.Errorf("could not write %s: %w", path, err)
	}
	return f.Sync()
}
