package iconpack

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/halfcrow/iconpack/utils"
)

// PipeName is the file name that indicates stdin is being used as the
// image source.
const PipeName = "-"

// Ops holds the source and destination related execution options.
type Ops struct {
	Src string
	Dst string
}

// Execute resolves the source image (local file, URL or stdin pipe),
// prepares the destination directory and runs the icon pipeline,
// reporting progress and the final status on the terminal.
func (p *Processor) Execute(op *Ops) error {
	defaultMsg := fmt.Sprintf("%s %s",
		utils.DecorateText("▲ ICONPACK", utils.StatusMessage),
		utils.DecorateText("⇢ rendering the icon ladder...", utils.DefaultMessage),
	)
	if p.Spinner == nil {
		p.Spinner = utils.NewSpinner(defaultMsg, time.Millisecond*80, true)
	}

	src, err := resolveSource(op.Src)
	if err != nil {
		return err
	}
	defer func() {
		if f, ok := src.(*os.File); ok && f != os.Stdin {
			f.Close()
		}
	}()

	if err := os.MkdirAll(op.Dst, 0755); err != nil {
		return fmt.Errorf("could not create the destination directory: %w", err)
	}

	start := time.Now()
	p.Spinner.Start()
	err = p.Process(src, op.Dst)
	p.Spinner.StopMsg = fmt.Sprintf("%s %s",
		utils.DecorateText("▲ ICONPACK", utils.StatusMessage),
		utils.DecorateText("⇢ rendering the icon ladder... ✔", utils.DefaultMessage),
	)
	p.Spinner.Stop()

	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(start)), utils.SuccessMessage))
	return nil
}

// resolveSource converts the source option into a readable stream.
// A URL is downloaded into a temporary file first; the pipe name
// requires stdin to actually be a pipe, not an interactive terminal.
func resolveSource(src string) (io.Reader, error) {
	if utils.IsValidUrl(src) {
		tmp, err := utils.DownloadImage(src)
		if err != nil {
			return nil, fmt.Errorf("failed to load the source image: %w", err)
		}
		if _, err := tmp.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		return tmp, nil
	}

	if src == PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdin")
		}
		return os.Stdin, nil
	}

	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("failed to load the source image: %w", err)
	}
	return f, nil
}
