package iconpack

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubRenderer fabricates deterministic payloads and fails on demand.
type stubRenderer struct {
	failAt int
}

func (r *stubRenderer) Render(size int) ([]byte, error) {
	if r.failAt != 0 && size == r.failAt {
		return nil, fmt.Errorf("render blew up at %dpx", size)
	}
	return []byte(fmt.Sprintf("frame-%d", size)), nil
}

func TestRenderLadder_CollectsInLadderOrder(t *testing.T) {
	assert := assert.New(t)

	p := &Processor{}
	set, err := p.renderLadder(&stubRenderer{}, FormatICO.Sizes())
	assert.NoError(err)
	assert.Equal(len(FormatICO.Sizes()), set.Len())

	for i, f := range set.Frames() {
		assert.Equal(FormatICO.Sizes()[i], f.Size)
		assert.Equal([]byte(fmt.Sprintf("frame-%d", f.Size)), f.Data)
	}
}

func TestRenderLadder_SingleWorkerStaysDeterministic(t *testing.T) {
	p := &Processor{Workers: 1}

	set, err := p.renderLadder(&stubRenderer{}, FormatICNS.Sizes())
	assert.NoError(t, err)

	sizes := make([]int, 0, set.Len())
	for _, f := range set.Frames() {
		sizes = append(sizes, f.Size)
	}
	assert.Equal(t, FormatICNS.Sizes(), sizes)
}

func TestRenderLadder_FirstFailureAbortsTheFormat(t *testing.T) {
	assert := assert.New(t)

	p := &Processor{}
	set, err := p.renderLadder(&stubRenderer{failAt: 48}, FormatICO.Sizes())

	assert.Nil(set, "no partial icon set may survive a render failure")
	assert.Error(err)
	assert.Contains(err.Error(), "48px", "the failing size must be reported")
}

func TestProduce_WritesBothContainers(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	p := &Processor{Name: "app"}
	assert.NoError(p.produce(&stubRenderer{}, dir))

	ico, err := os.ReadFile(filepath.Join(dir, "app.ico"))
	assert.NoError(err)
	assert.Equal([]byte{0x00, 0x00, 0x01, 0x00}, ico[:4])
	assert.Equal(uint16(len(FormatICO.Sizes())), binary.LittleEndian.Uint16(ico[4:6]))

	icns, err := os.ReadFile(filepath.Join(dir, "app.icns"))
	assert.NoError(err)
	assert.Equal([]byte("icns"), icns[:4])
	assert.Equal(uint32(len(icns)), binary.BigEndian.Uint32(icns[4:8]))
}

func TestProduce_FailingFormatDoesNotRevokeSiblings(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	// 1024 is only on the ICNS ladder, so only ICNS fails.
	p := &Processor{}
	err := p.produce(&stubRenderer{failAt: 1024}, dir)

	assert.Error(err)
	assert.Contains(err.Error(), "icns")
	assert.NotContains(err.Error(), "ico:")

	_, err = os.Stat(filepath.Join(dir, "icon.ico"))
	assert.NoError(err, "the ICO artifact must survive the ICNS failure")
	_, err = os.Stat(filepath.Join(dir, "icon.icns"))
	assert.True(os.IsNotExist(err), "no partial ICNS artifact may be written")
}

func TestProduce_PNGLadder(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	p := &Processor{Formats: []Format{FormatPNG}, Name: "app"}
	assert.NoError(p.produce(&stubRenderer{}, dir))

	for _, size := range FormatPNG.Sizes() {
		data, err := os.ReadFile(filepath.Join(dir, fmt.Sprintf("app_%d.png", size)))
		assert.NoError(err)
		assert.Equal([]byte(fmt.Sprintf("frame-%d", size)), data)
	}
}

func TestProcess_EndToEnd(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	p := &Processor{Name: "logo"}
	assert.NoError(p.Process(bytes.NewReader(sourcePNG(t, 1024, 1024)), dir))

	ico, err := os.ReadFile(filepath.Join(dir, "logo.ico"))
	assert.NoError(err)
	assert.Equal(uint16(7), binary.LittleEndian.Uint16(ico[4:6]))

	// Every ICO payload is a self-describing PNG these days; check the
	// first directory entry points at a PNG signature.
	offset := binary.LittleEndian.Uint32(ico[12+6 : 16+6])
	assert.Equal([]byte{0x89, 'P', 'N', 'G'}, ico[offset:offset+4])

	icns, err := os.ReadFile(filepath.Join(dir, "logo.icns"))
	assert.NoError(err)
	assert.Equal([]byte("icns"), icns[:4])
	assert.Equal(uint32(len(icns)), binary.BigEndian.Uint32(icns[4:8]))
}

func TestProcess_EncodingIsPure(t *testing.T) {
	assert := assert.New(t)

	set := buildSet(t, FormatICO.Sizes(), 40)
	var before [][]byte
	for _, f := range set.Frames() {
		before = append(before, append([]byte(nil), f.Data...))
	}

	var buf bytes.Buffer
	assert.NoError(EncodeICO(&buf, set))
	assert.NoError(EncodeICNS(&buf, set))

	// Frame payloads stay untouched by both encoders.
	for i, f := range set.Frames() {
		assert.Equal(before[i], f.Data)
	}
}
