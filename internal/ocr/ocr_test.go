package ocr

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexidoc/complaint-extract/internal/layout"
)

type fakeRenderer struct {
	pages [][]byte
	err   error
}

func (f *fakeRenderer) RenderPages(ctx context.Context, pdfPath string) ([][]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pages, nil
}

type fakeEngine struct {
	boxes map[string][]layout.Fragment
	err   error
	calls int
}

func (f *fakeEngine) WordBoxes(ctx context.Context, image []byte) ([]layout.Fragment, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.boxes[string(image)], nil
}

func (f *fakeEngine) Close() error { return nil }

func TestReadWordBoxes(t *testing.T) {
	renderer := &fakeRenderer{pages: [][]byte{[]byte("p1"), []byte("p2")}}
	engine := &fakeEngine{boxes: map[string][]layout.Fragment{
		"p1": {{Text: "民事起诉状", X: 100, Y: 40}},
		"p2": {{Text: "此致", X: 100, Y: 40}},
	}}

	pages, err := ReadWordBoxes(context.Background(), renderer, engine, "case.pdf")
	require.NoError(t, err)

	require.Len(t, pages, 2)
	assert.Equal(t, "民事起诉状", pages[0][0].Text)
	assert.Equal(t, "此致", pages[1][0].Text)
	assert.Equal(t, 2, engine.calls)
}

func TestReadWordBoxesRenderFailure(t *testing.T) {
	renderer := &fakeRenderer{err: errors.New("pdftoppm not found")}
	engine := &fakeEngine{}

	_, err := ReadWordBoxes(context.Background(), renderer, engine, "case.pdf")
	require.Error(t, err)
	assert.Zero(t, engine.calls)
}

func TestReadWordBoxesEngineFailure(t *testing.T) {
	renderer := &fakeRenderer{pages: [][]byte{[]byte("p1")}}
	engine := &fakeEngine{err: errors.New("tesseract crashed")}

	_, err := ReadWordBoxes(context.Background(), renderer, engine, "case.pdf")
	assert.Error(t, err)
}

func TestReadWordBoxesCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	renderer := &fakeRenderer{pages: [][]byte{[]byte("p1")}}
	engine := &fakeEngine{}

	_, err := ReadWordBoxes(ctx, renderer, engine, "case.pdf")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPopplerRendererAvailable(t *testing.T) {
	renderer := NewPopplerRenderer()

	dir := t.TempDir()
	stub := filepath.Join(dir, "pdftoppm")
	require.NoError(t, os.WriteFile(stub, []byte("#!/bin/sh\n"), 0o755))

	t.Setenv("PATH", dir)
	assert.True(t, renderer.Available())

	t.Setenv("PATH", filepath.Join(dir, "empty"))
	assert.False(t, renderer.Available())
}
