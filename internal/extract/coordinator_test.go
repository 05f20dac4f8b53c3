package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	name   string
	method Method
	text   string
	pages  int
	err    error
	calls  int
}

func (f *fakeBackend) Name() string   { return f.name }
func (f *fakeBackend) Method() Method { return f.method }
func (f *fakeBackend) Extract(ctx context.Context, pdfBytes []byte) (string, int, error) {
	f.calls++
	return f.text, f.pages, f.err
}

func TestCoordinatorReturnsFirstPassingStrategy(t *testing.T) {
	first := &fakeBackend{name: "structured-text", method: MethodStructuredText, text: strings.Repeat("a", 60), pages: 3}
	second := &fakeBackend{name: "general-text", method: MethodGeneralText, text: strings.Repeat("b", 500), pages: 3}
	c := NewCoordinatorWithStrategies([]Backend{first, second}, []int{50, 50})

	res := c.Extract(context.Background(), []byte("not a real pdf"))
	require.True(t, res.Success)
	require.Equal(t, MethodStructuredText, res.Method)
	require.Equal(t, 3, res.PageCount)
	require.Equal(t, 0, second.calls, "later strategies must not run after a success")
}

func TestCoordinatorFallsThroughGates(t *testing.T) {
	short := &fakeBackend{name: "structured-text", method: MethodStructuredText, text: "too short", pages: 2}
	failing := &fakeBackend{name: "general-text", method: MethodGeneralText, err: errors.New("parse error")}
	ocr := &fakeBackend{name: "ocr", method: MethodOCR, text: strings.Repeat("x", 21), pages: 2}
	c := NewCoordinatorWithStrategies([]Backend{short, failing, ocr}, []int{50, 50, 20})

	res := c.Extract(context.Background(), []byte("bytes"))
	require.True(t, res.Success)
	require.Equal(t, MethodOCR, res.Method)
	require.Equal(t, 1, short.calls)
	require.Equal(t, 1, failing.calls)
}

func TestCoordinatorPageCountSurvivesFailedBackends(t *testing.T) {
	counted := &fakeBackend{name: "structured-text", method: MethodStructuredText, text: "", pages: 7}
	silent := &fakeBackend{name: "ocr", method: MethodOCR, text: "", pages: 0}
	c := NewCoordinatorWithStrategies([]Backend{counted, silent}, []int{50, 20})

	res := c.Extract(context.Background(), []byte("bytes"))
	require.False(t, res.Success)
	require.Equal(t, MethodNone, res.Method)
	require.Empty(t, res.Text)
	require.Equal(t, 7, res.PageCount, "page count from an earlier failed backend must be kept")
}

func TestCoordinatorGateIsStrict(t *testing.T) {
	exact := &fakeBackend{name: "structured-text", method: MethodStructuredText, text: strings.Repeat("a", 50), pages: 1}
	c := NewCoordinatorWithStrategies([]Backend{exact}, []int{50})

	res := c.Extract(context.Background(), []byte("bytes"))
	require.False(t, res.Success, "exactly 50 chars must not clear a >50 gate")
}
