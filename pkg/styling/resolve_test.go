package styling

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingRenderer struct {
	ops []string
}

func (r *recordingRenderer) SetStyle(prop string, value Value) {
	r.ops = append(r.ops, fmt.Sprintf("set %s=%v", prop, value))
}

func (r *recordingRenderer) RemoveStyle(prop string) {
	r.ops = append(r.ops, "remove "+prop)
}

func (r *recordingRenderer) SetClass(name string, enabled bool) {
	r.ops = append(r.ops, fmt.Sprintf("class %s=%t", name, enabled))
}

func (r *recordingRenderer) take() []string {
	ops := r.ops
	r.ops = nil
	return ops
}

func TestResolvePriority(t *testing.T) {
	tests := []struct {
		name  string
		calls func(ctx *Context)
		want  Value
	}{
		{
			name:  "static default only",
			calls: func(ctx *Context) { register(ctx, 1, 0, "width", "100px") },
			want:  "100px",
		},
		{
			name: "dynamic beats default",
			calls: func(ctx *Context) {
				register(ctx, 1, 0, "width", "100px")
				register(ctx, 2, 0, "width", 20)
			},
			want: 20,
		},
		{
			name: "template beats host",
			calls: func(ctx *Context) {
				register(ctx, 3, 0, "width", 10)
				register(ctx, 4, 1, "width", 15)
			},
			want: 10,
		},
		{
			name: "nil template falls through to host",
			calls: func(ctx *Context) {
				register(ctx, 3, 0, "width", nil)
				register(ctx, 4, 1, "width", 15)
			},
			want: 15,
		},
		{
			name: "later host layer wins",
			calls: func(ctx *Context) {
				register(ctx, 4, 1, "width", "a")
				register(ctx, 5, 2, "width", "b")
				register(ctx, 4, 1, "width", "a")
			},
			want: "b",
		},
		{
			name: "most recent template slot wins",
			calls: func(ctx *Context) {
				register(ctx, 1, 0, "width", "a")
				register(ctx, 2, 0, "width", "b")
				register(ctx, 3, 0, "width", "c")
			},
			want: "c",
		},
		{
			name: "all nil resolves to nil",
			calls: func(ctx *Context) {
				register(ctx, 1, 0, "width", nil)
				register(ctx, 2, 1, "width", nil)
			},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext(Options{HostLayers: 2})
			tt.calls(ctx)
			if got := Resolve(ctx.Entry("width")); got != tt.want {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFlushAppliesOnlyChanges(t *testing.T) {
	ctx := NewContext(Options{})
	r := &recordingRenderer{}

	register(ctx, 1, 0, "width", "100px")
	if n := ctx.Flush(r, nil); n != 1 {
		t.Fatalf("first flush applied %d values, want 1", n)
	}
	if diff := cmp.Diff([]string{"set width=100px"}, r.take()); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}

	if n := ctx.Flush(r, nil); n != 0 {
		t.Errorf("clean flush applied %d values", n)
	}

	// Second assertion promotes the binding.
	register(ctx, 1, 0, "width", "120px")
	ctx.Flush(r, nil)
	if diff := cmp.Diff([]string{"set width=120px"}, r.take()); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}

	register(ctx, 1, 0, "width", "120px")
	if ctx.NeedsFlush() {
		t.Error("an unchanged value should not dirty the context")
	}

	register(ctx, 1, 0, "width", "130px")
	tmpl, _ := ctx.PendingMasks()
	if !tmpl.Has(1) {
		t.Errorf("expected pending template bit 1, got %b", tmpl)
	}
	ctx.Flush(r, nil)
	if diff := cmp.Diff([]string{"set width=130px"}, r.take()); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}

	register(ctx, 1, 0, "width", nil)
	ctx.Flush(r, nil)
	if diff := cmp.Diff([]string{"remove width"}, r.take()); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
}

func TestFlushSkipsEntriesWithCleanGuards(t *testing.T) {
	ctx := NewContext(Options{HostLayers: 1})
	r := &recordingRenderer{}

	register(ctx, 1, 0, "width", "1px")
	register(ctx, 1, 0, "width", "1px")
	register(ctx, 3, 0, "height", "2px")
	register(ctx, 4, 1, "height", "3px")
	ctx.Flush(r, nil)
	r.take()

	register(ctx, 4, 1, "height", "4px")
	if ctx.Entry("width").affectedBy(ctx.PendingMasks()) {
		t.Error("width should not be touched by host bit 4")
	}
	if !ctx.Entry("height").affectedBy(ctx.PendingMasks()) {
		t.Error("height should be touched by host bit 4")
	}

	// Template slot 3 still wins, so nothing is applied.
	if n := ctx.Flush(r, nil); n != 0 {
		t.Errorf("applied %d values, want 0", n)
	}

	register(ctx, 3, 0, "height", nil)
	ctx.Flush(r, nil)
	if diff := cmp.Diff([]string{"set height=4px"}, r.take()); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
}

func TestFlushClassMode(t *testing.T) {
	ctx := NewContext(Options{ClassBased: true})
	r := &recordingRenderer{}

	register(ctx, 1, 0, "active", true)
	register(ctx, 2, 0, "hidden", false)
	ctx.Flush(r, nil)
	if diff := cmp.Diff([]string{"class active=true"}, r.take()); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}

	register(ctx, 1, 0, "active", "yes")
	ctx.Flush(r, nil)
	if ops := r.take(); len(ops) != 0 {
		t.Errorf("truthy to truthy should not reapply, got %v", ops)
	}

	register(ctx, 1, 0, "active", "")
	ctx.Flush(r, nil)
	if diff := cmp.Diff([]string{"class active=false"}, r.take()); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
}

func TestFlushSanitizesFlaggedEntries(t *testing.T) {
	ctx := NewContext(Options{})
	r := &recordingRenderer{}
	sanitize := func(prop string, v Value) Value {
		return fmt.Sprintf("safe(%v)", v)
	}

	RegisterBinding(ctx, nil, 1, 0, "background", "url(x)", true, false)
	register(ctx, 2, 0, "width", "1px")
	ctx.Flush(r, sanitize)

	want := []string{"set background=safe(url(x))", "set width=1px"}
	if diff := cmp.Diff(want, r.take()); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
}

func TestOnDirtyFiresOncePerFlush(t *testing.T) {
	ctx := NewContext(Options{})
	calls := 0
	ctx.OnDirty = func() { calls++ }

	register(ctx, 1, 0, "width", "1px")
	register(ctx, 2, 0, "height", "1px")
	if calls != 1 {
		t.Fatalf("OnDirty called %d times, want 1", calls)
	}
	ctx.Flush(&recordingRenderer{}, nil)
	register(ctx, 2, 0, "height", "1px")
	if calls != 2 {
		t.Errorf("OnDirty called %d times, want 2", calls)
	}
}

func TestPromotionIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	ctx := NewContext(Options{HostLayers: 1})
	register(ctx, 1, 0, "width", "1px")
	register(ctx, 2, 1, "width", "2px")

	entries := logs.FilterMessage("promoted tentative default").All()
	if len(entries) != 1 {
		t.Fatalf("got %d promotion logs, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["transition"]; got != "promote-cross-category" {
		t.Errorf("transition = %v, want promote-cross-category", got)
	}
}

func TestFlushExpandsMapBinding(t *testing.T) {
	ctx := NewContext(Options{})
	r := &recordingRenderer{}
	var all []string

	register(ctx, 1, 0, "", map[string]any{"width": "1px", "height": "2px"})
	ctx.Flush(r, nil)
	ops := r.take()
	all = append(all, ops...)
	if diff := cmp.Diff([]string{"set height=2px", "set width=1px"}, ops); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}

	register(ctx, 1, 0, "", map[string]any{"width": "3px"})
	ctx.Flush(r, nil)
	ops = r.take()
	all = append(all, ops...)
	if diff := cmp.Diff([]string{"remove height", "set width=3px"}, ops); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}

	register(ctx, 1, 0, "", nil)
	ctx.Flush(r, nil)
	ops = r.take()
	all = append(all, ops...)
	if diff := cmp.Diff([]string{"remove width"}, ops); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}

	for _, op := range all {
		if strings.Contains(op, MapBasedEntryName) {
			t.Errorf("renderer received the map entry name: %q", op)
		}
	}
}

func TestFlushExpandsMapBindingInClassMode(t *testing.T) {
	ctx := NewContext(Options{ClassBased: true})
	r := &recordingRenderer{}

	register(ctx, 1, 0, "", map[string]bool{"active": true, "hidden": false})
	if n := ctx.Flush(r, nil); n != 1 {
		t.Errorf("applied %d values, want 1", n)
	}
	if diff := cmp.Diff([]string{"class active=true"}, r.take()); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}

	register(ctx, 1, 0, "", map[string]bool{"hidden": true})
	ctx.Flush(r, nil)
	want := []string{"class active=false", "class hidden=true"}
	if diff := cmp.Diff(want, r.take()); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
}

func TestFlushSanitizesMapBindingPerKey(t *testing.T) {
	ctx := NewContext(Options{})
	r := &recordingRenderer{}
	sanitize := func(prop string, v Value) Value {
		return fmt.Sprintf("safe(%s:%v)", prop, v)
	}

	RegisterBinding(ctx, nil, 1, 0, "", map[string]any{"background": "url(x)"}, true, false)
	ctx.Flush(r, sanitize)
	if diff := cmp.Diff([]string{"set background=safe(background:url(x))"}, r.take()); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
}

func TestFlushIgnoresNonMapValueForMapBinding(t *testing.T) {
	ctx := NewContext(Options{})
	r := &recordingRenderer{}

	register(ctx, 1, 0, "", "width: 1px")
	if n := ctx.Flush(r, nil); n != 0 {
		t.Errorf("applied %d values, want 0", n)
	}
	if ops := r.take(); len(ops) != 0 {
		t.Errorf("unexpected ops %v", ops)
	}
}

// failingRenderer panics on the first SetStyle for failProp.
type failingRenderer struct {
	recordingRenderer
	failProp string
}

func (r *failingRenderer) SetStyle(prop string, value Value) {
	if prop == r.failProp {
		r.failProp = ""
		panic("renderer failure")
	}
	r.recordingRenderer.SetStyle(prop, value)
}

func TestFlushRetriesEntriesAfterRendererPanic(t *testing.T) {
	ctx := NewContext(Options{})
	dirtied := 0
	ctx.OnDirty = func() { dirtied++ }
	r := &failingRenderer{failProp: "height"}

	register(ctx, 1, 0, "width", "1px")
	register(ctx, 2, 0, "height", "2px")
	register(ctx, 3, 0, "color", "red")

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected the renderer panic to propagate")
			}
		}()
		ctx.Flush(r, nil)
	}()
	if diff := cmp.Diff([]string{"set width=1px"}, r.take()); diff != "" {
		t.Errorf("ops before failure mismatch (-want +got):\n%s", diff)
	}
	if !ctx.NeedsFlush() {
		t.Fatal("context should stay dirty after a failed flush")
	}
	if dirtied != 2 {
		t.Errorf("OnDirty called %d times, want 2", dirtied)
	}

	if n := ctx.Flush(r, nil); n != 2 {
		t.Errorf("retry applied %d values, want 2", n)
	}
	want := []string{"set height=2px", "set color=red"}
	if diff := cmp.Diff(want, r.take()); diff != "" {
		t.Errorf("retry ops mismatch (-want +got):\n%s", diff)
	}
	if ctx.NeedsFlush() {
		t.Error("context should be clean after the retry")
	}
}

func TestTruthy(t *testing.T) {
	type flag bool
	tests := []struct {
		value Value
		want  bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{"", false},
		{"on", true},
		{0, false},
		{int8(0), false},
		{int64(2), true},
		{uint(0), false},
		{uint32(1), true},
		{float32(0), false},
		{float64(0.5), true},
		{flag(false), false},
		{[]string{}, true},
		{struct{}{}, true},
	}
	for _, tt := range tests {
		if got := truthy(tt.value); got != tt.want {
			t.Errorf("truthy(%#v) = %t, want %t", tt.value, got, tt.want)
		}
	}
}
