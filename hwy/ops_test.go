package hwy

import (
	"math"
	"testing"
)

func iota32(n int, start, step float32) []float32 {
	s := make([]float32, n)
	for i := range s {
		s[i] = start + float32(i)*step
	}
	return s
}

func TestLoadStore(t *testing.T) {
	lanes := MaxLanes[float32]()
	data := iota32(lanes+3, 1, 1)
	v := Load(data)

	if v.NumLanes() != lanes {
		t.Fatalf("Load: got %d lanes, want %d", v.NumLanes(), lanes)
	}
	out := make([]float32, lanes+3)
	Store(v, out)
	for i := range lanes {
		if out[i] != data[i] {
			t.Errorf("Store: lane %d: got %v, want %v", i, out[i], data[i])
		}
	}
	for i := lanes; i < len(out); i++ {
		if out[i] != 0 {
			t.Errorf("Store wrote past the vector: out[%d] = %v", i, out[i])
		}
	}
}

func TestSetZero(t *testing.T) {
	v := Set[float64](42)
	if v.NumLanes() != MaxLanes[float64]() {
		t.Fatalf("Set: got %d lanes, want %d", v.NumLanes(), MaxLanes[float64]())
	}
	for i, x := range v.Data() {
		if x != 42 {
			t.Errorf("Set: lane %d: got %v, want 42", i, x)
		}
	}
	for i, x := range Zero[int8]().Data() {
		if x != 0 {
			t.Errorf("Zero: lane %d: got %v", i, x)
		}
	}
}

func TestArithmetic(t *testing.T) {
	a := Set[float32](10)
	b := Set[float32](4)

	tests := []struct {
		name string
		got  Vec[float32]
		want float32
	}{
		{"Add", Add(a, b), 14},
		{"Sub", Sub(a, b), 6},
		{"Mul", Mul(a, b), 40},
		{"Div", Div(a, b), 2.5},
		{"Neg", Neg(a), -10},
		{"Abs", Abs(Neg(b)), 4},
		{"Min", Min(a, b), 4},
		{"Max", Max(a, b), 10},
		{"Map", Map(a, func(x float32) float32 { return x * x }), 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, x := range tt.got.Data() {
				if x != tt.want {
					t.Errorf("lane %d: got %v, want %v", i, x, tt.want)
				}
			}
		})
	}
}

func TestArithmeticUint16(t *testing.T) {
	// Plain uint16 stays arithmetic even though Float16 and BFloat16 share
	// its representation.
	a, b := Set[uint16](0xC000), Set[uint16](0x3C00)
	if got := Sub(a, b).Data()[0]; got != 0x8400 {
		t.Errorf("Sub: got 0x%04X, want 0x8400", got)
	}
	if LessThan(a, b).CountTrue() != 0 {
		t.Error("LessThan: 0xC000 < 0x3C00 reported true")
	}
}

func TestHalfComparisonThroughBridge(t *testing.T) {
	// -2 and 1 as Float16 are 0xC000 and 0x3C00. Ordering them needs the
	// float32 bridge; their bits order the other way.
	x := Set(Float32ToFloat16(-2))
	y := Set(Float32ToFloat16(1))
	xlo, xhi := PromoteHalves(x)
	ylo, yhi := PromoteHalves(y)
	if !LessThan(xlo, ylo).AllTrue() || !LessThan(xhi, yhi).AllTrue() {
		t.Error("promoted -2 should compare below promoted 1")
	}
	sum := DemoteHalves[Float16](Add(xlo, ylo), Add(xhi, yhi))
	for i, h := range sum.Data() {
		if got := Float16ToFloat32(h); got != -1 {
			t.Errorf("lane %d: got %v, want -1", i, got)
		}
	}
}

func TestMinMaxSpecialValues(t *testing.T) {
	nan := Set(float32(math.NaN()))
	one := Set[float32](1)
	negZero := Set(float32(math.Copysign(0, -1)))
	posZero := Zero[float32]()

	if x := Min(nan, one).Data()[0]; !math.IsNaN(float64(x)) {
		t.Errorf("Min(NaN, 1) = %v, want NaN", x)
	}
	if x := Max(one, nan).Data()[0]; !math.IsNaN(float64(x)) {
		t.Errorf("Max(1, NaN) = %v, want NaN", x)
	}
	if x := Min(posZero, negZero).Data()[0]; !math.Signbit(float64(x)) {
		t.Errorf("Min(+0, -0) = %v, want -0", x)
	}
	if x := Max(negZero, posZero).Data()[0]; math.Signbit(float64(x)) {
		t.Errorf("Max(-0, +0) = %v, want +0", x)
	}
}

func TestComparisons(t *testing.T) {
	lanes := MaxLanes[float32]()
	data := iota32(lanes, -float32(lanes/2), 1)
	data[0] = float32(math.NaN())
	v := Load(data)
	zero := Zero[float32]()

	tests := []struct {
		name string
		mask Mask[float32]
		pred func(x float32) bool
	}{
		{"LessThan", LessThan(v, zero), func(x float32) bool { return x < 0 }},
		{"LessEqual", LessEqual(v, zero), func(x float32) bool { return x <= 0 }},
		{"GreaterThan", GreaterThan(v, zero), func(x float32) bool { return x > 0 }},
		{"GreaterEqual", GreaterEqual(v, zero), func(x float32) bool { return x >= 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, x := range data {
				if got, want := tt.mask.GetBit(i), tt.pred(x); got != want {
					t.Errorf("lane %d (%v): got %v, want %v", i, x, got, want)
				}
			}
		})
	}
}

func TestMaskReductions(t *testing.T) {
	lanes := MaxLanes[int32]()
	all := GreaterEqual(Zero[int32](), Zero[int32]())
	none := LessThan(Zero[int32](), Zero[int32]())
	first := TailMask[int32](1)

	if !all.AllTrue() || !all.AnyTrue() || all.CountTrue() != lanes {
		t.Errorf("all-true mask: AllTrue=%v AnyTrue=%v CountTrue=%d", all.AllTrue(), all.AnyTrue(), all.CountTrue())
	}
	if none.AnyTrue() || none.AllTrue() {
		t.Error("all-false mask reports active lanes")
	}
	if first.AllTrue() || !first.AnyTrue() || first.CountTrue() != 1 {
		t.Errorf("single-lane mask: CountTrue=%d", first.CountTrue())
	}
	if got := MaskAnd(all, first).CountTrue(); got != 1 {
		t.Errorf("MaskAnd: CountTrue=%d, want 1", got)
	}
	if got := MaskOr(none, first).CountTrue(); got != 1 {
		t.Errorf("MaskOr: CountTrue=%d, want 1", got)
	}
}

func TestIfThenElse(t *testing.T) {
	lanes := MaxLanes[float32]()
	v := Load(iota32(lanes, -2, 1))
	pos := GreaterThan(v, Zero[float32]())
	a := Set[float32](100)
	b := Set[float32](-100)

	sel := IfThenElse(pos, a, b)
	kept := IfThenElseZero(pos, v)
	dropped := IfThenZeroElse(pos, v)
	for i, x := range v.Data() {
		want := float32(-100)
		if x > 0 {
			want = 100
		}
		if sel.Data()[i] != want {
			t.Errorf("lane %d: IfThenElse=%v, want %v", i, sel.Data()[i], want)
		}
		if x > 0 && (kept.Data()[i] != x || dropped.Data()[i] != 0) {
			t.Errorf("lane %d: IfThenElseZero/IfThenZeroElse wrong for %v", i, x)
		}
		if x <= 0 && (kept.Data()[i] != 0 || dropped.Data()[i] != x) {
			t.Errorf("lane %d: IfThenElseZero/IfThenZeroElse wrong for %v", i, x)
		}
	}
}

func TestMaxLanesScaleWithElementSize(t *testing.T) {
	w := CurrentWidth()
	if w < 16 {
		t.Fatalf("CurrentWidth() = %d, want at least 16", w)
	}
	if MaxLanes[float64]()*2 != MaxLanes[float32]() || MaxLanes[float32]()*2 != MaxLanes[Float16]() {
		t.Errorf("lane counts do not halve with element size: f64=%d f32=%d f16=%d",
			MaxLanes[float64](), MaxLanes[float32](), MaxLanes[Float16]())
	}
	if MaxLanes[BFloat16]() != MaxLanes[Float16]() || MaxLanes[int8]() != w {
		t.Errorf("unexpected lane counts: bf16=%d int8=%d", MaxLanes[BFloat16](), MaxLanes[int8]())
	}
	if CurrentName() == "unknown" {
		t.Errorf("CurrentLevel() = %v has no name", CurrentLevel())
	}
}
