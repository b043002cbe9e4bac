package engine

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/lixenwraith/divide-conquer/vmath"
)

var testEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func testOptions() Options {
	return Options{
		BallSpeed:    15,
		BallRadius:   1,
		LineSpeed:    50,
		BallContacts: true,
		Seed:         7,
	}
}

// newTestEngine builds an engine with hand-placed regions
func newTestEngine(bounds vmath.Rect, regions ...*BallRegion) *BallEngine {
	e := NewBallEngine(bounds, testOptions())
	e.start = testEpoch
	e.regions = regions
	return e
}

type recordingListener struct {
	hits  []LineHit
	areas []float64
}

func (l *recordingListener) OnBallHitsLine(hit LineHit)  { l.hits = append(l.hits, hit) }
func (l *recordingListener) OnAreaChange(filled float64) { l.areas = append(l.areas, filled) }

func TestResetCreatesSingleRegion(t *testing.T) {
	bounds := vmath.NewRect(0, 0, 60, 30)

	for _, n := range []int{0, 1, 2, 5, 12} {
		e := NewBallEngine(bounds, testOptions())
		e.Reset(testEpoch, n, testEpoch)

		if len(e.Regions()) != 1 {
			t.Fatalf("Reset(%d): expected 1 region, got %d", n, len(e.Regions()))
		}
		r := e.Regions()[0]
		if r.Bounds() != bounds {
			t.Errorf("Reset(%d): region bounds %v, want %v", n, r.Bounds(), bounds)
		}
		if len(r.Balls()) != n {
			t.Errorf("Reset(%d): expected %d balls, got %d", n, n, len(r.Balls()))
		}
		for i, b := range r.Balls() {
			if math.Abs(b.Speed()-testOptions().BallSpeed) > 1e-9 {
				t.Errorf("Reset(%d): ball %d speed %v, want %v", n, i, b.Speed(), testOptions().BallSpeed)
			}
			if !bounds.Inset(b.Radius).Contains(b.X, b.Y) {
				t.Errorf("Reset(%d): ball %d at (%v, %v) outside play area", n, i, b.X, b.Y)
			}
		}
		if e.PercentageFilled() != 0 {
			t.Errorf("Reset(%d): expected nothing filled, got %v", n, e.PercentageFilled())
		}
	}
}

func TestResetDiscardsPreviousRegions(t *testing.T) {
	e := NewBallEngine(vmath.NewRect(0, 0, 40, 20), testOptions())
	e.Reset(testEpoch, 3, testEpoch)
	e.StartHorizontalLine(testEpoch, 20, 10)
	e.Update(testEpoch.Add(2 * time.Second))

	e.Reset(testEpoch.Add(3*time.Second), 4, testEpoch.Add(3*time.Second))
	if len(e.Regions()) != 1 || e.BallCount() != 4 {
		t.Errorf("Expected fresh single region with 4 balls, got %d regions and %d balls", len(e.Regions()), e.BallCount())
	}
	if e.Regions()[0].Line() != nil {
		t.Error("Expected no line after reset")
	}
}

func TestUpdateBeforeStartIsFrozen(t *testing.T) {
	e := NewBallEngine(vmath.NewRect(0, 0, 40, 20), testOptions())
	start := testEpoch.Add(time.Second)
	e.Reset(testEpoch, 3, start)

	before := make([]vmath.Vec2, 0, 3)
	for _, b := range e.Regions()[0].Balls() {
		before = append(before, b.Pos())
	}

	e.Update(testEpoch.Add(500 * time.Millisecond))
	for i, b := range e.Regions()[0].Balls() {
		if b.Pos() != before[i] {
			t.Errorf("Ball %d moved before start: %v -> %v", i, before[i], b.Pos())
		}
	}

	e.Update(start.Add(100 * time.Millisecond))
	moved := false
	for i, b := range e.Regions()[0].Balls() {
		if b.Pos() != before[i] {
			moved = true
		}
	}
	if !moved {
		t.Error("Expected balls to move after start")
	}
}

func TestBallsStayInsideRegions(t *testing.T) {
	bounds := vmath.NewRect(0, 0, 60, 30)
	e := NewBallEngine(bounds, testOptions())
	e.Reset(testEpoch, 8, testEpoch)

	rng := vmath.NewFastRand(99)
	now := testEpoch
	for frame := 0; frame < 3000; frame++ {
		now = now.Add(16 * time.Millisecond)

		if frame%90 == 0 {
			x, y := rng.Range(1, 59), rng.Range(1, 29)
			if frame%180 == 0 {
				e.StartHorizontalLine(now, x, y)
			} else {
				e.StartVerticalLine(now, x, y)
			}
		}

		e.Update(now)

		live := 0.0
		for ri, r := range e.Regions() {
			live += r.Bounds().Area()
			rb := r.Bounds()
			for bi, b := range r.Balls() {
				if b.X < rb.Left-vmath.Epsilon || b.X > rb.Right+vmath.Epsilon ||
					b.Y < rb.Top-vmath.Epsilon || b.Y > rb.Bottom+vmath.Epsilon {
					t.Fatalf("frame %d: ball %d of region %d at (%v, %v) outside %v", frame, bi, ri, b.X, b.Y, rb)
				}
			}
		}
		if e.BallCount() != 8 {
			t.Fatalf("frame %d: ball count changed to %d", frame, e.BallCount())
		}
		if got := 1 - live/bounds.Area(); math.Abs(got-e.PercentageFilled()) > 1e-9 {
			t.Fatalf("frame %d: PercentageFilled %v, area accounting %v", frame, e.PercentageFilled(), got)
		}
	}
}

func TestCanStartLineAt(t *testing.T) {
	bounds := vmath.NewRect(0, 0, 40, 20)
	e := NewBallEngine(bounds, testOptions())
	e.Reset(testEpoch, 0, testEpoch)

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 10, 10, true},
		{"left of area", -1, 10, false},
		{"below area", 10, 25, false},
		{"on edge", 0, 10, false},
		{"on corner", 40, 20, false},
	}
	for _, tt := range tests {
		if got := e.CanStartLineAt(tt.x, tt.y); got != tt.want {
			t.Errorf("%s: CanStartLineAt(%v, %v) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}

	if !e.StartVerticalLine(testEpoch, 10, 10) {
		t.Fatal("Expected line to start")
	}
	if e.CanStartLineAt(30, 5) {
		t.Error("Expected CanStartLineAt false while the region has a line")
	}
	if e.StartHorizontalLine(testEpoch, 30, 5) {
		t.Error("Expected second line in the same region to be rejected")
	}
}

func TestLineCompletesAndSplits(t *testing.T) {
	bounds := vmath.NewRect(0, 0, 40, 20)
	top := &Ball{X: 5, Y: 4, VX: 3, Radius: 1}
	bottom := &Ball{X: 35, Y: 16, VX: -3, Radius: 1}
	e := newTestEngine(bounds, NewBallRegion(testEpoch, bounds, []*Ball{top, bottom}))

	if !e.StartHorizontalLine(testEpoch, 20, 10) {
		t.Fatal("Expected line to start")
	}

	res := e.Update(testEpoch.Add(100 * time.Millisecond))
	if res.Split || res.Hit != nil {
		t.Fatalf("Expected line still growing, got %+v", res)
	}
	if l := e.Regions()[0].Line(); l == nil || l.Length() <= 0 {
		t.Fatal("Expected a growing line")
	}

	res = e.Update(testEpoch.Add(time.Second))
	if !res.Split || res.Hit != nil {
		t.Fatalf("Expected split, got %+v", res)
	}
	if len(e.Regions()) != 2 {
		t.Fatalf("Expected 2 regions, got %d", len(e.Regions()))
	}

	got := []vmath.Rect{e.Regions()[0].Bounds(), e.Regions()[1].Bounds()}
	want := []vmath.Rect{vmath.NewRect(0, 0, 40, 10), vmath.NewRect(0, 10, 40, 10)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Child bounds mismatch (-want +got):\n%s", diff)
	}
	if e.Regions()[0].Balls()[0] != top || e.Regions()[1].Balls()[0] != bottom {
		t.Error("Balls not assigned to the side of the line they were on")
	}
	if res.Filled != 0 {
		t.Errorf("Expected nothing filled when both halves keep a ball, got %v", res.Filled)
	}
}

func TestRegionSplitPartitionsParent(t *testing.T) {
	bounds := vmath.NewRect(3, 2, 30, 12)
	balls := []*Ball{
		{X: 5, Y: 4, Radius: 0.5},
		{X: 20, Y: 4, Radius: 0.5},
		{X: 25, Y: 11, Radius: 0.5},
		{X: 10, Y: 12, Radius: 0.5},
	}

	for _, dir := range []Direction{Horizontal, Vertical} {
		r := NewBallRegion(testEpoch, bounds, append([]*Ball(nil), balls...))
		r.StartLine(testEpoch, dir, 15, 8, 1000)

		a, b := r.Split()
		if a == nil || b == nil {
			t.Fatalf("%v: expected two children", dir)
		}
		if got := a.Bounds().Area() + b.Bounds().Area(); math.Abs(got-bounds.Area()) > 1e-9 {
			t.Errorf("%v: children area %v, want %v", dir, got, bounds.Area())
		}
		if len(a.Balls())+len(b.Balls()) != len(balls) {
			t.Errorf("%v: balls lost in split: %d + %d", dir, len(a.Balls()), len(b.Balls()))
		}
		for _, child := range []*BallRegion{a, b} {
			for _, ball := range child.Balls() {
				if !child.Bounds().Contains(ball.X, ball.Y) {
					t.Errorf("%v: ball (%v, %v) outside child %v", dir, ball.X, ball.Y, child.Bounds())
				}
			}
		}
		if r.Line() != nil {
			t.Errorf("%v: expected parent line cleared", dir)
		}
	}

	r := NewBallRegion(testEpoch, bounds, nil)
	if a, b := r.Split(); a != nil || b != nil {
		t.Error("Expected Split without a line to return nil children")
	}
}

func TestBallHitsGrowingLine(t *testing.T) {
	bounds := vmath.NewRect(0, 0, 40, 20)
	ball := &Ball{X: 20, Y: 15, VY: -10, Radius: 1}
	e := newTestEngine(bounds, NewBallRegion(testEpoch, bounds, []*Ball{ball}))
	e.opts.LineSpeed = 10

	listener := &recordingListener{}
	e.SetListener(listener)

	e.StartHorizontalLine(testEpoch, 20, 10)
	res := e.Update(testEpoch.Add(3 * time.Second))

	if res.Hit == nil {
		t.Fatal("Expected line hit")
	}
	if res.Split {
		t.Error("Expected no split on a hit tick")
	}
	if res.Hit.X != 20 || res.Hit.Y < 10 || res.Hit.Y > 11+1e-9 {
		t.Errorf("Unexpected hit coordinates (%v, %v)", res.Hit.X, res.Hit.Y)
	}
	if res.Hit.Direction != Horizontal || res.Hit.Fixed != 10 {
		t.Errorf("Unexpected hit line %+v", res.Hit)
	}
	if e.Regions()[0].Line() != nil {
		t.Error("Expected struck line to be discarded")
	}
	if len(listener.hits) != 1 {
		t.Errorf("Expected 1 listener hit, got %d", len(listener.hits))
	}
	if !e.CanStartLineAt(5, 5) {
		t.Error("Expected a new line to be allowed after a hit")
	}
}

func TestHitBeforeCompletion(t *testing.T) {
	bounds := vmath.NewRect(0, 0, 40, 20)
	// Stationary ball near the left edge, just above the line path
	ball := &Ball{X: 1.5, Y: 10.5, Radius: 1}
	e := newTestEngine(bounds, NewBallRegion(testEpoch, bounds, []*Ball{ball}))
	e.opts.LineSpeed = 5000

	e.StartHorizontalLine(testEpoch, 30, 10)
	res := e.Update(testEpoch.Add(time.Second))

	if res.Hit == nil || res.Split {
		t.Fatalf("Expected hit to win over completion, got %+v", res)
	}
	if len(e.Regions()) != 1 {
		t.Errorf("Expected region untouched, got %d regions", len(e.Regions()))
	}
}

func TestHitDefersSplitToNextTick(t *testing.T) {
	bounds := vmath.NewRect(0, 0, 80, 20)
	left, right := bounds.SplitVertical(40)

	splitting := NewBallRegion(testEpoch, right, []*Ball{
		{X: 45, Y: 4, VX: 3, Radius: 1},
		{X: 75, Y: 16, VX: -3, Radius: 1},
	})
	hitting := NewBallRegion(testEpoch, left, []*Ball{{X: 20, Y: 13, VY: -10, Radius: 1}})
	e := newTestEngine(bounds, splitting, hitting)

	e.StartHorizontalLine(testEpoch, 60, 10)
	e.StartHorizontalLine(testEpoch, 20, 10)

	res := e.Update(testEpoch.Add(3 * time.Second))
	if res.Hit == nil || res.Split {
		t.Fatalf("Expected hit only, got %+v", res)
	}
	if len(e.Regions()) != 2 {
		t.Fatalf("Expected split held back, got %d regions", len(e.Regions()))
	}

	res = e.Update(testEpoch.Add(3*time.Second + 16*time.Millisecond))
	if !res.Split {
		t.Fatalf("Expected deferred split, got %+v", res)
	}
	if len(e.Regions()) != 3 {
		t.Errorf("Expected 3 regions after deferred split, got %d", len(e.Regions()))
	}
}

func TestCatchUpIgnoresLineBeforeCreation(t *testing.T) {
	bounds := vmath.NewRect(0, 0, 80, 20)
	left, right := bounds.SplitVertical(40)

	hitting := NewBallRegion(testEpoch, left, []*Ball{{X: 20, Y: 13, VY: -10, Radius: 1}})
	// Crosses y=5 around 0.6s, long before the line below exists
	crossing := NewBallRegion(testEpoch, right, []*Ball{{X: 60, Y: 2, VY: 5, Radius: 1}})
	e := newTestEngine(bounds, hitting, crossing)

	e.StartHorizontalLine(testEpoch, 20, 10)
	now := testEpoch.Add(3 * time.Second)
	if res := e.Update(now); res.Hit == nil {
		t.Fatalf("Expected hit in the first region, got %+v", res)
	}
	if !crossing.LastUpdate().Equal(testEpoch) {
		t.Fatalf("Expected second region left behind by the aborted tick, got %v", crossing.LastUpdate())
	}

	if !e.StartHorizontalLine(now, 60, 5) {
		t.Fatal("Expected line to start in the lagging region")
	}
	res := e.Update(now.Add(16 * time.Millisecond))
	if res.Hit != nil {
		t.Fatalf("Expected no hit from steps before the line existed, got %+v", res.Hit)
	}
	if crossing.Line() == nil {
		t.Error("Expected line still growing")
	}
}

func TestEmptyChildIsFilled(t *testing.T) {
	bounds := vmath.NewRect(0, 0, 40, 20)
	ball := &Ball{X: 10, Y: 4, VX: 3, Radius: 1}
	e := newTestEngine(bounds, NewBallRegion(testEpoch, bounds, []*Ball{ball}))

	listener := &recordingListener{}
	e.SetListener(listener)

	e.StartHorizontalLine(testEpoch, 20, 10)
	res := e.Update(testEpoch.Add(time.Second))

	if !res.Split {
		t.Fatal("Expected split")
	}
	if len(e.Regions()) != 1 {
		t.Fatalf("Expected empty half dropped, got %d regions", len(e.Regions()))
	}
	if math.Abs(e.PercentageFilled()-0.5) > 1e-9 {
		t.Errorf("Expected 50%% filled, got %v", e.PercentageFilled())
	}
	if len(listener.areas) != 1 || math.Abs(listener.areas[0]-0.5) > 1e-9 {
		t.Errorf("Expected one area change of 0.5, got %v", listener.areas)
	}
}

func TestBallContactsKeepSpeed(t *testing.T) {
	bounds := vmath.NewRect(0, 0, 40, 20)
	a := &Ball{X: 10, Y: 10, VX: 10, Radius: 1}
	b := &Ball{X: 14, Y: 10, VX: -10, Radius: 1}
	r := NewBallRegion(testEpoch, bounds, []*Ball{a, b})

	u := r.Update(testEpoch.Add(200 * time.Millisecond))
	if u.Contacts == 0 {
		t.Fatal("Expected the balls to meet")
	}
	if a.VX >= 0 || b.VX <= 0 {
		t.Errorf("Expected balls to separate, got a.VX=%v b.VX=%v", a.VX, b.VX)
	}
	if math.Abs(a.Speed()-10) > 1e-9 || math.Abs(b.Speed()-10) > 1e-9 {
		t.Errorf("Speeds changed: %v, %v", a.Speed(), b.Speed())
	}
}

func TestResizeRebuilds(t *testing.T) {
	e := NewBallEngine(vmath.NewRect(0, 0, 40, 20), testOptions())
	e.Reset(testEpoch, 3, testEpoch)

	nb := vmath.NewRect(0, 0, 100, 50)
	e.Resize(testEpoch.Add(time.Second), nb)
	if e.Bounds() != nb || len(e.Regions()) != 1 || e.BallCount() != 3 {
		t.Errorf("Resize: bounds %v, %d regions, %d balls", e.Bounds(), len(e.Regions()), e.BallCount())
	}
}
