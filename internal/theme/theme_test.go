package theme

import "testing"

func TestResolvePaletteAndTokens(t *testing.T) {
	f := File{
		Palette: map[string]string{"red": "#ff0000"},
		Tokens:  map[string]string{"error": "red"},
	}
	th, err := Resolve("t", f)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := th.Color("error"); got != (Color{R: 0xff}) {
		t.Errorf("Color(error) = %+v, want red", got)
	}
}

func TestResolveMissingFallsBack(t *testing.T) {
	th, err := Resolve("t", File{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := th.Color("nope"); got != Fallback {
		t.Errorf("Color(nope) = %+v, want Fallback", got)
	}
}

func TestResolveCircularReference(t *testing.T) {
	f := File{Tokens: map[string]string{"a": "b", "b": "c", "c": "a"}}
	_, err := Resolve("t", f)
	if err == nil {
		t.Fatal("expected circular reference error")
	}
	var cerr *CircularReferenceError
	if !asCircular(err, &cerr) {
		t.Fatalf("expected *CircularReferenceError, got %T: %v", err, err)
	}
	seen := map[string]bool{}
	for _, tok := range cerr.Chain {
		seen[tok] = true
	}
	for _, want := range []string{"a", "b", "c"} {
		if !seen[want] {
			t.Errorf("chain %v missing %q", cerr.Chain, want)
		}
	}
}

func asCircular(err error, target **CircularReferenceError) bool {
	if c, ok := err.(*CircularReferenceError); ok {
		*target = c
		return true
	}
	return false
}

func TestGradientEndpointsAndContinuity(t *testing.T) {
	f := File{
		Palette:   map[string]string{"a": "#000000", "b": "#ffffff"},
		Gradients: map[string][]string{"g": {"a", "b"}},
	}
	th, err := Resolve("t", f)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := th.Gradient("g", 0); got != (Color{}) {
		t.Errorf("Gradient(g,0) = %+v, want black", got)
	}
	if got := th.Gradient("g", 1); got != (Color{R: 255, G: 255, B: 255}) {
		t.Errorf("Gradient(g,1) = %+v, want white", got)
	}
	mid := th.Gradient("g", 0.5)
	if mid.R < 100 || mid.R > 155 {
		t.Errorf("Gradient(g,0.5).R = %d, want near 127", mid.R)
	}
}

func TestGradientClampsOutOfRange(t *testing.T) {
	f := File{
		Palette:   map[string]string{"a": "#000000", "b": "#ffffff"},
		Gradients: map[string][]string{"g": {"a", "b"}},
	}
	th, _ := Resolve("t", f)
	if got := th.Gradient("g", -5); got != th.Gradient("g", 0) {
		t.Errorf("Gradient(g,-5) should clamp to t=0")
	}
	if got := th.Gradient("g", 5); got != th.Gradient("g", 1) {
		t.Errorf("Gradient(g,5) should clamp to t=1")
	}
}

func TestSetThemeAtomicSwap(t *testing.T) {
	th, _ := Resolve("t", File{})
	SetTheme(th)
	if Active() != th {
		t.Errorf("Active() did not return the set theme")
	}
}
