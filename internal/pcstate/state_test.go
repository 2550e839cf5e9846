package pcstate

import "testing"

func TestStateLessOrdersByYThenXThenModeThenDirection(t *testing.T) {
	cases := []struct {
		name     string
		a, b     State
		expected bool
	}{
		{"lower y wins", State{Y: 0, X: 9}, State{Y: 1, X: 0}, true},
		{"equal y, lower x wins", State{Y: 2, X: 1}, State{Y: 2, X: 2}, true},
		{"equal y and x, command before string", State{Y: 0, X: 0, Mode: Command}, State{Y: 0, X: 0, Mode: String}, true},
		{"equal y, x and mode, right before down", State{Direction: Right}, State{Direction: Down}, true},
		{"identical states are not less", Default, Default, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Less(c.b); got != c.expected {
				t.Errorf("%+v.Less(%+v) = %v, want %v", c.a, c.b, got, c.expected)
			}
		})
	}
}

func TestCursorStepWrapsAtBounds(t *testing.T) {
	bounds := Bounds{Width: 3, Height: 2}

	c := NewCursor(bounds, State{X: 2, Y: 0, Direction: Right})
	if got := c.Step().State(); got.X != 0 {
		t.Errorf("stepping right off the edge: X = %d, want 0", got.X)
	}

	c = NewCursor(bounds, State{X: 0, Y: 0, Direction: Left})
	if got := c.Step().State(); got.X != 2 {
		t.Errorf("stepping left off the edge: X = %d, want 2", got.X)
	}

	c = NewCursor(bounds, State{X: 0, Y: 1, Direction: Down})
	if got := c.Step().State(); got.Y != 0 {
		t.Errorf("stepping down off the edge: Y = %d, want 0", got.Y)
	}

	c = NewCursor(bounds, State{X: 0, Y: 0, Direction: Up})
	if got := c.Step().State(); got.Y != 1 {
		t.Errorf("stepping up off the edge: Y = %d, want 1", got.Y)
	}
}

func TestCursorOnOneByOneGridWrapsToItself(t *testing.T) {
	bounds := Bounds{Width: 1, Height: 1}
	c := NewCursor(bounds, State{})

	for _, d := range []Direction{Right, Down, Left, Up} {
		if got := c.Go(d).State(); got.X != 0 || got.Y != 0 {
			t.Errorf("Go(%v) on 1x1 grid = (%d,%d), want (0,0)", d, got.X, got.Y)
		}
	}
}

func TestCursorToggleMode(t *testing.T) {
	c := NewCursor(Bounds{Width: 1, Height: 1}, State{Mode: Command})
	if got := c.ToggleMode().State().Mode; got != String {
		t.Errorf("ToggleMode from Command = %v, want String", got)
	}
	if got := c.ToggleMode().ToggleMode().State().Mode; got != Command {
		t.Errorf("ToggleMode twice = %v, want Command", got)
	}
}
