package tree

import "testing"

func TestPositionCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		p, q Position
		want int
	}{
		{"equal empty", Position{}, Position{}, 0},
		{"equal", Position{0, 1}, Position{0, 1}, 0},
		{"index order", Position{0}, Position{1}, -1},
		{"index order reversed", Position{1}, Position{0}, 1},
		{"prefix below extension", Position{0}, Position{0, 5}, -1},
		{"extension above prefix", Position{0, 5}, Position{0}, 1},
		{"root below everything", Position{}, Position{0}, -1},
		{"divergence beats length", Position{0, 2}, Position{1}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Compare(tt.q); got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.p, tt.q, got, tt.want)
			}
		})
	}
}

func TestPositionEqual(t *testing.T) {
	t.Parallel()

	if !(Position{0, 1}).Equal(Position{0, 1}) {
		t.Error("expected equal positions")
	}
	if (Position{0}).Equal(Position{0, 0}) {
		t.Error("prefix must not equal extension")
	}
}

func TestPositionIsPrefixOf(t *testing.T) {
	t.Parallel()

	if !(Position{}).IsPrefixOf(Position{3, 1}) {
		t.Error("root is a prefix of everything")
	}
	if !(Position{0, 1}).IsPrefixOf(Position{0, 1}) {
		t.Error("a position is a prefix of itself")
	}
	if (Position{0, 1}).IsPrefixOf(Position{0}) {
		t.Error("longer path cannot be a prefix of a shorter one")
	}
}

func TestPositionString(t *testing.T) {
	t.Parallel()

	if got := (Position{}).String(); got != "()" {
		t.Errorf("String() = %q, want ()", got)
	}
	if got := (Position{0, 2, 1}).String(); got != "(0,2,1)" {
		t.Errorf("String() = %q, want (0,2,1)", got)
	}
}
