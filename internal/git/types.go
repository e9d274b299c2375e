package git

import "fmt"

// Divergence counts the commits unique to each side of a local/remote pair.
type Divergence struct {
	Ahead  int
	Behind int
}

func (d Divergence) String() string {
	return fmt.Sprintf("A: %d, B: %d", d.Ahead, d.Behind)
}
