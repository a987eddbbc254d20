package cfg

// Loop describes one natural loop of the graph. Loops are owned by the
// graph and compared by identity; two blocks are in the same loop exactly
// when their Loop pointers are equal.
type Loop struct {
	header   Block
	parent   *Loop
	children []*Loop

	// blocks is every block whose innermost enclosing loop is this loop
	// or one of its descendants; the header is blocks[0].
	blocks []Block
	// exits are the first blocks outside the loop reachable from inside.
	exits []Block

	index     int
	depth     int
	backedges int
}

// Header returns the loop's unique entry block.
func (l *Loop) Header() Block { return l.header }

// Parent returns the innermost enclosing loop, or nil for an outermost
// loop.
func (l *Loop) Parent() *Loop { return l.parent }

// Children returns the loops nested directly inside this one.
func (l *Loop) Children() []*Loop { return l.children }

// Blocks returns the loop's member blocks; the header comes first.
func (l *Loop) Blocks() []Block { return l.blocks }

// Exits returns the blocks control reaches when leaving the loop.
func (l *Loop) Exits() []Block { return l.exits }

// Index is the loop's position in the graph's Loops() slice.
func (l *Loop) Index() int { return l.index }

// Depth is the nesting depth; an outermost loop has depth 1.
func (l *Loop) Depth() int { return l.depth }

// NumBackedges returns the number of edges jumping back to the header.
func (l *Loop) NumBackedges() int { return l.backedges }

// Contains reports whether b belongs to this loop or a loop nested in it.
func (l *Loop) Contains(b Block) bool {
	for inner := b.Loop(); inner != nil; inner = inner.parent {
		if inner == l {
			return true
		}
	}
	return false
}
