package planner

// Glyphs used by the layout diagram.
const (
	idleGlyph      = '.'
	collisionGlyph = '!'

	// DefaultPlanWidth is the diagram width used when PlanRows or
	// PrintMemoryPlan is given a non-positive one.
	DefaultPlanWidth = 80
)

// PlanRows renders the computed plan as an ascii-art diagram: one
// fixed-width row per time step from 0 to the largest lastTimeUsed, where
// each column covers a proportional slice of the arena address range. A
// buffer live at a step paints its columns with '0'+index%10; cells
// claimed by two live buffers (which would indicate a planner bug) show
// '!'; unused cells show '.'.
//
// This is purely a debugging aid with no contract beyond faithfully
// reflecting the computed plan.
func (g *GreedyPlanner) PlanRows(width int) []string {
	if width <= 0 {
		width = DefaultPlanWidth
	}
	g.calculateOffsetsIfNeeded()

	// The denominator never drops below the row width so tiny plans do
	// not divide by zero or stretch a few bytes across the whole row.
	maxSize := width
	maxTime := 0
	for i := 0; i < g.bufferCount; i++ {
		req := &g.requirements[i]
		if end := g.offsets[i] + req.size; end > maxSize {
			maxSize = end
		}
		if req.lastTimeUsed > maxTime {
			maxTime = req.lastTimeUsed
		}
	}

	rows := make([]string, 0, maxTime+1)
	line := make([]byte, width)
	for t := 0; t <= maxTime; t++ {
		for c := range line {
			line[c] = idleGlyph
		}
		for i := 0; i < g.bufferCount; i++ {
			req := &g.requirements[i]
			if t < req.firstTimeUsed || t > req.lastTimeUsed {
				continue
			}
			start := g.offsets[i] * width / maxSize
			end := (g.offsets[i] + req.size) * width / maxSize
			for n := start; n < end; n++ {
				if line[n] == idleGlyph {
					line[n] = byte('0' + i%10)
				} else {
					line[n] = collisionGlyph
				}
			}
		}
		rows = append(rows, string(line))
	}
	return rows
}

// PrintMemoryPlan emits the layout diagram through the planner's reporter,
// one row per line.
func (g *GreedyPlanner) PrintMemoryPlan(width int) {
	for _, row := range g.PlanRows(width) {
		g.reporter.Report("%s", row)
	}
}
