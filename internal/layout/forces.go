package layout

import "math"

// applyLinks pulls linked nodes toward their rest distance. The correction
// is split between the endpoints by degree so hubs move less.
func (e *Engine) applyLinks() {
	for _, l := range e.links {
		s := &e.nodes[l.source]
		t := &e.nodes[l.target]

		x := t.X + t.VX - s.X - s.VX
		if x == 0 {
			x = e.jiggle()
		}
		y := t.Y + t.VY - s.Y - s.VY
		if y == 0 {
			y = e.jiggle()
		}

		d := math.Sqrt(x*x + y*y)
		k := (d - l.distance) / d * e.alpha * l.strength
		x *= k
		y *= k

		t.VX -= x * l.bias
		t.VY -= y * l.bias
		s.VX += x * (1 - l.bias)
		s.VY += y * (1 - l.bias)
	}
}

// applyCharge applies the pairwise inverse-distance force. A negative
// strength repels.
func (e *Engine) applyCharge() {
	strength := e.cfg.ChargeStrength
	if strength == 0 {
		return
	}
	for i := range e.nodes {
		n := &e.nodes[i]
		for j := range e.nodes {
			if i == j {
				continue
			}
			o := &e.nodes[j]
			x := o.X - n.X
			y := o.Y - n.Y
			l := x*x + y*y
			if x == 0 {
				x = e.jiggle()
				l += x * x
			}
			if y == 0 {
				y = e.jiggle()
				l += y * y
			}
			if l < distanceMin2 {
				l = math.Sqrt(distanceMin2 * l)
			}
			n.VX += x * strength * e.alpha / l
			n.VY += y * strength * e.alpha / l
		}
	}
}

// applyCenter translates every node so the centroid moves toward the
// center target. It shifts positions, not velocities, so the relative
// layout is unchanged.
func (e *Engine) applyCenter() {
	n := len(e.nodes)
	if n == 0 || e.cfg.CenterStrength == 0 {
		return
	}
	var sx, sy float64
	for _, node := range e.nodes {
		sx += node.X
		sy += node.Y
	}
	sx = (sx/float64(n) - e.cx) * e.cfg.CenterStrength
	sy = (sy/float64(n) - e.cy) * e.cfg.CenterStrength
	for i := range e.nodes {
		e.nodes[i].X -= sx
		e.nodes[i].Y -= sy
	}
}

// applyCollide pushes apart nodes whose predicted positions are closer
// than twice the collision radius. Equal radii split the push evenly.
func (e *Engine) applyCollide() {
	radius := e.cfg.CollideRadius
	if radius <= 0 || e.cfg.CollideStrength == 0 {
		return
	}
	r := 2 * radius
	for i := range e.nodes {
		n := &e.nodes[i]
		xi := n.X + n.VX
		yi := n.Y + n.VY
		for j := i + 1; j < len(e.nodes); j++ {
			o := &e.nodes[j]
			x := xi - o.X - o.VX
			y := yi - o.Y - o.VY
			l := x*x + y*y
			if l >= r*r {
				continue
			}
			if x == 0 {
				x = e.jiggle()
				l += x * x
			}
			if y == 0 {
				y = e.jiggle()
				l += y * y
			}
			d := math.Sqrt(l)
			k := (r - d) / d * e.cfg.CollideStrength
			x *= k
			y *= k
			n.VX += x * 0.5
			n.VY += y * 0.5
			o.VX -= x * 0.5
			o.VY -= y * 0.5
		}
	}
}
