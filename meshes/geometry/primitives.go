package geometry

// Cube is a unit cube with its min corner at the origin, unwrapped as a cross
// so a single texture covers all six faces. Vertices are shared between faces
// where the UVs allow it, which gives 14 vertices for 36 indices.
func Cube() Data {

	type vert struct {
		x, y, z float32
		u, v    float32
	}

	verts := [14]vert{
		{0, 1, 0, 0.00, 0.66},
		{0, 0, 0, 0.25, 0.66},
		{1, 1, 0, 0.00, 0.33},
		{1, 0, 0, 0.25, 0.33},
		{0, 0, 1, 0.50, 0.66},
		{1, 0, 1, 0.50, 0.33},
		{0, 1, 1, 0.75, 0.66},
		{1, 1, 1, 0.75, 0.33},
		{0, 1, 0, 1.00, 0.66},
		{1, 1, 0, 1.00, 0.33},
		{0, 1, 0, 0.25, 1.00},
		{0, 1, 1, 0.50, 1.00},
		{1, 1, 0, 0.25, 0.00},
		{1, 1, 1, 0.50, 0.00},
	}

	indices := []uint32{
		0, 2, 1, // front
		1, 2, 3,
		4, 5, 6, // back
		5, 7, 6,
		6, 7, 8, // top
		7, 9, 8,
		1, 3, 4, // bottom
		3, 5, 4,
		1, 11, 10, // left
		1, 4, 11,
		3, 12, 5, // right
		5, 12, 13,
	}

	vertices := make([]float32, 0, len(verts)*5)
	for _, v := range verts {
		vertices = append(vertices, v.x, v.y, v.z, v.u, v.v)
	}

	d := Data{Name: "cube", Layout: LayoutPosUV}
	d.Append(vertices, indices)
	return d
}

// Square is a unit quad in the XY plane centered on the origin.
func Square() Data {

	d := Data{Name: "square", Layout: LayoutPosUV}
	d.Append(
		[]float32{
			0.5, 0.5, 0, 1, 1,
			0.5, -0.5, 0, 1, 0,
			-0.5, -0.5, 0, 0, 0,
			-0.5, 0.5, 0, 0, 1,
		},
		[]uint32{0, 1, 2, 2, 3, 0},
	)

	return d
}
