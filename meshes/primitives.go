package meshes

import "github.com/bloeys/nplay/meshes/geometry"

func NewCube() (Mesh, error) {
	return Upload(geometry.Cube())
}

func NewSquare() (Mesh, error) {
	return Upload(geometry.Square())
}
