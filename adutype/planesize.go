package adutype

import "github.com/mewkiz/pkg/errutil"

// BlockSize is the edge length, in pixels, of a square block tile.
const BlockSize = 16

// BlockSizeArea is the number of pixel positions in a block (BlockSize^2).
const BlockSizeArea = BlockSize * BlockSize

// PlaneSize describes the spatial and channel geometry of an event stream.
type PlaneSize struct {
	Width    uint16
	Height   uint16
	Channels uint8
}

// NewPlaneSize validates and returns a PlaneSize. Width, Height, and
// Channels must all be strictly positive, mirroring how meta.NewStreamInfo
// rejects a zero sample rate at construction rather than later.
func NewPlaneSize(width, height uint16, channels uint8) (PlaneSize, error) {
	if width == 0 || height == 0 || channels == 0 {
		return PlaneSize{}, errutil.Newf("adutype.NewPlaneSize: width, height, and channels must all be strictly positive; got %dx%dx%d", width, height, channels)
	}
	return PlaneSize{Width: width, Height: height, Channels: channels}, nil
}

// CubeWidth returns the number of cube columns spanning the plane.
func (p PlaneSize) CubeWidth() int {
	return ceilDiv(int(p.Width), BlockSize)
}

// CubeHeight returns the number of cube rows spanning the plane.
func (p PlaneSize) CubeHeight() int {
	return ceilDiv(int(p.Height), BlockSize)
}

// NumCubes returns the total number of cubes spanning the plane.
func (p PlaneSize) NumCubes() int {
	return p.CubeWidth() * p.CubeHeight()
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
