// Package raster converts lines, circles and polar segments into integer grid cells.
//
// The package holds no canvas. Every shape is emitted through the Plotter bound
// to a Rasterizer, one call per cell, so the same geometry can target a terminal,
// a test recorder or an in-memory buffer.
package raster
