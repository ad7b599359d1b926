// Package render turns decoded pixel-class planes into colorized rasters
// and composites a page's layers into one bitmap.
//
// Colorization and compositing are separate steps on purpose: vector
// tracers consume the pre-colorization plane, and compositing only needs
// to know which pixels paint. The transparency sentinel is carried as a
// fully transparent NRGBA pixel, so "does this layer paint here" is a
// plain alpha test all the way down.
package render
