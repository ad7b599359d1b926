// Package model defines the decoded-data types shared across the module:
// the pixel-class alphabet and the dense single-channel bitmap plane that
// layer decoding produces and compositing consumes.
//
// A [Bitmap] is not yet colorized. Each cell holds one [PixelClass]; mapping
// classes to concrete output colors is the render package's job, which keeps
// the decoder independent of any palette choice and lets vector tracers work
// on ink classes directly.
package model
