// Package pages builds the typed metadata model of a notebook: the page
// and layer descriptors resolved from the container's address table.
//
// Everything is built in one pass at open time by [Parse]. Required keys
// are validated then, so a *Notebook that exists is internally consistent:
// every address has been range-checked and every page knows its layer
// descriptors. The model is immutable after Parse and owns no bitmap data;
// layer descriptors carry addresses into the raw container, and decoding
// happens elsewhere, on demand.
package pages
