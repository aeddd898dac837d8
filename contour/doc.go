// Package contour traces iso-intensity polylines over a rank-2 field.
//
// Each level is processed independently:
//
//   - every 2x2 cell is classified against the level (marching squares)
//   - crossed cell edges are linearly interpolated into vertices
//   - vertices closer than the link distance are grouped into polylines
//
// The grouping reproduces the reference distance rule (2 grid units) but the
// default [LinkSpatialIndex] strategy only visits vertices in neighbouring
// grid buckets, so typical inputs link in linear time. [LinkPairwise] keeps
// the quadratic scan for comparison.
//
// Saddle cells (cases 5 and 10) emit two independent segments without any
// disambiguation. The order of polylines within a level, and of points within
// a polyline, is not part of the contract; per-level vertex counts are.
//
// [Tracer.GLList] packs the polylines of several fields into flat
// vertex/index/colour buffers for line rendering.
package contour
