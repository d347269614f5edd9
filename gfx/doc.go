// Package gfx is a small software 3D engine: geometries, materials, a node
// tree with parent/child attachment, a perspective camera and a fixed-pipeline
// rasterizer that draws into a caller-provided Target.
//
// Pipeline (fixed):
//
//	Scene → Node transforms → Projection → Near-plane rejection → Rasterization → Target.
//
// Opaque meshes and lines are drawn first with depth writes; translucent
// materials are blended afterwards with depth test only. The renderer keeps
// its depth buffer between frames and does not allocate in the hot path.
//
// All math is float32 (see Scalar).
package gfx
