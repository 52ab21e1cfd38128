// Package pkg provides the core libraries for shapekit shapekey tooling.
//
// # Overview
//
// Shapekit manages the shapekey lists of avatar meshes through scene
// documents. The pkg directory is organized into four main areas:
//
//  1. [shapekey] - The ordered, name-unique collection and its transforms
//  2. [scene] - The scene document model, codec, and storage backends
//  3. [ops] - Operator payloads (check, fill, split, tidy, prune)
//  4. [roster], [pending], [render] - Supporting configuration, state, and
//     visualization
//
// # Architecture
//
// The typical data flow:
//
//	Scene document (JSON)
//	         ↓
//	scene.ReadFile → Object.Collection
//	         ↓
//	ops request (Validate, then Apply)
//	         ↓
//	shapekey/transform mutation
//	         ↓
//	Object.SetKeys → scene.WriteFile
//
// The CLI and the HTTP server drive the same operator layer; only scene
// storage (files vs. a scene store) and pending-report storage (files vs.
// memory or Redis) differ between the two surfaces.
package pkg
