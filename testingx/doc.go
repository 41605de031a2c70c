// Package testingx provides testing helpers and fakes for hatch modules.
//
// # Overview
//
// testingx contains small utilities to speed up unit tests: a mock logger
// with capture and assertions, fixture helpers that lay out project trees
// on disk, and assertions for core/errors codes.
//
// # Layer
//
// testingx is an auxiliary package for tests only and depends on core.
package testingx
