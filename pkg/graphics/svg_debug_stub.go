//go:build !svgdebug

package graphics

import "unsafe"

// svgDebugTrack is a no-op in release builds; see svg_debug.go (-tags svgdebug).
func svgDebugTrack(ptr unsafe.Pointer) {}

// svgDebugUntrack is a no-op in release builds; see svg_debug.go (-tags svgdebug).
func svgDebugUntrack(ptr unsafe.Pointer) {}

// SVGDebugCheckDestroy is a no-op in release builds; see svg_debug.go (-tags svgdebug).
func SVGDebugCheckDestroy(ptr unsafe.Pointer) {}
