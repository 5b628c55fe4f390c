// Package viz draws the animations in a terminal.
//
// Pen commands land on a braille [Canvas] through [Surface], which maps
// turtle coordinates onto 2x4 dots per cell. Text commands are collected
// as labels and shown in a side panel instead of on the canvas.
//
//   - [App]: launcher with animation and preset selection
//   - [CurveModel]: contour and rose animations on a timer
//   - [NeuralModel]: the layer configurator, redrawn on key presses
//
// # Key Bindings
//
//	Space - Pause/Resume
//	+/-   - Change speed
//	T     - Cycle colour themes
//	G     - Toggle GIF recording
//	S     - Save the current frame as SVG
//	?     - Show help overlay
//
// # Recording
//
// GIF recordings and SVG snapshots are written to the configured data
// directory.
package viz
