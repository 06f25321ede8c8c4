// Package mandel is the rendering engine of an interactive Mandelbrot set
// viewer.
//
// # Overview
//
// A [Controller] owns the current [Viewport], a [FrameBuffer] and the view
// [History]. Commands issued from the user interface change the view, the
// scan [Strategy] or the buffer size; each change cancels the scan in flight
// and schedules a new one. [Controller.Run] is the background loop that
// performs the scans.
//
// # Quick Start
//
//	ctl := mandel.NewController(mandel.WithSize(640, 480))
//	go ctl.Run(ctx)
//
//	ctl.Zoom(100, 100, 300, 250) // drag rectangle in pixels
//	ctl.Undo()
//	img := ctl.Export()
//
// # Coordinate System
//
// Pixel (0, 0) is the top-left corner of the buffer. Column x maps linearly
// onto [Min.Re, Max.Re] and row y onto [Max.Im, Min.Im], so the imaginary
// axis points up on screen.
//
// # Scan Strategies
//
//   - [LineByLine] evaluates every pixel in raster order.
//   - [ProgressiveRefinement] shows a blocky preview that sharpens pass by pass.
//   - [DivideAndConquer] skips the interior of rectangles with a uniform
//     border. This is an approximation and may paint over small enclosed
//     structures.
//
// # Concurrency
//
// Pixels are stored as atomic 32-bit words, so readers such as
// [Controller.Export] or a window presenting the buffer never see a torn
// pixel and never block the render loop. Cancellation is cooperative: every
// strategy polls its context before each pixel write.
package mandel
