// Package render turns chart specifications into image files.
//
// # Overview
//
// The chart package describes what to draw; this package decides how. It
// provides three output formats for every chart kind:
//
//   - PNG: raster output drawn with fogleman/gg ([ToPNG])
//   - SVG: standalone vector output ([ToSVG])
//   - JSON: the resolved geometry for external tools and tests ([ToJSON])
//
// [Render] dispatches on a format name:
//
//	data, err := render.Render(spec, render.FormatPNG)
//
// # Sinks
//
// The pipeline hands finished specs to a [Sink]. [FileSink] renders and
// writes them into an output directory that must already exist;
// [MemorySink] only records them, which lets tests inspect the exact specs a
// run produced without touching the filesystem.
package render
