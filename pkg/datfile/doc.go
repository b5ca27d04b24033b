// Package datfile reads and writes airfoil coordinate files (.dat).
//
// The format is plain text: an optional first line holding the airfoil's
// name, followed by one "x y" pair per line in chord-fraction units. There
// is no count header, checksum, or version line.
//
//	NACA 2412
//	1.000000 0.001300
//	0.950000 0.011400
//	...
//
// [Read] also accepts Lednicer-layout files, where the line after the name
// holds the upper and lower point counts and each surface runs leading edge
// to trailing edge. These are converted to the Selig boundary walk (trailing
// edge, upper, leading edge, lower, trailing edge) that the rest of foilsweep
// expects.
package datfile
