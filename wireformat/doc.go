// Package wireformat defines the generic structural value that crosses the
// guest/host boundary. A Value is a tagged variant over null, booleans,
// numbers, strings, ordered sequences and ordered records. Every result the
// boundary returns is first converted into a Value and only then encoded,
// so the shape of a result can change without touching the boundary code.
//
// Numbers are restricted to what a JavaScript host can represent exactly:
// integers within ±(2^53-1) and finite floats. Constructors reject anything
// else with a *RangeError instead of truncating.
package wireformat
