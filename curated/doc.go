// This file is part of LiteX-Go.
//
// LiteX-Go is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// LiteX-Go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with LiteX-Go.  If not, see <https://www.gnu.org/licenses/>.

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and are created with the
// Errorf() function.
//
// The pattern string given to Errorf() doubles as the error's identity. The
// Is() function compares an error against a pattern, while Has() checks for
// the pattern anywhere in the error chain:
//
//	err := curated.Errorf("clkgen: timeout waiting for %s", "LOCKED")
//
//	if curated.Has(err, "clkgen: timeout waiting for %s") {
//		// handle the timeout
//	}
//
// Sentinel patterns should be stored as a const string in the package that
// creates them, suitably named and commented.
//
// The Error() function normalises the message chain so that duplicate
// adjacent parts, as defined by the ': ' separator, appear only once. This
// means errors can be wrapped freely at every level of the call stack without
// the final message stuttering.
//
// IsAny() answers whether an error is curated at all. An uncurated error is
// one the program did not expect to see and is best treated as fatal.
package curated
