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

// Package test contains helper functions to remove common boilerplate to
// make testing easier.
//
// The Expect group of functions record a test error on failure but allow the
// test to continue. The Demand group of functions are the same except that
// failure is a test fatality.
//
// The success and failure of a value is decided by its type. For bool, true
// is a success. For error, nil is a success. A nil value of any other kind is
// also counted as a success, which matches the common meaning of a nil error
// return.
//
// All functions in both groups accept optional trailing tags. Tags are
// printed before the failure message and are useful for identifying which
// stage of a long test sequence has failed.
//
// The Writer type implements the io.Writer interface and should be used to
// capture output. The Writer.Compare() function can then be used to test for
// equality.
package test
