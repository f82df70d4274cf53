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

// Package statsview provides an HTTP server running locally offering runtime
// statistics. The underlying functionality is provided by the
// "github.com/go-echarts/statsview" package and is only built when the
// statsview build constraint is present; otherwise Launch() is a stub.
//
// After launch, graphical statistics are viewable at:
//
//	localhost:12800/debug/statsview
//
// And standard Go pprof statistics at:
//
//	localhost:12800/debug/pprof/
package statsview
