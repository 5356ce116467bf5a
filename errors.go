// Copyright (C) 2022, VigilantDoomer
//
// This file is part of VigilantBSP program.
//
// VigilantBSP is free software: you can redistribute it
// and/or modify it under the terms of GNU General Public License
// as published by the Free Software Foundation, either version 2 of
// the License, or (at your option) any later version.
//
// VigilantBSP is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with VigilantBSP.  If not, see <https://www.gnu.org/licenses/>.

// errors.go
package brushbsp

import "fmt"

// InvariantError is raised when plane bookkeeping breaks an invariant the
// builder depends on to terminate and produce a correct tree - e.g.
// selecting a plane one of the node's ancestors already split on. These
// indicate a bug in the caller or in this package, not a bad map; BuildTree
// recovers a panic of this type at its single entry point and returns it
// as an error rather than crashing the whole compiler.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return "brushbsp: invariant violation: " + e.Message
}

func invariantf(format string, args ...any) {
	panic(&InvariantError{Message: fmt.Sprintf(format, args...)})
}
