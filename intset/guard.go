// Copyright 2024 The fastset Authors
// This file is part of fastset.
//
// fastset is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// fastset is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with fastset. If not, see <http://www.gnu.org/licenses/>.

package intset

import "github.com/pkg/errors"

// Guard catches the one genuine programmer error every index's Log is
// exposed to: being read, written, or applied against a Base other than the
// one it was first used with. A Log is a write-once delta computed against a
// specific Base; mixing bases produces overrides that don't correspond to
// anything in the base being mutated.
//
// Guard is embedded by every index's Log type. It binds to whichever *Base
// it first sees and panics on any later call with a different one. The
// comparison is a pointer identity check boxed in an interface, so it is
// free until a Log is actually misused.
type Guard struct {
	owner any
}

// Bind records base as g's owner on first use and panics if base differs
// from a previously recorded owner.
func (g *Guard) Bind(base any) {
	if g.owner == nil {
		g.owner = base
		return
	}
	if g.owner != base {
		panic(errors.Errorf("fastset: log used against a different base than it was built or last applied against (got %p, want %p)", base, g.owner))
	}
}

// Reset releases g's bound owner, for reuse after Apply has consumed the Log
// it guards.
func (g *Guard) Reset() {
	g.owner = nil
}
