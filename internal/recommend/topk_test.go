// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package recommend

import "testing"

func TestTopKSelection(t *testing.T) {
	t.Run("keeps highest scores in descending order", func(t *testing.T) {
		sel := newTopK(3)
		sel.Add(1, 2.0)
		sel.Add(2, 5.0)
		sel.Add(3, 1.0)
		sel.Add(4, 4.0)
		sel.Add(5, 3.0)

		got := sel.Sorted()
		wantIDs := []int{2, 4, 5}
		if len(got) != len(wantIDs) {
			t.Fatalf("len = %d, want %d", len(got), len(wantIDs))
		}
		for i, want := range wantIDs {
			if got[i].id != want {
				t.Errorf("got[%d].id = %d, want %d", i, got[i].id, want)
			}
		}
	})

	t.Run("fewer entries than limit", func(t *testing.T) {
		sel := newTopK(10)
		sel.Add(7, 1.5)
		got := sel.Sorted()
		if len(got) != 1 || got[0].id != 7 {
			t.Fatalf("got = %v", got)
		}
	})

	t.Run("ties keep insertion order", func(t *testing.T) {
		sel := newTopK(2)
		sel.Add(1, 3.0)
		sel.Add(2, 3.0)
		sel.Add(3, 3.0)

		got := sel.Sorted()
		if got[0].id != 1 || got[1].id != 2 {
			t.Errorf("got ids %d,%d, want 1,2", got[0].id, got[1].id)
		}
	})

	t.Run("equal score never displaces earlier entry", func(t *testing.T) {
		sel := newTopK(1)
		sel.Add(1, 4.0)
		sel.Add(2, 4.0)

		got := sel.Sorted()
		if got[0].id != 1 {
			t.Errorf("got id %d, want 1", got[0].id)
		}
	})
}
