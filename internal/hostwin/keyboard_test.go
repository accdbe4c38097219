//go:build cgo

package hostwin

import (
	"testing"

	"psx-scene-renderer/internal/input"
)

func TestEveryButtonBound(t *testing.T) {
	seen := map[string]input.Button{}
	for b := input.Button(0); b < input.NumButtons; b++ {
		if len(keymap[b]) == 0 {
			t.Fatalf("button %v has no key", b)
		}
		for _, k := range keymap[b] {
			if other, ok := seen[k.String()]; ok {
				t.Fatalf("key %v bound to both %v and %v", k, other, b)
			}
			seen[k.String()] = b
		}
	}
}
