// SPDX-License-Identifier: MIT
package arbor

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"gitlab.com/ashpool/arbor/lexer"
)

func TestSerialize(t *testing.T) {
	type shape struct {
		root     int
		children map[int][]int
	}

	tests := []struct {
		name  string
		shape shape
		want  string
	}{
		{
			name:  "single child",
			shape: shape{root: 2, children: map[int][]int{2: {3}}},
			want:  "2,3))",
		},
		{
			name:  "two children",
			shape: shape{root: 2, children: map[int][]int{2: {3, 4}}},
			want:  "2,3),4))",
		},
		{
			name:  "nested",
			shape: shape{root: 1, children: map[int][]int{1: {2, 5}, 2: {3, 4}}},
			want:  "1,2,3),4)),5))",
		},
		{
			name:  "root only",
			shape: shape{root: 9},
			want:  "9)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := New(tt.shape.root)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			muts := map[int]NodeMut[int]{}
			root, _ := tree.RootMut()
			muts[tt.shape.root] = root

			var grow func(parent int)
			grow = func(parent int) {
				for _, value := range tt.shape.children[parent] {
					child, err := muts[parent].Append(value)
					if err != nil {
						t.Fatalf("NodeMut.Append() error = %v", err)
					}
					muts[value] = child
					grow(value)
				}
			}
			grow(tt.shape.root)

			got, err := Serialize(context.Background(), tree, &lexer.Opts{})
			if err != nil {
				t.Errorf("Serialize() error = %v", err)
				return
			}
			if got != tt.want {
				t.Errorf("Serialize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerialize_EmptyTree(t *testing.T) {
	tree, err := New("root")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	tree.Clear()

	if _, err = Serialize(context.Background(), tree, &lexer.Opts{}); err != ErrEmptyTree {
		t.Errorf("Serialize() error = %v, want %v", err, ErrEmptyTree)
	}
}

func TestSerialize_Roundtrip(t *testing.T) {
	tree, _ := buildScenario(t)

	ctx := context.Background()

	serialized, err := Serialize(ctx, tree, &lexer.Opts{})
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	rebuilt, err := Deserialize[string](ctx, []lexer.Option{
		lexer.WithSource(strings.NewReader(serialized)),
	})
	if err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}

	wantRoot, _ := tree.Root()
	gotRoot, err := rebuilt.Root()
	if err != nil {
		t.Fatalf("Tree.Root() error = %v", err)
	}

	want := wantRoot.Descendants().Collect().Values()
	got := gotRoot.Descendants().Collect().Values()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("roundtrip pre-order = %v, want %v", got, want)
	}
}
