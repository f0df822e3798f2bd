// SPDX-License-Identifier: MIT
package arbor

import (
	"reflect"
	"testing"
)

func TestNodeRef_Descendants(t *testing.T) {
	tree, _ := buildScenario(t)
	root, _ := tree.Root()

	want := []string{"hello", "world", "trees", "are", "cool"}
	if got := root.Descendants().Collect().Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("Descendants() = %v, want %v", got, want)
	}

	// Separately obtained cursors are independent & restartable.
	first, second := root.Descendants(), root.Descendants()
	if _, ok := first.Next(); !ok {
		t.Fatalf("Descendants().Next() exhausted immediately")
	}
	if got := second.Collect().Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("second Descendants() = %v, want %v untouched by the first", got, want)
	}
}

func TestNodeRef_Ancestors(t *testing.T) {
	tree, ids := buildScenario(t)

	cool, err := tree.Get(ids["cool"])
	if err != nil {
		t.Fatalf("Tree.Get() error = %v", err)
	}

	want := []string{"are", "trees", "hello"}
	if got := cool.Ancestors().Collect().Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("Ancestors() = %v, want %v", got, want)
	}

	root, _ := tree.Root()
	if got := root.Ancestors().Collect(); len(got) != 0 {
		t.Errorf("root Ancestors() = %v, want empty", got.Values())
	}
}

func TestNodeRef_Children(t *testing.T) {
	tree, _ := buildScenario(t)
	root, _ := tree.Root()

	want := []string{"world", "trees"}
	if got := root.Children().Collect().Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("Children() = %v, want %v", got, want)
	}
}

func TestNodeRef_Siblings(t *testing.T) {
	tree, err := New("root")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	root, _ := tree.RootMut()
	for _, value := range []string{"a", "b", "c", "d"} {
		if _, err = root.Append(value); err != nil {
			t.Fatalf("NodeMut.Append() error = %v", err)
		}
	}

	refB, _ := root.AsRef().FirstChild()
	refB, _ = refB.NextSibling()

	if got := refB.NextSiblings().Collect().Values(); !reflect.DeepEqual(got, []string{"c", "d"}) {
		t.Errorf("NextSiblings() = %v, want [c d]", got)
	}
	if got := refB.PrevSiblings().Collect().Values(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("PrevSiblings() = %v, want [a]", got)
	}
}

func TestNodeRef_Navigation(t *testing.T) {
	tree, ids := buildScenario(t)

	trees, err := tree.Get(ids["trees"])
	if err != nil {
		t.Fatalf("Tree.Get() error = %v", err)
	}

	if parent, ok := trees.Parent(); !ok || parent.Value() != "hello" {
		t.Errorf("Parent() = %q, want hello", parent.Value())
	}
	if first, ok := trees.FirstChild(); !ok || first.Value() != "are" {
		t.Errorf("FirstChild() = %q, want are", first.Value())
	}
	if last, ok := trees.LastChild(); !ok || last.Value() != "are" {
		t.Errorf("LastChild() = %q, want are", last.Value())
	}
	if prev, ok := trees.PrevSibling(); !ok || prev.Value() != "world" {
		t.Errorf("PrevSibling() = %q, want world", prev.Value())
	}
	if _, ok := trees.NextSibling(); ok {
		t.Errorf("NextSibling() reported a sibling for the last child")
	}
}

func TestSortedValues(t *testing.T) {
	tree, _ := buildScenario(t)
	root, _ := tree.Root()

	want := []string{"are", "cool", "hello", "trees", "world"}
	if got := SortedValues(root.Descendants().Collect()); !reflect.DeepEqual(got, want) {
		t.Errorf("SortedValues() = %v, want %v", got, want)
	}
}
