// SPDX-License-Identifier: MIT
package arbor

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestBuildSource_Build(t *testing.T) {
	type args struct {
		list    []Source[string]
		ordered bool
	}

	tests := []struct {
		name     string
		args     args
		want     []string
		wantErr  bool
		errMatch error
	}{
		{
			name: "ordered",
			args: args{
				list: []Source[string]{
					NewRecord("hello", ""),
					NewRecord("world", "hello"),
					NewRecord("trees", "hello"),
					NewRecord("are", "trees"),
					NewRecord("cool", "are"),
				},
				ordered: true,
			},
			want: []string{"hello", "world", "trees", "are", "cool"},
		},
		{
			name: "unordered",
			args: args{
				list: []Source[string]{
					NewRecord("cool", "are"),
					NewRecord("are", "trees"),
					NewRecord("trees", "hello"),
					NewRecord("hello", ""),
				},
			},
			want: []string{"hello", "trees", "are", "cool"},
		},
		{
			name:     "empty source",
			args:     args{},
			wantErr:  true,
			errMatch: ErrEmptyBuildSource,
		},
		{
			name: "missing root",
			args: args{
				list: []Source[string]{
					NewRecord("world", "hello"),
					NewRecord("trees", "hello"),
				},
			},
			wantErr:  true,
			errMatch: ErrMissingRootNode,
		},
		{
			name: "multiple roots",
			args: args{
				list: []Source[string]{
					NewRecord("hello", ""),
					NewRecord("goodbye", ""),
				},
			},
			wantErr:  true,
			errMatch: ErrMultipleRootNodes,
		},
		{
			name: "orphan record",
			args: args{
				list: []Source[string]{
					NewRecord("hello", ""),
					NewRecord("world", "hello"),
					NewRecord("cool", "are"),
				},
			},
			wantErr:  true,
			errMatch: ErrLocateParents,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := []BuildOption[string]{WithSources(tt.args.list)}
			if tt.args.ordered {
				options = append(options, WithOrdered[string]())
			}

			got, err := NewBuildSource(options...).Build(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("BuildSource.Build() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.Is(err, ErrBuildTree) {
					t.Errorf("BuildSource.Build() error = %v, want wrapped %v", err, ErrBuildTree)
				}
				if !strings.Contains(err.Error(), tt.errMatch.Error()) {
					t.Errorf("BuildSource.Build() error = %v, want cause %v", err, tt.errMatch)
				}
				return
			}

			root, err := got.Root()
			if err != nil {
				t.Fatalf("Tree.Root() error = %v", err)
			}
			if values := root.Descendants().Collect().Values(); !reflect.DeepEqual(values, tt.want) {
				t.Errorf("BuildSource.Build() pre-order = %v, want %v", values, tt.want)
			}
		})
	}
}
