// SPDX-License-Identifier: MIT
package lexer

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

// drain runs a full scan, collecting the emitted Item IDs & values.
func drain(ctx context.Context, l *Lexer) (ids []ItemID, values []string) {
	go l.Lex(ctx)

	for {
		item, proceed := l.Item()
		if !proceed {
			return
		}

		ids = append(ids, item.ID)
		if item.ID == ItemValue {
			values = append(values, string(item.Val))
		}

		if item.ID == ItemEOF || item.ID == ItemError {
			return
		}
	}
}

func TestLexer_Lex(t *testing.T) {
	type args struct {
		source string
	}

	type counters struct {
		values int
		ends   int
	}

	tests := []struct {
		name       string
		args       args
		wantIDs    []ItemID
		wantValues []string
		want       counters
	}{
		{
			name:       "valid",
			args:       args{source: "2,3))"},
			wantIDs:    []ItemID{ItemValue, ItemSplitter, ItemValue, ItemEndMarker, ItemEndMarker, ItemEOF},
			wantValues: []string{"2", "3"},
			want:       counters{values: 2, ends: 2},
		},
		{
			name:       "valid with whitespace",
			args:       args{source: " 2 ,     3 )    ) "},
			wantIDs:    []ItemID{ItemValue, ItemSplitter, ItemValue, ItemEndMarker, ItemEndMarker, ItemEOF},
			wantValues: []string{"2", "3"},
			want:       counters{values: 2, ends: 2},
		},
		{
			name:       "word values",
			args:       args{source: "hello,world-1))"},
			wantIDs:    []ItemID{ItemValue, ItemSplitter, ItemValue, ItemEndMarker, ItemEndMarker, ItemEOF},
			wantValues: []string{"hello", "world-1"},
			want:       counters{values: 2, ends: 2},
		},
		{
			name:    "empty",
			args:    args{source: ""},
			wantIDs: []ItemID{ItemEOF},
		},
		{
			name:       "unknown tokens",
			args:       args{source: "2,[3))"},
			wantIDs:    []ItemID{ItemValue, ItemSplitter, ItemError},
			wantValues: []string{"2"},
			want:       counters{values: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(WithSource(strings.NewReader(tt.args.source)))

			ids, values := drain(context.Background(), l)
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Errorf("Lex() item IDs = %v, want %v", ids, tt.wantIDs)
			}
			if !reflect.DeepEqual(values, tt.wantValues) {
				t.Errorf("Lex() values = %v, want %v", values, tt.wantValues)
			}

			if got := l.ValueCounter(); got != tt.want.values {
				t.Errorf("Lexer.ValueCounter() = %d, want %d", got, tt.want.values)
			}
			if got := l.EndCounter(); got != tt.want.ends {
				t.Errorf("Lexer.EndCounter() = %d, want %d", got, tt.want.ends)
			}
		})
	}
}

func TestLexer_options(t *testing.T) {
	l := New(WithEndMarker(']'), WithSplitter(';'), WithSource(strings.NewReader("a;b]]")))

	if l.EndMarker() != ']' || l.Splitter() != ';' {
		t.Fatalf("Lexer options not applied: end %q splitter %q", l.EndMarker(), l.Splitter())
	}

	ids, values := drain(context.Background(), l)

	wantIDs := []ItemID{ItemValue, ItemSplitter, ItemValue, ItemEndMarker, ItemEndMarker, ItemEOF}
	if !reflect.DeepEqual(ids, wantIDs) {
		t.Errorf("Lex() item IDs = %v, want %v", ids, wantIDs)
	}
	if want := []string{"a", "b"}; !reflect.DeepEqual(values, want) {
		t.Errorf("Lex() values = %v, want %v", values, want)
	}
}
