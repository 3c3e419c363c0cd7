package game

import (
	"fmt"
	"reflect"
	"testing"
)

func TestMessageLog(t *testing.T) {
	tests := []struct {
		name string
		add  []string
		want []string
	}{
		{"empty", nil, []string{}},
		{"one", []string{"a"}, []string{"a"}},
		{"full", []string{"a", "b", "c"}, []string{"a", "b", "c"}},
		{"wraps once", []string{"a", "b", "c", "d"}, []string{"b", "c", "d"}},
		{"wraps twice", []string{"a", "b", "c", "d", "e", "f", "g"}, []string{"e", "f", "g"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewMessageLog(tt.add...)
			if got := l.Messages(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Messages() = %v, want %v", got, tt.want)
			}
			if l.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", l.Len(), len(tt.want))
			}
			last := ""
			if len(tt.want) > 0 {
				last = tt.want[len(tt.want)-1]
			}
			if got := l.Last(); got != last {
				t.Errorf("Last() = %q, want %q", got, last)
			}
		})
	}
}

func TestMessageLog_NeverExceedsCapacity(t *testing.T) {
	l := NewMessageLog()
	for i := 0; i < 50; i++ {
		l.Add(fmt.Sprintf("m%d", i))
		if l.Len() > MessageCapacity {
			t.Fatalf("Len() = %d after %d adds", l.Len(), i+1)
		}
	}
	want := []string{"m47", "m48", "m49"}
	if got := l.Messages(); !reflect.DeepEqual(got, want) {
		t.Errorf("Messages() = %v, want %v", got, want)
	}
}
